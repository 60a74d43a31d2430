// Package core composes the ingestion pipeline with persistence:
// the upload entrypoint, history and statistics queries, audit
// writes, preview analysis, and user-facing error mapping.
//
// # Error Codes Reference
//
// Technical errors are mapped to user-friendly messages with codes
// users can quote to support staff:
//
//	FILE001 - File too large
//	FILE002 - Invalid CSV
//	FILE003 - Encoding error
//	FILE004 - No file provided
//	FILE005 - Empty file
//	FILE006 - Header only, no data rows
//	FILE007 - All data rows empty
//	FILE008 - Unsupported file type
//	REC001  - Upload record not found
//	UPL001  - Too many concurrent uploads
//	UPL002  - Request cancelled
//	UPL003  - Request timed out
//	DB001   - Database unavailable
//	DB002   - Database connection interrupted
//	RATE001 - Rate limited
//	ERR000  - Unknown error (fallback)
//
// Patterns are matched case-insensitively with strings.Contains; the
// first match wins, so specific patterns precede general ones.
package core

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a requested upload does not exist or
// has no stored data.
var ErrNotFound = errors.New("upload not found")

// UserMessage provides user-friendly error information with actionable
// guidance and a code for support reference.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File errors — most specific parse failures first.
	{
		pattern: "header row but no data rows",
		msg: UserMessage{
			Message: "The file contains a header row but no data rows",
			Action:  "Add at least one data row below the header",
			Code:    "FILE006",
		},
	},
	{
		pattern: "all data rows are empty",
		msg: UserMessage{
			Message: "Every data row in the file is empty",
			Action:  "Check the file was exported with its data",
			Code:    "FILE007",
		},
	},
	{
		pattern: "file is empty",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a CSV file with data rows",
			Code:    "FILE005",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "This file type is not supported",
			Action:  "Upload a .csv or .xlsx file",
			Code:    "FILE008",
		},
	},
	{
		pattern: "decode csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure the file is comma-separated text",
			Code:    "FILE002",
		},
	},
	{
		pattern: "open xlsx",
		msg: UserMessage{
			Message: "File is not a valid Excel workbook",
			Action:  "Re-export the file as .xlsx and try again",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save the file with UTF-8 encoding",
			Code:    "FILE003",
		},
	},

	// Record lookups.
	{
		pattern: "upload not found",
		msg: UserMessage{
			Message: "Upload record not found",
			Action:  "It may have been deleted. Refresh the history view",
			Code:    "REC001",
		},
	},
	{
		pattern: "record not found",
		msg: UserMessage{
			Message: "Upload record not found",
			Action:  "It may have been deleted. Refresh the history view",
			Code:    "REC001",
		},
	},

	// Upload process errors.
	{
		pattern: "too many concurrent uploads",
		msg: UserMessage{
			Message: "System is busy processing other uploads",
			Action:  "Please wait a moment and try again",
			Code:    "UPL001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try uploading a smaller file or check your connection",
			Code:    "UPL003",
		},
	},

	// Database connectivity.
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the database",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB002",
		},
	},

	// Throttling.
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Unmatched errors fall back to ERR000; support staff should check the
// logs for the original error in that case.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}
