package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ColumnType is a sniffed column type for preview purposes.
type ColumnType string

const (
	TypeText    ColumnType = "text"
	TypeInteger ColumnType = "integer"
	TypeFloat   ColumnType = "float"
	TypeBoolean ColumnType = "boolean"
	TypeDate    ColumnType = "date"
)

var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
}

// InferColumnTypes sniffs a type per column over at most sampleSize
// records. A column must be consistently parseable as a candidate type
// across all non-empty sampled cells; precedence is boolean, integer,
// float, date, then text. Columns with no values at all are text.
func InferColumnTypes(columns []string, records []Record, sampleSize int) map[string]ColumnType {
	if sampleSize <= 0 || sampleSize > len(records) {
		sampleSize = len(records)
	}
	sample := records[:sampleSize]

	types := make(map[string]ColumnType, len(columns))
	for _, col := range columns {
		types[col] = sniffColumn(col, sample)
	}
	return types
}

func sniffColumn(col string, sample []Record) ColumnType {
	isBool := true
	isInt := true
	isFloat := true
	isDate := true
	hasValue := false

	for _, rec := range sample {
		value := strings.TrimSpace(rec.Row[col])
		if value == "" {
			continue
		}
		hasValue = true

		if isBool && !looksLikeBool(value) {
			isBool = false
		}
		if isInt && !looksLikeInt(value) {
			isInt = false
		}
		if isFloat && !looksLikeFloat(value) {
			isFloat = false
		}
		if isDate && !looksLikeDate(value) {
			isDate = false
		}
		if !isBool && !isInt && !isFloat && !isDate {
			return TypeText
		}
	}

	switch {
	case !hasValue:
		return TypeText
	case isBool:
		return TypeBoolean
	case isInt:
		return TypeInteger
	case isFloat:
		return TypeFloat
	case isDate:
		return TypeDate
	default:
		return TypeText
	}
}

func looksLikeBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "false", "yes", "no", "1", "0":
		return true
	}
	_, err := strconv.ParseBool(value)
	return err == nil
}

func looksLikeInt(value string) bool {
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return true
	}
	// Allow float representations that are losslessly integral.
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return math.Mod(f, 1) == 0
	}
	return false
}

func looksLikeFloat(value string) bool {
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

func looksLikeDate(value string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
