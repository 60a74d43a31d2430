package store

import (
	"fmt"
	"strings"
)

// whereBuilder accumulates WHERE conditions with sequential
// placeholder numbering.
type whereBuilder struct {
	conditions []string
	args       []any
}

// add appends a condition whose single %d verb receives the next
// placeholder index.
func (wb *whereBuilder) add(cond string, val any) {
	wb.args = append(wb.args, val)
	wb.conditions = append(wb.conditions, fmt.Sprintf(cond, len(wb.args)))
}

// clause renders the accumulated conditions, or "" when there are none.
func (wb *whereBuilder) clause() string {
	if len(wb.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(wb.conditions, " AND ")
}

// nextArgIndex is the placeholder number the next argument would get.
func (wb *whereBuilder) nextArgIndex() int {
	return len(wb.args) + 1
}

// buildUploadFilter translates an UploadFilter into WHERE conditions.
// All set filters combine conjunctively; date and size ranges are
// inclusive on both ends.
func buildUploadFilter(f UploadFilter) *whereBuilder {
	wb := &whereBuilder{}

	if f.Status != "" {
		wb.add("status = $%d", f.Status)
	}
	if f.Search != "" {
		wb.add("file_name ILIKE $%d", "%"+f.Search+"%")
	}
	if !f.StartDate.IsZero() {
		wb.add("uploaded_at >= $%d", f.StartDate)
	}
	if !f.EndDate.IsZero() {
		wb.add("uploaded_at <= $%d", f.EndDate)
	}
	if f.MinSize > 0 {
		wb.add("file_size >= $%d", f.MinSize)
	}
	if f.MaxSize > 0 {
		wb.add("file_size <= $%d", f.MaxSize)
	}

	return wb
}
