package ingest

import "strings"

const keySeparator = "|"

// Detect finds duplicate records by composite key. Key values are
// trimmed and lowercased but never numerically normalized, so "1" and
// "1.0" are distinct. When keyColumns is empty the full column set is
// used. The first occurrence of each key is canonical; both returned
// slices preserve input order.
func Detect(records []Record, keyColumns, allColumns []string) (duplicates []DuplicateEntry, unique []Record) {
	if len(keyColumns) == 0 {
		keyColumns = allColumns
	}

	seen := make(map[string]int, len(records))
	unique = make([]Record, 0, len(records))

	for _, rec := range records {
		key := compositeKey(rec.Row, keyColumns)
		if canonical, ok := seen[key]; ok {
			duplicates = append(duplicates, DuplicateEntry{
				Row:         rec.Line,
				DuplicateOf: canonical,
				Data:        rec.Row,
			})
			continue
		}
		seen[key] = rec.Line
		unique = append(unique, rec)
	}

	return duplicates, unique
}

// compositeKey joins the normalized key-column values with "|" in
// column order. Missing columns contribute an empty segment.
func compositeKey(row Row, keyColumns []string) string {
	parts := make([]string, len(keyColumns))
	for i, col := range keyColumns {
		parts[i] = strings.ToLower(strings.TrimSpace(row[col]))
	}
	return strings.Join(parts, keySeparator)
}
