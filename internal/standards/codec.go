package standards

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"planfairy/internal/domain"
)

// ErrMalformed indicates a standards document that could not be parsed.
// Importing a malformed document leaves the existing catalog untouched.
var ErrMalformed = errors.New("malformed standards document")

// DefaultExportName is the file name used when exporting to a directory.
const DefaultExportName = "standards_export.json"

// flatRow is one record of the flat import format, where each row carries
// its own key fields.
type flatRow struct {
	State     string   `json:"state"`
	Subject   string   `json:"subject"`
	GradeBand string   `json:"gradeBand"`
	Code      string   `json:"code"`
	Text      string   `json:"text"`
	Tags      []string `json:"tags"`
}

// ParseDocument parses a standards document in either supported shape:
// a flat array of rows (grouped into composite keys here) or a pre-keyed
// object used verbatim. The returned mapping is fully built before any
// caller state changes, so import stays all-or-nothing.
func ParseDocument(data []byte) (map[string][]domain.StandardEntry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}

	switch trimmed[0] {
	case '[':
		var rows []flatRow
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		db := map[string][]domain.StandardEntry{}
		for _, row := range rows {
			state := row.State
			if state == "" {
				state = "Colorado"
			}
			key := domain.CatalogKey{State: state, Subject: row.Subject, GradeBand: row.GradeBand}.String()
			db[key] = append(db[key], domain.StandardEntry{Code: row.Code, Text: row.Text, Tags: row.Tags})
		}
		return db, nil
	case '{':
		var db map[string][]domain.StandardEntry
		if err := json.Unmarshal(trimmed, &db); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("%w: expected a JSON array or object", ErrMalformed)
	}
}

// ExportDocument serializes the full keyed mapping, pretty-printed. Export
// always emits the pre-keyed object form, never the flat rows.
func ExportDocument(m map[string][]domain.StandardEntry) ([]byte, error) {
	if m == nil {
		m = map[string][]domain.StandardEntry{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding standards document: %w", err)
	}
	return data, nil
}
