package domain

import "strings"

// StandardEntry is one curriculum standard. Entries are immutable once
// loaded into a catalog.
type StandardEntry struct {
	Code string   `json:"code"`
	Text string   `json:"text"`
	Tags []string `json:"tags,omitempty"`
}

// Display renders the entry in the "CODE — text" form used by suggestion
// lists and selections.
func (e StandardEntry) Display() string {
	return e.Code + " — " + e.Text
}

// CatalogKey identifies one pool of standards: jurisdiction, subject and
// grade band. The wire form is "State|Subject|GradeBand".
type CatalogKey struct {
	State     string
	Subject   string
	GradeBand string
}

func (k CatalogKey) String() string {
	return k.State + "|" + k.Subject + "|" + k.GradeBand
}

// ParseCatalogKey splits a "State|Subject|GradeBand" string. Keys with a
// different field count are rejected by returning ok=false.
func ParseCatalogKey(s string) (CatalogKey, bool) {
	parts := strings.Split(s, "|")
	if len(parts) != 3 {
		return CatalogKey{}, false
	}
	return CatalogKey{State: parts[0], Subject: parts[1], GradeBand: parts[2]}, true
}
