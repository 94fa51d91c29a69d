package domain

// StateSchemaVersion is bumped when the persisted ProjectState layout
// changes shape.
const StateSchemaVersion = 1

// DefaultBackupFolder is the drive folder a fresh install backs up into.
const DefaultBackupFolder = "Planfairy Backups"

// DriveSettings holds the user's backup destination and cadence choices.
type DriveSettings struct {
	FolderID     string `json:"folderId,omitempty"`
	FolderName   string `json:"folderName,omitempty"`
	AutoBackup   bool   `json:"autoBackup"`
	AutoEveryMin int    `json:"autoEveryMin"`
}

// ProjectState is the whole persisted form/settings document. It is always
// written wholesale: every field edit saves the full value, never a partial
// merge of a stale read.
type ProjectState struct {
	SchemaVersion     int           `json:"schemaVersion"`
	Form              PlanForm      `json:"form"`
	SelectedStandards []string      `json:"standardsSelected"`
	Drive             DriveSettings `json:"drive"`
}

// DefaultProjectState returns the state a fresh install starts from:
// Colorado social studies, middle grades, five empty day slots.
func DefaultProjectState() *ProjectState {
	return &ProjectState{
		SchemaVersion: StateSchemaVersion,
		Form: PlanForm{
			Type:           PlanDaily,
			State:          "Colorado",
			Subject:        "Social Studies",
			GradeBand:      "6-8",
			Framework:      "Savvas: Connect / Investigate / Synthesize / Demonstrate",
			ObjectiveStyle: "I can…",
			Materials:      []string{"Curriculum", "DBQ"},
			Days:           make([]DaySlot, MaxDaySlots),
		},
		Drive: DriveSettings{FolderName: DefaultBackupFolder, AutoEveryMin: 3},
	}
}

// Clone deep-copies the state so callers can mutate the copy freely.
func (s *ProjectState) Clone() *ProjectState {
	c := *s
	c.Form = *s.Form.Clone()
	c.SelectedStandards = append([]string(nil), s.SelectedStandards...)
	return &c
}

// BackupPayload is the document shipped to and from cloud backup. It is
// written and read wholesale; restore never merges.
type BackupPayload struct {
	Project     *ProjectState              `json:"project"`
	StandardsDB map[string][]StandardEntry `json:"standardsDB"`
	TS          int64                      `json:"ts"`
}

// BackupReceipt identifies a completed backup upload.
type BackupReceipt struct {
	FileID string
	Name   string
	TS     int64
}
