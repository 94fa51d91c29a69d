package render

// FieldSpec is one labeled row of a fixed-shape plan table. The renderer's
// row-emission loop consumes an ordered slice of these instead of one
// hardcoded boolean per field; disabling a field drops its row everywhere.
type FieldSpec struct {
	Key         string
	Label       string
	Placeholder string
	Enabled     bool
}

// DailyFieldSpecs returns the ordered row set of a daily plan table. Every
// enabled row is emitted even when its value is empty: the output is a
// fixed-shape document, so empty values render as the bracketed placeholder
// rather than dropping the row.
func DailyFieldSpecs() []FieldSpec {
	return []FieldSpec{
		{Key: "date", Label: "Date", Placeholder: "[date]", Enabled: true},
		{Key: "topic", Label: "Topic", Placeholder: "[topic]", Enabled: true},
		{Key: "grade", Label: "Grade Band", Placeholder: "[grade]", Enabled: true},
		{Key: "standards", Label: "Standards", Placeholder: "[mapped]", Enabled: true},
		{Key: "criteria", Label: "Success Criteria", Placeholder: "[criteria]", Enabled: true},
		{Key: "objective", Label: "Objective", Placeholder: "[objective]", Enabled: true},
		{Key: "activity", Label: "Learning Activity", Placeholder: "[activity]", Enabled: true},
		{Key: "checks", Label: "Checks for Understanding", Placeholder: "[checks]", Enabled: true},
		{Key: "differentiation", Label: "Differentiation", Placeholder: "[differentiation]", Enabled: true},
		{Key: "accommodations", Label: "Accommodations", Placeholder: "[accommodations]", Enabled: true},
		{Key: "materials", Label: "Materials", Placeholder: "[materials]", Enabled: true},
		{Key: "interventions", Label: "Interventions", Placeholder: "[interventions]", Enabled: true},
		{Key: "exemplar", Label: "Exemplar", Placeholder: "[exemplar]", Enabled: true},
		{Key: "attachments", Label: "Attachments", Placeholder: "[none]", Enabled: true},
	}
}
