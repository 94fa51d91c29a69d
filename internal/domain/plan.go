package domain

// MaxDaySlots bounds the number of day rows a weekly plan may carry.
const MaxDaySlots = 5

// FileRef describes an uploaded file attached to a plan or day slot.
// Text holds extracted content when the file could be read as text.
type FileRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	Text string `json:"text,omitempty"`
}

// DaySlot is one day row of a weekly plan.
type DaySlot struct {
	Date        string    `json:"date"`
	Topic       string    `json:"topic"`
	Activities  string    `json:"activities"`
	Assessment  string    `json:"assessment"`
	Materials   string    `json:"materials"`
	Notes       string    `json:"notes"`
	Attachments []FileRef `json:"attachments,omitempty"`
}

// PacingWeek is one week square of a unit plan's pacing guide.
type PacingWeek struct {
	Title        string `json:"title"`
	Objective    string `json:"objective"`
	CommonErrors string `json:"commonErrors"`
	Notes        string `json:"notes"`
}

// PlanForm is the canonical tagged-variant form model. Type selects the
// variant; Days is only meaningful for weekly plans, Weeks and the unit
// section fields only for unit plans. All other fields are shared.
type PlanForm struct {
	Type PlanType `json:"type"`

	State          string   `json:"state"`
	Subject        string   `json:"subject"`
	GradeBand      string   `json:"gradeBand"`
	Framework      string   `json:"framework"`
	CustomTaxonomy string   `json:"customTaxonomy,omitempty"`
	ObjectiveStyle string   `json:"objectiveStyle"`
	Materials      []string `json:"materials"`

	Topic           string    `json:"topic"`
	Date            string    `json:"date"`
	Objective       string    `json:"objective"`
	Criteria        string    `json:"criteria"`
	Activity        string    `json:"activity"`
	Checks          string    `json:"checks"`
	Differentiation string    `json:"differentiation"`
	Accommodations  string    `json:"accommodations"`
	Interventions   string    `json:"interventions"`
	Exemplar        string    `json:"exemplar"`
	Notes           string    `json:"notes"`
	Other           string    `json:"other"`
	Attachments     []FileRef `json:"attachments,omitempty"`

	Days []DaySlot `json:"days,omitempty"`

	Weeks              []PacingWeek `json:"weeks,omitempty"`
	EssentialQuestions []string     `json:"essentialQuestions,omitempty"`
	Vocabulary         []string     `json:"vocabulary,omitempty"`
	MustKnow           []string     `json:"mustKnow,omitempty"`
	MustDo             []string     `json:"mustDo,omitempty"`
	Progression        []string     `json:"progression,omitempty"`
	Misconceptions     string       `json:"misconceptions,omitempty"`
	LengthOfTime       string       `json:"lengthOfTime,omitempty"`
}

// Taxonomy returns the custom taxonomy when set, otherwise the framework.
func (f *PlanForm) Taxonomy() string {
	if f.CustomTaxonomy != "" {
		return f.CustomTaxonomy
	}
	return f.Framework
}

// ActiveDays returns the day slots that carry any content, capped at
// MaxDaySlots in original order.
func (f *PlanForm) ActiveDays() []DaySlot {
	var out []DaySlot
	for _, d := range f.Days {
		if d.Date != "" || d.Topic != "" || d.Activities != "" || d.Assessment != "" ||
			d.Materials != "" || d.Notes != "" || len(d.Attachments) > 0 {
			out = append(out, d)
		}
		if len(out) == MaxDaySlots {
			break
		}
	}
	return out
}

// Clone returns a deep copy of the form. Generation requests snapshot the
// form at request start so an in-flight call never observes later edits.
func (f *PlanForm) Clone() *PlanForm {
	c := *f
	c.Materials = append([]string(nil), f.Materials...)
	c.Attachments = cloneFileRefs(f.Attachments)
	c.Days = make([]DaySlot, len(f.Days))
	for i, d := range f.Days {
		c.Days[i] = d
		c.Days[i].Attachments = cloneFileRefs(d.Attachments)
	}
	c.Weeks = append([]PacingWeek(nil), f.Weeks...)
	c.EssentialQuestions = append([]string(nil), f.EssentialQuestions...)
	c.Vocabulary = append([]string(nil), f.Vocabulary...)
	c.MustKnow = append([]string(nil), f.MustKnow...)
	c.MustDo = append([]string(nil), f.MustDo...)
	c.Progression = append([]string(nil), f.Progression...)
	return &c
}

func cloneFileRefs(refs []FileRef) []FileRef {
	if refs == nil {
		return nil
	}
	return append([]FileRef(nil), refs...)
}

// AllFiles collects the plan-level and per-day attachments in display order.
func (f *PlanForm) AllFiles() []FileRef {
	out := append([]FileRef(nil), f.Attachments...)
	for _, d := range f.Days {
		out = append(out, d.Attachments...)
	}
	return out
}
