package domain

// GenerationResult is the tagged outcome of a generate action. Exactly one
// state holds at a time; only an explicit generate action moves it out of
// GenIdle.
type GenerationResult struct {
	State   GenerationState
	HTML    string // set when State == GenDone
	Message string // set when State == GenError
}

// IdleResult is the zero-value-equivalent starting state.
func IdleResult() GenerationResult {
	return GenerationResult{State: GenIdle}
}

// DoneResult wraps a finished HTML fragment.
func DoneResult(html string) GenerationResult {
	return GenerationResult{State: GenDone, HTML: html}
}

// ErrorResult records a failed generation.
func ErrorResult(msg string) GenerationResult {
	return GenerationResult{State: GenError, Message: msg}
}
