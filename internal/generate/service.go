package generate

import (
	"context"
	"strings"
	"sync"

	"planfairy/internal/domain"
	"planfairy/internal/extract"
	"planfairy/internal/render"
)

// Service orchestrates plan generation: it snapshots the form, computes the
// local render from that snapshot, and, when a remote client is wired, asks
// the plan service for a richer fragment, falling back to the local output
// on any remote failure so the workflow never dead-ends.
//
// At most one request is in flight at a time; a second invocation is
// rejected with ErrInFlight rather than issuing a duplicate request.
type Service struct {
	client   Client
	observer Observer

	mu       sync.Mutex
	inFlight bool
	result   domain.GenerationResult
}

// NewService creates a Service. A nil client disables remote generation;
// Generate then resolves directly with the local render.
func NewService(client Client, observer Observer) *Service {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Service{
		client:   client,
		observer: observer,
		result:   domain.IdleResult(),
	}
}

// Result returns the outcome of the most recent generate action.
func (s *Service) Result() domain.GenerationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// GenerateLocal renders the form locally, with no remote involvement.
func (s *Service) GenerateLocal(form *domain.PlanForm, selected []string) (string, error) {
	return render.Render(form, selected)
}

// Generate produces the plan fragment for the form. The form and selection
// are snapshotted at request start: later edits cannot change what a failed
// remote call falls back against. The returned result is always usable;
// a non-nil error alongside a GenDone result reports a remote failure that
// was absorbed by the local fallback.
func (s *Service) Generate(ctx context.Context, form *domain.PlanForm, selected []string, instructions string) (domain.GenerationResult, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return s.result, ErrInFlight
	}
	s.inFlight = true
	s.result = domain.GenerationResult{State: domain.GenWorking}
	s.mu.Unlock()

	res, err := s.generate(ctx, form.Clone(), append([]string(nil), selected...), instructions)

	s.mu.Lock()
	s.inFlight = false
	s.result = res
	s.mu.Unlock()
	return res, err
}

func (s *Service) generate(ctx context.Context, snapshot *domain.PlanForm, selected []string, instructions string) (domain.GenerationResult, error) {
	// The fallback is rendered from the snapshot before the remote call
	// resolves, so both paths see identical inputs.
	fallback, err := render.Render(snapshot, selected)
	if err != nil {
		return domain.ErrorResult(err.Error()), err
	}

	if s.client == nil {
		return domain.DoneResult(fallback), nil
	}

	resp, err := s.client.GeneratePlan(ctx, Request{
		PlanType:           snapshot.Type,
		Form:               snapshot,
		FilesText:          collectFileTexts(snapshot),
		CustomInstructions: instructions,
	})
	if err != nil {
		s.observer.OnCallComplete(CallEvent{
			PlanType:  snapshot.Type,
			Success:   false,
			Fallback:  true,
			ErrorCode: errorCode(err),
		})
		return domain.DoneResult(fallback), err
	}

	html := render.SanitizeFragment(resp.HTML)
	if strings.TrimSpace(html) == "" {
		return domain.DoneResult(fallback), nil
	}
	return domain.DoneResult(html), nil
}

// collectFileTexts gathers plan-level and per-day attachments whose content
// could be read as text, truncated to the per-file cap.
func collectFileTexts(form *domain.PlanForm) []FileText {
	var out []FileText
	for _, ref := range form.AllFiles() {
		if strings.TrimSpace(ref.Text) == "" {
			continue
		}
		out = append(out, FileText{
			Name: ref.Name,
			Text: extract.Truncate(ref.Text, extract.MaxFileTextLen),
		})
	}
	return out
}
