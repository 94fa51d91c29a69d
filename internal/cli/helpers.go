package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"planfairy/internal/domain"
	"planfairy/internal/store"
)

// loadState returns the persisted project state, or the default state on a
// fresh install.
func loadState(ctx context.Context, app *App) (*domain.ProjectState, error) {
	state, err := app.Store.LoadState(ctx)
	if errors.Is(err, store.ErrNoState) {
		return domain.DefaultProjectState(), nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

// saveState writes the state back wholesale.
func saveState(ctx context.Context, app *App, state *domain.ProjectState) error {
	return app.Store.SaveState(ctx, state)
}

// catalogKey builds the active catalog key from the form.
func catalogKey(form *domain.PlanForm) domain.CatalogKey {
	return domain.CatalogKey{
		State:     form.State,
		Subject:   form.Subject,
		GradeBand: form.GradeBand,
	}
}

// suggestionCorpus joins the text a teacher has already entered; keywords
// mined from it drive tag matching.
func suggestionCorpus(form *domain.PlanForm) string {
	parts := []string{form.Topic, form.Objective, form.Activity}
	for _, day := range form.Days {
		parts = append(parts, day.Topic, day.Notes)
	}
	for _, week := range form.Weeks {
		parts = append(parts, week.Title, week.Objective)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// joinLines renders a list field as one item per line for text editing.
func joinLines(items []string) string {
	return strings.Join(items, "\n")
}

// splitLines parses one-item-per-line text back into a list, dropping
// blank lines.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// resolveDisplay accepts either a 1-based index into the given list or a
// literal display string.
func resolveDisplay(input string, displays []string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("a standard is required")
	}

	var n int
	if _, err := fmt.Sscanf(input, "%d", &n); err == nil && fmt.Sprintf("%d", n) == input {
		if n < 1 || n > len(displays) {
			return "", fmt.Errorf("suggestion %d out of range (1-%d)", n, len(displays))
		}
		return displays[n-1], nil
	}
	return input, nil
}
