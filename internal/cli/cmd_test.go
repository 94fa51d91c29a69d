package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"planfairy/internal/backup"
	"planfairy/internal/domain"
	"planfairy/internal/generate"
	"planfairy/internal/standards"
	"planfairy/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by the in-memory store.
func testApp(t *testing.T) *App {
	t.Helper()
	return &App{
		Store:     store.NewMemoryStore(),
		Catalog:   standards.NewCatalog(),
		Generator: generate.NewService(nil, nil),
	}
}

// runCmd executes one CLI invocation and returns its combined output.
func runCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	root.SilenceUsage = true

	err := root.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := runCmd(t, app, args...)
	require.NoError(t, err, "command %v failed: %s", args, out)
	return out
}

func TestPlanShowDefaults(t *testing.T) {
	app := testApp(t)

	out := mustRun(t, app, "plan", "show")
	assert.Contains(t, out, "Colorado")
	assert.Contains(t, out, "Social Studies")
	assert.Contains(t, out, "6-8")
	assert.Contains(t, out, "none selected")
}

func TestPlanSetPersistsFields(t *testing.T) {
	app := testApp(t)

	mustRun(t, app, "plan", "set",
		"--topic", "Causes of the American Revolution",
		"--objective", "Explain colonial grievances",
		"--materials", "Curriculum, DBQ, Primary sources")

	out := mustRun(t, app, "plan", "show")
	assert.Contains(t, out, "Causes of the American Revolution")
	assert.Contains(t, out, "Primary sources")

	state, err := app.Store.LoadState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Explain colonial grievances", state.Form.Objective)
	assert.Equal(t, []string{"Curriculum", "DBQ", "Primary sources"}, state.Form.Materials)
}

func TestPlanSetWithoutFlags(t *testing.T) {
	_, err := runCmd(t, testApp(t), "plan", "set")
	assert.Error(t, err)
}

func TestPlanTypeSwitch(t *testing.T) {
	app := testApp(t)

	mustRun(t, app, "plan", "type", "weekly")

	state, err := app.Store.LoadState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.PlanWeekly, state.Form.Type)
	assert.Len(t, state.Form.Days, domain.MaxDaySlots)

	_, err = runCmd(t, app, "plan", "type", "biweekly")
	assert.Error(t, err)
}

func TestPlanDaySlots(t *testing.T) {
	app := testApp(t)
	mustRun(t, app, "plan", "type", "weekly")
	mustRun(t, app, "plan", "day", "2", "--date", "2026-09-08", "--topic", "Stamp Act")

	state, err := app.Store.LoadState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Stamp Act", state.Form.Days[1].Topic)
	assert.Empty(t, state.Form.Days[0].Topic)

	_, err = runCmd(t, app, "plan", "day", "6", "--topic", "overflow")
	assert.Error(t, err)
}

func TestPlanWeekGrowsPacingGuide(t *testing.T) {
	app := testApp(t)
	mustRun(t, app, "plan", "type", "unit")
	mustRun(t, app, "plan", "week", "3", "--title", "Week 3: Revolution", "--objective", "Trace escalation to war")

	state, err := app.Store.LoadState(context.Background())
	require.NoError(t, err)
	require.Len(t, state.Form.Weeks, 3)
	assert.Equal(t, "Week 3: Revolution", state.Form.Weeks[2].Title)
	assert.Empty(t, state.Form.Weeks[0].Title)

	out := mustRun(t, app, "generate", "unit")
	assert.Contains(t, out, "Week 3: Revolution")

	_, err = runCmd(t, app, "plan", "week", "0", "--title", "bad")
	assert.Error(t, err)
}

func TestPlanResetKeepsDriveSettings(t *testing.T) {
	app := testApp(t)
	mustRun(t, app, "plan", "set", "--topic", "Stamp Act")
	mustRun(t, app, "standards", "add", "1")
	mustRun(t, app, "backup", "folder", "Lesson Plans")

	mustRun(t, app, "plan", "reset")

	state, err := app.Store.LoadState(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.Form.Topic)
	assert.Empty(t, state.SelectedStandards)
	assert.Equal(t, "Lesson Plans", state.Drive.FolderName)
}

func TestPlanAttachExtractsText(t *testing.T) {
	app := testApp(t)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("primary source excerpts"), 0o644))

	out := mustRun(t, app, "plan", "attach", path)
	assert.Contains(t, out, "notes.txt")

	state, err := app.Store.LoadState(context.Background())
	require.NoError(t, err)
	require.Len(t, state.Form.Attachments, 1)
	assert.Equal(t, "primary source excerpts", state.Form.Attachments[0].Text)
}

func TestStandardsSuggestSeedPool(t *testing.T) {
	app := testApp(t)

	out := mustRun(t, app, "standards", "suggest")
	assert.Contains(t, out, "CO.SS.MS.1.1")
	assert.Contains(t, out, "CO.SS.MS.1.3")
}

func TestStandardsAddByIndexAndLiteral(t *testing.T) {
	app := testApp(t)

	mustRun(t, app, "standards", "add", "1")
	mustRun(t, app, "standards", "add", "CUSTOM.1 — District pacing requirement")
	// Adding the same entry again is a no-op.
	mustRun(t, app, "standards", "add", "1")

	out := mustRun(t, app, "standards", "list")
	assert.Contains(t, out, "CO.SS.MS.1.1")
	assert.Contains(t, out, "CUSTOM.1")

	state, err := app.Store.LoadState(context.Background())
	require.NoError(t, err)
	assert.Len(t, state.SelectedStandards, 2)
}

func TestStandardsRemoveAndClear(t *testing.T) {
	app := testApp(t)
	mustRun(t, app, "standards", "add", "1")
	mustRun(t, app, "standards", "add", "2")

	mustRun(t, app, "standards", "remove", "1")
	state, err := app.Store.LoadState(context.Background())
	require.NoError(t, err)
	assert.Len(t, state.SelectedStandards, 1)

	mustRun(t, app, "standards", "clear")
	state, err = app.Store.LoadState(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.SelectedStandards)
}

func TestStandardsImportReplacesCatalog(t *testing.T) {
	app := testApp(t)

	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{"Colorado|Social Studies|6-8":[{"code":"CO.NEW.1","text":"Imported standard","tags":["imported"]}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out := mustRun(t, app, "standards", "import", path)
	assert.Contains(t, out, "Imported 1 standards")

	// The imported pool shadows the seed pool for the same key.
	suggestions := mustRun(t, app, "standards", "suggest")
	assert.Contains(t, suggestions, "CO.NEW.1")
	assert.NotContains(t, suggestions, "CO.SS.MS.1.1")

	// And it is persisted, not just in memory.
	catalog, err := app.Store.LoadCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog["Colorado|Social Studies|6-8"], 1)
}

func TestStandardsImportMalformedChangesNothing(t *testing.T) {
	app := testApp(t)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := runCmd(t, app, "standards", "import", path)
	require.Error(t, err)

	out := mustRun(t, app, "standards", "suggest")
	assert.Contains(t, out, "CO.SS.MS.1.1")
}

func TestStandardsExportRoundTrip(t *testing.T) {
	app := testApp(t)

	importPath := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{"Texas|Math|9-12":[{"code":"TX.M.A1.1","text":"Linear functions"}]}`
	require.NoError(t, os.WriteFile(importPath, []byte(doc), 0o644))
	mustRun(t, app, "standards", "import", importPath)

	out := mustRun(t, app, "standards", "export")
	assert.Contains(t, out, "Texas|Math|9-12")
	assert.Contains(t, out, "TX.M.A1.1")
}

func TestGenerateDailyPreview(t *testing.T) {
	app := testApp(t)
	mustRun(t, app, "plan", "set", "--topic", "Causes of the American Revolution")
	mustRun(t, app, "standards", "add", "1")
	mustRun(t, app, "standards", "add", "CO.SS.MS.1.3 — Causes and consequences of the American Revolution")

	out := mustRun(t, app, "generate", "daily")
	assert.Contains(t, out, "Causes of the American Revolution")
	assert.Contains(t, out, "CO.SS.MS.1.1")
	assert.Contains(t, out, "CO.SS.MS.1.3")
}

func TestGenerateWeeklyUsesDaySlots(t *testing.T) {
	app := testApp(t)
	mustRun(t, app, "plan", "type", "weekly")
	mustRun(t, app, "plan", "day", "1", "--date", "2026-09-07", "--topic", "Stamp Act")

	out := mustRun(t, app, "generate", "weekly")
	assert.Contains(t, out, "Weekly Plan")
	assert.Contains(t, out, "Stamp Act")
	assert.Contains(t, out, "Day 1")
}

func TestGenerateWritesDocFile(t *testing.T) {
	app := testApp(t)
	mustRun(t, app, "plan", "set", "--topic", "Stamp Act")

	outPath := filepath.Join(t.TempDir(), "Daily_Plan")
	out := mustRun(t, app, "generate", "daily", "--out", outPath)
	assert.Contains(t, out, "Daily_Plan.doc")

	data, err := os.ReadFile(outPath + ".doc")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
	assert.Contains(t, string(data), "Stamp Act")
}

func TestBackupWithoutConfiguration(t *testing.T) {
	app := testApp(t)

	_, err := runCmd(t, app, "backup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")

	_, err = runCmd(t, app, "restore")
	require.Error(t, err)
}

type stubAdapter struct{}

func (stubAdapter) Authenticate(context.Context) error { return nil }
func (stubAdapter) EnsureFolder(context.Context, string) (string, error) {
	return "", nil
}
func (stubAdapter) Upload(context.Context, string, string, []byte) (string, error) {
	return "file-1", nil
}
func (stubAdapter) FindLatest(context.Context, string, string) (*backup.RemoteFile, error) {
	return nil, backup.ErrNoBackup
}
func (stubAdapter) Download(context.Context, string) ([]byte, error) {
	return nil, backup.ErrNoBackup
}

func TestBackupWatchRejectsBadInterval(t *testing.T) {
	app := testApp(t)
	app.Backup = backup.NewService(store.NewMemoryStore(), stubAdapter{}, nil)

	_, err := runCmd(t, app, "backup", "watch", "--every", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 1 minute")
}

func TestBackupFolderSetting(t *testing.T) {
	app := testApp(t)

	out := mustRun(t, app, "backup", "folder")
	assert.Contains(t, out, domain.DefaultBackupFolder)

	mustRun(t, app, "backup", "folder", "Lesson Plans")
	out = mustRun(t, app, "backup", "folder")
	assert.Contains(t, out, "Lesson Plans")
}

func TestPlanEditRequiresTerminal(t *testing.T) {
	_, err := runCmd(t, testApp(t), "plan", "edit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
}
