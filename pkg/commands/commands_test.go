package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/medlog/pkg/app"
	"tableflip.dev/medlog/pkg/commands/options"
	"tableflip.dev/medlog/pkg/entry"
	"tableflip.dev/medlog/pkg/store"
	"tableflip.dev/medlog/pkg/timeutil"
)

func init() {
	color.NoColor = true
}

type testConfig string

func (c testConfig) BasePath() string { return string(c) }

var fixedNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.Local)

func useTempService(t *testing.T) *app.Service {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	p, err := store.Load(testConfig(t.TempDir()), nil, log)
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	svc := &app.Service{
		Persistence: p,
		Now:         func() time.Time { return fixedNow },
		Log:         log,
	}
	prev := loadService
	loadService = func() (*app.Service, error) { return svc, nil }
	t.Cleanup(func() { loadService = prev })
	return svc
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func listJSON(t *testing.T, args ...string) []*entry.Entry {
	t.Helper()
	out, err := run(t, append([]string{"list", "--json"}, args...)...)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var entries []*entry.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return entries
}

func TestAddAndList(t *testing.T) {
	useTempService(t)

	out, err := run(t, "add", "--pet", "Rex", "--medicine", "Meloxicam", "--quantity", "0.5")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.HasPrefix(out, "logged Meloxicam for Rex - Isadora at 15/03/2024 10:00") {
		t.Fatalf("unexpected output %q", out)
	}

	entries := listJSON(t)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Pet != "Rex" || e.Vet != "Isadora" || e.Quantity != 0.5 {
		t.Fatalf("unexpected entry %+v", e)
	}

	pretty, err := run(t, "list", "--show-id")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(pretty, "today · 15/03/2024 - 1 entry") || !strings.Contains(pretty, e.ID) {
		t.Fatalf("unexpected listing %q", pretty)
	}
}

func TestAddInvalid(t *testing.T) {
	useTempService(t)

	_, err := run(t, "add", "--medicine", "Meloxicam")
	if !errors.Is(err, app.ErrInvalidSubmission) {
		t.Fatalf("expected invalid submission, got %v", err)
	}
	_, err = run(t, "add", "--pet", "Rex", "--medicine", "Meloxicam", "--vet", "Nobody")
	if !errors.Is(err, app.ErrInvalidSubmission) {
		t.Fatalf("expected unknown vet to be rejected, got %v", err)
	}
	_, err = run(t, "add", "--pet", "Rex", "--medicine", "Meloxicam", "--quantity", "+Inf")
	if !errors.Is(err, app.ErrInvalidSubmission) {
		t.Fatalf("expected infinite quantity to be rejected, got %v", err)
	}
	if entries := listJSON(t); len(entries) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(entries))
	}
}

func TestEditOnlyChangesGivenFlags(t *testing.T) {
	useTempService(t)

	if _, err := run(t, "add", "-p", "Mia", "-d", "Amoxicillin", "-v", "Thalles"); err != nil {
		t.Fatalf("add: %v", err)
	}
	id := listJSON(t)[0].ID

	if _, err := run(t, "edit", id, "--quantity", "2"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	e := listJSON(t)[0]
	if e.Quantity != 2 || e.Pet != "Mia" || e.Vet != "Thalles" || e.Medicine != "Amoxicillin" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if !e.CreatedAt.Time().Equal(fixedNow) {
		t.Fatalf("expected timestamp kept, got %v", e.CreatedAt.Time())
	}

	if _, err := run(t, "edit", id, "--at", "14/03/2024 08:15"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	moved := listJSON(t, "--last", "2")
	if len(moved) != 1 || !moved[0].CreatedAt.Time().Equal(time.Date(2024, time.March, 14, 8, 15, 0, 0, time.Local)) {
		t.Fatalf("expected entry moved to the 14th, got %+v", moved)
	}
	if len(listJSON(t)) != 0 {
		t.Fatalf("expected today to be empty after the move")
	}
}

func TestEditUnknown(t *testing.T) {
	useTempService(t)
	if _, err := run(t, "edit", "missing", "--quantity", "2"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	useTempService(t)
	if _, err := run(t, "add", "-p", "Rex", "-d", "Meloxicam"); err != nil {
		t.Fatalf("add: %v", err)
	}
	id := listJSON(t)[0].ID

	prev := confirm
	t.Cleanup(func() { confirm = prev })
	confirm = func(string) (bool, error) { return false, nil }

	out, err := run(t, "delete", id)
	if err != nil || strings.TrimSpace(out) != "cancelled" {
		t.Fatalf("expected cancel, got %q %v", out, err)
	}
	if len(listJSON(t)) != 1 {
		t.Fatalf("cancelled delete removed the entry")
	}

	if _, err := run(t, "delete", id, "--yes"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(listJSON(t)) != 0 {
		t.Fatalf("expected entry removed")
	}
}

func TestExportCSV(t *testing.T) {
	useTempService(t)
	if _, err := run(t, "add", "-p", "Rex", "-d", "Meloxicam"); err != nil {
		t.Fatalf("add: %v", err)
	}
	dir := t.TempDir()
	out, err := run(t, "export", "--format", "csv", "--dir", dir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := filepath.Join(dir, "records_03-15-24_to_03-15-24.csv")
	if strings.TrimSpace(out) != want {
		t.Fatalf("expected %s, got %q", want, out)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "Meloxicam,Rex - Isadora") {
		t.Fatalf("unexpected export %q", data)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	useTempService(t)
	if _, err := run(t, "export", "--format", "ods"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestNames(t *testing.T) {
	useTempService(t)
	out, err := run(t, "vets", "--json")
	if err != nil {
		t.Fatalf("vets: %v", err)
	}
	var vets []string
	if err := json.Unmarshal([]byte(out), &vets); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(vets) != 2 || vets[0] != "Isadora" {
		t.Fatalf("unexpected vets %v", vets)
	}

	out, err = run(t, "meds", "amoxi")
	if err != nil {
		t.Fatalf("meds: %v", err)
	}
	if !strings.Contains(out, "Amoxicillin") || strings.Contains(out, "Meloxicam") {
		t.Fatalf("unexpected medicines %q", out)
	}
}

func TestSelectRange(t *testing.T) {
	svc := useTempService(t)

	sel, err := selectRange(svc, &options.RangeOptions{})
	if err != nil || sel.Kind != timeutil.Today {
		t.Fatalf("expected today, got %v %v", sel, err)
	}

	sel, err = selectRange(svc, &options.RangeOptions{Week: true, Month: true})
	if err != nil || sel.Kind != timeutil.CurrentMonth {
		t.Fatalf("expected month to win over week, got %v %v", sel, err)
	}

	sel, err = selectRange(svc, &options.RangeOptions{Last: options.RememberedLast})
	if err != nil || sel.Kind != timeutil.LastNDays || sel.N != 0 {
		t.Fatalf("expected nothing remembered yet, got %+v %v", sel, err)
	}

	sel, err = selectRange(svc, &options.RangeOptions{Last: "3", From: "2024-03-01", To: "2024-03-05"})
	if err != nil || sel.Kind != timeutil.Custom {
		t.Fatalf("expected custom to win, got %+v %v", sel, err)
	}

	sel, err = selectRange(svc, &options.RangeOptions{Last: options.RememberedLast})
	if err != nil || sel.Kind != timeutil.LastNDays || sel.N != 5 {
		t.Fatalf("expected remembered 5 days, got %+v %v", sel, err)
	}

	sel, err = selectRange(svc, &options.RangeOptions{Last: "1w"})
	if err != nil || sel.N != 7 {
		t.Fatalf("expected 7 days, got %+v %v", sel, err)
	}

	if _, err := selectRange(svc, &options.RangeOptions{Last: "soon"}); err == nil {
		t.Fatalf("expected error for unreadable --last")
	}
}
