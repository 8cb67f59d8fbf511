// Package app is the dosing log service shared by the CLI commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"tableflip.dev/medlog/pkg/catalog"
	"tableflip.dev/medlog/pkg/entry"
	"tableflip.dev/medlog/pkg/export"
	"tableflip.dev/medlog/pkg/grid"
	"tableflip.dev/medlog/pkg/store"
	"tableflip.dev/medlog/pkg/timeutil"
)

var (
	ErrInvalidSubmission = errors.New("app: invalid submission")
	ErrNotFound          = errors.New("app: entry not found")
	// ErrExportFailed is the only export error shown to users; the cause is
	// logged.
	ErrExportFailed = errors.New("app: failed to generate the export, see the log for details")

	errNoPersistence = errors.New("app: no persistence configured")
)

// Service provides the log operations. The zero Catalog means the built-in
// medicine list; a nil Now means time.Now.
type Service struct {
	Persistence store.Persistence
	Catalog     []string
	Now         func() time.Time
	Log         *slog.Logger
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Clock returns the current time as the service sees it.
func (s *Service) Clock() time.Time {
	return s.now()
}

func (s *Service) log() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

func (s *Service) ready(ctx context.Context) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	return ctx.Err()
}

// Medicines returns the catalog entries matching query.
func (s *Service) Medicines(query string) []string {
	return catalog.Match(catalog.Or(s.Catalog), query)
}

// Pets returns the remembered pet names matching query.
func (s *Service) Pets(ctx context.Context, query string) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return catalog.Match(s.Persistence.Pets(), query), nil
}

// Vets returns the veterinarian roster.
func (s *Service) Vets(ctx context.Context) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.Persistence.Vets(), nil
}

// Valid reports whether sub can be saved against the current roster.
func (s *Service) Valid(ctx context.Context, sub Submission) bool {
	if s.ready(ctx) != nil {
		return false
	}
	return sub.Valid(s.Persistence.Vets())
}

// Add records a new dose happening now.
func (s *Service) Add(ctx context.Context, sub Submission) (*entry.Entry, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	roster := s.Persistence.Vets()
	if !sub.Valid(roster) {
		return nil, ErrInvalidSubmission
	}
	sub = sub.Normalize(roster)

	e := entry.New(sub.Pet, sub.Medicine, sub.Vet, sub.Quantity, s.now())
	if err := s.Persistence.Prepend(e); err != nil {
		return nil, err
	}
	s.Persistence.RememberPet(sub.Pet)
	return e, nil
}

// Find returns the entry with the given id.
func (s *Service) Find(ctx context.Context, id string) (*entry.Entry, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	for _, e := range s.Persistence.Records() {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Draft prefills a submission from the stored entry, ready to be edited.
func (s *Service) Draft(ctx context.Context, id string) (Submission, error) {
	e, err := s.Find(ctx, id)
	if err != nil {
		return Submission{}, err
	}
	return Submission{
		Pet:      e.Pet,
		Medicine: e.Medicine,
		Vet:      e.Vet,
		Quantity: e.Quantity,
		At:       entry.DeriveTimestamp(e, s.now()).Format(InputLayout),
	}, nil
}

// Edit replaces the fields of entry id. An unparseable At keeps the entry's
// previous timestamp.
func (s *Service) Edit(ctx context.Context, id string, sub Submission) (*entry.Entry, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	roster := s.Persistence.Vets()
	if !sub.Valid(roster) {
		return nil, ErrInvalidSubmission
	}
	sub = sub.Normalize(roster)
	now := s.now()

	e, err := s.Persistence.Update(id, func(e *entry.Entry) {
		at, ok := ParseInput(sub.At, now.Location())
		if !ok {
			at = entry.DeriveTimestamp(e, now)
		}
		e.Pet = sub.Pet
		e.Medicine = sub.Medicine
		e.Vet = sub.Vet
		e.Quantity = sub.Quantity
		e.SetOccurredAt(at)
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	s.Persistence.RememberPet(sub.Pet)
	return e, nil
}

// Delete removes an entry permanently. Confirmation is the caller's job.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := s.Persistence.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}

// LastDays selects the remembered custom range length, or today when none
// has been applied yet.
func (s *Service) LastDays() timeutil.Selector {
	if s.Persistence == nil {
		return timeutil.ForToday()
	}
	return timeutil.ForLastDays(s.Persistence.LastCustomDays())
}

// ApplyCustom selects the custom range and remembers its length in days.
// With both bounds empty the range is today.
func (s *Service) ApplyCustom(start, end time.Time) timeutil.Selector {
	if start.IsZero() && end.IsZero() {
		today := timeutil.StartOfDay(s.now())
		start, end = today, today
	}
	if n := timeutil.DaysBetweenInclusive(start, end); n > 0 && s.Persistence != nil {
		s.Persistence.SetLastCustomDays(n)
	}
	return timeutil.ForCustom(start, end)
}

// Resolve turns sel into a range relative to the service clock.
func (s *Service) Resolve(sel timeutil.Selector) timeutil.Range {
	return timeutil.Resolve(sel, s.now())
}

// Filter returns the entries whose timestamp lies in r, in log order.
func (s *Service) Filter(ctx context.Context, r timeutil.Range) ([]*entry.Entry, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	now := s.now()
	all := s.Persistence.Records()
	out := make([]*entry.Entry, 0, len(all))
	for _, e := range all {
		at, err := entry.StrictTimestamp(e)
		if err != nil {
			s.log().Warn("app: record has no usable timestamp, using now", "id", e.ID, "date", e.Date)
			at = now
		}
		if r.Contains(at) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Grid builds the export chart for r over the whole log.
func (s *Service) Grid(ctx context.Context, r timeutil.Range) (grid.Grid, error) {
	if err := s.ready(ctx); err != nil {
		return grid.Grid{}, err
	}
	return grid.Build(s.Persistence.Records(), r, catalog.Or(s.Catalog), s.now()), nil
}

// Export writes the chart for r into dir and returns the file path. A range
// without days is a no-op returning "". Writer failures, panics included, are
// logged and reported as ErrExportFailed.
func (s *Service) Export(ctx context.Context, r timeutil.Range, w export.Writer, dir string) (path string, err error) {
	g, err := s.Grid(ctx, r)
	if err != nil {
		return "", err
	}
	if g.Empty() {
		return "", nil
	}
	path = filepath.Join(dir, g.Filename(w.Ext()))

	defer func() {
		if p := recover(); p != nil {
			s.log().Error("app: export panicked", "file", path, "panic", p)
			path, err = "", ErrExportFailed
		}
	}()
	if werr := w.Write(path, g.Matrix()); werr != nil {
		s.log().Error("app: export failed", "file", path, "err", werr)
		return "", ErrExportFailed
	}
	return path, nil
}
