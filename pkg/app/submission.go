package app

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/medlog/pkg/entry"
)

// InputLayout is the date/time input accepted when editing a record.
const InputLayout = "2006-01-02T15:04"

var validate = validator.New()

// Submission is what the user entered for a dose. At is only read when
// editing.
type Submission struct {
	Pet      string  `validate:"required"`
	Medicine string  `validate:"required"`
	Vet      string  `validate:"required"`
	Quantity float64 `validate:"gt=0"`
	At       string
}

// Normalize trims the text fields and picks the first vet of the roster when
// none was chosen.
func (s Submission) Normalize(roster []string) Submission {
	s.Pet = strings.TrimSpace(s.Pet)
	s.Medicine = strings.TrimSpace(s.Medicine)
	s.Vet = strings.TrimSpace(s.Vet)
	s.At = strings.TrimSpace(s.At)
	if s.Vet == "" && len(roster) > 0 {
		s.Vet = roster[0]
	}
	return s
}

// Valid reports whether the submission may be saved: pet, medicine and a
// rostered vet present, and a positive finite quantity.
func (s Submission) Valid(roster []string) bool {
	if math.IsInf(s.Quantity, 0) || math.IsNaN(s.Quantity) {
		return false
	}
	n := s.Normalize(roster)
	if err := validate.Struct(n); err != nil {
		return false
	}
	return slices.Contains(roster, n.Vet)
}

// ParseInput reads an edited date/time as yyyy-mm-ddThh:mm or
// dd/mm/yyyy hh:mm in loc.
func ParseInput(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(InputLayout, s, loc); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(entry.DisplayLayout, s, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}
