// Package entry holds the medication-administration record kept in the log.
package entry

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one dosing event. CreatedAt is authoritative; Date is the
// dd/mm/yyyy hh:mm rendering kept alongside it, and the only timestamp on
// records written before CreatedAt existed.
type Entry struct {
	ID        string  `json:"id"`
	Pet       string  `json:"pet"`
	Medicine  string  `json:"medicine"`
	Vet       string  `json:"vet"`
	Quantity  float64 `json:"quantity"`
	CreatedAt Millis  `json:"createdAt"`
	Date      string  `json:"date,omitempty"`
}

// New creates an entry with a fresh id, occurring at the given instant.
func New(pet, medicine, vet string, quantity float64, at time.Time) *Entry {
	e := &Entry{
		ID:       uuid.NewString(),
		Pet:      pet,
		Medicine: medicine,
		Vet:      vet,
		Quantity: quantity,
	}
	e.SetOccurredAt(at)
	return e
}

// SetOccurredAt moves the entry to t, re-rendering Date to match.
func (e *Entry) SetOccurredAt(t time.Time) {
	e.CreatedAt = MillisOf(t)
	e.Date = FormatDisplay(t)
}

// Source reports where the entry's timestamp comes from.
func (e *Entry) Source() TimestampSource {
	if e.CreatedAt.Valid {
		return Authoritative{At: e.CreatedAt.Time()}
	}
	return LegacyText{Text: e.Date}
}

// Label renders the "pet - vet" text used in export cells.
func (e *Entry) Label() string {
	return fmt.Sprintf("%s - %s", e.Pet, e.Vet)
}

// Clone returns a copy that can be mutated independently.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

// UnmarshalJSON accepts a quantity written as a number or a numeric string.
// Anything else reads as 0.
func (e *Entry) UnmarshalJSON(b []byte) error {
	type plain Entry
	aux := struct {
		*plain
		Quantity json.RawMessage `json:"quantity"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	e.Quantity = looseFloat(aux.Quantity)
	return nil
}

func looseFloat(raw json.RawMessage) float64 {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
