// Package catalog holds the known medicine names. Their order is the row
// order of exported dosing charts.
package catalog

import "strings"

// Medicines is the built-in catalog used when none is configured.
var Medicines = []string{
	"Amoxicillin",
	"Amoxicillin + Clavulanate",
	"Cephalexin",
	"Doxycycline",
	"Enrofloxacin",
	"Metronidazole",
	"Meloxicam",
	"Carprofen",
	"Dipyrone",
	"Tramadol",
	"Gabapentin",
	"Prednisolone",
	"Dexamethasone",
	"Omeprazole",
	"Ondansetron",
	"Maropitant",
	"Ranitidine",
	"Sucralfate",
	"Furosemide",
	"Pimobendan",
	"Enalapril",
	"Insulin",
	"Fluid therapy",
	"Vitamin B complex",
}

// Or returns configured when it is non-empty and the built-in catalog
// otherwise.
func Or(configured []string) []string {
	if len(configured) > 0 {
		return configured
	}
	return Medicines
}

// Match filters names by case-insensitive substring, keeping their order.
// An empty or blank query matches everything.
func Match(names []string, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return names
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), q) {
			out = append(out, n)
		}
	}
	return out
}
