package param

import (
	"fmt"
	"strconv"
	"strings"
)

// Display converts plain values to the short labels shown under knobs and
// back. Parse accepts the label text with or without its unit.
type Display struct {
	Format func(plain float64) string
	Parse  func(text string) (float64, error)
}

var (
	// Decibels shows one decimal and a dB suffix.
	Decibels = Display{
		Format: func(db float64) string { return fmt.Sprintf("%.1fdB", db) },
		Parse:  func(s string) (float64, error) { return parseNumber(s, "db") },
	}
	// Percent shows a whole number and a % suffix.
	Percent = Display{
		Format: func(v float64) string { return fmt.Sprintf("%.0f%%", v) },
		Parse:  func(s string) (float64, error) { return parseNumber(s, "%") },
	}
	// Hertz shows one decimal and a Hz suffix; Parse also takes kHz.
	Hertz = Display{
		Format: func(hz float64) string { return fmt.Sprintf("%.1fHz", hz) },
		Parse:  parseHertz,
	}
)

func parseHertz(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if k, ok := strings.CutSuffix(s, "khz"); ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(k), 64)
		return v * 1000, err
	}
	return parseNumber(s, "hz")
}

// parseNumber parses s after dropping a case-insensitive unit suffix.
func parseNumber(s, unit string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(strings.ToLower(s), unit) {
		s = s[:len(s)-len(unit)]
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
