package model

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var yearOnly = regexp.MustCompile(`^\d{4}$`)

// ParseReleaseYear extracts a release year from the catalog's inconsistent
// date encodings: "1980", "1980-01-01", a bare number, or anything
// time-parseable. Returns 0 when no year can be recovered.
func ParseReleaseYear(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	if idx := strings.Index(raw, "-"); idx > 0 {
		if y, err := strconv.Atoi(raw[:idx]); err == nil {
			return y
		}
	}
	if yearOnly.MatchString(raw) {
		y, _ := strconv.Atoi(raw)
		return y
	}
	if y, err := strconv.Atoi(raw); err == nil {
		return y
	}
	if t, err := time.Parse("January 2, 2006", raw); err == nil {
		return t.Year()
	}
	if t, err := time.Parse("02 Jan 2006", raw); err == nil {
		return t.Year()
	}
	return 0
}

// NormalizeRating maps a critic rating in any of its stored scales onto 0-10:
// "86%" and 86 both become 8.6, "8.6" stays 8.6. Returns nil for values that
// are empty or unparseable.
func NormalizeRating(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	percent := strings.HasSuffix(raw, "%")
	raw = strings.TrimSuffix(raw, "%")

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	if percent {
		v /= 10
	}
	if v > 10 && v <= 100 {
		v /= 10
	}
	return &v
}

// SplitGenres normalizes the genre field's encodings (JSON array string,
// comma-separated string, or a single bare genre) into a trimmed slice.
func SplitGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		var parsed []string
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			out := make([]string, 0, len(parsed))
			for _, g := range parsed {
				if g = strings.TrimSpace(g); g != "" {
					out = append(out, g)
				}
			}
			return out
		}
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, g := range parts {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// ParseRuntimeMinutes extracts minutes from encodings like "104 min" or "104".
func ParseRuntimeMinutes(raw string) int {
	raw = strings.TrimSpace(raw)
	for i, r := range raw {
		if r < '0' || r > '9' {
			raw = raw[:i]
			break
		}
	}
	mins, _ := strconv.Atoi(raw)
	return mins
}
