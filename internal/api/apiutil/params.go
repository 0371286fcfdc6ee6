package apiutil

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// PathID parses the {id} path value of a request as a positive int64.
func PathID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// QueryInt64 parses an optional integer query parameter. A missing or empty
// parameter yields zero without an error.
func QueryInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

// ValidDate reports whether s looks like a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, c := range s {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ValidClockTime reports whether s looks like a zero-padded HH:MM time.
// Schedule comparisons rely on this shape sorting lexically.
func ValidClockTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	hh := s[:2]
	mm := s[3:]
	for _, part := range []string{hh, mm} {
		for _, c := range part {
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return hh <= "23" && mm <= "59"
}
