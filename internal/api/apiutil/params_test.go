package apiutil

import "testing"

func TestValidClockTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "17:05", "23:59"}
	for _, s := range valid {
		if !ValidClockTime(s) {
			t.Errorf("ValidClockTime(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "9:30", "24:00", "12:60", "12-30", "12:3", "noon"}
	for _, s := range invalid {
		if ValidClockTime(s) {
			t.Errorf("ValidClockTime(%q) = true, want false", s)
		}
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2026-03-14") {
		t.Error("expected 2026-03-14 to be valid")
	}
	for _, s := range []string{"", "2026-3-14", "03/14/2026", "2026-03-14T10:00"} {
		if ValidDate(s) {
			t.Errorf("ValidDate(%q) = true, want false", s)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	got, err := NormalizePhone("(212) 555-0187")
	if err != nil {
		t.Fatalf("NormalizePhone: %v", err)
	}
	if got != "+12125550187" {
		t.Errorf("NormalizePhone = %q, want +12125550187", got)
	}

	got, err = NormalizePhone("212-555-0187")
	if err != nil {
		t.Fatalf("NormalizePhone: %v", err)
	}
	if got != "+12125550187" {
		t.Errorf("NormalizePhone = %q, want +12125550187", got)
	}

	if got, err := NormalizePhone("  "); err != nil || got != "" {
		t.Errorf("blank phone should normalize to empty, got %q, %v", got, err)
	}

	if _, err := NormalizePhone("not a number"); err == nil {
		t.Error("expected error for garbage input")
	}
}
