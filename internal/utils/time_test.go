package utils

import (
	"testing"
	"time"
)

func TestMonthWindow(t *testing.T) {
	start, end, label, err := MonthWindow("2025-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "2025-01" {
		t.Errorf("label = %q", label)
	}
	wantStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	wantEnd := time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local)
	if !start.Equal(wantStart) || !end.Equal(wantEnd) {
		t.Errorf("window = [%v, %v), want [%v, %v)", start, end, wantStart, wantEnd)
	}
}

func TestMonthWindowDecember(t *testing.T) {
	start, end, _, err := MonthWindow("2024-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Month() != time.December || end.Year() != 2025 || end.Month() != time.January {
		t.Errorf("december window rolled wrong: [%v, %v)", start, end)
	}
}

func TestMonthWindowDefaultsToCurrent(t *testing.T) {
	_, _, label, err := MonthWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != time.Now().Format("2006-01") {
		t.Errorf("default label = %q", label)
	}
}

func TestMonthWindowRejectsGarbage(t *testing.T) {
	if _, _, _, err := MonthWindow("January 2025"); err == nil {
		t.Error("expected error for non YYYY-MM input")
	}
}
