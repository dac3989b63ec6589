package service

import (
	"testing"
	"time"
)

func TestBuildDailySpec(t *testing.T) {
	spec, err := buildDailySpec("07:30")
	if err != nil {
		t.Fatalf("buildDailySpec: %v", err)
	}
	if spec != "0 30 7 * * *" {
		t.Fatalf("spec=%q", spec)
	}

	for _, bad := range []string{"", "7", "24:00", "12:60", "ab:cd", "1:2:3"} {
		if _, err := buildDailySpec(bad); err == nil {
			t.Fatalf("buildDailySpec(%q): expected error", bad)
		}
	}
}

func TestScheduleInterval_RejectsNonPositive(t *testing.T) {
	s := NewSchedulerService(time.UTC)
	if _, err := s.ScheduleInterval(0, func() {}); err == nil {
		t.Fatalf("expected error for zero interval")
	}
}

func TestSchedulerNext(t *testing.T) {
	s := NewSchedulerService(time.UTC)
	now := time.Date(2026, 5, 10, 6, 0, 0, 0, time.UTC)

	daily, err := s.ScheduleDaily("07:30", func() {})
	if err != nil {
		t.Fatalf("ScheduleDaily: %v", err)
	}
	if got, want := s.Next(daily, now), time.Date(2026, 5, 10, 7, 30, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("daily next=%s want=%s", got, want)
	}

	every, err := s.ScheduleInterval(6*time.Hour, func() {})
	if err != nil {
		t.Fatalf("ScheduleInterval: %v", err)
	}
	if got, want := s.Next(every, now), now.Add(6*time.Hour); !got.Equal(want) {
		t.Fatalf("interval next=%s want=%s", got, want)
	}

	if !s.Next(12345, now).IsZero() {
		t.Fatalf("expected zero time for unknown entry")
	}
}
