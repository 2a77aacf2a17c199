package attendance

import (
	"testing"
	"time"
)

func TestNormalizeDateDropsTimeComponent(t *testing.T) {
	in := time.Date(2024, 8, 5, 14, 45, 12, 0, time.UTC)
	got := NormalizeDate(in)

	want := time.Date(2024, 8, 5, 0, 0, 0, 0, IST)
	if !got.Equal(want) {
		t.Fatalf("NormalizeDate(%v) = %v, want %v", in, got, want)
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Fatalf("normalized date has a time component: %v", got)
	}
}

func TestNormalizeDateIsIdempotent(t *testing.T) {
	d := NormalizeDate(time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC))
	if !NormalizeDate(d).Equal(d) {
		t.Fatalf("NormalizeDate not idempotent: %v -> %v", d, NormalizeDate(d))
	}
}

func TestNormalizeDateLateUTCRollsToNextISTDay(t *testing.T) {
	// 20:00 UTC is already past midnight in IST.
	in := time.Date(2024, 8, 5, 20, 0, 0, 0, time.UTC)
	got := NormalizeDate(in)
	want := time.Date(2024, 8, 6, 0, 0, 0, 0, IST)
	if !got.Equal(want) {
		t.Fatalf("NormalizeDate(%v) = %v, want %v", in, got, want)
	}
}

func TestWindowForDaily(t *testing.T) {
	now := time.Date(2024, 8, 5, 10, 30, 0, 0, IST)
	w, ok := WindowFor(ViewDaily, now)
	if !ok {
		t.Fatal("daily view rejected")
	}
	if !w.Start.Equal(time.Date(2024, 8, 5, 0, 0, 0, 0, IST)) {
		t.Errorf("daily start = %v", w.Start)
	}
	if !w.End.Equal(time.Date(2024, 8, 6, 0, 0, 0, 0, IST)) {
		t.Errorf("daily end = %v", w.End)
	}
	if w.EndInclusive {
		t.Error("daily window should be half-open")
	}
}

func TestWindowForMonthly(t *testing.T) {
	now := time.Date(2024, 12, 15, 9, 0, 0, 0, IST)
	w, ok := WindowFor(ViewMonthly, now)
	if !ok {
		t.Fatal("monthly view rejected")
	}
	if !w.Start.Equal(time.Date(2024, 12, 1, 0, 0, 0, 0, IST)) {
		t.Errorf("monthly start = %v", w.Start)
	}
	if !w.End.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, IST)) {
		t.Errorf("monthly end = %v", w.End)
	}
}

func TestWindowForSemester(t *testing.T) {
	cases := []struct {
		name      string
		now       time.Time
		wantStart time.Time
	}{
		{
			name:      "after august uses current year",
			now:       time.Date(2024, 10, 10, 12, 0, 0, 0, IST),
			wantStart: time.Date(2024, 8, 1, 0, 0, 0, 0, IST),
		},
		{
			name:      "august itself uses current year",
			now:       time.Date(2024, 8, 1, 0, 0, 0, 0, IST),
			wantStart: time.Date(2024, 8, 1, 0, 0, 0, 0, IST),
		},
		{
			name:      "before august rolls back a year",
			now:       time.Date(2025, 3, 2, 12, 0, 0, 0, IST),
			wantStart: time.Date(2024, 8, 1, 0, 0, 0, 0, IST),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, ok := WindowFor(ViewSemester, tc.now)
			if !ok {
				t.Fatal("semester view rejected")
			}
			if !w.Start.Equal(tc.wantStart) {
				t.Errorf("start = %v, want %v", w.Start, tc.wantStart)
			}
			wantEnd := NormalizeDate(tc.now).Add(24*time.Hour - time.Second)
			if !w.End.Equal(wantEnd) {
				t.Errorf("end = %v, want %v", w.End, wantEnd)
			}
			if !w.EndInclusive {
				t.Error("semester window upper bound should be inclusive")
			}
		})
	}
}

func TestWindowForUnknownView(t *testing.T) {
	if _, ok := WindowFor(ViewType("weekly"), time.Now()); ok {
		t.Fatal("unknown view type accepted")
	}
}
