package launch

import (
	"testing"
	"time"
)

func TestMinutesAfterLaunch_ExactMinutes(t *testing.T) {
	ts := time.Date(2025, time.May, 27, 20, 5, 0, 0, time.UTC)
	if got := MinutesAfterLaunch(ts); got != 5 {
		t.Errorf("expected 5 minutes, got %d", got)
	}
}

func TestMinutesAfterLaunch_FloorsPartialMinutes(t *testing.T) {
	ts := Time.Add(2*time.Minute + 59*time.Second + 999*time.Millisecond)
	if got := MinutesAfterLaunch(ts); got != 2 {
		t.Errorf("expected 2 minutes, got %d", got)
	}
}

func TestMinutesAfterLaunch_AtLaunch(t *testing.T) {
	if got := MinutesAfterLaunch(Time); got != 0 {
		t.Errorf("expected 0 minutes, got %d", got)
	}
}

func TestMinutesAfterLaunch_BeforeLaunchClampsToZero(t *testing.T) {
	for _, d := range []time.Duration{-time.Millisecond, -30 * time.Second, -90 * time.Minute, -48 * time.Hour} {
		if got := MinutesAfterLaunch(Time.Add(d)); got != 0 {
			t.Errorf("offset %s: expected 0, got %d", d, got)
		}
	}
}

func TestMinutesAfterLaunch_OtherTimezone(t *testing.T) {
	pt := time.FixedZone("PDT", -7*60*60)
	ts := time.Date(2025, time.May, 27, 14, 0, 30, 0, pt) // 21:00:30Z
	if got := MinutesAfterLaunch(ts); got != 60 {
		t.Errorf("expected 60 minutes, got %d", got)
	}
}

func TestMinutesAfterLaunch_DaysLater(t *testing.T) {
	ts := Time.Add(3*24*time.Hour + 17*time.Minute)
	want := int64(3*24*60 + 17)
	if got := MinutesAfterLaunch(ts); got != want {
		t.Errorf("expected %d minutes, got %d", want, got)
	}
}
