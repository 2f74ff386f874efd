package launch

import "time"

// Time is the Farcaster Pro launch instant (1:00 PM PT, May 27 2025).
var Time = time.Date(2025, time.May, 27, 20, 0, 0, 0, time.UTC)

// MinutesAfterLaunch returns whole minutes elapsed between launch and ts.
// Timestamps before launch clamp to zero.
func MinutesAfterLaunch(ts time.Time) int64 {
	return MinutesBetween(Time, ts)
}

// MinutesBetween floors (ts - start) to minutes, clamped at zero.
func MinutesBetween(start, ts time.Time) int64 {
	diff := ts.Sub(start)
	if diff <= 0 {
		return 0
	}
	return int64(diff / time.Minute)
}
