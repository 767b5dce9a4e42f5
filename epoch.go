package twobody

import (
	"time"

	"github.com/soniakeys/meeus/julian"
)

// The pipeline works on a bare float64 time axis in seconds. These helpers
// anchor that axis to seconds past the J2000 epoch for callers which think
// in calendar dates.

const (
	j2000JD       = 2451545.0
	secondsPerDay = 86400.0
)

// EpochFromTime returns the epoch in seconds past J2000.
func EpochFromTime(dt time.Time) float64 {
	return (julian.TimeToJD(dt.UTC()) - j2000JD) * secondsPerDay
}

// TimeFromEpoch returns the date matching an epoch in seconds past J2000.
func TimeFromEpoch(epoch float64) time.Time {
	return julian.JDToTime(j2000JD + epoch/secondsPerDay).UTC()
}
