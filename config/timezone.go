package config

import (
	"os"
	"time"
	_ "time/tzdata"
)

const defaultTimezone = "Asia/Jakarta"

// GetTimeLocation returns the zone monthly and yearly statistics are cut in,
// from APP_TIMEZONE. Unknown names fall back to the process local zone.
func GetTimeLocation() *time.Location {
	name := os.Getenv("APP_TIMEZONE")
	if name == "" {
		name = defaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		GetLogrusInstance().WithError(err).Warnf("unknown APP_TIMEZONE %q, keeping local time", name)
		return time.Local
	}
	return loc
}
