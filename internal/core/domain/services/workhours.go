package services

import (
	"sync"
	"time"
)

const (
	// workDayStartHour is when operations begin, local time.
	workDayStartHour = 8

	// workDayEndHour is when operations stop, local time.
	workDayEndHour = 17
)

var (
	workZoneOnce sync.Once
	workZone     *time.Location
)

// operationsZone returns the fleet's local time zone. Falls back to a
// fixed UTC+3 offset when the zoneinfo database is unavailable.
func operationsZone() *time.Location {
	workZoneOnce.Do(func() {
		zone, err := time.LoadLocation("Asia/Riyadh")
		if err != nil {
			zone = time.FixedZone("+03", 3*60*60)
		}
		workZone = zone
	})
	return workZone
}

// NextWorkingInstant shifts an instant forward into the next working
// window. The working window is 08:00 to 17:00 local time, Friday
// excluded. An instant already inside the window is returned unchanged
// (in the operations zone).
func NextWorkingInstant(t time.Time) time.Time {
	local := t.In(operationsZone())

	for {
		if local.Weekday() == time.Friday {
			local = startOfNextWorkDay(local)
			continue
		}
		if local.Hour() < workDayStartHour {
			local = atWorkDayStart(local)
			continue
		}
		if local.Hour() >= workDayEndHour {
			local = startOfNextWorkDay(local)
			continue
		}
		return local
	}
}

func atWorkDayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), workDayStartHour, 0, 0, 0, t.Location())
}

func startOfNextWorkDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	return atWorkDayStart(next)
}
