package booking

import (
	"time"

	"studiolink/models"
)

// openIntervalsOn returns the studio's open intervals for one calendar day.
// A date exception fully replaces the recurring entry for that date,
// including "closed" expressed as an empty interval list.
func openIntervalsOn(s models.OperatingSchedule, day time.Time) (intervals []models.ClockInterval, declared bool) {
	dateStr := day.Format("2006-01-02")
	for _, ex := range s.Exceptions {
		if ex.Date == dateStr {
			return ex.Intervals, true
		}
	}
	if len(s.Recurring) == 0 {
		return nil, false
	}
	for _, dh := range s.Recurring {
		if dh.Weekday == day.Weekday() {
			return dh.Intervals, true
		}
	}
	// Hours are declared but this weekday has no entry: closed.
	return nil, true
}

// ScheduleAllows reports whether [start, end) falls inside the studio's open
// hours. A studio with no recurring hours declares no constraint and accepts
// every interval. An interval spanning midnight is checked against each
// calendar day it touches.
func ScheduleAllows(s models.OperatingSchedule, start, end time.Time) bool {
	if !start.Before(end) {
		return false
	}

	for dayStart := startOfDay(start); dayStart.Before(end); dayStart = dayStart.AddDate(0, 0, 1) {
		dayEnd := dayStart.AddDate(0, 0, 1)

		segStart := maxTime(start, dayStart)
		segEnd := minTime(end, dayEnd)
		if !segStart.Before(segEnd) {
			continue
		}

		open, declared := openIntervalsOn(s, dayStart)
		if !declared {
			continue
		}

		fromMin := int(segStart.Sub(dayStart).Minutes())
		toMin := int(segEnd.Sub(dayStart).Minutes())
		if !coveredByOne(open, fromMin, toMin) {
			return false
		}
	}
	return true
}

// coveredByOne checks whether [from, to) fits entirely inside a single open
// interval.
func coveredByOne(intervals []models.ClockInterval, from, to int) bool {
	for _, iv := range intervals {
		if from >= iv.Start && to <= iv.End {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
