// Package experience derives a user's experience tier from stored work
// history. The tier is recomputed on every request and never persisted.
package experience

import (
	"strconv"
	"strings"
	"time"
)

type Level string

const (
	LevelEntry  Level = "ENTRY"
	LevelMid    Level = "MID"
	LevelSenior Level = "SENIOR"
	LevelLead   Level = "LEAD"
)

func (l Level) Valid() bool {
	switch l {
	case LevelEntry, LevelMid, LevelSenior, LevelLead:
		return true
	}
	return false
}

// ParseLevel normalizes s and reports whether it names a known level.
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	return l, l.Valid()
}

const hoursPerYear = 365.25 * 24

// Period is the subset of a work-history row that contributes to duration.
type Period struct {
	StartDate        string
	EndDate          string
	CurrentlyWorking bool
}

// LevelFor buckets total years: <2 entry, <5 mid, <9 senior, otherwise lead.
func LevelFor(years float64) Level {
	switch {
	case years < 2:
		return LevelEntry
	case years < 5:
		return LevelMid
	case years < 9:
		return LevelSenior
	default:
		return LevelLead
	}
}

// TotalYears sums the non-negative duration of each period. Rows whose start
// cannot be parsed contribute nothing; an unparseable end on a finished row
// also contributes nothing.
func TotalYears(periods []Period, now time.Time) float64 {
	total := 0.0
	for _, p := range periods {
		total += periodYears(p, now)
	}
	return total
}

func periodYears(p Period, now time.Time) float64 {
	start, ok := ParseYearMonth(p.StartDate)
	if !ok {
		return 0
	}

	end := now
	if !p.CurrentlyWorking {
		end, ok = ParseYearMonth(p.EndDate)
		if !ok {
			return 0
		}
	}

	years := end.Sub(start).Hours() / hoursPerYear
	if years < 0 {
		return 0
	}
	return years
}

// ParseYearMonth reads "YYYY-MM" or "YYYY" as the first instant of that month
// in UTC. A missing or invalid month defaults to January.
func ParseYearMonth(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	yearPart, monthPart, _ := strings.Cut(s, "-")
	year, err := strconv.Atoi(strings.TrimSpace(yearPart))
	if err != nil || year <= 0 {
		return time.Time{}, false
	}

	month := 1
	if m, err := strconv.Atoi(strings.TrimSpace(monthPart)); err == nil && m >= 1 && m <= 12 {
		month = m
	}

	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
}
