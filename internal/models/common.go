package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// Days of the week as stored in assignment rows. Monday is 0, matching the
// numbering used by the institution's timetabling data.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayName returns the human-readable weekday name for a 0-based day index.
func DayName(day int) string {
	if day < 0 || day >= len(dayNames) {
		return fmt.Sprintf("Day %d", day)
	}
	return dayNames[day]
}

// ValidDay reports whether the 0-based day index is a real weekday.
func ValidDay(day int) bool {
	return day >= 0 && day < len(dayNames)
}

// MinutesOfDay parses a clock string ("09:00" or "09:00:00") into minutes
// since midnight. Slot and availability comparisons are done on this integer
// form so that [start,end) interval math stays exact.
func MinutesOfDay(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", clock)
	}
	return hour*60 + minute, nil
}
