package models

import "time"

// SlotType is an optional band classification for slots. Typed slots with no
// explicit times receive the band's canonical window.
type SlotType string

const (
	SlotTypeA SlotType = "A"
	SlotTypeB SlotType = "B"
	SlotTypeC SlotType = "C"
)

// canonicalWindows are the institution's standard bands.
var canonicalWindows = map[SlotType][2]string{
	SlotTypeA: {"08:30", "10:00"},
	SlotTypeB: {"10:15", "11:45"},
	SlotTypeC: {"12:30", "14:00"},
}

// Slot is a named time window, optionally typed. Times are HH:MM strings.
type Slot struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Type      *SlotType `db:"slot_type" json:"slot_type,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ApplyTypeDefaults fills the canonical band window when a typed slot carries
// no explicit times.
func (s *Slot) ApplyTypeDefaults() {
	if s.Type == nil {
		return
	}
	window, ok := canonicalWindows[*s.Type]
	if !ok {
		return
	}
	if s.StartTime == "" {
		s.StartTime = window[0]
	}
	if s.EndTime == "" {
		s.EndTime = window[1]
	}
}

// TypeLabel returns the band label or empty for untyped slots.
func (s *Slot) TypeLabel() string {
	if s.Type == nil {
		return ""
	}
	return string(*s.Type)
}

// Window returns the slot interval as minutes since midnight.
func (s *Slot) Window() (startMin, endMin int, err error) {
	startMin, err = MinutesOfDay(s.StartTime)
	if err != nil {
		return 0, 0, err
	}
	endMin, err = MinutesOfDay(s.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return startMin, endMin, nil
}

// Overlaps reports whether two half-open [start,end) slot windows intersect.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}
