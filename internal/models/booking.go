package models

import "time"

// TimeLayout is the naive local timestamp format accepted at every input boundary.
const TimeLayout = "2006-01-02 15:04"

type Booking struct {
	ID           int       `json:"id"`
	OfficeNumber int       `json:"office_number"`
	UserName     string    `json:"user_name"`
	UserEmail    string    `json:"user_email"`
	UserPhone    string    `json:"user_phone"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
}

// Overlaps reports whether b shares at least one instant with [start, end).
func (b Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

// Occupancy is the booking that blocks a queried window.
type Occupancy struct {
	UserName  string    `json:"user_name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Overlaps is the half-open interval test: [s1,e1) and [s2,e2) intersect
// iff s1 < e2 and s2 < e1.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
