package models

// Class is a one-day class record as served by the backend catalog.
// The front end never mutates these; they are refetched on every page visit.
type Class struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Location     string  `json:"location"`
	Date         string  `json:"date"`      // calendar date, e.g. "2025-12-05"
	StartTime    string  `json:"startTime"` // time of day, "14:00:00" or "14:00"
	EndTime      string  `json:"endTime"`
	Capacity     int     `json:"capacity"`
	Price        int     `json:"price"`
	CurrentCount int     `json:"currentCount,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
	HostID       int64   `json:"hostId,omitempty"`
}

// SeatsLeft returns the remaining capacity, never negative.
func (c Class) SeatsLeft() int {
	left := c.Capacity - c.CurrentCount
	if left < 0 {
		return 0
	}
	return left
}
