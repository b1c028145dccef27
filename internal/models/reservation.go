package models

// Reservation is a seat booking for one user on one class. ClassID is a
// foreign key into the class catalog; the two are fetched independently and
// joined client-side.
type Reservation struct {
	ID         int64  `json:"id"`
	ClassID    int64  `json:"classId"`
	UserID     int64  `json:"userId"`
	HeadCount  int    `json:"headCount"`
	ReservedAt string `json:"reservedAt,omitempty"`
}

// TotalPrice is the class price multiplied by the booked head count.
func (r Reservation) TotalPrice(c Class) int {
	return c.Price * r.HeadCount
}
