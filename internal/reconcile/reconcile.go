// Package reconcile joins independently fetched reservation and class lists
// into the denormalized rows the reservations page renders. Both inputs come
// from separate backend calls, so a reservation can reference a class the
// catalog fetch did not return; such rows degrade to an explicit error marker
// instead of showing stale or default class data.
package reconcile

import (
	"fmt"

	"onna/internal/models"
)

// Row is one reservation joined against the class index. When the join
// failed, Class is nil and MissingClassID carries the unresolved reference;
// the row is still emitted so one bad reference cannot blank the whole list.
type Row struct {
	Reservation    models.Reservation
	Class          *models.Class
	TimeLabel      string
	MissingClassID int64
}

// Missing reports whether this row is a join-failure marker.
func (r Row) Missing() bool {
	return r.Class == nil
}

// BuildIndex maps class id to class record. The index is rebuilt from scratch
// on every fetch cycle and never patched incrementally.
func BuildIndex(classes []models.Class) map[int64]models.Class {
	index := make(map[int64]models.Class, len(classes))
	for _, c := range classes {
		index[c.ID] = c
	}
	return index
}

// Reconcile looks up each reservation's class in the index, preserving the
// input order of reservations.
func Reconcile(reservations []models.Reservation, index map[int64]models.Class) []Row {
	rows := make([]Row, 0, len(reservations))
	for _, res := range reservations {
		class, ok := index[res.ClassID]
		if !ok {
			rows = append(rows, Row{Reservation: res, MissingClassID: res.ClassID})
			continue
		}
		rows = append(rows, Row{
			Reservation: res,
			Class:       &class,
			TimeLabel:   TimeRangeLabel(class.Date, class.StartTime, class.EndTime),
		})
	}
	return rows
}

// TimeRangeLabel formats a class slot as "2025-12-05 14:00–16:00", truncating
// seconds from the time-of-day strings.
func TimeRangeLabel(date, start, end string) string {
	return fmt.Sprintf("%s %s–%s", date, truncateClock(start), truncateClock(end))
}

// truncateClock drops the seconds from "HH:MM:SS"; shorter values pass
// through unchanged.
func truncateClock(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
