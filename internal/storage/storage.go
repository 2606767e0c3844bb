// Package storage persists day-scoped note logs as plain JSON files, one
// document per calendar day.
package storage

import "time"

// DateLayout is the canonical day format used in file names and parameters.
const DateLayout = "2006-01-02"

// Note is a single timestamped note entry.
type Note struct {
	When time.Time `json:"when"`
	Text string    `json:"text"`
	Tags []string  `json:"tags"`
}

// NewNote creates a note stamped with the current time.
func NewNote(text string) Note {
	return Note{
		When: time.Now().UTC(),
		Text: text,
		Tags: []string{},
	}
}

// DayLog holds all notes for one calendar day.
type DayLog struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Notes []Note `json:"notes"`
}

// NewDayLog creates an empty log for the given day.
func NewDayLog(date time.Time) *DayLog {
	return &DayLog{
		Date:  date.Format(DateLayout),
		Notes: []Note{},
	}
}

// AddNote appends a note to the day.
func (d *DayLog) AddNote(n Note) {
	d.Notes = append(d.Notes, n)
}

// Storage is the contract the notes tool consumes.
type Storage interface {
	LoadDay(date time.Time) (*DayLog, error)
	SaveDay(day *DayLog) error
	IterDays() ([]*DayLog, error)
}
