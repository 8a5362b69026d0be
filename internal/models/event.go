// Package models defines data structures and domain types.
package models

import (
	"strings"
	"time"
)

// Gender is the normalized gender tag attached to a camera event.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	// GenderOther covers every tag the camera pipeline could not resolve
	// to male or female, including blanks.
	GenderOther Gender = "other"
)

// ParseGender normalizes a raw gender tag. Unknown or empty values map to
// GenderOther, matching how the ingest pipeline fills missing demographics.
func ParseGender(raw string) Gender {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male":
		return GenderMale
	case "female":
		return GenderFemale
	default:
		return GenderOther
	}
}

// RawEvent is one demographic observation produced by a camera: a person
// sighting with its location hierarchy, demographic tags and dwell duration.
// Events are immutable once ingested; the analytics services never mutate them.
type RawEvent struct {
	Timestamp    time.Time
	PersonID     string
	CameraID     string
	Camera       string // camera description, the leaf of the location hierarchy
	Store        string // camera group
	Department   string
	Division     string
	Gender       Gender
	AgeGroup     string // raw bracket string, e.g. "20-29", or a sentinel
	DwellSeconds float64
}
