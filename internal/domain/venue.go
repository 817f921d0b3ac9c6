package domain

import "time"

// VenueKind identifies the type of a bookable hall
type VenueKind string

const (
	KindVideoConference  VenueKind = "video_conference"
	KindConventionCenter VenueKind = "convention_center"
	KindLab              VenueKind = "lab"
	KindMBASeminar       VenueKind = "mba_seminar"
	KindConference       VenueKind = "conference"
)

// Venue represents a bookable physical resource on campus.
// Each venue has an independent booking calendar.
type Venue struct {
	ID       int64
	Name     string
	Kind     VenueKind
	Location string
	Capacity int
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidVenueKind reports whether k is one of the known venue kinds.
func ValidVenueKind(k VenueKind) bool {
	switch k {
	case KindVideoConference, KindConventionCenter, KindLab, KindMBASeminar, KindConference:
		return true
	}
	return false
}
