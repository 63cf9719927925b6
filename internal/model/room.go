package model

import "github.com/google/uuid"

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Room pairs exactly two participants under a short public code.
type Room struct {
	Code    string
	OwnerID uuid.UUID
	GuestID *uuid.UUID // nil until the second participant joins
	Status  string
	Filters FilterCriteria
}

func (r Room) HasParticipant(userID uuid.UUID) bool {
	if r.OwnerID == userID {
		return true
	}
	return r.GuestID != nil && *r.GuestID == userID
}

// FilterCriteria drives candidate list construction. Zero values mean
// "filter disabled". StreamingServices is carried with the room but the
// candidate builder does not filter on it.
type FilterCriteria struct {
	Genres            []string `json:"genres"`
	YearStart         int      `json:"year_start,omitempty"`
	YearEnd           int      `json:"year_end,omitempty"`
	MinRating         float64  `json:"min_rating,omitempty"`
	MPAARatings       []string `json:"mpaa_ratings,omitempty"`
	StreamingServices []string `json:"streaming_services,omitempty"`
}
