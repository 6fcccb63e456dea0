package models

import (
	"time"

	"github.com/google/uuid"
)

// RSVPStatus is a member's answer to an event invitation
type RSVPStatus string

const (
	RSVPAttending RSVPStatus = "attending"
	RSVPMaybe     RSVPStatus = "maybe"
	RSVPDeclined  RSVPStatus = "declined"
)

// Valid reports whether s is a known RSVP answer
func (s RSVPStatus) Valid() bool {
	return s == RSVPAttending || s == RSVPMaybe || s == RSVPDeclined
}

// Event is a family gathering
type Event struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	Location    *string   `json:"location,omitempty" db:"location"`
	LocationURL *string   `json:"locationUrl,omitempty" db:"location_url"`
	EventDate   time.Time `json:"eventDate" db:"event_date"`
	CreatedBy   uuid.UUID `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Number of RSVP rows, filled by listings
	RSVPCount int `json:"rsvpCount" db:"-"`
}

// EventRSVP is one RSVP row; repeated answers are stored as separate rows
type EventRSVP struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	EventID   uuid.UUID  `json:"eventId" db:"event_id"`
	UserID    uuid.UUID  `json:"userId" db:"user_id"`
	Status    RSVPStatus `json:"status" db:"status"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}
