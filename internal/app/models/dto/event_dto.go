package dto

// EventForm is posted by admins to create an event
type EventForm struct {
	Title       string `form:"title" binding:"required,notblank,max=200"`
	Description string `form:"description" binding:"max=2000"`
	Location    string `form:"location" binding:"max=200"`
	LocationURL string `form:"location_url" binding:"omitempty,url"`
	EventDate   string `form:"event_date" binding:"required"`
}

// RSVPForm answers an event invitation
type RSVPForm struct {
	Status string `form:"status" binding:"required,oneof=attending maybe declined"`
}
