package websocket

import (
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/pkg/realtime"
)

// ChangeForwarder relays row changes from the realtime listener to hub subscribers
type ChangeForwarder struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewChangeForwarder creates a new ChangeForwarder
func NewChangeForwarder(hub *Hub, logger zerolog.Logger) *ChangeForwarder {
	return &ChangeForwarder{hub: hub, logger: logger}
}

// Forward subscribes to changes of table and broadcasts each one on the channel of the same name
func (f *ChangeForwarder) Forward(listener *realtime.Listener, table string) {
	listener.Subscribe(table, f.Handle)
}

// Handle turns one row change into a hub message
func (f *ChangeForwarder) Handle(ev realtime.Event) {
	f.logger.Debug().Str("table", ev.Table).Str("type", ev.Type).Str("id", ev.ID).Msg("Forwarding row change")
	f.hub.Broadcast(&Message{
		Channel: ev.Table,
		Type:    ev.Type,
		Table:   ev.Table,
		ID:      ev.ID,
	})
}
