package realtime

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent(`{"table":"chat_messages","type":"INSERT","id":"5f0c"}`)
	require.NoError(t, err)
	assert.Equal(t, Event{Table: "chat_messages", Type: "INSERT", ID: "5f0c"}, ev)

	_, err = ParseEvent(`not json`)
	assert.Error(t, err)

	_, err = ParseEvent(`{"id":"1"}`)
	assert.Error(t, err)
}

func TestDispatchRoutesByTable(t *testing.T) {
	l := NewListener(nil, zerolog.Nop())

	var chat, events []Event
	l.Subscribe("chat_messages", func(ev Event) { chat = append(chat, ev) })
	l.Subscribe("events", func(ev Event) { events = append(events, ev) })

	l.Dispatch(Event{Table: "chat_messages", Type: "INSERT", ID: "1"})
	l.Dispatch(Event{Table: "chat_messages", Type: "INSERT", ID: "2"})
	l.Dispatch(Event{Table: "blog_posts", Type: "INSERT", ID: "3"})

	assert.Len(t, chat, 2)
	assert.Empty(t, events)
	assert.Equal(t, "2", chat[1].ID)
}
