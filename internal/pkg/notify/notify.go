// Package notify carries toast notifications across a Post/Redirect/Get round trip
package notify

import (
	"encoding/json"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const sessionName = "familyhub_flash"

// Kind selects the toast styling
type Kind string

const (
	KindSuccess     Kind = "success"
	KindDestructive Kind = "destructive"
)

// Toast is one notification shown on the next rendered page
type Toast struct {
	Kind    Kind   `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Middleware installs the signed flash cookie store
func Middleware(secret string, secure bool) gin.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(sessionName, store)
}

// Success queues a success toast
func Success(c *gin.Context, message string) {
	push(c, Toast{Kind: KindSuccess, Title: "Success", Message: message})
}

// Error queues a destructive toast
func Error(c *gin.Context, message string) {
	push(c, Toast{Kind: KindDestructive, Title: "Error", Message: message})
}

func push(c *gin.Context, t Toast) {
	data, err := json.Marshal(t)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode toast")
		return
	}

	sessions.Default(c).AddFlash(string(data))
}

// Save writes the queued toasts to the flash cookie.
// Call it once before the response headers are written.
func Save(c *gin.Context) {
	if err := sessions.Default(c).Save(); err != nil {
		log.Error().Err(err).Msg("Failed to save toasts")
	}
}

// Pop returns and clears the queued toasts
func Pop(c *gin.Context) []Toast {
	s := sessions.Default(c)
	flashes := s.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := s.Save(); err != nil {
		log.Error().Err(err).Msg("Failed to clear toasts")
	}

	toasts := make([]Toast, 0, len(flashes))
	for _, f := range flashes {
		raw, ok := f.(string)
		if !ok {
			continue
		}
		var t Toast
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			continue
		}
		toasts = append(toasts, t)
	}
	return toasts
}
