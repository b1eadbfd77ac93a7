package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
)

// StreamHandler serves the live event feed over server-sent events.
type StreamHandler struct {
	facade StreamFacade
}

// NewStreamHandler constructs StreamHandler.
func NewStreamHandler(facade StreamFacade) *StreamHandler {
	return &StreamHandler{facade: facade}
}

// Stream handles GET /api/events/stream. The subscription is filtered by
// the caller's roles and released when the client disconnects.
func (h *StreamHandler) Stream(c *gin.Context) {
	actor := CurrentUser(c)

	ch, cancel := h.facade.Subscribe(actor.Roles, 16)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case event, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent(string(event.Type), event)
			return true
		}
	})
}
