package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gin-gonic/gin"
)

// EngagementEvent is an SSE payload for live engagement updates on a stream.
type EngagementEvent struct {
	Type     string      `json:"type"`
	StreamID string      `json:"stream_id"`
	UserID   string      `json:"user_id,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

// Hub maintains per-stream subscribers listening for engagement events.
type Hub struct {
	mu      sync.RWMutex
	streams map[string]map[chan EngagementEvent]struct{}
}

func NewStreamHub() *Hub {
	return &Hub{streams: make(map[string]map[chan EngagementEvent]struct{})}
}

// Serve registers an SSE stream for one stream id and blocks until the client
// disconnects.
func (h *Hub) Serve(c *gin.Context, streamID string) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering

	ch := make(chan EngagementEvent, 16)
	h.addSubscriber(streamID, ch)
	defer h.removeSubscriber(streamID, ch)

	// Initial comment to keep connection open
	_, _ = c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()

	for {
		select {
		case evt := <-ch:
			data, _ := json.Marshal(evt)
			_, _ = c.Writer.Write([]byte("event: engagement\n"))
			_, _ = c.Writer.Write([]byte("data: "))
			_, _ = c.Writer.Write(data)
			_, _ = c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

// Broadcast fans an event out to the stream's subscribers without blocking;
// slow subscribers drop events rather than stall the sender.
func (h *Hub) Broadcast(evt EngagementEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.streams[evt.StreamID] {
		select {
		case ch <- evt:
		default:
		}
	}
}

func (h *Hub) addSubscriber(streamID string, ch chan EngagementEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.streams[streamID] == nil {
		h.streams[streamID] = make(map[chan EngagementEvent]struct{})
	}
	h.streams[streamID][ch] = struct{}{}
}

func (h *Hub) removeSubscriber(streamID string, ch chan EngagementEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.streams[streamID], ch)
	if len(h.streams[streamID]) == 0 {
		delete(h.streams, streamID)
	}
}
