package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_BroadcastReachesOnlySubscribedStream(t *testing.T) {
	hub := NewStreamHub()

	ch1 := make(chan EngagementEvent, 16)
	ch2 := make(chan EngagementEvent, 16)
	hub.addSubscriber("s1", ch1)
	hub.addSubscriber("s2", ch2)

	hub.Broadcast(EngagementEvent{Type: "tip", StreamID: "s1", UserID: "u1"})

	assert.Len(t, ch1, 1)
	assert.Len(t, ch2, 0)

	evt := <-ch1
	assert.Equal(t, "tip", evt.Type)
	assert.Equal(t, "u1", evt.UserID)
}

func TestHub_BroadcastWithoutSubscribersIsNoop(t *testing.T) {
	hub := NewStreamHub()
	hub.Broadcast(EngagementEvent{Type: "like", StreamID: "nobody"})
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewStreamHub()

	ch := make(chan EngagementEvent, 1)
	hub.addSubscriber("s1", ch)

	hub.Broadcast(EngagementEvent{Type: "tip", StreamID: "s1"})
	hub.Broadcast(EngagementEvent{Type: "tip", StreamID: "s1"}) // buffer full, dropped

	assert.Len(t, ch, 1)
}

func TestHub_RemoveSubscriberCleansUpStream(t *testing.T) {
	hub := NewStreamHub()

	ch := make(chan EngagementEvent, 1)
	hub.addSubscriber("s1", ch)
	hub.removeSubscriber("s1", ch)

	_, ok := hub.streams["s1"]
	assert.False(t, ok)
}
