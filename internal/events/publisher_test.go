package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdmissionStatusComputedEvent(t *testing.T) {
	event := NewAdmissionStatusComputedEvent(AdmissionStatusComputedEvent{
		CourseID:         "c1",
		ParticipantCount: 3,
		AdmittedCount:    2,
		AdmittedUserIDs:  []string{"u1", "u2"},
	})

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventAdmissionStatusComputed, event.Type)
	assert.Equal(t, "admission-service", event.Source)
	assert.NotEqual(t, event.ID, NewAdmissionCriteriaUpdatedEvent("c1", 1, nil).ID)
}

func TestWatermillEventPublisher_Publish(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(ctx, "admission")
	require.NoError(t, err)

	publisher := NewWatermillEventPublisher(pubSub, "admission", nil)
	event := NewAdmissionCriteriaUpdatedEvent("c1", 2, nil)
	require.NoError(t, publisher.PublishAdmissionEvent(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, string(EventAdmissionCriteriaUpdated), msg.Metadata.Get("event_type"))
		assert.Equal(t, "admission-service", msg.Metadata.Get("source"))

		var decoded struct {
			Type EventType                     `json:"type"`
			Data AdmissionCriteriaUpdatedEvent `json:"data"`
		}
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		assert.Equal(t, EventAdmissionCriteriaUpdated, decoded.Type)
		assert.Equal(t, "c1", decoded.Data.CourseID)
		assert.Equal(t, 2, decoded.Data.RuleCount)
	case <-ctx.Done():
		t.Fatal("message was not delivered")
	}
}

func TestMockEventPublisher(t *testing.T) {
	publisher := NewMockEventPublisher(nil)

	require.NoError(t, publisher.PublishAdmissionEvent(context.Background(), NewAdmissionCriteriaUpdatedEvent("c1", 1, nil)))
	require.Len(t, publisher.GetPublishedEvents(), 1)

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())
	assert.NoError(t, publisher.Close())
}
