package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var calls []string

	d.Subscribe(EventCompetitionRegistered, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.CompetitionID)
		return errors.New("boom")
	})
	d.Subscribe(EventCompetitionRegistered, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.CompetitionID)
		return nil
	})
	d.Subscribe(EventAnnouncementPublished, func(_ context.Context, _ Event) error {
		calls = append(calls, "unexpected")
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventCompetitionRegistered, "c1", "u1", CompetitionRegisteredPayload{TeamID: "t1"}))
	require.NoError(t, err)
	require.Equal(t, []string{"first:c1", "second:c1"}, calls)
}

func TestNewEventAssignsIdentity(t *testing.T) {
	a := NewEvent(EventAnnouncementDeleted, "c1", "admin", nil)
	b := NewEvent(EventAnnouncementDeleted, "c1", "admin", nil)
	require.NotEmpty(t, a.ID)
	require.NotEqual(t, a.ID, b.ID)
	require.False(t, a.Timestamp.IsZero())
}
