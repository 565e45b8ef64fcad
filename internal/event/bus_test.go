package event_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khizana-app/khizana/internal/event"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := event.NewBus()
	var first, second []event.JobCompleted
	bus.Subscribe(func(evt event.JobCompleted) { first = append(first, evt) })
	bus.Subscribe(func(evt event.JobCompleted) { second = append(second, evt) })

	evt := event.JobCompleted{JobID: "j1", DocumentID: "d1", Success: true}
	bus.Publish(evt)

	require.Equal(t, []event.JobCompleted{evt}, first)
	require.Equal(t, []event.JobCompleted{evt}, second)
}

func TestBusIgnoresNilSubscriber(t *testing.T) {
	bus := event.NewBus()
	bus.Subscribe(nil)
	require.NotPanics(t, func() {
		bus.Publish(event.JobCompleted{DocumentID: "d1"})
	})
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	bus := event.NewBus()
	require.NotPanics(t, func() {
		bus.Publish(event.JobCompleted{DocumentID: "d1"})
	})
}
