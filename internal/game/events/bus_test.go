package events

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/territorial-rl/territorial/internal/game/core"
)

type recordingSubscriber struct {
	id       string
	types    map[string]bool
	received []Event
}

func (r *recordingSubscriber) ID() string { return r.id }
func (r *recordingSubscriber) InterestedIn(eventType string) bool {
	if r.types == nil {
		return true
	}
	return r.types[eventType]
}
func (r *recordingSubscriber) HandleEvent(e Event) { r.received = append(r.received, e) }

func TestEventBus_PublishToInterestedSubscribers(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	all := &recordingSubscriber{id: "all"}
	captures := &recordingSubscriber{id: "captures", types: map[string]bool{TypeTerritoryCaptured: true}}
	bus.Subscribe(all)
	bus.Subscribe(captures)

	bus.Publish(NewTerritoryCaptured("g1", 2, 3, 0, 1, 5, core.BuildingNone))
	bus.Publish(NewGrowthApplied("g1", 0, 1, 12, 20))

	assert.Len(t, all.received, 2)
	assert.Len(t, captures.received, 1)

	captured, ok := captures.received[0].(*TerritoryCapturedEvent)
	assert.True(t, ok)
	assert.Equal(t, 2, captured.X)
	assert.Equal(t, 0, captured.AttackerID)
}

func TestEventBus_SubscribeFunc(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	var eliminated []int
	bus.SubscribeFunc(TypePlayerEliminated, func(e Event) {
		eliminated = append(eliminated, e.(*PlayerEliminatedEvent).PlayerID)
	})

	bus.Publish(NewPlayerEliminated("g1", 2, 40))
	bus.Publish(NewGameOver("g1", 0, 41))

	assert.Equal(t, []int{2}, eliminated)
}

func TestEventBus_PanickingSubscriberIsIsolated(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	bus.SubscribeFunc(TypeGameOver, func(Event) { panic("boom") })
	ok := &recordingSubscriber{id: "ok"}
	bus.Subscribe(ok)

	assert.NotPanics(t, func() {
		bus.Publish(NewGameOver("g1", 1, 99))
	})
	assert.Len(t, ok.received, 1)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	sub := &recordingSubscriber{id: "gone"}
	bus.Subscribe(sub)
	bus.Unsubscribe("gone")

	bus.Publish(NewResourceBoomStarted("g1", 4, 3))
	assert.Empty(t, sub.received)
}
