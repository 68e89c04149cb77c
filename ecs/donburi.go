package ecs

import (
	"github.com/alderengine/alder"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CollisionEventType is the Donburi event type for alder collision events.
// Subscribe to this in your ECS systems to receive resolved contacts.
var CollisionEventType = events.NewEventType[alder.CollisionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a CollisionSink backed by a Donburi world.
// Collision events are published to CollisionEventType and can be
// consumed with Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) alder.CollisionSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitCollision(event alder.CollisionEvent) {
	CollisionEventType.Publish(s.world, event)
}
