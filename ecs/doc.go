// Package ecs provides ECS adapters for alder.
//
// The Donburi adapter forwards collision events from a World into a
// [Donburi] event type, so ECS systems can consume contacts without the
// physics core depending on any particular ECS:
//
//	dw := donburi.NewWorld()
//	world.SetCollisionSink(ecs.NewDonburiSink(dw))
//
//	events.Subscribe(...) // or ecs.CollisionEventType.Subscribe
//	world.Update(dt)
//	ecs.CollisionEventType.ProcessEvents(dw)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
