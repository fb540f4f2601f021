// Package ecs is a small entity store for the level: ids, typed component
// tables and an ordered list of systems.
package ecs

import (
	"maps"
	"reflect"
	"slices"
)

// Entity identifies one object in a level.
type Entity uint64

// System is logic that runs once per simulation step.
type System interface {
	Update(dt float64)
}

// Component is data attached to an entity. Components are stored and
// returned as pointers, so callers mutate them in place.
type Component interface{}

// store holds every component of a single type, keyed by owner.
type store map[Entity]Component

// World owns the entities of a level and the systems that update them.
// It is driven by the game loop and is not safe for concurrent use.
type World struct {
	lastID  Entity
	stores  map[reflect.Type]store
	systems []System
}

func NewWorld() *World {
	return &World{stores: make(map[reflect.Type]store)}
}

// NewEntity returns a fresh id. Ids are never reused.
func (w *World) NewEntity() Entity {
	w.lastID++
	return w.lastID
}

// RemoveEntity drops e from every table.
func (w *World) RemoveEntity(e Entity) {
	for _, s := range w.stores {
		delete(s, e)
	}
}

// AddComponent attaches c to e, replacing a component of the same type.
func (w *World) AddComponent(e Entity, c Component) {
	key := reflect.TypeOf(c)
	s, ok := w.stores[key]
	if !ok {
		s = make(store)
		w.stores[key] = s
	}
	s[e] = c
}

// RemoveComponent detaches the component of c's type from e.
func (w *World) RemoveComponent(e Entity, c Component) {
	delete(w.stores[reflect.TypeOf(c)], e)
}

func storeOf[T Component](w *World) store {
	return w.stores[reflect.TypeFor[T]()]
}

// GetComponent looks up e in the table of T, the pointer type the
// component was added with.
func GetComponent[T Component](w *World, e Entity) (T, bool) {
	c, ok := storeOf[T](w)[e]
	if !ok {
		var zero T
		return zero, false
	}
	return c.(T), true
}

// Query lists the owners of a T component in ascending id order.
func Query[T Component](w *World) []Entity {
	return slices.Sorted(maps.Keys(storeOf[T](w)))
}

func Count[T Component](w *World) int {
	return len(storeOf[T](w))
}

func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
}

// Update runs the systems in the order they were added.
func (w *World) Update(dt float64) {
	for _, s := range w.systems {
		s.Update(dt)
	}
}
