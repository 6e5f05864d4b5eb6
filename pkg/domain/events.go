package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeInsert EventType = "node_insert"
	EventTransition EventType = "transition"
	EventWalkStart  EventType = "walk_start"
	EventWalkEnd    EventType = "walk_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// NodeEvent is fired when a distinct value enters the chain.
type NodeEvent[T any] struct {
	EventBase
	Value T   `json:"value"`
	Index int `json:"index"` // insertion position
}

// TransitionEvent is fired on every recorded transition.
type TransitionEvent[T any] struct {
	EventBase
	From  T   `json:"from"`
	To    T   `json:"to"`
	Count int `json:"count"` // count after the increment
}

// WalkEvent describes one generated walk.
type WalkEvent struct {
	EventBase
	Label  string `json:"label"`
	Index  int    `json:"index"`
	Length int    `json:"length,omitempty"`
	Err    error  `json:"-"`
}

// ChainHooks defines callbacks for chain construction.
// Hooks run synchronously inside the mutating call.
type ChainHooks[T any] struct {
	OnInsert     func(*NodeEvent[T])
	OnTransition func(*TransitionEvent[T])
}

// WalkHooks defines callbacks for walk generation.
type WalkHooks struct {
	OnWalkStart func(context.Context, *WalkEvent)
	OnWalkEnd   func(context.Context, *WalkEvent)
}
