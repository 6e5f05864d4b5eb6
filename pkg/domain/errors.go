package domain

import "errors"

// ErrAllocation is returned when a value cannot be copied into the chain or a
// transition list cannot grow. The chain stays safe to destroy.
var ErrAllocation = errors.New("allocation failure")

// ErrInput is returned for invalid client input (bad arity, unreadable source).
var ErrInput = errors.New("invalid input")

// ErrEmptyChain is returned when a walk is requested from a chain with no nodes.
var ErrEmptyChain = errors.New("chain is empty")

// ErrNoStartState is returned when every node is terminal or has no outgoing transitions.
var ErrNoStartState = errors.New("no eligible start state")

// ErrDeadEnd is returned when a successor is requested from a node without transitions.
var ErrDeadEnd = errors.New("node has no outgoing transitions")

// ErrForeignNode is returned when a node does not belong to the chain it is used with.
var ErrForeignNode = errors.New("node belongs to another chain")
