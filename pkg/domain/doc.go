/*
Package domain contains the contracts shared by the Markov-chain engine and its clients.

It defines the capability set a client supplies for its state type, the
observability hooks emitted while a chain is built and walked, and the sentinel
errors the engine reports. The package holds no I/O and no algorithms.

# Key Entities

  - Capabilities: equality, deep copy, release, display and terminal predicate over a state value.
  - Keyer: optional capability that lets the node store index values by key.
  - ChainHooks / WalkHooks: callbacks fired on node insertion, transition recording and walk completion.
*/
package domain
