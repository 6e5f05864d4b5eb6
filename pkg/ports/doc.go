/*
Package ports defines the driven ports (interfaces) of the Markov walk generator.

These interfaces decouple walk generation from where the walks end up, so the
same generation path can print to a terminal, collect in memory or push to a
remote list.

# Key Interfaces

  - WalkSink: receives every generated walk, in order.
  - WalkLister: implemented by sinks that keep the walks they received.
  - WalkEngine: serves single walks and chain snapshots to the HTTP and MCP
    adapters.
*/
package ports
