/*
Package observability provides Prometheus metrics for chain construction and walk generation.

Metrics are registered on a caller-supplied registry and fed through the
domain hook types, so the chain and the generator never import Prometheus.

	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	c := chain.New[string](caps, chain.WithHooks(observability.ChainHooks[string](m)))
	gen := markov.NewGenerator(c, rng, sink, markov.WithHooks(m.WalkHooks()))
*/
package observability
