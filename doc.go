/*
Package markov generates random walks over a Markov chain of client-defined states.

The chain itself lives in package chain: a deduplicating store of states with
observed transition frequencies. This package adds the generation loop shared
by every client: pick a start, walk the chain up to a maximum length, hand the
walk to a sink, repeat.

# Concept

A client supplies a domain.Capabilities implementation for its state type
(equality, copy, release, display and a terminal predicate), fills a chain
from its own input, then runs a Generator. Where the walks go is decided by the
ports.WalkSink: a terminal, memory, or a Redis list.

# Determinism

Every random draw goes through the *rand.Rand passed to NewGenerator. Two runs
with the same seed, the same input and the same walk count produce identical
walks.

# Usage

	c := chain.New[string](tweets.Words{})
	defer c.Destroy()

	if _, err := tweets.Fill(ctx, c, file, 0); err != nil {
		return err
	}

	sink := text.NewSink[string](os.Stdout, tweets.Words{})
	gen := markov.NewGenerator(c, rand.New(rand.NewSource(seed)), sink,
		markov.WithLabel("Tweet"),
		markov.WithMaxLength(20),
	)
	return gen.Run(ctx, 10)
*/
package markov
