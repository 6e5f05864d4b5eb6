/*
Package chain implements a generic Markov chain over client-defined state values.

A Chain owns a set of distinct states, each wrapped in a Node that records the
observed frequency of every successor. Values are deduplicated with the
client's Capabilities.Equal and deep-copied on the way in. A Walker samples
successors in proportion to those frequencies to produce bounded random walks.

The chain does no internal locking. Build it from one goroutine, then either
walk it from that goroutine or guard the Chain and its Walker with one lock.

	c := chain.New[string](words)
	defer c.Destroy()

	a, _ := c.InsertOrGet("hello")
	b, _ := c.InsertOrGet("world.")
	_ = c.RecordTransition(a, b)

	w := chain.NewWalker(c, rand.New(rand.NewSource(42)))
	start, _ := w.PickStart()
	for n := range w.Generate(start, 20) {
		fmt.Println(n.Value())
	}
*/
package chain
