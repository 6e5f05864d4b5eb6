/*
Package dsl provides a fluent builder for constructing Markov chains in Go code.

It records insertions and transitions in call order and replays them into a
fresh chain.Chain on Build, so insertion order and transition counts are
exactly what the calls describe. This is particularly useful for unit tests,
fixed models and examples where the chain is not learned from input.

Example usage:

	package main

	import (
		"github.com/aretw0/markov/pkg/dsl"
	)

	func main() {
		b := dsl.New[string](words{})

		b.Path("the", "cat", "sat.")
		b.Add("the").GoN("dog", 2)
		b.Add("dog").Go("sat.")

		c, err := b.Build()
		if err != nil {
			panic(err)
		}
		defer c.Destroy()
		// ... pass c to markov.NewGenerator(...)
	}
*/
package dsl
