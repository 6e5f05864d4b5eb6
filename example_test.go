package markov_test

import (
	"context"
	"math/rand"
	"os"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/pkg/adapters/text"
	"github.com/aretw0/markov/pkg/dsl"
)

func ExampleGenerator() {
	c, err := dsl.New[string](words{}).Path("hello", "world.").Build()
	if err != nil {
		panic(err)
	}
	defer c.Destroy()

	sink := text.NewSink[string](os.Stdout, words{})
	defer sink.Close()

	gen := markov.NewGenerator(c, rand.New(rand.NewSource(1)), sink, markov.WithLabel("Tweet"))
	if err := gen.Run(context.Background(), 2); err != nil {
		panic(err)
	}
	// Output:
	// Tweet 1: hello world.
	// Tweet 2: hello world.
}
