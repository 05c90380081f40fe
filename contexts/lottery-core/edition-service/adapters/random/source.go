package randomadapter

import "math/rand/v2"

// Source draws prize positions and values from the shared runtime generator.
type Source struct{}

func (Source) Intn(n int) int {
	return rand.IntN(n)
}

func (Source) Int63n(n int64) int64 {
	return rand.Int64N(n)
}
