package selector

import (
	"context"
	"errors"
)

var ErrNoMatch = errors.New("no selector in chain matched")

// Probe reports whether sel resolves. Any error counts as a miss.
type Probe[T any] func(ctx context.Context, sel Selector) (T, error)

// First tries every selector of chain in order and returns the value of the
// first successful probe together with the selector that produced it.
func First[T any](ctx context.Context, chain Chain, probe Probe[T]) (T, Selector, error) {
	var zero T
	for _, sel := range chain {
		if err := ctx.Err(); err != nil {
			return zero, Selector{}, err
		}
		v, err := probe(ctx, sel)
		if err != nil {
			continue
		}
		return v, sel, nil
	}
	return zero, Selector{}, ErrNoMatch
}
