package provider

import "errors"

// ErrNoProviders is returned when a selector is built from an empty set.
var ErrNoProviders = errors.New("no providers configured")

// RoundRobin assigns providers to batch indices in a fixed cycle.
type RoundRobin struct {
	providers []Provider
}

// NewRoundRobin creates a selector over providers. Nil entries are dropped;
// an empty result is an error.
func NewRoundRobin(providers []Provider) (*RoundRobin, error) {
	ps := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			ps = append(ps, p)
		}
	}
	if len(ps) == 0 {
		return nil, ErrNoProviders
	}
	return &RoundRobin{providers: ps}, nil
}

// Select returns providers[index mod len(providers)].
func (r *RoundRobin) Select(index int) Provider {
	n := len(r.providers)
	return r.providers[((index%n)+n)%n]
}

// Len returns the number of providers in the cycle.
func (r *RoundRobin) Len() int {
	return len(r.providers)
}

// Providers returns a copy of the cycle.
func (r *RoundRobin) Providers() []Provider {
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}
