package gateway

import (
	"strings"
)

// Registry resolves providers by route tag or by callback shape.
type Registry struct {
	byTag map[string]Provider
	order []Provider
}

// NewRegistry registers providers. Shape detection tries them in the given order.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{byTag: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.byTag[Tag(p)] = p
		r.order = append(r.order, p)
	}
	return r
}

// Get returns the provider for a tag ("momo") or payment method ("MOMO").
func (r *Registry) Get(tag string) (Provider, bool) {
	p, ok := r.byTag[strings.ToLower(strings.TrimSpace(tag))]
	return p, ok
}

// Detect picks the first provider whose callback shape matches the fields.
func (r *Registry) Detect(fields map[string]interface{}) (Provider, bool) {
	for _, p := range r.order {
		if p.MatchesCallback(fields) {
			return p, true
		}
	}
	return nil, false
}

// Methods lists the payment methods of all registered providers.
func (r *Registry) Methods() []string {
	out := make([]string, 0, len(r.order))
	for _, p := range r.order {
		out = append(out, p.Method())
	}
	return out
}
