package postgres

import "github.com/connectin/connectin/internal/observability"

// observe funnels a repo call through the store metrics when wired.
func observe(p *observability.Prom, op string, fn func() error) error {
	if p == nil {
		return fn()
	}

	return p.ObserveStore(op, fn)
}
