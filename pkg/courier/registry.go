package courier

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry manages registered delivery providers.
type Registry struct {
	couriers map[string]Courier
	mu       sync.RWMutex
}

// NewRegistry creates a new courier registry.
func NewRegistry() *Registry {
	return &Registry{
		couriers: make(map[string]Courier),
	}
}

// Register adds a courier to the registry.
func (r *Registry) Register(c Courier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.couriers[c.Name()] = c
}

// Get returns a courier by name.
func (r *Registry) Get(name string) (Courier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.couriers[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
}

// All returns all registered couriers.
func (r *Registry) All() []Courier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Courier, 0, len(r.couriers))
	for _, c := range r.couriers {
		result = append(result, c)
	}
	return result
}

// Names returns the names of all registered couriers.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.couriers))
	for name := range r.couriers {
		names = append(names, name)
	}
	return names
}

// Count returns the number of registered couriers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.couriers)
}

// ProviderQuote pairs a quote with the provider that produced it.
type ProviderQuote struct {
	Provider string
	Quote    *Quote
}

// QuoteAll fetches price quotes from all registered providers in parallel.
// Errors from individual providers don't fail the entire request.
func (r *Registry) QuoteAll(ctx context.Context, req *QuoteRequest) ([]ProviderQuote, []error) {
	couriers := r.All()
	if len(couriers) == 0 {
		return nil, []error{ErrProviderNotFound}
	}

	results := make([]ProviderQuote, 0, len(couriers))
	errs := make([]error, 0)
	mu := &sync.Mutex{}

	g, ctx := errgroup.WithContext(ctx)

	for _, c := range couriers {
		c := c
		g.Go(func() error {
			quote, err := c.QuotePrice(ctx, req)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", c.Name(), err))
				return nil // keep quoting the remaining providers
			}
			results = append(results, ProviderQuote{Provider: c.Name(), Quote: quote})
			return nil
		})
	}

	g.Wait()
	return results, errs
}

// QuoteFrom fetches price quotes from specific providers.
func (r *Registry) QuoteFrom(ctx context.Context, req *QuoteRequest, providers []string) ([]ProviderQuote, []error) {
	if len(providers) == 0 {
		return r.QuoteAll(ctx, req)
	}

	results := make([]ProviderQuote, 0, len(providers))
	errs := make([]error, 0)
	mu := &sync.Mutex{}

	g, ctx := errgroup.WithContext(ctx)

	for _, name := range providers {
		name := name
		g.Go(func() error {
			c, err := r.Get(name)
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return nil
			}

			quote, err := c.QuotePrice(ctx, req)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return nil
			}
			results = append(results, ProviderQuote{Provider: name, Quote: quote})
			return nil
		})
	}

	g.Wait()
	return results, errs
}
