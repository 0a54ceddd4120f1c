package dataset

import (
	"fmt"
	"sync"
)

// Registry manages all registered datasets
type Registry struct {
	mu       sync.RWMutex
	datasets map[string]Dataset
	order    []string
}

// NewRegistry creates a new dataset registry
func NewRegistry() *Registry {
	return &Registry{
		datasets: make(map[string]Dataset),
	}
}

// Register adds a dataset to the registry. Registration order is
// preserved for All.
func (r *Registry) Register(d Dataset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.datasets[d.Name()]; !exists {
		r.order = append(r.order, d.Name())
	}
	r.datasets[d.Name()] = d
}

// Get retrieves a dataset by name
func (r *Registry) Get(name string) (Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.datasets[name]
	if !ok {
		return nil, fmt.Errorf("unknown dataset: %s", name)
	}
	return d, nil
}

// All returns every registered dataset in registration order
func (r *Registry) All() []Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	datasets := make([]Dataset, 0, len(r.order))
	for _, name := range r.order {
		datasets = append(datasets, r.datasets[name])
	}
	return datasets
}
