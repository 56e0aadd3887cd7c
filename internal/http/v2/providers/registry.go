package providers

import (
	"fmt"
	"sort"
	"sync"
)

// Factory crea una instancia de provider.
type Factory func(cfg Config) (Provider, error)

// Registry guarda las factories conocidas y las instancias habilitadas.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	enabled   map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		enabled:   make(map[string]Provider),
	}
}

// RegisterFactory registra la factory de un provider. Se llama al inicio.
func (r *Registry) RegisterFactory(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Enable construye el provider con cfg y lo deja disponible para Get.
func (r *Registry) Enable(name string, cfg Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.factories[name]
	if !ok {
		return fmt.Errorf("provider not registered: %s", name)
	}
	p, err := f(cfg)
	if err != nil {
		return fmt.Errorf("failed to create provider %s: %w", name, err)
	}
	r.enabled[name] = p
	return nil
}

// Add habilita una instancia ya construida.
func (r *Registry) Add(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled[p.Name()] = p
}

// Get retorna el provider habilitado.
func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.enabled[name]
	return p, ok
}

// Enabled retorna los nombres habilitados, ordenados.
func (r *Registry) Enabled() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.enabled))
	for n := range r.enabled {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
