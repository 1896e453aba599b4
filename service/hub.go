package service

import (
	"fmt"
	"sync"
)

// Hub owns the handful of long-lived services behind the simulation (the
// speaker, the pose source). It brings them up in dependency order and
// tears them down in reverse, stopping only what actually started
type Hub struct {
	mu      sync.Mutex
	byName  map[string]Service
	order   []string // dependency order, resolved by InitAll
	inited  int      // services through Init, prefix of order
	started int      // services through Start, prefix of order
}

func NewHub() *Hub {
	return &Hub{byName: make(map[string]Service)}
}

// Register adds a service. Duplicate names are a wiring bug
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, dup := h.byName[name]; dup {
		return fmt.Errorf("service already registered: %s", name)
	}
	h.byName[name] = svc
	h.order = nil
	return nil
}

// InitAll resolves dependency order and runs Init on every service
// A failure stops the already-initialized prefix in reverse and reports
// the failing service
func (h *Hub) InitAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.order == nil {
		order, err := resolveOrder(h.byName)
		if err != nil {
			return err
		}
		h.order = order
	}

	h.inited = 0
	for _, name := range h.order {
		if err := h.byName[name].Init(); err != nil {
			h.unwind(h.inited)
			h.inited = 0
			return fmt.Errorf("service %s init failed: %w", name, err)
		}
		h.inited++
	}
	return nil
}

// StartAll runs Start in the resolved order, unwinding on failure
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.started = 0
	for _, name := range h.order[:h.inited] {
		if err := h.byName[name].Start(); err != nil {
			h.unwind(h.started)
			h.started = 0
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		h.started++
	}
	return nil
}

// StopAll stops every started service in reverse order
// Stop errors are swallowed; every service gets its call
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.unwind(h.started)
	h.started = 0
	h.inited = 0
}

// unwind stops the first n services of the resolved order, last first
func (h *Hub) unwind(n int) {
	for i := n - 1; i >= 0; i-- {
		h.byName[h.order[i]].Stop()
	}
}

// resolveOrder walks the dependency graph depth-first, emitting each
// service after its dependencies. Visit marks catch cycles
func resolveOrder(byName map[string]Service) ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	marks := make(map[string]int, len(byName))
	order := make([]string, 0, len(byName))

	var visit func(name string) error
	visit = func(name string) error {
		switch marks[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("circular service dependency through %s", name)
		}
		svc, ok := byName[name]
		if !ok {
			return fmt.Errorf("dependency on unregistered service: %s", name)
		}
		marks[name] = visiting
		for _, dep := range svc.Dependencies() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		marks[name] = done
		order = append(order, name)
		return nil
	}

	for name := range byName {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}
