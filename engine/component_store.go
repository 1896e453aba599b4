package engine

import (
	"github.com/avindel/handcast/component"
	"github.com/avindel/handcast/core"
)

// ComponentStore holds the typed store for every component kind
// Systems cache field pointers during construction; no runtime map lookup
type ComponentStore struct {
	Projectile *Store[component.ProjectileComponent]
	Target     *Store[component.TargetComponent]
}

func newComponentStore() ComponentStore {
	return ComponentStore{
		Projectile: NewStore[component.ProjectileComponent](),
		Target:     NewStore[component.TargetComponent](),
	}
}

func (cs *ComponentStore) clear() {
	cs.Projectile.Clear()
	cs.Target.Clear()
}

func (cs *ComponentStore) removeEntity(e core.Entity) {
	cs.Projectile.Remove(e)
	cs.Target.Remove(e)
}
