package spell

import (
	"fmt"
	"time"
)

// Override re-tunes a catalog entry's numbers from configuration
// Nil fields keep the built-in value; triggers and identity are fixed
type Override struct {
	Damage       *float64 `yaml:"damage"`
	ManaCost     *int     `yaml:"mana_cost"`
	ChargeTimeMs *int     `yaml:"charge_time_ms"`
}

// WithOverrides returns a new catalog with overrides applied
// Unknown spell IDs are rejected to surface config typos
func (c *Catalog) WithOverrides(overrides map[ID]Override) (*Catalog, error) {
	if len(overrides) == 0 {
		return c, nil
	}

	spells := c.All()
	for i := range spells {
		o, ok := overrides[spells[i].ID]
		if !ok {
			continue
		}
		if o.Damage != nil {
			spells[i].Damage = *o.Damage
		}
		if o.ManaCost != nil {
			spells[i].ManaCost = *o.ManaCost
		}
		if o.ChargeTimeMs != nil {
			spells[i].ChargeTime = time.Duration(*o.ChargeTimeMs) * time.Millisecond
		}
	}

	for id := range overrides {
		if _, ok := c.byID[id]; !ok {
			return nil, fmt.Errorf("override for unknown spell %q", id)
		}
	}

	return NewCatalog(spells)
}
