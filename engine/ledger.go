package engine

import (
	"github.com/avindel/handcast/parameter"
	"github.com/avindel/handcast/vmath"
)

// LedgerResource tracks mana, experience and level
// Single-writer-per-field discipline: the cast system spends mana, the
// combat system grants experience, the ledger system regenerates mana.
// All mutation happens on the tick goroutine
type LedgerResource struct {
	mana       int
	experience int
	level      int

	hits    int
	casts   int
	defeats int
}

// NewLedgerResource starts with a full mana pool at level 1
func NewLedgerResource() *LedgerResource {
	return &LedgerResource{
		mana:  parameter.ManaMax,
		level: 1,
	}
}

// Mana returns the current mana value
func (l *LedgerResource) Mana() int { return l.mana }

// Experience returns accumulated experience below the wrap threshold
func (l *LedgerResource) Experience() int { return l.experience }

// Level returns the current level, monotonically increasing
func (l *LedgerResource) Level() int { return l.level }

// Hits returns the projectile hit count this session
func (l *LedgerResource) Hits() int { return l.hits }

// Casts returns the successful cast count this session
func (l *LedgerResource) Casts() int { return l.casts }

// Defeats returns the target defeat count this session
func (l *LedgerResource) Defeats() int { return l.defeats }

// CanAfford reports whether a cast of the given cost is payable
func (l *LedgerResource) CanAfford(cost int) bool {
	return l.mana >= cost
}

// Spend deducts a cast's mana cost
// Returns false without mutation when mana is insufficient; mana never
// goes negative
func (l *LedgerResource) Spend(cost int) bool {
	if l.mana < cost {
		return false
	}
	l.mana -= cost
	l.casts++
	return true
}

// AddMana regenerates mana, clamped to [0, ManaMax]
func (l *LedgerResource) AddMana(amount int) {
	l.mana = vmath.ClampInt(l.mana+amount, 0, parameter.ManaMax)
}

// AddExperience accumulates a reward and applies at most one level wrap
// Rewards are small enough that a single wrap always suffices; overflow
// beyond the threshold is preserved into the new level
func (l *LedgerResource) AddExperience(amount int) (leveledUp bool) {
	l.experience += amount
	if l.experience >= parameter.ExperiencePerLevel {
		l.experience -= parameter.ExperiencePerLevel
		l.level++
		return true
	}
	return false
}

// RecordHit bumps the hit counter
func (l *LedgerResource) RecordHit() { l.hits++ }

// RecordDefeat bumps the defeat counter
func (l *LedgerResource) RecordDefeat() { l.defeats++ }

// Reset restores the session-start state
// Level and experience are session-scoped like everything else
func (l *LedgerResource) Reset() {
	*l = LedgerResource{
		mana:  parameter.ManaMax,
		level: 1,
	}
}
