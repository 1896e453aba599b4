package spell

import (
	"fmt"
	"time"

	"github.com/avindel/handcast/gesture"
)

// ID identifies a spell in the catalog
type ID string

const (
	Fireball   ID = "fireball"
	Frostlance ID = "frostlance"
	Stormcall  ID = "stormcall"
)

// Spell is one immutable catalog entry
type Spell struct {
	ID   ID
	Name string

	// Damage dealt on impact before the combo multiplier
	Damage float64

	// ManaCost deducted once per successful cast
	ManaCost int

	// Trigger is the gesture that starts a charge for this spell
	Trigger gesture.Gesture

	// ChargeTime scales the HUD charge bar; it does not gate the release
	ChargeTime time.Duration

	// Hue is the render color as 0xRRGGBB
	Hue int32

	// Tone is the cast cue frequency in Hz
	Tone float64
}

// Catalog is the immutable spell book, loaded once at startup
type Catalog struct {
	spells    []Spell
	byTrigger map[gesture.Gesture]Spell
	byID      map[ID]Spell
}

// NewCatalog builds a catalog from entries
// Each trigger gesture may carry at most one spell
func NewCatalog(spells []Spell) (*Catalog, error) {
	c := &Catalog{
		spells:    make([]Spell, 0, len(spells)),
		byTrigger: make(map[gesture.Gesture]Spell, len(spells)),
		byID:      make(map[ID]Spell, len(spells)),
	}

	for _, s := range spells {
		switch s.Trigger {
		case gesture.Point, gesture.Peace, gesture.Rock:
		default:
			return nil, fmt.Errorf("spell %s: gesture %s cannot trigger a cast", s.ID, s.Trigger)
		}
		if s.Damage <= 0 {
			return nil, fmt.Errorf("spell %s: damage must be positive", s.ID)
		}
		if s.ManaCost < 0 {
			return nil, fmt.Errorf("spell %s: mana cost must be non-negative", s.ID)
		}
		if _, dup := c.byTrigger[s.Trigger]; dup {
			return nil, fmt.Errorf("spell %s: gesture %s already bound", s.ID, s.Trigger)
		}
		c.spells = append(c.spells, s)
		c.byTrigger[s.Trigger] = s
		c.byID[s.ID] = s
	}

	return c, nil
}

// ByTrigger resolves the spell bound to a gesture, if any
func (c *Catalog) ByTrigger(g gesture.Gesture) (Spell, bool) {
	s, ok := c.byTrigger[g]
	return s, ok
}

// ByID resolves a spell by identifier
func (c *Catalog) ByID(id ID) (Spell, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// All returns the catalog entries in declaration order
func (c *Catalog) All() []Spell {
	out := make([]Spell, len(c.spells))
	copy(out, c.spells)
	return out
}

// Default returns the built-in spell book
func Default() *Catalog {
	c, err := NewCatalog([]Spell{
		{
			ID:         Fireball,
			Name:       "Fireball",
			Damage:     25,
			ManaCost:   20,
			Trigger:    gesture.Point,
			ChargeTime: 800 * time.Millisecond,
			Hue:        0xFF6633,
			Tone:       440,
		},
		{
			ID:         Frostlance,
			Name:       "Frost Lance",
			Damage:     18,
			ManaCost:   15,
			Trigger:    gesture.Peace,
			ChargeTime: 600 * time.Millisecond,
			Hue:        0x66CCFF,
			Tone:       587,
		},
		{
			ID:         Stormcall,
			Name:       "Stormcall",
			Damage:     40,
			ManaCost:   35,
			Trigger:    gesture.Rock,
			ChargeTime: 1200 * time.Millisecond,
			Hue:        0xFFEE55,
			Tone:       784,
		},
	})
	if err != nil {
		panic("default catalog invalid: " + err.Error())
	}
	return c
}
