package event

import (
	"sync"

	"github.com/avindel/handcast/gesture"
	"github.com/avindel/handcast/spell"
	"github.com/avindel/handcast/vmath"
)

// PoseFramePayload carries one detection cycle's landmarks and score
// Pooled: the pose feed produces these at camera rate
type PoseFramePayload struct {
	Frame gesture.Frame
}

// PoseFramePayloadPool reduces GC pressure at camera cadence
var PoseFramePayloadPool = sync.Pool{
	New: func() any { return &PoseFramePayload{} },
}

// SpellCastPayload describes a successful cast at release time
type SpellCastPayload struct {
	Spell spell.Spell

	// Origin is the wrist position at release, in simulation units
	Origin vmath.Vec2F

	// Combo is the counter value after this cast's increment
	Combo int
}

// ProjectileHitPayload describes a resolved collision
type ProjectileHitPayload struct {
	Spell spell.ID

	// Damage is the final amount after the combo multiplier
	Damage float64

	// Combo is the counter value at the collision frame
	Combo int
}

// TargetDefeatedPayload marks one health-to-zero transition
type TargetDefeatedPayload struct {
	Spell spell.ID
}

// LevelUpPayload carries the new level after an experience wrap
type LevelUpPayload struct {
	Level int
}

// SoundKind selects a generated audio cue
type SoundKind int

const (
	SoundCast SoundKind = iota
	SoundHit
	SoundDefeat
	SoundLevelUp
	SoundDenied
)

// SoundRequestPayload requests one fire-and-forget cue
// Spell is set for SoundCast to select the per-spell tone
type SoundRequestPayload struct {
	Kind  SoundKind
	Spell spell.ID
}
