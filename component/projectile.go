package component

import (
	"github.com/avindel/handcast/spell"
	"github.com/avindel/handcast/vmath"
)

// Particle is one trail fragment, owned exclusively by its projectile
type Particle struct {
	Pos  vmath.Vec2F
	Vel  vmath.Vec2F // Units per frame
	Life float64     // Decays by a fixed step each frame, pruned at <= 0
	Size float64
	Hue  int32
}

// ProjectileComponent is a spell in flight toward a fixed target point
// The entity id doubles as the monotonic projectile id
type ProjectileComponent struct {
	Spell spell.Spell

	Pos vmath.Vec2F

	// Target is fixed at spawn time; the projectile homes on this point
	// and never retargets
	Target vmath.Vec2F

	// Speed is travel distance per frame (units)
	Speed float64

	// Particles is the attached trail, never shared between projectiles
	Particles []Particle
}
