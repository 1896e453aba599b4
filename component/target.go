package component

import (
	"github.com/avindel/handcast/vmath"
)

// TargetComponent is the training dummy
// Health is clamped at zero; Defeated gates the respawn cooldown so the
// defeat reward fires exactly once per health-to-zero transition
type TargetComponent struct {
	Pos       vmath.Vec2F
	Health    float64
	MaxHealth float64
	Defeated  bool
}
