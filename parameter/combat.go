package parameter

import (
	"time"
)

// Target
const (
	// CombatTargetMaxHealth is the training dummy's full health
	CombatTargetMaxHealth = 100.0

	// CombatTargetRespawnDelay is the pause between defeat and respawn
	CombatTargetRespawnDelay = 1500 * time.Millisecond

	// CombatTargetX, CombatTargetY is the canonical respawn position (units)
	CombatTargetX = 540.0
	CombatTargetY = 240.0
)

// Projectiles
const (
	// CombatHitRadius is the collision distance threshold (units)
	CombatHitRadius = 30.0

	// CombatProjectileSpeed is travel distance per frame (units)
	CombatProjectileSpeed = 8.0

	// CombatSpawnFallbackX, CombatSpawnFallbackY is the projectile origin
	// when no hand position is known (units)
	CombatSpawnFallbackX = 100.0
	CombatSpawnFallbackY = 240.0
)

// Combo
const (
	// CombatComboWindow is the lifetime of each combo increment
	CombatComboWindow = 5000 * time.Millisecond

	// CombatComboDamageStep is the damage multiplier gained per combo count
	CombatComboDamageStep = 0.1
)
