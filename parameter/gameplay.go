package parameter

import (
	"time"
)

// Mana
const (
	// ManaMax is the mana pool cap
	ManaMax = 100

	// ManaRegenAmount is mana restored per regen interval
	ManaRegenAmount = 2

	// ManaRegenInterval is the regen cadence
	ManaRegenInterval = 1000 * time.Millisecond
)

// Experience
const (
	// ExperienceHitReward is experience granted per projectile hit
	ExperienceHitReward = 5

	// ExperienceDefeatReward is experience granted once per target defeat
	ExperienceDefeatReward = 50

	// ExperiencePerLevel is the wrap threshold for a level-up
	ExperiencePerLevel = 100
)

// Pose input
const (
	// PoseMinConfidence is the default detection score below which a frame
	// is treated as "no hand"
	PoseMinConfidence = 0.5
)
