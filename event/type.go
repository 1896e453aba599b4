package event

import (
	"time"
)

// EventType represents the type of game event
type EventType int

const (
	// EventPoseFrame carries one pose-detection result
	// Trigger: pose service goroutine, once per detection cycle
	// Consumer: CastSystem | Payload: *PoseFramePayload
	EventPoseFrame EventType = iota

	// EventSpellCast signals a completed charge/release cycle
	// Trigger: CastSystem on palm release with an open charge session
	// Consumer: CombatSystem (projectile spawn), AudioSystem | Payload: *SpellCastPayload
	EventSpellCast

	// EventProjectileHit signals a projectile reaching its target
	// Trigger: CombatSystem collision resolution
	// Consumer: AudioSystem | Payload: *ProjectileHitPayload
	EventProjectileHit

	// EventTargetDefeated signals target health reaching zero
	// Trigger: CombatSystem, exactly once per defeat
	// Consumer: AudioSystem | Payload: *TargetDefeatedPayload
	EventTargetDefeated

	// EventLevelUp signals an experience wrap
	// Trigger: CombatSystem after a reward application
	// Consumer: AudioSystem | Payload: *LevelUpPayload
	EventLevelUp

	// EventSoundRequest requests a fire-and-forget audio cue
	// Trigger: CastSystem on an unaffordable cast attempt
	// Consumer: AudioSystem | Payload: *SoundRequestPayload
	EventSoundRequest

	// EventSessionReset requests a full session restart
	// Trigger: driver (key command)
	// Consumer: all systems | Payload: nil
	EventSessionReset
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Frame     int64
	Timestamp time.Time
}
