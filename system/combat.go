package system

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/avindel/handcast/component"
	"github.com/avindel/handcast/core"
	"github.com/avindel/handcast/engine"
	"github.com/avindel/handcast/event"
	"github.com/avindel/handcast/parameter"
	"github.com/avindel/handcast/spell"
	"github.com/avindel/handcast/vmath"
)

// CombatSystem owns the projectile and particle populations and the target
// Per-frame order is fixed: projectile advance, collision resolution,
// particle emission/advance/prune. Damage applies the combo multiplier at
// the collision frame, never at cast time
type CombatSystem struct {
	world   *engine.World
	rng     *rand.Rand
	enabled bool

	target core.Entity

	// gen invalidates stale respawn timers after a reset
	gen uint64

	statHits        *atomic.Int64
	statDefeats     *atomic.Int64
	statProjectiles *atomic.Int64
	statParticles   *atomic.Int64
}

// NewCombatSystem creates the simulator and spawns the training dummy
func NewCombatSystem(world *engine.World) *CombatSystem {
	s := &CombatSystem{
		world:           world,
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
		statHits:        world.Resources.Status.Ints.Get("combat.hits"),
		statDefeats:     world.Resources.Status.Ints.Get("combat.defeats"),
		statProjectiles: world.Resources.Status.Ints.Get("combat.projectiles"),
		statParticles:   world.Resources.Status.Ints.Get("combat.particles"),
	}
	s.Init()
	return s
}

// Init resets the population and respawns the target at full health
func (s *CombatSystem) Init() {
	s.enabled = true
	s.gen++
	s.destroyAll()
	s.spawnTarget()
}

// Name returns the system's name
func (s *CombatSystem) Name() string { return "combat" }

// Priority runs combat after cast events are produced
func (s *CombatSystem) Priority() int { return parameter.PriorityCombat }

// EventTypes returns the event types CombatSystem handles
func (s *CombatSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSpellCast,
		event.EventSessionReset,
	}
}

// HandleEvent spawns projectiles for cast events
func (s *CombatSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventSessionReset {
		s.Init()
		return
	}
	if !s.enabled {
		return
	}
	if ev.Type == event.EventSpellCast {
		if p, ok := ev.Payload.(*event.SpellCastPayload); ok {
			s.spawnProjectile(p)
		}
	}
}

// Update advances one simulation frame
func (s *CombatSystem) Update() {
	if !s.enabled {
		return
	}

	s.advanceProjectiles()
	s.advanceParticles()
	s.publishCounts()
}

// advanceProjectiles moves every projectile toward its fixed target point
// and resolves collisions inside the hit radius
func (s *CombatSystem) advanceProjectiles() {
	var toDestroy []core.Entity

	for _, e := range s.world.Components.Projectile.Entities() {
		pr, ok := s.world.Components.Projectile.Get(e)
		if !ok {
			continue
		}

		// Distance to target decreases monotonically: the step is clamped
		// so the projectile never overshoots past its target point
		to := vmath.V2FSub(pr.Target, pr.Pos)
		dist := vmath.V2FMag(to)

		step := pr.Speed
		if step > dist {
			step = dist
		}
		if dist > 0 {
			pr.Pos = vmath.V2FAdd(pr.Pos, vmath.V2FScale(vmath.V2FNormalize(to), step))
		}

		if vmath.V2FDist(pr.Pos, pr.Target) < parameter.CombatHitRadius {
			s.resolveHit(&pr)
			toDestroy = append(toDestroy, e)
			continue
		}

		s.world.Components.Projectile.Set(e, pr)
	}

	for _, e := range toDestroy {
		s.destroyProjectile(e)
	}
}

// resolveHit applies damage with the combo multiplier sampled at this frame
func (s *CombatSystem) resolveHit(pr *component.ProjectileComponent) {
	ledger := s.world.Resources.Ledger
	combo := s.world.Resources.Cast.Combo
	damage := pr.Spell.Damage * s.world.Resources.Cast.ComboMultiplier()

	s.statHits.Add(1)
	ledger.RecordHit()
	s.grantExperience(parameter.ExperienceHitReward)

	s.world.PushEvent(event.EventProjectileHit, &event.ProjectileHitPayload{
		Spell:  pr.Spell.ID,
		Damage: damage,
		Combo:  combo,
	})

	tgt, ok := s.world.Components.Target.Get(s.target)
	if !ok || tgt.Defeated {
		// Projectiles arriving during the respawn cooldown burn out
		return
	}

	tgt.Health -= damage
	if tgt.Health <= 0 {
		tgt.Health = 0
		tgt.Defeated = true
		s.onDefeat(pr.Spell.ID)
	}
	s.world.Components.Target.Set(s.target, tgt)
}

// onDefeat grants the defeat reward exactly once and schedules the respawn
func (s *CombatSystem) onDefeat(by spell.ID) {
	s.statDefeats.Add(1)
	s.world.Resources.Ledger.RecordDefeat()
	s.grantExperience(parameter.ExperienceDefeatReward)

	s.world.PushEvent(event.EventTargetDefeated, &event.TargetDefeatedPayload{
		Spell: by,
	})

	gen := s.gen
	e := s.target
	fireAt := s.world.Resources.Time.GameTime.Add(parameter.CombatTargetRespawnDelay)
	s.world.Resources.Schedule.At(fireAt, func() {
		if s.gen != gen {
			return
		}
		tgt, ok := s.world.Components.Target.Get(e)
		if !ok {
			return
		}
		tgt.Health = tgt.MaxHealth
		tgt.Defeated = false
		tgt.Pos = vmath.Vec2F{X: parameter.CombatTargetX, Y: parameter.CombatTargetY}
		s.world.Components.Target.Set(e, tgt)
	})
}

// grantExperience applies a reward and emits a level-up on wrap
func (s *CombatSystem) grantExperience(amount int) {
	if s.world.Resources.Ledger.AddExperience(amount) {
		s.world.PushEvent(event.EventLevelUp, &event.LevelUpPayload{
			Level: s.world.Resources.Ledger.Level(),
		})
	}
}

// advanceParticles emits trail particles on live projectiles, integrates
// every particle and prunes the expired
func (s *CombatSystem) advanceParticles() {
	for _, e := range s.world.Components.Projectile.Entities() {
		pr, ok := s.world.Components.Projectile.Get(e)
		if !ok {
			continue
		}

		for i := 0; i < parameter.ParticleEmitPerFrame; i++ {
			pr.Particles = append(pr.Particles, component.Particle{
				Pos: pr.Pos,
				Vel: vmath.Vec2F{
					X: (s.rng.Float64()*2 - 1) * parameter.ParticleJitter,
					Y: (s.rng.Float64()*2 - 1) * parameter.ParticleJitter,
				},
				Life: parameter.ParticleInitialLife,
				Size: parameter.ParticleSizeMin + s.rng.Float64()*(parameter.ParticleSizeMax-parameter.ParticleSizeMin),
				Hue:  pr.Spell.Hue,
			})
		}

		live := pr.Particles[:0]
		for _, p := range pr.Particles {
			p.Pos = vmath.V2FAdd(p.Pos, p.Vel)
			p.Life -= parameter.ParticleLifeDecay
			if p.Life > 0 {
				live = append(live, p)
			}
		}
		pr.Particles = live

		s.world.Components.Projectile.Set(e, pr)
	}
}

func (s *CombatSystem) publishCounts() {
	s.statProjectiles.Store(int64(s.world.Components.Projectile.Len()))

	var particles int64
	for _, e := range s.world.Components.Projectile.Entities() {
		if pr, ok := s.world.Components.Projectile.Get(e); ok {
			particles += int64(len(pr.Particles))
		}
	}
	s.statParticles.Store(particles)
}

func (s *CombatSystem) spawnProjectile(p *event.SpellCastPayload) {
	tgt, ok := s.world.Components.Target.Get(s.target)
	if !ok {
		return
	}

	e := s.world.CreateEntity()
	s.world.Components.Projectile.Set(e, component.ProjectileComponent{
		Spell:  p.Spell,
		Pos:    p.Origin,
		Target: tgt.Pos,
		Speed:  parameter.CombatProjectileSpeed,
	})
}

func (s *CombatSystem) spawnTarget() {
	e := s.world.CreateEntity()
	s.world.Components.Target.Set(e, component.TargetComponent{
		Pos:       vmath.Vec2F{X: parameter.CombatTargetX, Y: parameter.CombatTargetY},
		Health:    parameter.CombatTargetMaxHealth,
		MaxHealth: parameter.CombatTargetMaxHealth,
	})
	s.target = e
}

// Target returns the training dummy entity
func (s *CombatSystem) Target() core.Entity { return s.target }

func (s *CombatSystem) destroyProjectile(e core.Entity) {
	s.world.Components.Projectile.Remove(e)
	s.world.DestroyEntity(e)
}

func (s *CombatSystem) destroyAll() {
	for _, e := range s.world.Components.Projectile.Entities() {
		s.destroyProjectile(e)
	}
	for _, e := range s.world.Components.Target.Entities() {
		s.world.Components.Target.Remove(e)
		s.world.DestroyEntity(e)
	}
}

var _ engine.System = (*CombatSystem)(nil)
var _ event.Handler = (*CombatSystem)(nil)
