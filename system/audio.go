package system

import (
	"sync/atomic"

	"github.com/avindel/handcast/audio"
	"github.com/avindel/handcast/engine"
	"github.com/avindel/handcast/event"
	"github.com/avindel/handcast/parameter"
	"github.com/avindel/handcast/spell"
)

// AudioSystem translates gameplay events into sound cues. A nil or
// uninitialized sound manager makes every cue a no-op, so the game runs
// unchanged on machines without audio
type AudioSystem struct {
	world   *engine.World
	catalog *spell.Catalog
	sounds  *audio.SoundManager

	statCues *atomic.Int64
}

// NewAudioSystem creates the audio event consumer. sounds may be nil
func NewAudioSystem(world *engine.World, catalog *spell.Catalog, sounds *audio.SoundManager) *AudioSystem {
	return &AudioSystem{
		world:    world,
		catalog:  catalog,
		sounds:   sounds,
		statCues: world.Resources.Status.Ints.Get("audio.cues"),
	}
}

// Init is a no-op, the speaker lifecycle is owned by the caller
func (s *AudioSystem) Init() {}

// Name returns the system's name
func (s *AudioSystem) Name() string { return "audio" }

// Priority runs audio last, cues never affect simulation state
func (s *AudioSystem) Priority() int { return parameter.PriorityAudio }

// EventTypes returns the event types AudioSystem handles
func (s *AudioSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSpellCast,
		event.EventProjectileHit,
		event.EventTargetDefeated,
		event.EventLevelUp,
		event.EventSoundRequest,
	}
}

// HandleEvent plays the cue for one gameplay event
func (s *AudioSystem) HandleEvent(ev event.GameEvent) {
	if s.sounds == nil {
		return
	}

	switch ev.Type {
	case event.EventSpellCast:
		if p, ok := ev.Payload.(*event.SpellCastPayload); ok {
			s.playTone(p.Spell.ID)
		}
	case event.EventProjectileHit:
		s.sounds.PlayHit()
		s.statCues.Add(1)
	case event.EventTargetDefeated:
		s.sounds.PlayDefeat()
		s.statCues.Add(1)
	case event.EventLevelUp:
		s.sounds.PlayLevelUp()
		s.statCues.Add(1)
	case event.EventSoundRequest:
		if p, ok := ev.Payload.(*event.SoundRequestPayload); ok {
			s.playRequest(p)
		}
	}
}

// Update is a no-op, audio is entirely event-driven
func (s *AudioSystem) Update() {}

func (s *AudioSystem) playTone(id spell.ID) {
	tone := 440.0
	if sp, ok := s.catalog.ByID(id); ok {
		tone = sp.Tone
	}
	s.sounds.PlayCast(tone)
	s.statCues.Add(1)
}

func (s *AudioSystem) playRequest(p *event.SoundRequestPayload) {
	switch p.Kind {
	case event.SoundCast:
		s.playTone(p.Spell)
		return
	case event.SoundHit:
		s.sounds.PlayHit()
	case event.SoundDefeat:
		s.sounds.PlayDefeat()
	case event.SoundLevelUp:
		s.sounds.PlayLevelUp()
	case event.SoundDenied:
		s.sounds.PlayDenied()
	default:
		return
	}
	s.statCues.Add(1)
}

var _ engine.System = (*AudioSystem)(nil)
var _ event.Handler = (*AudioSystem)(nil)
