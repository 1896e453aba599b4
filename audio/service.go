package audio

import (
	"go.uber.org/zap"
)

// Service wraps the sound manager for the service hub
// Speaker init failure is logged and swallowed, the game runs silent
type Service struct {
	sounds  *SoundManager
	log     *zap.Logger
	enabled bool
}

// NewService creates the audio service. Disabled skips speaker init
func NewService(enabled bool, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		sounds:  NewSoundManager(),
		log:     log,
		enabled: enabled,
	}
}

// Name returns the service identifier
func (s *Service) Name() string { return "audio" }

// Dependencies returns the services required before this one
func (s *Service) Dependencies() []string { return nil }

// Init opens the speaker when audio is enabled
func (s *Service) Init() error {
	if !s.enabled {
		return nil
	}
	if err := s.sounds.Initialize(); err != nil {
		s.log.Warn("audio unavailable, continuing silent", zap.Error(err))
	}
	return nil
}

// Start is a no-op, beep owns its own playback goroutine
func (s *Service) Start() error { return nil }

// Stop silences the speaker
func (s *Service) Stop() error {
	s.sounds.Cleanup()
	return nil
}

// Sounds returns the managed sound manager
// Returns nil when the speaker never initialized so cue calls no-op
func (s *Service) Sounds() *SoundManager {
	if !s.sounds.IsInitialized() {
		return nil
	}
	return s.sounds
}
