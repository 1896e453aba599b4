package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// SoundManager generates all game audio cues. Every cue is a short
// fire-and-forget synthesized streamer added to a shared mixer
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the speaker. Failure is reported but callers are
// expected to continue without audio
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences all sounds and marks the manager uninitialized
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.mixer.Clear()
	sm.initialized = false
}

// IsInitialized reports whether the speaker is live
func (sm *SoundManager) IsInitialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// ToggleMute flips the mute state and returns the new state
// Muting cuts cues already in the mixer; the speaker stays live so
// unmuting restores audio immediately
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = !sm.muted
	if sm.muted {
		sm.mixer.Clear()
	}
	return sm.muted
}

// Muted reports the current mute state
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// playable is called with sm.mu held
func (sm *SoundManager) playable() bool {
	return sm.initialized && !sm.muted
}

// PlayCast plays the release chime at the spell's tone frequency
func (sm *SoundManager) PlayCast(tone float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.playable() {
		return
	}
	if tone <= 0 {
		tone = 440
	}

	streamer := beep.Take(sampleRate.N(time.Millisecond*200), NewChimeGenerator(sampleRate, tone))
	sm.mixer.Add(streamer)
}

// PlayHit plays a short impact thud
func (sm *SoundManager) PlayHit() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.playable() {
		return
	}

	streamer := beep.Take(sampleRate.N(time.Millisecond*120), NewThudGenerator(sampleRate))
	sm.mixer.Add(streamer)
}

// PlayDefeat plays the crumbling defeat effect
func (sm *SoundManager) PlayDefeat() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.playable() {
		return
	}

	streamer := beep.Take(sampleRate.N(time.Millisecond*400), NewCrumbleGenerator(sampleRate))
	sm.mixer.Add(streamer)
}

// PlayLevelUp plays an ascending arpeggio
func (sm *SoundManager) PlayLevelUp() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.playable() {
		return
	}

	streamer := beep.Take(sampleRate.N(time.Millisecond*450), NewArpeggioGenerator(sampleRate))
	sm.mixer.Add(streamer)
}

// PlayDenied plays a flat low buzz for a rejected cast attempt
func (sm *SoundManager) PlayDenied() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.playable() {
		return
	}

	streamer := beep.Take(sampleRate.N(time.Millisecond*150), NewBuzzGenerator(sampleRate))
	sm.mixer.Add(streamer)
}

// ChimeGenerator generates a decaying sine chime at a fixed frequency
type ChimeGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewChimeGenerator creates a chime generator
func NewChimeGenerator(sr beep.SampleRate, freq float64) *ChimeGenerator {
	return &ChimeGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Fundamental plus one soft octave for a bell-like timbre
		sample := 0.0
		sample += 0.25 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.1 * math.Sin(2*math.Pi*g.freq*2*t)

		// Quick attack, exponential decay
		attack := math.Min(t/0.01, 1.0)
		sample *= attack * math.Exp(-t*10)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// ThudGenerator generates a low impact thud
type ThudGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewThudGenerator creates a thud generator
func NewThudGenerator(sr beep.SampleRate) *ThudGenerator {
	return &ThudGenerator{sr: sr}
}

func (g *ThudGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Pitch drops from 160Hz to 60Hz over the hit
		env := math.Exp(-t * 25)
		freq := 60 + 100*env
		sample := 0.35 * env * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ThudGenerator) Err() error {
	return nil
}

// CrumbleGenerator generates a noisy collapse for target defeat
type CrumbleGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

// NewCrumbleGenerator creates a crumble generator
func NewCrumbleGenerator(sr beep.SampleRate) *CrumbleGenerator {
	return &CrumbleGenerator{
		sr:   sr,
		seed: time.Now().UnixNano(),
	}
}

func (g *CrumbleGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 6)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		rumble := 0.3 * math.Sin(2*math.Pi*70*t)

		sample := envelope * (0.2*noise + rumble)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *CrumbleGenerator) Err() error {
	return nil
}

// BuzzGenerator generates the denial buzz: two close low tones beating
// against each other, cut with a fast decay
type BuzzGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewBuzzGenerator creates a buzz generator
func NewBuzzGenerator(sr beep.SampleRate) *BuzzGenerator {
	return &BuzzGenerator{sr: sr}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 14)
		sample := 0.2 * envelope * (math.Sin(2*math.Pi*140*t) + math.Sin(2*math.Pi*150*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}

// ArpeggioGenerator generates an ascending three-note level-up figure
type ArpeggioGenerator struct {
	sr   beep.SampleRate
	pos  int
	note int
}

var arpeggioNotes = []float64{523.25, 659.25, 783.99} // C5 E5 G5

// NewArpeggioGenerator creates an arpeggio generator
func NewArpeggioGenerator(sr beep.SampleRate) *ArpeggioGenerator {
	return &ArpeggioGenerator{sr: sr}
}

func (g *ArpeggioGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	noteLen := g.sr.N(time.Millisecond * 150)
	for i := range samples {
		note := g.pos / noteLen
		if note >= len(arpeggioNotes) {
			note = len(arpeggioNotes) - 1
		}
		freq := arpeggioNotes[note]

		notePos := g.pos % noteLen
		t := float64(notePos) / float64(g.sr)

		envelope := math.Min(t/0.01, 1.0) * math.Exp(-t*12)
		sample := 0.25 * envelope * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ArpeggioGenerator) Err() error {
	return nil
}
