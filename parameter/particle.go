package parameter

// Projectile trail particles
const (
	// ParticleEmitPerFrame is the number of particles a live projectile
	// sheds at its position each frame
	ParticleEmitPerFrame = 3

	// ParticleInitialLife is the starting life of a particle
	ParticleInitialLife = 1.0

	// ParticleLifeDecay is the life lost per frame
	ParticleLifeDecay = 0.04

	// ParticleJitter is the maximum random velocity magnitude per axis
	// (units per frame)
	ParticleJitter = 2.5

	// ParticleSizeMin and ParticleSizeMax bound the spawn size (units)
	ParticleSizeMin = 1.0
	ParticleSizeMax = 4.0
)
