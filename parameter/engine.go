package parameter

import (
	"time"
)

// Simulation space
// Positions are kept in abstract camera-space units and mapped to terminal
// cells only at render time
const (
	// SimWidth is the horizontal extent of the simulation space (units)
	SimWidth = 640.0

	// SimHeight is the vertical extent of the simulation space (units)
	SimHeight = 480.0
)

// Tick configuration
const (
	// TickRate is the default fixed simulation rate (frames per second)
	TickRate = 60

	// TickInterval is the default duration of one simulation frame
	TickInterval = time.Second / TickRate
)

// Event queue sizing
const (
	// EventQueueSize is the ring buffer capacity, must be a power of two
	EventQueueSize = 1024

	// EventBufferMask is the index mask for the ring buffer
	EventBufferMask = EventQueueSize - 1
)
