package gesture

import (
	"github.com/avindel/handcast/vmath"
)

// LandmarkCount is the number of tracked points per hand
const LandmarkCount = 21

// Landmark indices follow the standard 21-point hand topology
// Wrist first, then four joints per digit from palm to tip
const (
	Wrist = 0

	ThumbCMC = 1
	ThumbMCP = 2
	ThumbIP  = 3
	ThumbTip = 4

	IndexMCP = 5
	IndexPIP = 6
	IndexDIP = 7
	IndexTip = 8

	MiddleMCP = 9
	MiddlePIP = 10
	MiddleDIP = 11
	MiddleTip = 12

	RingMCP = 13
	RingPIP = 14
	RingDIP = 15
	RingTip = 16

	PinkyMCP = 17
	PinkyPIP = 18
	PinkyDIP = 19
	PinkyTip = 20
)

// Landmarks is one detection cycle's worth of hand points
// Coordinates are camera-space: x right, y increasing downward
type Landmarks []vmath.Vec3F

// Frame is a single pose-detection result
type Frame struct {
	Landmarks Landmarks
	Score     float64
}

// Hand returns the wrist position, the anchor used for projectile spawns
// ok is false when the landmark set is absent or incomplete
func (f Frame) Hand() (vmath.Vec2F, bool) {
	if len(f.Landmarks) < LandmarkCount {
		return vmath.Vec2F{}, false
	}
	return f.Landmarks[Wrist].XY(), true
}
