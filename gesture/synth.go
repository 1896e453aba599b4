package gesture

import (
	"github.com/avindel/handcast/vmath"
)

// digitTips lists each digit's tip and the proximal joint paired with it,
// in thumb-to-pinky order, matching extensionJoint
var digitTips = extensionJoint

// digitShape records which digits are extended for each synthesizable
// gesture
var digitShape = map[Gesture][5]bool{
	Fist:  {false, false, false, false, false},
	Palm:  {true, true, true, true, true},
	Point: {false, true, false, false, false},
	Peace: {false, true, true, false, false},
	Rock:  {true, true, false, false, true},
}

// Synthesize builds a canonical landmark set classifying as g, anchored at
// the given wrist position in normalized coordinates. Used by the scripted
// pose source and as a fixture factory in tests
//
// The shape is schematic, not anatomical: joints fan out above the wrist
// and each tip is placed above or below its joint to satisfy the
// extension test. None yields nil (no hand)
func Synthesize(g Gesture, wrist vmath.Vec2F) Landmarks {
	shape, ok := digitShape[g]
	if !ok {
		return nil
	}

	lm := make(Landmarks, LandmarkCount)
	lm[Wrist] = vmath.Vec3F{X: wrist.X, Y: wrist.Y}

	// Lay the digits out left to right above the wrist. Exact geometry is
	// irrelevant to classification, only each tip/joint y ordering matters
	for d, pair := range digitTips {
		x := wrist.X + (float64(d)-2)*0.03
		jointY := wrist.Y - 0.10

		// Fill the joint below the tested one so the set is complete
		tip, joint := pair[0], pair[1]
		lm[joint-1] = vmath.Vec3F{X: x, Y: wrist.Y - 0.05}
		lm[joint] = vmath.Vec3F{X: x, Y: jointY}

		tipY := jointY + 0.04 // curled: tip below the joint
		if shape[d] {
			tipY = jointY - 0.06 // extended: tip above the joint
		}
		lm[tip] = vmath.Vec3F{X: x, Y: tipY}

		// DIP sits between PIP and tip where the digit has one
		if tip-joint == 2 {
			lm[tip-1] = vmath.Vec3F{X: x, Y: (jointY + tipY) / 2}
		}
	}

	return lm
}

// SynthesizeFrame wraps Synthesize in a full-confidence frame
func SynthesizeFrame(g Gesture, wrist vmath.Vec2F) Frame {
	return Frame{
		Landmarks: Synthesize(g, wrist),
		Score:     1.0,
	}
}
