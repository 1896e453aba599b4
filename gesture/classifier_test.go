package gesture

import (
	"testing"

	"github.com/avindel/handcast/vmath"
)

// landmarkSet builds a full hand with every digit curled, then applies
// per-digit extension
func landmarkSet(extended [5]bool) Landmarks {
	lm := make(Landmarks, LandmarkCount)
	for i := range lm {
		lm[i] = vmath.Vec3F{X: 0.5, Y: 0.5}
	}

	for d, pair := range extensionJoint {
		tip, joint := pair[0], pair[1]
		lm[joint] = vmath.Vec3F{X: 0.5, Y: 0.4}
		if extended[d] {
			lm[tip] = vmath.Vec3F{X: 0.5, Y: 0.3} // tip above joint
		} else {
			lm[tip] = vmath.Vec3F{X: 0.5, Y: 0.45} // tip below joint
		}
	}
	return lm
}

func TestClassifyShapes(t *testing.T) {
	// [thumb, index, middle, ring, pinky]
	cases := []struct {
		name     string
		extended [5]bool
		want     Gesture
	}{
		{"fist all curled", [5]bool{false, false, false, false, false}, Fist},
		{"fist with thumb out", [5]bool{true, false, false, false, false}, Fist},
		{"palm", [5]bool{true, true, true, true, true}, Palm},
		{"point", [5]bool{false, true, false, false, false}, Point},
		{"peace", [5]bool{false, true, true, false, false}, Peace},
		{"peace with thumb out", [5]bool{true, true, true, false, false}, Peace},
		{"rock", [5]bool{true, true, false, false, true}, Rock},
		{"index and pinky without thumb", [5]bool{false, true, false, false, true}, Unknown},
		{"four fingers no thumb", [5]bool{false, true, true, true, true}, Unknown},
		{"ring only", [5]bool{false, false, false, true, false}, Unknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(landmarkSet(tc.extended))
			if got != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestClassifyIncompleteSet(t *testing.T) {
	if got := Classify(nil); got != None {
		t.Errorf("Expected None for nil landmarks, got %v", got)
	}
	if got := Classify(Landmarks{}); got != None {
		t.Errorf("Expected None for empty landmarks, got %v", got)
	}

	short := make(Landmarks, LandmarkCount-1)
	if got := Classify(short); got != None {
		t.Errorf("Expected None for short landmark set, got %v", got)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	lm := landmarkSet([5]bool{false, true, true, false, false})
	first := Classify(lm)
	for i := 0; i < 10; i++ {
		if got := Classify(lm); got != first {
			t.Fatalf("Classification changed between calls: %v then %v", first, got)
		}
	}
}

func TestFistPrecedenceOverUnknown(t *testing.T) {
	// Thumb extension must not matter when all four fingers are curled
	lm := landmarkSet([5]bool{true, false, false, false, false})
	if got := Classify(lm); got != Fist {
		t.Errorf("Expected Fist regardless of thumb, got %v", got)
	}
}

func TestSynthesizeRoundTrip(t *testing.T) {
	wrist := vmath.Vec2F{X: 0.3, Y: 0.6}

	for _, g := range []Gesture{Fist, Palm, Point, Peace, Rock} {
		lm := Synthesize(g, wrist)
		if len(lm) != LandmarkCount {
			t.Fatalf("Synthesize(%v): expected %d landmarks, got %d", g, LandmarkCount, len(lm))
		}
		if got := Classify(lm); got != g {
			t.Errorf("Synthesize(%v) classifies as %v", g, got)
		}
		if lm[Wrist].X != wrist.X || lm[Wrist].Y != wrist.Y {
			t.Errorf("Synthesize(%v): wrist moved to (%v, %v)", g, lm[Wrist].X, lm[Wrist].Y)
		}
	}
}

func TestSynthesizeNone(t *testing.T) {
	if lm := Synthesize(None, vmath.Vec2F{}); lm != nil {
		t.Errorf("Expected nil landmarks for None, got %d points", len(lm))
	}

	f := SynthesizeFrame(None, vmath.Vec2F{})
	if _, ok := f.Hand(); ok {
		t.Error("Expected no hand position for a None frame")
	}
}

func TestFrameHand(t *testing.T) {
	f := SynthesizeFrame(Palm, vmath.Vec2F{X: 0.7, Y: 0.2})
	hand, ok := f.Hand()
	if !ok {
		t.Fatal("Expected hand position for a complete frame")
	}
	if hand.X != 0.7 || hand.Y != 0.2 {
		t.Errorf("Expected wrist (0.7, 0.2), got (%v, %v)", hand.X, hand.Y)
	}
}
