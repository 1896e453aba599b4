package gesture

// Gesture is a discrete hand-shape classification
type Gesture int

const (
	// None means no hand was detected this cycle
	None Gesture = iota

	// Fist: index through pinky curled, thumb ignored
	Fist

	// Palm: all five digits extended
	Palm

	// Point: only the index extended
	Point

	// Peace: index and middle extended, ring and pinky curled
	Peace

	// Rock: thumb, index and pinky extended, middle and ring curled
	Rock

	// Unknown: a detected hand matching no known shape
	Unknown
)

// String returns the lowercase gesture name
func (g Gesture) String() string {
	switch g {
	case None:
		return "none"
	case Fist:
		return "fist"
	case Palm:
		return "palm"
	case Point:
		return "point"
	case Peace:
		return "peace"
	case Rock:
		return "rock"
	default:
		return "unknown"
	}
}

// extensionJoint maps each digit's tip to the proximal joint used for the
// extension test
var extensionJoint = [5][2]int{
	{ThumbTip, ThumbIP},
	{IndexTip, IndexPIP},
	{MiddleTip, MiddlePIP},
	{RingTip, RingPIP},
	{PinkyTip, PinkyPIP},
}

// Digit indices into extension results
const (
	digitThumb = iota
	digitIndex
	digitMiddle
	digitRing
	digitPinky
)

// Classify maps one landmark set to a gesture label
// Pure and stateless: identical input yields identical output. An empty or
// incomplete landmark set yields None, never Unknown
//
// A digit counts as extended when its tip sits above its proximal joint in
// camera space (tip y numerically less than joint y)
func Classify(lm Landmarks) Gesture {
	if len(lm) < LandmarkCount {
		return None
	}

	var ext [5]bool
	for d, pair := range extensionJoint {
		ext[d] = lm[pair[0]].Y < lm[pair[1]].Y
	}

	switch {
	case !ext[digitIndex] && !ext[digitMiddle] && !ext[digitRing] && !ext[digitPinky]:
		return Fist
	case ext[digitThumb] && ext[digitIndex] && ext[digitMiddle] && ext[digitRing] && ext[digitPinky]:
		return Palm
	case ext[digitIndex] && !ext[digitThumb] && !ext[digitMiddle] && !ext[digitRing] && !ext[digitPinky]:
		return Point
	case ext[digitIndex] && ext[digitMiddle] && !ext[digitRing] && !ext[digitPinky]:
		return Peace
	case ext[digitThumb] && ext[digitIndex] && ext[digitPinky] && !ext[digitMiddle] && !ext[digitRing]:
		return Rock
	default:
		return Unknown
	}
}
