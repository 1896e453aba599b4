package pose

import (
	"github.com/avindel/handcast/service"
)

// Source is a pose frame producer running under the service hub
// Implementations push EventPoseFrame into the world's event queue from
// their own goroutine
type Source interface {
	service.Service

	// FramesProduced returns the number of frames pushed so far
	FramesProduced() uint64

	// FramesDropped returns the number of inputs discarded as malformed
	FramesDropped() uint64
}
