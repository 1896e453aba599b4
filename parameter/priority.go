package parameter

// System priorities, lower runs first
// Cast must observe gestures before combat consumes the resulting cast
// events; ledger regen and audio run after all damage is resolved
const (
	PriorityCast   = 10
	PriorityCombat = 20
	PriorityLedger = 30
	PriorityAudio  = 40
)
