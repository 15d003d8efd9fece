package constant

// System Execution Priorities (lower runs first). The ordering is the
// tick's dataflow: leaves first, outbox last, bus clear after everything.
const (
	PriorityConn       = 10
	PriorityInbound    = 20
	PriorityParse      = 30
	PriorityCues       = 40
	PriorityAct        = 50
	PriorityDrives     = 60
	PriorityBehavior   = 70
	PriorityMove       = 80
	PriorityCombat     = 90
	PriorityProc       = 95
	PriorityEcho       = 100
	PriorityEmit       = 105
	PriorityCook       = 110
	PrioritySurvive    = 115
	PriorityForage     = 120
	PriorityDecay      = 125
	PriorityAnchor     = 130
	PriorityGas        = 135
	PriorityRegen      = 140
	PriorityPhases     = 145
	PriorityExperience = 150
	PriorityWyrd       = 155
	PriorityHealth     = 158
	PriorityStance     = 160
	PriorityCleanup    = 165
	PriorityVisibility = 170
	PriorityOutbox     = 200
)
