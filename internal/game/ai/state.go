package ai

// State is the behavior an enemy is currently in.
type State int

const (
	Idle State = iota
	Patrol
	Chase
	Attack
	Retreat
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Patrol:
		return "patrol"
	case Chase:
		return "chase"
	case Attack:
		return "attack"
	case Retreat:
		return "retreat"
	default:
		return "unknown"
	}
}

// Thresholds shared by every enemy type.
const (
	// RetreatBelow sends an enemy into Retreat when health drops under it.
	RetreatBelow = 40
	// RecoverAbove returns a retreating enemy to Chase. Nothing heals enemies
	// today, so Retreat is effectively final.
	RecoverAbove = 50

	// AttackExitFactor widens the attack range on the way out to stop flicker.
	AttackExitFactor = 1.2
	// StandOffFactor is the fraction of attack range ranged enemies keep clear.
	StandOffFactor = 0.8

	// ArrivalRadius is how close a patrol waypoint must be to count as reached.
	ArrivalRadius = 0.1
	// SightRadius is how close a sight sample must come to the player.
	SightRadius = 0.5
	// SightSamplesPerUnit sets the sampling density of the sight test.
	SightSamplesPerUnit = 2.0
)
