// Package cricket holds the fixed domain rules every report shares: over
// phases and the normalization of team and venue names.
package cricket

// Phase is a named block of overs in a T20 innings.
type Phase string

// Phases of a T20 innings. Other covers anything outside overs 1-20
// (super overs, bad data) and is excluded from phase reports.
const (
	Powerplay Phase = "POWERPLAY"
	Middle    Phase = "MIDDLE"
	Death     Phase = "DEATH"
	Other     Phase = "OTHER"
)

// Over boundaries of each phase, inclusive.
const (
	PowerplayFirstOver = 1
	PowerplayLastOver  = 6
	MiddleFirstOver    = 7
	MiddleLastOver     = 15
	DeathFirstOver     = 16
	DeathLastOver      = 20

	// MaxOver is the last over of a regulation T20 innings.
	MaxOver = DeathLastOver
	// BallsPerOver is the nominal number of legal deliveries in an over.
	BallsPerOver = 6
)

// PhaseOf classifies a 1-indexed over.
func PhaseOf(over int) Phase {
	switch {
	case over >= PowerplayFirstOver && over <= PowerplayLastOver:
		return Powerplay
	case over >= MiddleFirstOver && over <= MiddleLastOver:
		return Middle
	case over >= DeathFirstOver && over <= DeathLastOver:
		return Death
	default:
		return Other
	}
}

// Phases returns the three reportable phases in innings order.
func Phases() []Phase {
	return []Phase{Powerplay, Middle, Death}
}

// Label is the over range shown in bowler economy tables, e.g. "1-6".
func (p Phase) Label() string {
	switch p {
	case Powerplay:
		return "1-6"
	case Middle:
		return "7-15"
	case Death:
		return "16-20"
	}
	return ""
}

// InRegulation reports whether over belongs to one of the three phases.
func InRegulation(over int) bool {
	return over >= PowerplayFirstOver && over <= MaxOver
}

// IsDeath reports whether over is in the death phase.
func IsDeath(over int) bool { return PhaseOf(over) == Death }
