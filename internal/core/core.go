package core

type State int

const (
	StateOngoing State = iota
	StatePending       // Computer is choosing a move
	StateStuck         // Side to move has no legal move
	StateRedWins
	StateBlackWins
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateStuck:
		return "stuck"
	case StateRedWins:
		return "red wins"
	case StateBlackWins:
		return "black wins"
	case StateOngoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

// IsFinished reports whether the state is a terminal verdict
func (s State) IsFinished() bool {
	return s == StateRedWins || s == StateBlackWins
}

// WinState returns the terminal state for the given winner
func WinState(winner Side) State {
	switch winner {
	case SideRed:
		return StateRedWins
	case SideBlack:
		return StateBlackWins
	default:
		return StateOngoing
	}
}

type Side byte

const (
	SideNone Side = iota
	SideRed
	SideBlack
)

func (s Side) String() string {
	switch s {
	case SideRed:
		return "red"
	case SideBlack:
		return "black"
	default:
		return "-"
	}
}

// Symbol is the single-letter form used in layouts and move records
func (s Side) Symbol() string {
	switch s {
	case SideRed:
		return "r"
	case SideBlack:
		return "b"
	default:
		return "-"
	}
}

// Opposite returns the other side, SideNone stays SideNone
func (s Side) Opposite() Side {
	switch s {
	case SideRed:
		return SideBlack
	case SideBlack:
		return SideRed
	default:
		return SideNone
	}
}

// Forward is the row delta of a single forward step.
// Red advances toward row 0, black toward row 7.
func (s Side) Forward() int {
	switch s {
	case SideRed:
		return -1
	case SideBlack:
		return 1
	default:
		return 0
	}
}

// PromotionRow is the opposing back rank where men of this side are crowned
func (s Side) PromotionRow() int {
	if s == SideRed {
		return 0
	}
	return 7
}

// ParseSide accepts "r"/"red" and "b"/"black"
func ParseSide(str string) Side {
	switch str {
	case "r", "red":
		return SideRed
	case "b", "black":
		return SideBlack
	default:
		return SideNone
	}
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.Symbol()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	*s = ParseSide(string(text))
	return nil
}
