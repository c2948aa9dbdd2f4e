package entity

type Outcome string

const (
	OutcomeX    Outcome = "X"
	OutcomeO    Outcome = "O"
	OutcomeDraw Outcome = "-"
)

// Result is the terminal state of a game.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Forfeit bool    `json:"forfeit,omitempty"`
	Moves   int     `json:"moves"`
}

func WinFor(mark Mark) Outcome {
	if mark == MarkO {
		return OutcomeO
	}
	return OutcomeX
}

// Winner returns the winning mark, MarkEmpty for a draw.
func (that Result) Winner() Mark {
	switch that.Outcome {
	case OutcomeX:
		return MarkX
	case OutcomeO:
		return MarkO
	default:
		return MarkEmpty
	}
}

func (that Result) IsDraw() bool {
	return that.Outcome == OutcomeDraw
}

// Message is the line sent to chat players when the game ends.
func (that Result) Message() string {
	if that.IsDraw() {
		return "It's a tie!"
	}
	return string(that.Winner()) + " wins!"
}
