package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe3d/internal/apperror"
)

// Size is the edge length of the cube.
const Size = 3

// CellCount is the number of cells on the board.
const CellCount = Size * Size * Size

type Mark string

const (
	MarkEmpty Mark = ""
	MarkX     Mark = "X"
	MarkO     Mark = "O"
)

// Opponent returns the other mark, MarkEmpty for MarkEmpty.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkEmpty
	}
}

// Coord addresses a cell as (layer, row, column).
type Coord struct {
	I int `json:"i"`
	J int `json:"j"`
	K int `json:"k"`
}

// CoordFromIndex decodes a zero-based linear index into a coordinate.
func CoordFromIndex(idx int) Coord {
	return Coord{I: idx / 9, J: (idx % 9) / 3, K: idx % 3}
}

// Index returns the zero-based linear index of the coordinate.
func (that Coord) Index() int {
	return that.I*9 + that.J*3 + that.K
}

// Square returns the 1-based square number players type in.
func (that Coord) Square() int {
	return that.Index() + 1
}

func (that Coord) Valid() bool {
	return inRange(that.I) && inRange(that.J) && inRange(that.K)
}

func (that Coord) String() string {
	return fmt.Sprintf("(%d, %d, %d)", that.I, that.J, that.K)
}

func inRange(v int) bool {
	return v >= 0 && v < Size
}

// ParseMove decodes a 1-based textual square into its raw zero-based index and
// coordinate. The raw index is returned even when it is out of range.
func ParseMove(text string) (int, Coord, error) {
	square, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, Coord{}, fmt.Errorf("%w: %q", apperror.ErrNotANumber, text)
	}

	idx := square - 1
	if idx < 0 || idx >= CellCount {
		return idx, Coord{}, fmt.Errorf("%w: square %d", apperror.ErrInvalidCell, square)
	}

	return idx, CoordFromIndex(idx), nil
}

// Board is the 3x3x3 cube. The zero value is an empty board.
type Board struct {
	cells  [Size][Size][Size]Mark
	winner Mark
}

func NewBoard() *Board {
	return &Board{}
}

// Cell returns the mark at c, MarkEmpty for coordinates outside the cube.
func (that *Board) Cell(c Coord) Mark {
	if !c.Valid() {
		return MarkEmpty
	}
	return that.cells[c.I][c.J][c.K]
}

// AvailableMoves lists the empty cells in linear index order.
func (that *Board) AvailableMoves() []Coord {
	moves := make([]Coord, 0, CellCount)
	for idx := range CellCount {
		c := CoordFromIndex(idx)
		if that.cells[c.I][c.J][c.K] == MarkEmpty {
			moves = append(moves, c)
		}
	}
	return moves
}

// IsAvailable reports whether c is on the board and empty.
func (that *Board) IsAvailable(c Coord) bool {
	return c.Valid() && that.cells[c.I][c.J][c.K] == MarkEmpty
}

func (that *Board) IsFull() bool {
	return that.Occupied() == CellCount
}

func (that *Board) Occupied() int {
	count := 0
	for idx := range CellCount {
		c := CoordFromIndex(idx)
		if that.cells[c.I][c.J][c.K] != MarkEmpty {
			count++
		}
	}
	return count
}

// ApplyMove places mark on c. It returns false without touching the board when
// the cell is taken or the move is malformed.
func (that *Board) ApplyMove(c Coord, mark Mark) bool {
	if mark != MarkX && mark != MarkO {
		return false
	}

	if !that.IsAvailable(c) {
		return false
	}

	that.cells[c.I][c.J][c.K] = mark
	if that.winner == MarkEmpty && that.CheckWin(c, mark) {
		that.winner = mark
	}

	return true
}

// Winner returns the first mark that completed a line.
func (that *Board) Winner() (Mark, bool) {
	return that.winner, that.winner != MarkEmpty
}

// CheckWin looks only at the lines through c: its row, column and depth-line,
// plus both space diagonals when c sits on the i == j == k diagonal.
func (that *Board) CheckWin(c Coord, mark Mark) bool {
	if !c.Valid() || mark == MarkEmpty {
		return false
	}

	b := &that.cells

	// row
	if b[c.I][c.J][0] == mark && b[c.I][c.J][1] == mark && b[c.I][c.J][2] == mark {
		return true
	}

	// column
	if b[c.I][0][c.K] == mark && b[c.I][1][c.K] == mark && b[c.I][2][c.K] == mark {
		return true
	}

	// depth
	if b[0][c.J][c.K] == mark && b[1][c.J][c.K] == mark && b[2][c.J][c.K] == mark {
		return true
	}

	if c.I == c.J && c.J == c.K {
		if b[0][0][0] == mark && b[1][1][1] == mark && b[2][2][2] == mark {
			return true
		}

		if b[2][0][0] == mark && b[1][1][1] == mark && b[0][2][2] == mark {
			return true
		}
	}

	return false
}

// Compact renders the board as 27 characters in square order, '-' for empty.
func (that *Board) Compact() string {
	var sb strings.Builder
	sb.Grow(CellCount)

	for idx := range CellCount {
		c := CoordFromIndex(idx)
		if mark := that.cells[c.I][c.J][c.K]; mark != MarkEmpty {
			sb.WriteString(string(mark))
		} else {
			sb.WriteByte('-')
		}
	}

	return sb.String()
}
