package service

import (
	"context"
	"fmt"
	"io"

	"github.com/rocketscienceinc/tictactoe3d/internal/entity"
)

// LineReader is satisfied by *ConsoleInput.
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

// HumanPlayer reads moves typed on the console.
type HumanPlayer struct {
	profile entity.Player
	lines   LineReader
	out     io.Writer
}

func NewHumanPlayer(name string, mark entity.Mark, lines LineReader, out io.Writer) *HumanPlayer {
	return &HumanPlayer{
		profile: entity.Player{Name: name, Mark: mark},
		lines:   lines,
		out:     out,
	}
}

func (that *HumanPlayer) Profile() entity.Player {
	return that.profile
}

// GetMove - prompts until a free square is typed. It never forfeits.
func (that *HumanPlayer) GetMove(ctx context.Context, board *entity.Board) (entity.Move, error) {
	for {
		if err := ctx.Err(); err != nil {
			return entity.Move{}, err
		}

		fmt.Fprintf(that.out, "%s's turn. Input move (1-27): ", that.profile.Mark)

		line, err := that.lines.ReadLine(ctx)
		if err != nil {
			return entity.Move{}, err
		}

		_, coord, err := entity.ParseMove(line)
		if err != nil || !board.IsAvailable(coord) {
			fmt.Fprintln(that.out, "Invalid square. Try again.")
			continue
		}

		return entity.MoveTo(coord), nil
	}
}

// OnGameEnd - the person at the console already saw the result.
func (that *HumanPlayer) OnGameEnd(context.Context, entity.Result) error {
	return nil
}
