package console

import (
	"context"
	"fmt"
	"io"

	"github.com/rocketscienceinc/tictactoe3d/internal/entity"
)

// Narrator prints the game to a terminal as it happens.
type Narrator struct {
	out      io.Writer
	renderer *BoardRenderer
	names    map[entity.Mark]string
}

func NewNarrator(out io.Writer, renderer *BoardRenderer) *Narrator {
	return &Narrator{
		out:      out,
		renderer: renderer,
		names:    make(map[entity.Mark]string, 2),
	}
}

func (that *Narrator) GameStarted(_ context.Context, x, o entity.Player) {
	for _, player := range []entity.Player{x, o} {
		that.names[player.Mark] = player.Name
		fmt.Fprintf(that.out, "%s is '%s'\n", player.Name, player.Mark)
	}

	fmt.Fprintln(that.out, that.renderer.Render(entity.NewBoard()))
}

func (that *Narrator) MoveApplied(_ context.Context, player entity.Player, coord entity.Coord, board *entity.Board) {
	fmt.Fprintf(that.out, "%s makes a move to square %d\n", player.Mark, coord.Square())
	fmt.Fprintln(that.out, that.renderer.Render(board))
}

func (that *Narrator) GameFinished(_ context.Context, result entity.Result) {
	if result.Forfeit {
		name, ok := that.names[result.Winner()]
		if !ok {
			name = string(result.Winner())
		}

		fmt.Fprintf(that.out, "%s wins!\n", name)
		return
	}

	fmt.Fprintln(that.out, result.Message())
}
