package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe3d/internal/entity"
)

// BoardRenderer draws the cube one layer at a time, top layer first.
type BoardRenderer struct {
	plain bool

	marks map[entity.Mark]lipgloss.Style
	grid  lipgloss.Style
	title lipgloss.Style
}

// NewBoardRenderer - plain disables all styling.
func NewBoardRenderer(plain bool) *BoardRenderer {
	return &BoardRenderer{
		plain: plain,
		marks: map[entity.Mark]lipgloss.Style{
			entity.MarkX: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
			entity.MarkO: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		},
		grid:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		title: lipgloss.NewStyle().Faint(true),
	}
}

func (that *BoardRenderer) Render(board *entity.Board) string {
	layers := make([]string, 0, entity.Size)

	for i := range entity.Size {
		var sb strings.Builder

		sb.WriteString(that.style(that.title, fmt.Sprintf("Layer %d", i+1)))
		sb.WriteByte('\n')

		for j := range entity.Size {
			cells := make([]string, 0, entity.Size)
			for k := range entity.Size {
				cells = append(cells, that.cell(board.Cell(entity.Coord{I: i, J: j, K: k})))
			}

			sb.WriteString(strings.Join(cells, that.style(that.grid, "|")))
			sb.WriteByte('\n')

			if j < entity.Size-1 {
				sb.WriteString(that.style(that.grid, "-+-+-"))
				sb.WriteByte('\n')
			}
		}

		layers = append(layers, sb.String())
	}

	return strings.Join(layers, "\n")
}

func (that *BoardRenderer) cell(mark entity.Mark) string {
	if mark == entity.MarkEmpty {
		return " "
	}

	return that.style(that.marks[mark], string(mark))
}

func (that *BoardRenderer) style(style lipgloss.Style, text string) string {
	if that.plain {
		return text
	}

	return style.Render(text)
}
