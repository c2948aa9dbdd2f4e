package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe3d/internal/entity"
)

const boardLegend = "Squares are numbered 1-27 layer by layer, row by row, left to right; '-' is an empty square."

// SetupPrompt - the rules message sent once before the first move request.
func SetupPrompt(mark entity.Mark) string {
	return fmt.Sprintf("We're going to play 3D Tic Tac Toe. You're '%s'. "+
		"I'll tell you the position I put on the board. "+
		"Please reply with your move as a digit from 1-27 only.", mark)
}

// BoardPrompt - a self-contained move request carrying the whole board.
func BoardPrompt(board *entity.Board, mark entity.Mark) string {
	return fmt.Sprintf("The current game board is '%s'. %s What should be the next move for '%s'? "+
		"Here is an important rule for the game: answer only with a number from 1-27! Only one number is allowed! "+
		"If you answer with anything not in the range of 1-27, I don't understand. "+
		"Here is an example <example>1</example>", board.Compact(), boardLegend, mark)
}

// TurnPrompt - a short move request for a conversation that already knows the rules.
func TurnPrompt(board *entity.Board, mark entity.Mark) string {
	return fmt.Sprintf("The board is now '%s'. %s's turn. Input move (1-27): ", board.Compact(), mark)
}
