package entity

// Move is a coordinate, or a forfeit when the mover concedes.
type Move struct {
	Coord   Coord
	Forfeit bool
}

func MoveTo(c Coord) Move {
	return Move{Coord: c}
}

func ForfeitMove() Move {
	return Move{Forfeit: true}
}
