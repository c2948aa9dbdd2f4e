package entity

// Player is the identity of a seat at the board.
type Player struct {
	Name string `json:"name"`
	Mark Mark   `json:"mark"`
}
