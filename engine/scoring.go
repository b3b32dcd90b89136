package engine

// TrickWinner returns the player holding the highest card among the field
// plays of a trick. Discards never contest the trick. When several players
// played the maximum value, the last of them in play order wins.
// Returns -1 when there is no field play.
func TrickWinner(plays []Play) int {
	winner, best := -1, NoCard
	for _, p := range plays {
		if p.Discard {
			continue
		}
		if p.Card >= best {
			winner, best = p.Player, p.Card
		}
	}
	return winner
}

// FinalTrickPenalty scores the last trick of a round. The winner (chosen as in
// TrickWinner) takes cucumbers equal to the cucumber count of the winning card.
// The penalty is doubled when any field play in the trick is a 1, and
// cancelled entirely when every field play is a 1.
func FinalTrickPenalty(plays []Play) (winner, penalty int) {
	winner = TrickWinner(plays)
	if winner < 0 {
		return -1, 0
	}

	var best Card
	ones, fielded := 0, 0
	for _, p := range plays {
		if p.Discard {
			continue
		}
		fielded++
		if p.Card == 1 {
			ones++
		}
		if p.Card > best {
			best = p.Card
		}
	}

	switch {
	case ones == fielded:
		return winner, 0
	case ones > 0:
		return winner, best.Cucumbers() * 2
	}
	return winner, best.Cucumbers()
}

// IsGameOver reports whether any player has reached the loss threshold.
func IsGameOver(players []PlayerState, threshold int) bool {
	for _, p := range players {
		if p.Cucumbers >= threshold {
			return true
		}
	}
	return false
}

// LosingPlayers returns every player at or above the loss threshold, in seat
// order. More than one player may cross on the same final trick.
func LosingPlayers(players []PlayerState, threshold int) []int {
	var out []int
	for i, p := range players {
		if p.Cucumbers >= threshold {
			out = append(out, i)
		}
	}
	return out
}
