package conquest

// checkVictory evaluates the elimination and domination win conditions after
// an attack resolution. The turn-limit condition is checked separately inside
// EndTurn.
func (gs *GameState) checkVictory() {
	if gs.Status != StatusInProgress {
		return
	}

	active := gs.ActivePlayers()
	if len(active) == 1 {
		gs.finish(active[0].ID)
		return
	}

	if gs.Mode == ModeDomination {
		needed := dominationThreshold(len(gs.Territories), gs.DominationPercent)
		for _, p := range active {
			if gs.OwnedCount(p.ID) >= needed {
				gs.finish(p.ID)
				return
			}
		}
	}
}

// checkTurnLimit ends a turn-limit game once the configured number of full
// rounds has been played. The round that would exceed the limit never starts:
// the turn number is clamped back and the active player with the strictly
// most territories wins. Equal leaders are split by lowest turn order.
// Reports whether the game finished.
func (gs *GameState) checkTurnLimit() bool {
	if gs.Mode != ModeTurnLimit || gs.TurnNumber <= gs.TurnLimit {
		return false
	}
	gs.TurnNumber = gs.TurnLimit

	var winner *Player
	best := -1
	for i := range gs.Players {
		p := &gs.Players[i]
		if p.Eliminated {
			continue
		}
		owned := gs.OwnedCount(p.ID)
		if owned > best {
			best = owned
			winner = p
		}
	}
	if winner != nil {
		gs.finish(winner.ID)
	}
	return true
}

// IsGameOver reports whether the game has finished. The winner, if any, is in
// WinnerID.
func (gs *GameState) IsGameOver() bool {
	return gs.Status == StatusFinished
}

func (gs *GameState) finish(winnerID string) {
	gs.Status = StatusFinished
	gs.Phase = PhaseGameOver
	gs.WinnerID = winnerID
}

// dominationThreshold returns ceil(total * percent / 100).
func dominationThreshold(total, percent int) int {
	return (total*percent + 99) / 100
}
