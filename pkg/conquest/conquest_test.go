package conquest

import "fmt"

// testTopology builds a small two-continent board:
//
//	west (bonus 2): alpha - bravo
//	east (bonus 3): charlie - delta
//
// with bravo bordering charlie.
func testTopology() *Topology {
	topo := &Topology{
		Name: "test",
		Continents: []TopologyContinent{
			{Key: "west", Name: "West", Bonus: 2, Territories: []TopologyTerritory{
				{Key: "alpha", Name: "Alpha", Neighbors: []string{"bravo"}},
				{Key: "bravo", Name: "Bravo", Neighbors: []string{"charlie"}},
			}},
			{Key: "east", Name: "East", Bonus: 3, Territories: []TopologyTerritory{
				{Key: "charlie", Name: "Charlie", Neighbors: []string{"delta"}},
				{Key: "delta", Name: "Delta"},
			}},
		},
	}
	topo.symmetrize()
	return topo
}

func testPlayers(n int) []Player {
	players := make([]Player, n)
	for i := range players {
		players[i] = Player{
			ID:        fmt.Sprintf("p%d", i+1),
			Name:      fmt.Sprintf("Player %d", i+1),
			Type:      PlayerHuman,
			TurnOrder: i,
		}
	}
	return players
}

func testState(n int) *GameState {
	return NewGameState(testTopology(), testPlayers(n), ModeClassic, 0, 0)
}

func setOwner(gs *GameState, key, ownerID string, armies int) {
	t := gs.Territories[key]
	t.OwnerID = ownerID
	t.Armies = armies
	gs.Territories[key] = t
}

// totalArmies sums every army on the board.
func totalArmies(gs *GameState) int {
	total := 0
	for _, t := range gs.Territories {
		total += t.Armies
	}
	return total
}
