package conquest

import (
	"encoding/json"
	"fmt"
	"io"
)

// Topology is a static map description: territories, adjacency, continents.
// It is consumed once, at game setup, to build the board.
type Topology struct {
	Name       string              `json:"name"`
	Continents []TopologyContinent `json:"continents"`
}

// TopologyContinent describes one continent and its member territories.
type TopologyContinent struct {
	Key         string              `json:"key"`
	Name        string              `json:"name"`
	Bonus       int                 `json:"bonus"`
	Territories []TopologyTerritory `json:"territories"`
}

// TopologyTerritory describes one territory and its neighbor keys.
type TopologyTerritory struct {
	Key       string   `json:"key"`
	Name      string   `json:"name"`
	Neighbors []string `json:"neighbors"`
}

// LoadTopology decodes and validates a JSON topology description.
// Missing reverse adjacency edges are added, so map files only need to
// list each border once.
func LoadTopology(r io.Reader) (*Topology, error) {
	var topo Topology
	if err := json.NewDecoder(r).Decode(&topo); err != nil {
		return nil, fmt.Errorf("decode topology: %w", err)
	}
	if err := topo.validate(); err != nil {
		return nil, err
	}
	topo.symmetrize()
	return &topo, nil
}

func (topo *Topology) validate() error {
	if len(topo.Continents) == 0 {
		return fmt.Errorf("topology %q has no continents", topo.Name)
	}
	seen := make(map[string]bool)
	for _, c := range topo.Continents {
		if c.Key == "" {
			return fmt.Errorf("topology %q has a continent without a key", topo.Name)
		}
		if c.Bonus < 0 {
			return fmt.Errorf("continent %q has negative bonus", c.Key)
		}
		for _, t := range c.Territories {
			if t.Key == "" {
				return fmt.Errorf("continent %q has a territory without a key", c.Key)
			}
			if seen[t.Key] {
				return fmt.Errorf("duplicate territory key %q", t.Key)
			}
			seen[t.Key] = true
		}
	}
	for _, c := range topo.Continents {
		for _, t := range c.Territories {
			for _, n := range t.Neighbors {
				if !seen[n] {
					return fmt.Errorf("territory %q references unknown neighbor %q", t.Key, n)
				}
				if n == t.Key {
					return fmt.Errorf("territory %q lists itself as a neighbor", t.Key)
				}
			}
		}
	}
	return nil
}

// symmetrize adds the reverse edge for every listed adjacency.
func (topo *Topology) symmetrize() {
	adj := make(map[string]map[string]bool)
	for _, c := range topo.Continents {
		for _, t := range c.Territories {
			if adj[t.Key] == nil {
				adj[t.Key] = make(map[string]bool)
			}
			for _, n := range t.Neighbors {
				adj[t.Key][n] = true
				if adj[n] == nil {
					adj[n] = make(map[string]bool)
				}
				adj[n][t.Key] = true
			}
		}
	}
	for ci := range topo.Continents {
		for ti := range topo.Continents[ci].Territories {
			t := &topo.Continents[ci].Territories[ti]
			for n := range adj[t.Key] {
				found := false
				for _, existing := range t.Neighbors {
					if existing == n {
						found = true
						break
					}
				}
				if !found {
					t.Neighbors = append(t.Neighbors, n)
				}
			}
		}
	}
}

// TerritoryCount returns the total number of territories in the topology.
func (topo *Topology) TerritoryCount() int {
	count := 0
	for _, c := range topo.Continents {
		count += len(c.Territories)
	}
	return count
}

// NewGameState builds the board for a new game from a topology. The game
// starts in waiting status and setup phase; territories are unowned with
// zero armies until distribution.
func NewGameState(topo *Topology, players []Player, mode Mode, dominationPercent, turnLimit int) *GameState {
	gs := &GameState{
		Status:            StatusWaiting,
		Phase:             PhaseSetup,
		Mode:              mode,
		DominationPercent: dominationPercent,
		TurnLimit:         turnLimit,
		Players:           append([]Player(nil), players...),
		TurnNumber:        1,
		Territories:       make(map[string]Territory),
		Continents:        make(map[string]Continent),
	}
	for _, c := range topo.Continents {
		cont := Continent{Key: c.Key, Name: c.Name, Bonus: c.Bonus}
		for _, t := range c.Territories {
			cont.Territories = append(cont.Territories, t.Key)
			gs.Territories[t.Key] = Territory{
				Key:          t.Key,
				Name:         t.Name,
				ContinentKey: c.Key,
				Neighbors:    append([]string(nil), t.Neighbors...),
			}
		}
		gs.Continents[c.Key] = cont
	}
	return gs
}

// DistributeTerritories deals every territory to the players round-robin in
// shuffled order, one army on each. Deterministic given a seeded rand source.
func (gs *GameState) DistributeTerritories() {
	keys := gs.TerritoryKeys()
	shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for i, key := range keys {
		t := gs.Territories[key]
		t.OwnerID = gs.Players[i%len(gs.Players)].ID
		t.Armies = 1
		gs.Territories[key] = t
	}
}
