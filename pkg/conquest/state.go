package conquest

import "sort"

// Status represents the overall game status.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// Phase represents the current turn phase.
type Phase string

const (
	PhaseSetup         Phase = "setup"
	PhaseReinforcement Phase = "reinforcement"
	PhaseAttack        Phase = "attack"
	PhaseFortify       Phase = "fortify"
	PhaseGameOver      Phase = "game_over"
)

// Mode represents the win-condition mode of a game.
type Mode string

const (
	ModeClassic    Mode = "classic"
	ModeDomination Mode = "domination"
	ModeTurnLimit  Mode = "turn_limit"
)

// PlayerType distinguishes human players from CPU players.
type PlayerType string

const (
	PlayerHuman PlayerType = "human"
	PlayerCPU   PlayerType = "cpu"
)

// Difficulty is the decision-engine tier for CPU players.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// Player is a participant in a game. Owned territories are derived from the
// territory arena, never stored here.
type Player struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Color      string     `json:"color"`
	Type       PlayerType `json:"type"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	TurnOrder  int        `json:"turn_order"`
	Eliminated bool       `json:"eliminated"`
}

// Territory is one board position. OwnerID and ContinentKey are weak key
// references into the game's player list and continent map.
type Territory struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	ContinentKey string   `json:"continent_key"`
	OwnerID      string   `json:"owner_id,omitempty"`
	Armies       int      `json:"armies"`
	Neighbors    []string `json:"neighbors"`
}

// Continent groups territories and grants bonus armies when fully controlled.
type Continent struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Bonus       int      `json:"bonus"`
	Territories []string `json:"territories"`
}

// GameState is a complete snapshot of one game. Players are ordered by turn
// order; territories and continents are arenas addressed by stable keys.
type GameState struct {
	Status                  Status               `json:"status"`
	Phase                   Phase                `json:"phase"`
	Mode                    Mode                 `json:"mode"`
	DominationPercent       int                  `json:"domination_percent,omitempty"`
	TurnLimit               int                  `json:"turn_limit,omitempty"`
	Players                 []Player             `json:"players"`
	CurrentPlayerIndex      int                  `json:"current_player_index"`
	TurnNumber              int                  `json:"turn_number"`
	ReinforcementsRemaining int                  `json:"reinforcements_remaining"`
	WinnerID                string               `json:"winner_id,omitempty"`
	Territories             map[string]Territory `json:"territories"`
	Continents              map[string]Continent `json:"continents"`
}

// Player returns a pointer to the player with the given ID, or nil.
func (gs *GameState) Player(id string) *Player {
	for i := range gs.Players {
		if gs.Players[i].ID == id {
			return &gs.Players[i]
		}
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is.
func (gs *GameState) CurrentPlayer() *Player {
	if gs.CurrentPlayerIndex < 0 || gs.CurrentPlayerIndex >= len(gs.Players) {
		return nil
	}
	return &gs.Players[gs.CurrentPlayerIndex]
}

// ActivePlayers returns the non-eliminated players in turn order.
func (gs *GameState) ActivePlayers() []Player {
	var active []Player
	for _, p := range gs.Players {
		if !p.Eliminated {
			active = append(active, p)
		}
	}
	return active
}

// TerritoryKeys returns all territory keys sorted, for deterministic iteration.
func (gs *GameState) TerritoryKeys() []string {
	keys := make([]string, 0, len(gs.Territories))
	for k := range gs.Territories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TerritoriesOf returns the sorted keys of territories owned by a player.
func (gs *GameState) TerritoriesOf(playerID string) []string {
	var keys []string
	for k, t := range gs.Territories {
		if t.OwnerID == playerID {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// OwnedCount returns the number of territories owned by a player.
func (gs *GameState) OwnedCount(playerID string) int {
	count := 0
	for _, t := range gs.Territories {
		if t.OwnerID == playerID {
			count++
		}
	}
	return count
}

// ControlsContinent reports whether every territory of the continent is owned
// by the player. False if any member territory is unowned.
func (gs *GameState) ControlsContinent(playerID, continentKey string) bool {
	c, ok := gs.Continents[continentKey]
	if !ok {
		return false
	}
	for _, key := range c.Territories {
		t, ok := gs.Territories[key]
		if !ok || t.OwnerID == "" || t.OwnerID != playerID {
			return false
		}
	}
	return true
}

// EnemyNeighbors returns the sorted neighbor keys of a territory that are not
// owned by the territory's owner.
func (gs *GameState) EnemyNeighbors(key string) []string {
	t, ok := gs.Territories[key]
	if !ok {
		return nil
	}
	var enemies []string
	for _, nk := range t.Neighbors {
		n, ok := gs.Territories[nk]
		if ok && n.OwnerID != t.OwnerID {
			enemies = append(enemies, nk)
		}
	}
	sort.Strings(enemies)
	return enemies
}

// IsBorder reports whether a territory has at least one enemy-owned neighbor.
func (gs *GameState) IsBorder(key string) bool {
	return len(gs.EnemyNeighbors(key)) > 0
}

// AttackCapable returns the sorted keys of territories a player could attack
// from: owned, more than one army, at least one enemy neighbor.
func (gs *GameState) AttackCapable(playerID string) []string {
	var keys []string
	for _, k := range gs.TerritoriesOf(playerID) {
		t := gs.Territories[k]
		if t.Armies > 1 && gs.IsBorder(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Adjacent reports whether to is a neighbor of from.
func (gs *GameState) Adjacent(from, to string) bool {
	t, ok := gs.Territories[from]
	if !ok {
		return false
	}
	for _, nk := range t.Neighbors {
		if nk == to {
			return true
		}
	}
	return false
}
