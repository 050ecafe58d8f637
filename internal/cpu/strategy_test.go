package cpu

import (
	"strings"
	"testing"

	"github.com/tmckee/warfront/pkg/conquest"
)

// Two continents: west (alpha - bravo, bonus 2) and east (charlie - delta,
// bonus 3), with bravo bordering charlie.
const boardJSON = `{
	"name": "test",
	"continents": [
		{"key": "west", "name": "West", "bonus": 2, "territories": [
			{"key": "alpha", "name": "Alpha", "neighbors": ["bravo"]},
			{"key": "bravo", "name": "Bravo", "neighbors": ["charlie"]}
		]},
		{"key": "east", "name": "East", "bonus": 3, "territories": [
			{"key": "charlie", "name": "Charlie", "neighbors": ["delta"]},
			{"key": "delta", "name": "Delta"}
		]}
	]
}`

func board(t *testing.T) *conquest.GameState {
	t.Helper()
	topo, err := conquest.LoadTopology(strings.NewReader(boardJSON))
	if err != nil {
		t.Fatalf("load topology: %v", err)
	}
	players := []conquest.Player{
		{ID: "p1", Name: "Player 1", Type: conquest.PlayerCPU, TurnOrder: 0},
		{ID: "p2", Name: "Player 2", Type: conquest.PlayerCPU, TurnOrder: 1},
	}
	return conquest.NewGameState(topo, players, conquest.ModeClassic, 0, 0)
}

func setOwner(gs *conquest.GameState, key, ownerID string, armies int) {
	t := gs.Territories[key]
	t.OwnerID = ownerID
	t.Armies = armies
	gs.Territories[key] = t
}

func TestStrategyForDifficulty(t *testing.T) {
	cases := []struct {
		difficulty conquest.Difficulty
		want       string
	}{
		{conquest.DifficultyEasy, "easy"},
		{conquest.DifficultyMedium, "medium"},
		{conquest.DifficultyHard, "hard"},
		{conquest.DifficultyExpert, "hard"}, // expert plays the hard engine
		{conquest.Difficulty(""), "medium"},
		{conquest.Difficulty("bogus"), "medium"},
	}
	for _, tc := range cases {
		if got := StrategyForDifficulty(tc.difficulty).Name(); got != tc.want {
			t.Errorf("difficulty %q: expected %s strategy, got %s", tc.difficulty, tc.want, got)
		}
	}
}

// A player with zero owned territories must yield nil from every decision
// point of every tier.
func TestStrategiesNoOpWithoutTerritories(t *testing.T) {
	gs := board(t)
	setOwner(gs, "alpha", "p2", 1)
	setOwner(gs, "bravo", "p2", 1)
	setOwner(gs, "charlie", "p2", 1)
	setOwner(gs, "delta", "p2", 1)

	strategies := []Strategy{&HeuristicStrategy{}, &TacticalStrategy{}, &ContinentalStrategy{}}
	for _, s := range strategies {
		if p := s.DecideReinforcement(gs, "p1", 5); p != nil {
			t.Errorf("%s: reinforcement should be nil, got %+v", s.Name(), p)
		}
		if a := s.DecideAttack(gs, "p1"); a != nil {
			t.Errorf("%s: attack should be nil, got %+v", s.Name(), a)
		}
		if f := s.DecideFortify(gs, "p1"); f != nil {
			t.Errorf("%s: fortify should be nil, got %+v", s.Name(), f)
		}
	}
}

func TestHeuristicReinforcementUsesWholePool(t *testing.T) {
	SeedCPURng(3)
	defer ResetCPURng()

	gs := board(t)
	setOwner(gs, "alpha", "p1", 1)
	setOwner(gs, "bravo", "p1", 1)
	setOwner(gs, "charlie", "p2", 1)
	setOwner(gs, "delta", "p2", 1)

	s := &HeuristicStrategy{}
	p := s.DecideReinforcement(gs, "p1", 7)
	if p == nil {
		t.Fatal("expected a placement")
	}
	if p.Armies != 7 {
		t.Errorf("easy places the whole pool, got %d", p.Armies)
	}
	if gs.Territories[p.TerritoryKey].OwnerID != "p1" {
		t.Errorf("placement target %s not owned by p1", p.TerritoryKey)
	}
}

func TestHeuristicAttackIsValidWhenProposed(t *testing.T) {
	SeedCPURng(11)
	defer ResetCPURng()

	gs := board(t)
	setOwner(gs, "alpha", "p1", 1)
	setOwner(gs, "bravo", "p1", 4)
	setOwner(gs, "charlie", "p2", 1)
	setOwner(gs, "delta", "p2", 1)

	s := &HeuristicStrategy{}
	sawAttack := false
	for i := 0; i < 50; i++ {
		move := s.DecideAttack(gs, "p1")
		if move == nil {
			continue
		}
		sawAttack = true
		if move.From != "bravo" || move.To != "charlie" {
			t.Fatalf("only valid attack is bravo -> charlie, got %s -> %s", move.From, move.To)
		}
		if move.Armies < 1 || move.Armies > 3 {
			t.Fatalf("attack armies out of range: %d", move.Armies)
		}
	}
	if !sawAttack {
		t.Error("easy should attack roughly half the time over 50 tries")
	}
}

func TestHeuristicFortifyLeavesGarrison(t *testing.T) {
	SeedCPURng(5)
	defer ResetCPURng()

	gs := board(t)
	setOwner(gs, "alpha", "p1", 6)
	setOwner(gs, "bravo", "p1", 1)
	setOwner(gs, "charlie", "p2", 1)
	setOwner(gs, "delta", "p2", 1)

	s := &HeuristicStrategy{}
	for i := 0; i < 30; i++ {
		move := s.DecideFortify(gs, "p1")
		if move == nil {
			continue
		}
		if move.From != "alpha" || move.To != "bravo" {
			t.Fatalf("only transfer is alpha -> bravo, got %s -> %s", move.From, move.To)
		}
		if move.Armies < 1 || move.Armies >= gs.Territories[move.From].Armies {
			t.Fatalf("transfer must leave one army behind, got %d of %d",
				move.Armies, gs.Territories[move.From].Armies)
		}
		return
	}
	t.Error("easy should fortify roughly one time in three over 30 tries")
}

func TestTacticalReinforcementTargetsContestedBorder(t *testing.T) {
	gs := board(t)
	setOwner(gs, "alpha", "p1", 1)
	setOwner(gs, "bravo", "p1", 1)
	setOwner(gs, "charlie", "p2", 1)
	setOwner(gs, "delta", "p2", 1)

	s := &TacticalStrategy{}
	p := s.DecideReinforcement(gs, "p1", 4)
	if p == nil {
		t.Fatal("expected a placement")
	}
	// bravo has one enemy neighbor, alpha has none.
	if p.TerritoryKey != "bravo" {
		t.Errorf("expected placement on bravo, got %s", p.TerritoryKey)
	}
	if p.Armies != 4 {
		t.Errorf("expected the whole pool, got %d", p.Armies)
	}
}

func TestTacticalAttackRequiresAdvantage(t *testing.T) {
	gs := board(t)
	setOwner(gs, "alpha", "p1", 1)
	setOwner(gs, "bravo", "p1", 2)
	setOwner(gs, "charlie", "p2", 1)
	setOwner(gs, "delta", "p2", 1)

	s := &TacticalStrategy{}
	if move := s.DecideAttack(gs, "p1"); move != nil {
		t.Errorf("advantage of 1 should not attack, got %+v", move)
	}

	setOwner(gs, "bravo", "p1", 5)
	move := s.DecideAttack(gs, "p1")
	if move == nil {
		t.Fatal("advantage of 4 should attack")
	}
	if move.From != "bravo" || move.To != "charlie" || move.Armies != 3 {
		t.Errorf("expected bravo -> charlie with 3, got %+v", move)
	}
}

func TestTacticalFortifyFeedsTheFront(t *testing.T) {
	gs := board(t)
	setOwner(gs, "alpha", "p1", 4)
	setOwner(gs, "bravo", "p1", 1)
	setOwner(gs, "charlie", "p2", 1)
	setOwner(gs, "delta", "p2", 1)

	s := &TacticalStrategy{}
	move := s.DecideFortify(gs, "p1")
	if move == nil {
		t.Fatal("expected a fortify move")
	}
	if move.From != "alpha" || move.To != "bravo" || move.Armies != 3 {
		t.Errorf("expected alpha -> bravo with 3, got %+v", move)
	}
}

func TestTacticalFortifyNilWithoutInteriorSurplus(t *testing.T) {
	gs := board(t)
	setOwner(gs, "alpha", "p1", 1)
	setOwner(gs, "bravo", "p1", 5)
	setOwner(gs, "charlie", "p2", 1)
	setOwner(gs, "delta", "p2", 1)

	// The only surplus sits on the border already.
	s := &TacticalStrategy{}
	if move := s.DecideFortify(gs, "p1"); move != nil {
		t.Errorf("expected nil, got %+v", move)
	}
}

func TestContinentalReinforcementTargetsClosestContinent(t *testing.T) {
	gs := board(t)
	setOwner(gs, "alpha", "p1", 1)
	setOwner(gs, "bravo", "p2", 1)
	setOwner(gs, "charlie", "p1", 1)
	setOwner(gs, "delta", "p2", 1)

	// Both continents miss one territory; the tie goes to east, whose owned
	// border member is charlie.
	s := &ContinentalStrategy{}
	p := s.DecideReinforcement(gs, "p1", 3)
	if p == nil {
		t.Fatal("expected a placement")
	}
	if p.TerritoryKey != "charlie" {
		t.Errorf("expected placement on charlie, got %s", p.TerritoryKey)
	}
}

func TestContinentalAttackPrefersCompletingContinent(t *testing.T) {
	gs := board(t)
	// Completing west via alpha -> bravo beats the fatter ratio at charlie;
	// east is not completable with delta dug in.
	setOwner(gs, "alpha", "p1", 5)
	setOwner(gs, "bravo", "p2", 2)
	setOwner(gs, "charlie", "p1", 9)
	setOwner(gs, "delta", "p2", 20)

	s := &ContinentalStrategy{}
	move := s.DecideAttack(gs, "p1")
	if move == nil {
		t.Fatal("expected an attack")
	}
	if move.From != "alpha" || move.To != "bravo" {
		t.Errorf("expected continent-completing alpha -> bravo, got %s -> %s", move.From, move.To)
	}
}

func TestContinentalAttackFallsBackToRatio(t *testing.T) {
	gs := board(t)
	// West cannot be completed (alpha too strong), so the 5:1 ratio at
	// charlie wins.
	setOwner(gs, "alpha", "p2", 10)
	setOwner(gs, "bravo", "p1", 5)
	setOwner(gs, "charlie", "p2", 1)
	setOwner(gs, "delta", "p2", 1)

	s := &ContinentalStrategy{}
	move := s.DecideAttack(gs, "p1")
	if move == nil {
		t.Fatal("expected an attack")
	}
	if move.From != "bravo" || move.To != "charlie" {
		t.Errorf("expected bravo -> charlie, got %s -> %s", move.From, move.To)
	}
}

func TestContinentalAttackDeclinesBadOdds(t *testing.T) {
	gs := board(t)
	setOwner(gs, "alpha", "p2", 10)
	setOwner(gs, "bravo", "p1", 2)
	setOwner(gs, "charlie", "p2", 1)
	setOwner(gs, "delta", "p2", 1)

	// Ratio bravo:charlie is exactly 2.0, below the strict threshold.
	s := &ContinentalStrategy{}
	if move := s.DecideAttack(gs, "p1"); move != nil {
		t.Errorf("expected nil at 2:1 odds, got %+v", move)
	}
}

func TestContinentalFortifyFeedsWeakestBorder(t *testing.T) {
	gs := board(t)
	setOwner(gs, "alpha", "p1", 6)
	setOwner(gs, "bravo", "p1", 1)
	setOwner(gs, "charlie", "p2", 1)
	setOwner(gs, "delta", "p2", 1)

	s := &ContinentalStrategy{}
	move := s.DecideFortify(gs, "p1")
	if move == nil {
		t.Fatal("expected a fortify move")
	}
	if move.From != "alpha" || move.To != "bravo" || move.Armies != 5 {
		t.Errorf("expected alpha -> bravo with 5, got %+v", move)
	}
}
