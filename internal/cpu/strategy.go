package cpu

import (
	"github.com/tmckee/warfront/pkg/conquest"
)

// Placement is a reinforcement decision: put armies on an owned territory.
type Placement struct {
	TerritoryKey string
	Armies       int
}

// AttackMove is an attack decision between two territories.
type AttackMove struct {
	From   string
	To     string
	Armies int
}

// FortifyMove is an end-of-turn army transfer between owned territories.
type FortifyMove struct {
	From   string
	To     string
	Armies int
}

// Strategy produces one decision per decision point for a CPU player.
// A nil decision means "nothing to do": no placement left, end the attack
// phase, or skip fortification. Every strategy must tolerate a player with
// zero owned territories or zero candidates by returning nil.
type Strategy interface {
	Name() string
	DecideReinforcement(gs *conquest.GameState, playerID string, available int) *Placement
	DecideAttack(gs *conquest.GameState, playerID string) *AttackMove
	DecideFortify(gs *conquest.GameState, playerID string) *FortifyMove
}

// StrategyForDifficulty returns the decision engine for a difficulty tier.
// Unknown or empty difficulties get the medium tier. Expert currently plays
// the same as hard.
func StrategyForDifficulty(difficulty conquest.Difficulty) Strategy {
	switch difficulty {
	case conquest.DifficultyEasy:
		return &HeuristicStrategy{}
	case conquest.DifficultyHard, conquest.DifficultyExpert:
		return &ContinentalStrategy{}
	default:
		return &TacticalStrategy{}
	}
}

// maxAttackArmies returns min(3, armies-1), the most armies an attack from a
// territory with the given garrison may commit.
func maxAttackArmies(armies int) int {
	n := armies - 1
	if n > 3 {
		n = 3
	}
	return n
}
