package conquest

import "errors"

// Validation errors: the action is rejected and no state is mutated.
var (
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrWrongPhase        = errors.New("action not allowed in current phase")
	ErrNotYourTurn       = errors.New("it is not this player's turn")
	ErrUnknownTerritory  = errors.New("territory does not exist")
	ErrNotOwned          = errors.New("territory is not owned by this player")
	ErrOwnTerritory      = errors.New("cannot attack your own territory")
	ErrNotAdjacent       = errors.New("territories are not adjacent")
	ErrTooFewArmies      = errors.New("not enough armies for this action")
	ErrTooManyArmies     = errors.New("army count exceeds what is available")
)

// Invariant violations: fatal for the action, aborted without mutation.
var (
	ErrNoActivePlayers    = errors.New("no active players remain")
	ErrConquestInvariant  = errors.New("conquest would leave attacking territory empty")
	ErrInvalidAttackCount = errors.New("attack must use between 1 and 3 armies")
)
