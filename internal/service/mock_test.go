package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/tmckee/warfront/internal/model"
)

// In-memory repository fakes. All of them are safe for concurrent use since
// the CPU runner accesses them from its own goroutine.

type mockGameRepo struct {
	mu    sync.Mutex
	games map[string]*model.Game
	play  *mockPlayerRepo
}

func newMockGameRepo(play *mockPlayerRepo) *mockGameRepo {
	return &mockGameRepo{games: make(map[string]*model.Game), play: play}
}

func (m *mockGameRepo) Create(_ context.Context, name, mode string, dominationPercent, turnLimit int, mapName string) (*model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := &model.Game{
		ID:                fmt.Sprintf("game-%d", len(m.games)+1),
		Name:              name,
		Status:            "waiting",
		Phase:             "setup",
		Mode:              mode,
		DominationPercent: dominationPercent,
		TurnLimit:         turnLimit,
		MapName:           mapName,
		TurnNumber:        1,
		CreatedAt:         time.Now(),
	}
	m.games[g.ID] = g
	return g, nil
}

func (m *mockGameRepo) FindByID(_ context.Context, id string) (*model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	cp.Players = m.play.byGame(id)
	return &cp, nil
}

func (m *mockGameRepo) ListOpen(_ context.Context) ([]model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Game
	for _, g := range m.games {
		if g.Status == "waiting" {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *mockGameRepo) ListInProgress(_ context.Context) ([]model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Game
	for _, g := range m.games {
		if g.Status == "in_progress" {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *mockGameRepo) SaveState(_ context.Context, g *model.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.games[g.ID]
	if !ok {
		return fmt.Errorf("game %s not found", g.ID)
	}
	stored.Status = g.Status
	stored.Phase = g.Phase
	stored.CurrentPlayerIndex = g.CurrentPlayerIndex
	stored.TurnNumber = g.TurnNumber
	stored.ReinforcementsRemaining = g.ReinforcementsRemaining
	stored.WinnerID = g.WinnerID
	return nil
}

func (m *mockGameRepo) SetStarted(_ context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := m.games[gameID]
	g.Status = "in_progress"
	g.Phase = "reinforcement"
	now := time.Now()
	g.StartedAt = &now
	return nil
}

func (m *mockGameRepo) SetFinished(_ context.Context, gameID, winnerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := m.games[gameID]
	g.Status = "finished"
	g.Phase = "game_over"
	g.WinnerID = winnerID
	now := time.Now()
	g.FinishedAt = &now
	return nil
}

func (m *mockGameRepo) Delete(_ context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, gameID)
	return nil
}

type mockPlayerRepo struct {
	mu      sync.Mutex
	players map[string]*model.Player
	seq     int
}

func newMockPlayerRepo() *mockPlayerRepo {
	return &mockPlayerRepo{players: make(map[string]*model.Player)}
}

func (m *mockPlayerRepo) byGame(gameID string) []model.Player {
	var result []model.Player
	for _, p := range m.players {
		if p.GameID == gameID {
			result = append(result, *p)
		}
	}
	// Stable turn order.
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].TurnOrder < result[i].TurnOrder {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result
}

func (m *mockPlayerRepo) Join(_ context.Context, gameID, name, color, playerType, difficulty string, turnOrder int) (*model.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p := &model.Player{
		ID:         fmt.Sprintf("player-%d", m.seq),
		GameID:     gameID,
		Name:       name,
		Color:      color,
		Type:       playerType,
		Difficulty: difficulty,
		TurnOrder:  turnOrder,
		JoinedAt:   time.Now(),
	}
	m.players[p.ID] = p
	return p, nil
}

func (m *mockPlayerRepo) FindByID(_ context.Context, id string) (*model.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockPlayerRepo) ListByGame(_ context.Context, gameID string) ([]model.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byGame(gameID), nil
}

func (m *mockPlayerRepo) ListActiveByGame(_ context.Context, gameID string) ([]model.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Player
	for _, p := range m.byGame(gameID) {
		if !p.Eliminated {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockPlayerRepo) SetEliminated(_ context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.players[playerID]; ok {
		p.Eliminated = true
	}
	return nil
}

func (m *mockPlayerRepo) Leave(_ context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.players, playerID)
	return nil
}

type mockTerritoryRepo struct {
	mu          sync.Mutex
	territories map[string]map[string]*model.Territory // gameID -> key -> row
}

func newMockTerritoryRepo() *mockTerritoryRepo {
	return &mockTerritoryRepo{territories: make(map[string]map[string]*model.Territory)}
}

func (m *mockTerritoryRepo) BulkCreate(_ context.Context, territories []model.Territory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range territories {
		if m.territories[t.GameID] == nil {
			m.territories[t.GameID] = make(map[string]*model.Territory)
		}
		cp := t
		cp.ID = fmt.Sprintf("terr-%s-%s", t.GameID, t.Key)
		m.territories[t.GameID][t.Key] = &cp
	}
	return nil
}

func (m *mockTerritoryRepo) ListByGame(_ context.Context, gameID string) ([]model.Territory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Territory
	for _, t := range m.territories[gameID] {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTerritoryRepo) ListByOwner(_ context.Context, gameID, ownerID string) ([]model.Territory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Territory
	for _, t := range m.territories[gameID] {
		if t.OwnerID == ownerID {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTerritoryRepo) FindByGameAndKey(_ context.Context, gameID, key string) (*model.Territory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.territories[gameID][key]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *mockTerritoryRepo) ListAttackCapable(_ context.Context, gameID, ownerID string) ([]model.Territory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byKey := m.territories[gameID]
	var result []model.Territory
	for _, t := range byKey {
		if t.OwnerID != ownerID || t.Armies <= 1 {
			continue
		}
		for _, nk := range t.NeighborKeys {
			if n, ok := byKey[nk]; ok && n.OwnerID != ownerID {
				result = append(result, *t)
				break
			}
		}
	}
	return result, nil
}

func (m *mockTerritoryRepo) SaveAll(_ context.Context, gameID string, territories []model.Territory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range territories {
		if stored, ok := m.territories[gameID][t.Key]; ok {
			stored.OwnerID = t.OwnerID
			stored.Armies = t.Armies
		}
	}
	return nil
}

type mockCache struct {
	mu     sync.Mutex
	states map[string]json.RawMessage
}

func newMockCache() *mockCache {
	return &mockCache{states: make(map[string]json.RawMessage)}
}

func (m *mockCache) SetGameState(_ context.Context, gameID string, state json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[gameID] = state
	return nil
}

func (m *mockCache) GetGameState(_ context.Context, gameID string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[gameID], nil
}

func (m *mockCache) DeleteGameData(_ context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, gameID)
	return nil
}

// recordingBroadcaster captures broadcast events for assertions.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	GameID string
	Type   string
	Data   any
}

func (b *recordingBroadcaster) BroadcastGameEvent(gameID, eventType string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{GameID: gameID, Type: eventType, Data: data})
}

func (b *recordingBroadcaster) typesSeen() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var types []string
	for _, e := range b.events {
		types = append(types, e.Type)
	}
	return types
}

func (b *recordingBroadcaster) sawType(eventType string) bool {
	for _, t := range b.typesSeen() {
		if t == eventType {
			return true
		}
	}
	return false
}

// testEnv bundles a full in-memory service stack.
type testEnv struct {
	gameRepo *mockGameRepo
	playRepo *mockPlayerRepo
	terrRepo *mockTerritoryRepo
	cache    *mockCache
	bus      *recordingBroadcaster
	games    *GameService
	turns    *TurnService
	runner   *CPURunner
}

func newTestEnv() *testEnv {
	playRepo := newMockPlayerRepo()
	env := &testEnv{
		gameRepo: newMockGameRepo(playRepo),
		playRepo: playRepo,
		terrRepo: newMockTerritoryRepo(),
		cache:    newMockCache(),
		bus:      &recordingBroadcaster{},
	}
	env.games = NewGameService(env.gameRepo, env.playRepo, env.terrRepo, env.cache, env.bus, ClassicTopology)
	env.turns = NewTurnService(env.gameRepo, env.playRepo, env.terrRepo, env.cache, env.bus, ClassicTopology)
	env.runner = NewCPURunner(env.gameRepo, env.playRepo, env.terrRepo, env.cache, env.bus, ClassicTopology, 0)
	return env
}
