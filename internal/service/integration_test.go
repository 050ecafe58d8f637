//go:build integration

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tmckee/warfront/internal/cpu"
	"github.com/tmckee/warfront/internal/repository/postgres"
	redisrepo "github.com/tmckee/warfront/internal/repository/redis"
	"github.com/tmckee/warfront/internal/testutil"
	"github.com/tmckee/warfront/pkg/conquest"
)

// intEnv holds shared integration-test infrastructure.
type intEnv struct {
	db       *sql.DB
	rdb      *goredis.Client
	gameRepo *postgres.GameRepo
	playRepo *postgres.PlayerRepo
	terrRepo *postgres.TerritoryRepo
	cache    *redisrepo.Client
}

var sharedEnv *intEnv

func setupEnv(t *testing.T) *intEnv {
	t.Helper()
	if sharedEnv == nil {
		db := testutil.SetupDB(t)
		rdb := testutil.SetupRedis(t)
		sharedEnv = &intEnv{
			db:       db,
			rdb:      rdb,
			gameRepo: postgres.NewGameRepo(db),
			playRepo: postgres.NewPlayerRepo(db),
			terrRepo: postgres.NewTerritoryRepo(db),
			cache:    redisrepo.NewClientFromPool(rdb),
		}
	}
	testutil.CleanupDB(t, sharedEnv.db)
	testutil.CleanupRedis(t, sharedEnv.rdb)
	return sharedEnv
}

func services(e *intEnv) (*GameService, *TurnService, *CPURunner) {
	bus := NoopBroadcaster{}
	games := NewGameService(e.gameRepo, e.playRepo, e.terrRepo, e.cache, bus, ClassicTopology)
	turns := NewTurnService(e.gameRepo, e.playRepo, e.terrRepo, e.cache, bus, ClassicTopology)
	runner := NewCPURunner(e.gameRepo, e.playRepo, e.terrRepo, e.cache, bus, ClassicTopology, 0)
	games.SetTurnTrigger(runner)
	turns.SetTurnTrigger(runner)
	return games, turns, runner
}

// Full lifecycle against real Postgres and Redis: create, join, start, play a
// human turn, and confirm the cache tracks the live state.
func TestFullGameLifecycle(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	games, turns, _ := services(e)

	conquest.SeedRand(13)
	defer conquest.ResetRand()

	game, err := games.CreateGame(ctx, "integration", "classic", 0, 0, "", 0, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	ada, err := games.JoinGame(ctx, game.ID, "Ada")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := games.JoinGame(ctx, game.ID, "Bob"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := games.StartGame(ctx, game.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	rows, err := e.terrRepo.ListByGame(ctx, game.ID)
	if err != nil {
		t.Fatalf("list territories: %v", err)
	}
	if len(rows) != 42 {
		t.Fatalf("expected 42 territory rows, got %d", len(rows))
	}

	gs, err := turns.GetState(ctx, game.ID)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	target := gs.TerritoriesOf(ada.ID)[0]
	if _, err := turns.PlaceArmies(ctx, game.ID, ada.ID, target, 1); err != nil {
		t.Fatalf("place: %v", err)
	}

	cached, err := e.cache.GetGameState(ctx, game.ID)
	if err != nil {
		t.Fatalf("cache read: %v", err)
	}
	if cached == nil {
		t.Fatal("expected cached state after a move")
	}
	var cachedState conquest.GameState
	if err := json.Unmarshal(cached, &cachedState); err != nil {
		t.Fatalf("unmarshal cached state: %v", err)
	}
	if cachedState.Territories[target].Armies != 2 {
		t.Errorf("cached state stale: expected 2 armies on %s, got %d",
			target, cachedState.Territories[target].Armies)
	}
}

// Two CPUs play a turn-limited game to completion against real storage; the
// finished game must drop its cache entry and record the winner.
func TestCPUMatchToCompletion(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	games, _, _ := services(e)

	conquest.SeedRand(29)
	cpu.SeedCPURng(29)
	defer conquest.ResetRand()
	defer cpu.ResetCPURng()

	game, err := games.CreateGame(ctx, "cpu match", "turn_limit", 0, 3, "", 2, "medium")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := games.StartGame(ctx, game.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		g, err := e.gameRepo.FindByID(ctx, game.ID)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if g.Status == "finished" {
			if g.WinnerID == "" {
				t.Error("finished game must have a winner")
			}
			cached, err := e.cache.GetGameState(ctx, game.ID)
			if err != nil {
				t.Fatalf("cache read: %v", err)
			}
			if cached != nil {
				t.Error("finished game should have no cached state")
			}
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatal("CPU match did not finish in time")
}
