package memory

import (
	"sync"

	"github.com/patrickmn/go-cache"

	"github.com/transformerAnt/orange-fitness-backend/internal/entity"
)

// MaxTurns bounds each user's history; the oldest turns are evicted first.
const MaxTurns = 40

// HistoryRepository keeps per-user chat histories in process memory.
// Entries never expire; they live until Reset or process exit. The cache is
// safe for concurrent access and the append read-modify-write is serialized
// by mu, so sequential requests always observe each other's turns.
type HistoryRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewHistoryRepository() *HistoryRepository {
	// No expiration and no janitor: lifecycle is reset-or-process-exit.
	c := cache.New(cache.NoExpiration, 0)
	return &HistoryRepository{
		cache: c,
	}
}

// Append adds one turn to the user's history, creating it if absent, and
// truncates to the most recent MaxTurns entries.
func (r *HistoryRepository) Append(userID string, turn entity.ChatTurn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	turns := r.load(userID)
	turns = append(turns, turn)
	if len(turns) > MaxTurns {
		turns = turns[len(turns)-MaxTurns:]
	}
	r.cache.Set(userID, turns, cache.NoExpiration)
}

// Get returns the user's history, empty when the user is unknown.
func (r *HistoryRepository) Get(userID string) []entity.ChatTurn {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(userID)
}

// Reset removes the user's history entirely. Resetting an unknown user is a
// no-op.
func (r *HistoryRepository) Reset(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Delete(userID)
}

func (r *HistoryRepository) load(userID string) []entity.ChatTurn {
	if x, found := r.cache.Get(userID); found {
		return x.([]entity.ChatTurn)
	}
	return []entity.ChatTurn{}
}
