package storage

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"rewardsprint/internal/store"
)

const persistTimeout = 5 * time.Second

// Sync binds a FamilyStore to one key of a Storage: the key is read once at
// startup and rewritten after every change. There is no conflict detection,
// the last write wins.
type Sync struct {
	store   *store.FamilyStore
	storage Storage
	key     string

	mu sync.Mutex
}

func NewSync(s *store.FamilyStore, storage Storage, key string) *Sync {
	return &Sync{store: s, storage: storage, key: key}
}

// Hydrate loads the persisted state into the store. A missing key leaves the
// store as it is. Read or decode failures are logged and returned, and the
// store keeps its current state.
func (p *Sync) Hydrate(ctx context.Context) error {
	blob, ok, err := p.storage.Get(ctx, p.key)
	if err != nil {
		log.Printf("Failed to hydrate store: %v", err)
		return err
	}
	if !ok {
		return nil
	}

	state, err := store.UnmarshalState([]byte(blob))
	if err != nil {
		err = fmt.Errorf("decode %s: %w", p.key, err)
		log.Printf("Failed to hydrate store: %v", err)
		return err
	}

	p.store.Hydrate(state)
	return nil
}

// Start subscribes to the store and persists every change until the returned
// function is called
func (p *Sync) Start() func() {
	return p.store.Subscribe(func(store.State) {
		if err := p.Persist(context.Background()); err != nil {
			log.Printf("Failed to persist store: %v", err)
		}
	})
}

// Persist writes the store's current state. It reads the state under the
// write lock rather than using a notified snapshot, so the final write always
// carries the newest change.
func (p *Sync) Persist(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	blob, err := store.MarshalState(p.store.State())
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()
	return p.storage.Set(ctx, p.key, string(blob))
}
