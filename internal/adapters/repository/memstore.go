package repository

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/samprox/tally/internal/domain/model"
)

// memStore shards records by ID hash so concurrent edits from separate
// sessions don't contend on one lock.
type memStore struct {
	shards []*shard
}

type shard struct {
	mu      sync.RWMutex
	records map[string]model.Record
}

// NewMemStore creates an in-memory record store.
func NewMemStore(opts ...Option) Store {
	s := &memStore{}
	cfg := storeConfig{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(&cfg)
	}
	s.shards = make([]*shard, cfg.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{records: make(map[string]model.Record)}
	}
	return s
}

func (s *memStore) shardFor(id string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

func (s *memStore) Put(_ context.Context, rec model.Record) error {
	if rec.ID == "" {
		return ErrMissingID
	}
	sh := s.shardFor(rec.ID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.records[rec.ID] = rec
	return nil
}

func (s *memStore) Get(_ context.Context, id string) (model.Record, error) {
	sh := s.shardFor(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	rec, ok := sh.records[id]
	if !ok {
		return model.Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	sh := s.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if _, ok := sh.records[id]; !ok {
		return ErrNotFound
	}
	delete(sh.records, id)
	return nil
}

func (s *memStore) List(_ context.Context) ([]model.Record, error) {
	var out []model.Record
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, rec := range sh.records {
			out = append(out, rec)
		}
		sh.mu.RUnlock()
	}
	// Creation order keeps listings stable across calls; IDs break ties
	// for records created within the same tick.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memStore) Count(_ context.Context) int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.records)
		sh.mu.RUnlock()
	}
	return n
}
