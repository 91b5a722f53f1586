package history

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/linguaspark/internal/store"
)

// Repo stores conversation records newest first, keeping at most
// MaxRecords.
type Repo struct {
	mu  sync.Mutex
	kv  store.KV
	log *zap.Logger
}

// NewRepo creates a Repo on top of kv.
func NewRepo(kv store.KV, log *zap.Logger) *Repo {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repo{kv: kv, log: log}
}

// List returns all records, most recent first.
func (r *Repo) List(ctx context.Context) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// Get returns the record with id, or nil when none exists.
func (r *Repo) Get(ctx context.Context, id string) (*Record, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, nil
}

// Upsert replaces the record with the same id in place, or inserts rec at
// the front. The oldest records beyond MaxRecords are dropped.
func (r *Repo) Upsert(ctx context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range records {
		if records[i].ID == rec.ID {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append([]Record{rec}, records...)
	}
	if len(records) > MaxRecords {
		r.log.Debug("evicting old conversations", zap.Int("count", len(records)-MaxRecords))
		records = records[:MaxRecords]
	}
	return r.save(ctx, records)
}

// Clear removes every record.
func (r *Repo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.kv.Delete(ctx, KeyHistory); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (r *Repo) load(ctx context.Context) ([]Record, error) {
	raw, ok, err := r.kv.Get(ctx, KeyHistory)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if !ok {
		return nil, nil
	}
	records, err := decodeRecords(raw)
	if err != nil {
		r.log.Warn("discarding unreadable conversation history", zap.Error(err))
		return nil, nil
	}
	return records, nil
}

func (r *Repo) save(ctx context.Context, records []Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := r.kv.Set(ctx, KeyHistory, data); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}
