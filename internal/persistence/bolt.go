package persistence

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/state"
)

const trackerBucket = "tracker"

// BoltGateway keeps the state document in a BoltDB file.
type BoltGateway struct {
	db *bbolt.DB
}

// OpenBolt opens (or creates) a BoltDB file at path.
func OpenBolt(path string) (*BoltGateway, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}
	g := &BoltGateway{db: db}
	if err := g.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return g, nil
}

func (g *BoltGateway) ensureBuckets() error {
	return g.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(trackerBucket)); err != nil {
			return fmt.Errorf("create bucket %s: %w", trackerBucket, err)
		}
		return nil
	})
}

func (g *BoltGateway) Load(ctx context.Context) (state.State, error) {
	if err := ctx.Err(); err != nil {
		return state.State{}, err
	}
	if g == nil || g.db == nil {
		return state.State{}, fmt.Errorf("storage is not configured")
	}

	var payload []byte
	err := g.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(trackerBucket))
		if bucket == nil {
			return fmt.Errorf("tracker bucket is missing")
		}
		raw := bucket.Get([]byte(StateKey))
		if raw == nil {
			return domain.ErrNotFound
		}
		// Bolt values are only valid inside the transaction.
		payload = append([]byte(nil), raw...)
		return nil
	})
	if err != nil {
		return state.State{}, err
	}
	return state.Decode(payload)
}

func (g *BoltGateway) Save(ctx context.Context, st state.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if g == nil || g.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	payload, err := state.Encode(st)
	if err != nil {
		return err
	}
	return g.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(trackerBucket))
		if bucket == nil {
			return fmt.Errorf("tracker bucket is missing")
		}
		return bucket.Put([]byte(StateKey), payload)
	})
}

// Close closes the underlying BoltDB database.
func (g *BoltGateway) Close() error {
	if g == nil || g.db == nil {
		return nil
	}
	return g.db.Close()
}
