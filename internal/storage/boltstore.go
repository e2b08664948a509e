// Package storage is the relational-store collaborator of §6: it
// persists a row per application (identifier, name, program, ordered
// arguments) the moment the registry accepts a creation request. It
// does not drive any supervisor behavior — the supervisor core treats
// it purely as an insertion sink behind the begin_transaction / insert
// / commit interface.
package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/cuemby/ironforged/internal/supervisor"
)

var bucketApplications = []byte("applications")

// BoltStore is a bbolt-backed implementation of supervisor.Persistence,
// adapted from the teacher's key-value store: one bucket, one
// JSON-encoded record per key, upsert-on-write.
type BoltStore struct {
	db *bolt.DB
}

// Open creates or opens the database file "ironforged.db" under dataDir
// and ensures the applications bucket exists.
func Open(dataDir string) (*BoltStore, error) {
	path := filepath.Join(dataDir, "ironforged.db")
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketApplications)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close releases the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// boltTx is the supervisor.Transaction returned by BeginTransaction. It
// buffers inserts in memory and writes them as a single bbolt update
// batch on Commit, matching the begin/insert*/commit shape the
// supervisor core expects without holding a bbolt write lock across the
// whole registry call.
type boltTx struct {
	records []supervisor.ApplicationRecord
}

func (t *boltTx) Insert(record supervisor.ApplicationRecord) error {
	t.records = append(t.records, record)
	return nil
}

// BeginTransaction returns a new buffering transaction.
func (s *BoltStore) BeginTransaction() (supervisor.Transaction, error) {
	return &boltTx{}, nil
}

// Commit writes every record buffered by tx to the applications bucket
// in a single bbolt transaction.
func (s *BoltStore) Commit(tx supervisor.Transaction) error {
	bt, ok := tx.(*boltTx)
	if !ok {
		return fmt.Errorf("storage: commit called with foreign transaction type %T", tx)
	}

	return s.db.Update(func(btx *bolt.Tx) error {
		b := btx.Bucket(bucketApplications)
		for _, record := range bt.records {
			data, err := json.Marshal(applicationRow{
				ID:      record.ID.String(),
				Name:    record.Name,
				Program: record.Program,
				Args:    record.Args,
			})
			if err != nil {
				return fmt.Errorf("storage: marshal record: %w", err)
			}
			if err := b.Put([]byte(record.ID.String()), data); err != nil {
				return fmt.Errorf("storage: put record: %w", err)
			}
		}
		return nil
	})
}

// applicationRow is the on-disk shape of an ApplicationRecord.
type applicationRow struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Program string   `json:"program"`
	Args    []string `json:"args"`
}

// List returns every persisted application record, for diagnostics and
// for reconciling the registry against disk after a restart.
func (s *BoltStore) List() ([]supervisor.ApplicationRecord, error) {
	var out []supervisor.ApplicationRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketApplications)
		return b.ForEach(func(k, v []byte) error {
			var row applicationRow
			if err := json.Unmarshal(v, &row); err != nil {
				return fmt.Errorf("storage: unmarshal record %s: %w", k, err)
			}
			id, err := supervisor.ParseID(row.ID)
			if err != nil {
				return fmt.Errorf("storage: parse id %s: %w", row.ID, err)
			}
			out = append(out, supervisor.ApplicationRecord{
				ID:      id,
				Name:    row.Name,
				Program: row.Program,
				Args:    row.Args,
			})
			return nil
		})
	})
	return out, err
}
