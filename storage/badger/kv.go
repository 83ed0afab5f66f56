package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/searchlight/storage"
)

// KV implements storage.KV for BadgerDB.
type KV struct {
	backend *Backend
}

var _ storage.KV = (*KV)(nil)

// NewKV creates a key-value store on top of an open backend.
// The backend remains owned by the caller; closing the KV closes the backend.
func NewKV(backend *Backend) *KV {
	return &KV{backend: backend}
}

// Get retrieves the value stored under key.
// Absence is reported via the boolean, not an error.
func (s *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.backend.IsClosed() {
		return nil, false, storage.ErrStorageClosed
	}

	var value []byte
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	}, false)

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func (s *KV) Put(ctx context.Context, key string, value []byte) error {
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(key), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Remove deletes the value stored under key. Removing an absent key is a no-op.
func (s *KV) Remove(ctx context.Context, key string) error {
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete([]byte(key)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close closes the underlying backend.
func (s *KV) Close() error {
	return s.backend.Close()
}
