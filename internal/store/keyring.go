package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "dashboard"

// KeyringStore implements the Store interface on top of the system keyring.
// Each document is one keyring item.
type KeyringStore struct {
	ring keyring.Keyring
}

// OpenKeyring returns a configured keyring instance. fileDir is used by
// the encrypted file backend when no OS keychain is available.
func OpenKeyring(fileDir string) (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt("dashboard-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// NewKeyringStore wraps an opened keyring.
func NewKeyringStore(ring keyring.Keyring) *KeyringStore {
	return &KeyringStore{ring: ring}
}

// Get retrieves a document by key from the keyring.
func (s *KeyringStore) Get(_ context.Context, key string) ([]byte, error) {
	item, err := s.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting keyring item %q: %w", key, err)
	}
	return item.Data, nil
}

// Put stores a document by key in the keyring.
func (s *KeyringStore) Put(_ context.Context, key string, value []byte) error {
	err := s.ring.Set(keyring.Item{
		Key:         key,
		Data:        value,
		Label:       serviceName + " " + key,
		Description: "dashboard state",
	})
	if err != nil {
		return fmt.Errorf("setting keyring item %q: %w", key, err)
	}
	return nil
}

// Delete removes a document by key from the keyring.
func (s *KeyringStore) Delete(_ context.Context, key string) error {
	err := s.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting keyring item %q: %w", key, err)
	}
	return nil
}

// Close is a no-op; keyrings hold no open handles.
func (s *KeyringStore) Close() error {
	return nil
}
