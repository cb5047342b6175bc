package store

import (
	"context"
	"fmt"
)

// Keys lists the stored keys in lexical order.
func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.SelectContext(ctx, &keys, "SELECT key FROM kv ORDER BY key"); err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	return keys, nil
}
