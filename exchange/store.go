package exchange

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Store is a durable key-value text store. Get reports ok=false for a
// missing key.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// Collection keys, before prefixing.
const (
	KeyUsers     = "users"
	KeyBooks     = "books"
	KeyFavorites = "favorites"
	KeySession   = "session"
)

// loadJSON decodes the value under key. A missing key yields fallback, and so
// does a value that fails to decode, after a warning is logged. Only store I/O
// errors are returned.
func loadJSON[T any](s Store, key string, fallback T, log *slog.Logger) (T, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return fallback, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return fallback, nil
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.Warn("discarding unreadable collection", slog.String("key", key), slog.String("error", err.Error()))
		return fallback, nil
	}
	return v, nil
}

func saveJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
