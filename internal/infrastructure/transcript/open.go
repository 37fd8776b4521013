// Package transcript persists every chat message so a conversation can be
// listed, exported or resumed later.
package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/metekarasubasi/notiva/internal/domain"
	"github.com/metekarasubasi/notiva/internal/ports"
)

// Open returns the store for driver at path. When SQLite cannot be opened the
// JSONL store next to it is used instead and fallback is true.
func Open(driver, path string) (repo ports.TranscriptRepository, fallback bool, err error) {
	switch driver {
	case domain.TranscriptDriverJSONL:
		return NewFileStore(path), false, nil
	case "", domain.TranscriptDriverSQLite:
		store, err := NewSQLiteStore(path)
		if err == nil {
			return store, false, nil
		}
		return NewFileStore(jsonlPath(path)), true, nil
	default:
		return nil, false, fmt.Errorf("unknown transcript driver %q", driver)
	}
}

// Export writes every stored message to w, one JSON object per line.
func Export(ctx context.Context, repo ports.TranscriptRepository, w io.Writer) (int, error) {
	msgs, err := repo.List(ctx, 0)
	if err != nil {
		return 0, err
	}
	enc := json.NewEncoder(w)
	for _, msg := range msgs {
		if err := enc.Encode(msg); err != nil {
			return 0, err
		}
	}
	return len(msgs), nil
}

func jsonlPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl"
}
