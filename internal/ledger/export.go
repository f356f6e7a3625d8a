package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/makuta3933/budget/internal/core"
)

// ExportVersion tags the JSON export envelope schema.
const ExportVersion = "1.0"

// csvBOM lets spreadsheet tools detect UTF-8.
const csvBOM = "\uFEFF"

// ErrMalformedJSON marks an import failure at the parse stage, as opposed
// to a schema validation failure.
var ErrMalformedJSON = errors.New("input is not valid JSON")

// ExportJSON serializes the full sequence into the versioned envelope as
// indented, round-trippable JSON.
func (s *Store) ExportJSON() ([]byte, error) {
	env := core.Export{
		Version:      ExportVersion,
		ExportedAt:   s.now().UTC().Format(time.RFC3339),
		Transactions: s.All(),
	}
	payload, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export envelope: %w", err)
	}
	return payload, nil
}

// ExportCSV renders the sequence as BOM-prefixed UTF-8 CSV with the header
// 日付,タイプ,カテゴリ,金額,メモ. Every data field is quoted with internal
// quotes doubled. The category column shows the catalog name, or the raw
// category id when the catalog has no entry.
func (s *Store) ExportCSV() []byte {
	var b strings.Builder
	b.WriteString(csvBOM)
	b.WriteString("日付,タイプ,カテゴリ,金額,メモ")

	for _, t := range s.All() {
		label := "支出"
		if t.Type == core.Income {
			label = "収入"
		}
		name := t.CategoryID
		if c, ok := core.CategoryByID(t.CategoryID); ok {
			name = c.Name
		}

		fields := []string{
			t.Date,
			label,
			name,
			strconv.FormatInt(t.Amount, 10),
			t.Note,
		}
		b.WriteByte('\n')
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteCSV(f))
		}
	}
	return []byte(b.String())
}

func quoteCSV(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// ImportJSON parses data as an export envelope and, when valid, replaces
// the entire sequence with the imported one and persists it. On any failure
// the store is left untouched. The returned count is the number of imported
// records.
func (s *Store) ImportJSON(ctx context.Context, data []byte) (int, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	env, err := core.DecodeExport(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid export data: %w", err)
	}

	s.mu.Lock()
	s.items = env.Transactions
	s.mu.Unlock()

	s.persist(ctx)
	slog.InfoContext(ctx, "Imported transactions", "count", len(env.Transactions), "version", env.Version)
	return len(env.Transactions), nil
}
