package history

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

const (
	recordsKey = "breakout:history"

	// MaxRecords bounds the persisted list; oldest entries fall off.
	MaxRecords = 200
)

// Record is one finished run. Immutable once created.
type Record struct {
	ID         string         `json:"id"`
	Score      int            `json:"score"`
	Level      int            `json:"level"`
	DurationMs int64          `json:"durationMs"`
	CreatedAt  time.Time      `json:"createdAt"`
	Reason     string         `json:"reason"`
	Seed       uint32         `json:"seed"`
	Drops      map[string]int `json:"drops,omitempty"`
}

// Store keeps the bounded newest-first run list in a KV backend.
type Store struct {
	kv KV
}

// NewStore wraps a KV backend. A nil backend degrades to an empty,
// non-persisting store.
func NewStore(kv KV) *Store {
	if kv == nil {
		kv = NewMemoryKV()
	}
	return &Store{kv: kv}
}

// Load returns the persisted records, newest first. Corrupt or partial
// entries are dropped silently; a corrupt blob reads as an empty list.
func (s *Store) Load() []Record {
	blob, err := s.kv.Get(recordsKey)
	if err != nil || len(blob) == 0 {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil
	}

	records := make([]Record, 0, len(raw))
	for _, entry := range raw {
		var r Record
		if err := json.Unmarshal(entry, &r); err != nil {
			continue
		}
		if r.ID == "" || r.Score < 0 || r.Level < 1 {
			continue
		}
		records = append(records, r)
	}
	return records
}

// Append prepends a record and persists the list, truncated to MaxRecords.
// Persistence failures are swallowed: the store tolerates a read-only or
// absent backend.
func (s *Store) Append(r Record) []Record {
	if r.ID == "" {
		r.ID = fmt.Sprintf("%d-%08x", r.CreatedAt.UnixNano(), r.Seed)
	}

	records := append([]Record{r}, s.Load()...)
	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}

	if blob, err := json.Marshal(records); err == nil {
		_ = s.kv.Put(recordsKey, blob)
	}
	return records
}

// Clear deletes all persisted records.
func (s *Store) Clear() error {
	return s.kv.Delete(recordsKey)
}

// Better reports whether a ranks ahead of b: score desc, then level desc,
// then duration asc, then creation time asc. Ties cannot survive the final
// comparison for distinct records, so ordering is deterministic.
func Better(a, b Record) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Level != b.Level {
		return a.Level > b.Level
	}
	if a.DurationMs != b.DurationMs {
		return a.DurationMs < b.DurationMs
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// Ranked returns a copy of records sorted best-first by the scoring
// comparator, independent of storage order.
func Ranked(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return Better(out[i], out[j]) })
	return out
}

// Rank returns the 1-based position of the record with the given id among
// records, or 0 when the id is not present.
func Rank(records []Record, targetID string) int {
	for i, r := range Ranked(records) {
		if r.ID == targetID {
			return i + 1
		}
	}
	return 0
}
