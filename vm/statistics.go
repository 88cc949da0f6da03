package vm

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Statistics tallies per-mnemonic execution counts, grounded on the
// teacher's vm/statistics.go performance-statistics module but trimmed
// to the counters a RV32I driver can usefully report (no cache/pipeline
// model exists to measure -- spec §1 explicitly excludes timing).
type Statistics struct {
	Total  uint64
	ByOp   map[string]uint64
}

// NewStatistics creates an empty counter set.
func NewStatistics() *Statistics {
	return &Statistics{ByOp: make(map[string]uint64)}
}

// Reset clears every counter.
func (s *Statistics) Reset() {
	s.Total = 0
	s.ByOp = make(map[string]uint64)
}

// Record tallies one executed instruction.
func (s *Statistics) Record(op Op) {
	s.Total++
	s.ByOp[op.Mnemonic()]++
}

type statEntry struct {
	Mnemonic string `json:"mnemonic"`
	Count    uint64 `json:"count"`
}

// ExportJSON writes total instruction count plus per-mnemonic counts,
// most-frequent first.
func (s *Statistics) ExportJSON(w io.Writer) error {
	entries := make([]statEntry, 0, len(s.ByOp))
	for name, count := range s.ByOp {
		entries = append(entries, statEntry{Mnemonic: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Mnemonic < entries[j].Mnemonic
	})

	payload := struct {
		Total        uint64      `json:"total_instructions"`
		ByMnemonic   []statEntry `json:"by_mnemonic"`
	}{Total: s.Total, ByMnemonic: entries}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// String renders a short human-readable summary.
func (s *Statistics) String() string {
	return fmt.Sprintf("instructions executed: %d, distinct mnemonics: %d", s.Total, len(s.ByOp))
}
