package scoring

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"healthscore-backend/internal/shared/telemetry"
)

// lookupEntry is one answer-text to sub-score mapping. Entries keep the
// order in which they appear in the backing JSON file: the fuzzy fallback
// contract is first-match in stored order, so that order is load-bearing.
type lookupEntry struct {
	key      string
	keyLower string
	score    float64
}

type answerLookup struct {
	exact   map[string]float64
	entries []lookupEntry
}

// LookupTable maps question refs to answer sub-scores in the [0,5] range.
// It is loaded once at startup and read-only afterwards, so it is safe to
// share across concurrent requests without locking.
type LookupTable struct {
	refs map[string]*answerLookup
}

// NewEmptyLookupTable returns a table with no mappings. Every resolution
// against it fails, which degrades all pillar scores to zero.
func NewEmptyLookupTable() *LookupTable {
	return &LookupTable{refs: map[string]*answerLookup{}}
}

// LoadLookupTable reads the answer map from path. A missing or malformed
// file degrades to an empty table; the condition is logged loudly rather
// than returned, because the scorer must keep producing (zero) scores.
func LoadLookupTable(path string) *LookupTable {
	data, err := os.ReadFile(path)
	if err != nil {
		telemetry.Error("scoring.answer_map_unavailable", map[string]any{
			"path":  path,
			"error": err.Error(),
		})
		return NewEmptyLookupTable()
	}

	table, err := ParseLookupTable(data)
	if err != nil {
		telemetry.Error("scoring.answer_map_malformed", map[string]any{
			"path":  path,
			"error": err.Error(),
		})
		return NewEmptyLookupTable()
	}

	telemetry.Info("scoring.answer_map_loaded", map[string]any{
		"path": path,
		"refs": len(table.refs),
	})
	return table
}

// ParseLookupTable decodes {"ref": {"answer": score, ...}, ...} while
// preserving the order of answer keys. encoding/json maps drop ordering,
// so this walks the token stream directly.
func ParseLookupTable(data []byte) (*LookupTable, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("answer map root: %w", err)
	}

	table := NewEmptyLookupTable()
	for dec.More() {
		refTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("answer map ref: %w", err)
		}
		ref, ok := refTok.(string)
		if !ok {
			return nil, fmt.Errorf("answer map ref: expected string, got %v", refTok)
		}

		lookup, err := parseAnswerLookup(dec)
		if err != nil {
			return nil, fmt.Errorf("answer map ref %s: %w", ref, err)
		}
		table.refs[ref] = lookup
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("answer map root close: %w", err)
	}
	return table, nil
}

func parseAnswerLookup(dec *json.Decoder) (*answerLookup, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	lookup := &answerLookup{exact: map[string]float64{}}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected answer key, got %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return nil, fmt.Errorf("answer %q: expected numeric sub-score, got %v", key, valTok)
		}
		score, err := num.Float64()
		if err != nil {
			return nil, fmt.Errorf("answer %q: %w", key, err)
		}

		lookup.exact[key] = score
		lookup.entries = append(lookup.entries, lookupEntry{
			key:      key,
			keyLower: strings.ToLower(key),
			score:    score,
		})
	}

	return lookup, expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return fmt.Errorf("unexpected end of input")
		}
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// HasRef reports whether the table has any mappings for the given ref.
func (t *LookupTable) HasRef(ref string) bool {
	_, ok := t.refs[ref]
	return ok
}

// Refs returns the number of question refs in the table.
func (t *LookupTable) Refs() int {
	return len(t.refs)
}

// Resolve converts an answer for ref to its sub-score. Exact (case
// sensitive) matches win; otherwise the stored keys are scanned in file
// order and the first key where either lowercased string contains the
// other is used. ok is false when the ref is unknown or nothing matches.
func (t *LookupTable) Resolve(ref, answer string) (float64, bool) {
	lookup, ok := t.refs[ref]
	if !ok {
		return 0, false
	}

	if score, ok := lookup.exact[answer]; ok {
		return score, true
	}

	// First match wins, not best match. Deterministic but deliberately
	// imprecise; changing this to best-match would alter scores for
	// ambiguous inputs.
	answerLower := strings.ToLower(answer)
	for _, entry := range lookup.entries {
		if strings.Contains(entry.keyLower, answerLower) || strings.Contains(answerLower, entry.keyLower) {
			return entry.score, true
		}
	}

	return 0, false
}
