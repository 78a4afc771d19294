package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jay-reddin/api-keys/internal/domain/model"
)

// ErrNoKeysFound is returned when neither the JSON parser nor the line
// parser produced any candidate records.
var ErrNoKeysFound = errors.New("no API keys found in the imported file")

// ErrAllDuplicate is returned when every candidate's label already exists
// in the current collection.
var ErrAllDuplicate = errors.New("all keys in the imported file already exist")

// InvalidRecordError reports the first candidate missing a label or key.
// The whole import is aborted; there is no partial import.
type InvalidRecordError struct {
	Index  int
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid key record at position %d: %s", e.Index+1, e.Reason)
}

// importFormat tags which parser produced a candidate list, so format
// detection is an explicit decision rather than error-driven control flow.
type importFormat int

const (
	formatNone importFormat = iota
	formatJSON
	formatLines
)

// candidate is a parsed-but-not-yet-merged record.
type candidate struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Key       string `json:"key"`
	CreatedAt int64  `json:"createdAt"`
}

// MergeImport runs the import pipeline as a pure function of the current
// collection and the uploaded file bytes: parse, validate, dedup by label
// against current, then append the survivors in their original relative
// order with ids and timestamps defaulted. Returns the merged collection
// and how many records were appended. The caller is responsible for
// persisting the result and for discarding it when persistence fails.
func MergeImport(current []model.APIKey, data []byte, now func() time.Time, newID func() string) ([]model.APIKey, int, error) {
	candidates, format := parseCandidates(data)
	if format == formatNone {
		return nil, 0, ErrNoKeysFound
	}

	for i, c := range candidates {
		if c.Label == "" {
			return nil, 0, &InvalidRecordError{Index: i, Reason: "missing label"}
		}
		if c.Key == "" {
			return nil, 0, &InvalidRecordError{Index: i, Reason: "missing key"}
		}
	}

	existing := make(map[string]struct{}, len(current))
	for _, k := range current {
		existing[k.Label] = struct{}{}
	}

	// Dedup is against the current collection only: two candidates sharing
	// a label within one file are both appended.
	fresh := candidates[:0:0]
	for _, c := range candidates {
		if _, dup := existing[c.Label]; !dup {
			fresh = append(fresh, c)
		}
	}
	if len(fresh) == 0 {
		return nil, 0, ErrAllDuplicate
	}

	merged := make([]model.APIKey, 0, len(current)+len(fresh))
	merged = append(merged, current...)
	for _, c := range fresh {
		if c.ID == "" {
			c.ID = newID()
		}
		if c.CreatedAt == 0 {
			c.CreatedAt = now().UnixMilli()
		}
		merged = append(merged, model.APIKey{
			ID:        c.ID,
			Label:     c.Label,
			Key:       c.Key,
			CreatedAt: c.CreatedAt,
		})
	}

	return merged, len(fresh), nil
}

// parseCandidates detects the upload format. JSON is attempted first; when
// the bytes are not a JSON array with at least one usable entry, the line
// format is the fallback.
func parseCandidates(data []byte) ([]candidate, importFormat) {
	if candidates, ok := parseJSONCandidates(data); ok {
		return candidates, formatJSON
	}

	candidates := parseLineCandidates(string(data))
	if len(candidates) == 0 {
		return nil, formatNone
	}
	return candidates, formatLines
}

// parseJSONCandidates decodes data as a JSON array of key objects. Array
// elements that are not objects are skipped. ok is false when the bytes do
// not decode as an array, or when no element carries both a label and a
// key; partial objects are kept as candidates so validation can reject
// them explicitly once the JSON path is chosen.
func parseJSONCandidates(data []byte) ([]candidate, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, false
	}

	var candidates []candidate
	usable := false
	for _, raw := range elems {
		var c candidate
		if err := json.Unmarshal(raw, &c); err != nil {
			continue
		}
		candidates = append(candidates, c)
		if c.Label != "" && c.Key != "" {
			usable = true
		}
	}

	if !usable {
		return nil, false
	}
	return candidates, true
}

// parseLineCandidates parses the PROVIDER=/KEY= text block format. An
// accumulator collects label and secret; a blank line or a # comment
// terminates a record, emitting it only when both fields are present. A
// partial accumulator deliberately survives a terminator into the
// following lines.
func parseLineCandidates(text string) []candidate {
	var candidates []candidate
	var label, secret string

	flush := func() {
		if label == "" || secret == "" {
			return
		}
		candidates = append(candidates, candidate{Label: label, Key: secret})
		label, secret = "", ""
	}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)

		if line == "" || strings.HasPrefix(line, "#") {
			flush()
			continue
		}

		switch {
		case strings.HasPrefix(line, "PROVIDER="):
			if v := cleanLineValue(line[len("PROVIDER="):]); v != "" {
				label = v
			}
		case strings.HasPrefix(line, "KEY="):
			secret = cleanLineValue(line[len("KEY="):])
		case strings.HasPrefix(line, "USERNAME="):
			// Recognized but not mapped to any record field.
		}
	}
	flush()

	return candidates
}

// cleanLineValue trims surrounding whitespace and strips trailing commas.
func cleanLineValue(v string) string {
	return strings.TrimRight(strings.TrimSpace(v), ",")
}
