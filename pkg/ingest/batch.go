package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"fort-chatbot-be/internal/entity"
)

// Batch is a contiguous slice of the dataset. Offset is the position of its first record,
// which keeps ids positional across batches.
type Batch struct {
	Offset int           `json:"offset"`
	Forts  []entity.Fort `json:"forts"`
}

// IDs returns the positional ids of the batch's records.
func (b Batch) IDs() []string {
	ids := make([]string, len(b.Forts))
	for i := range b.Forts {
		ids[i] = strconv.Itoa(b.Offset + i)
	}
	return ids
}

func Batches(forts []entity.Fort, size int) []Batch {
	if size <= 0 {
		size = 50
	}

	batches := make([]Batch, 0, (len(forts)+size-1)/size)
	for start := 0; start < len(forts); start += size {
		end := start + size
		if end > len(forts) {
			end = len(forts)
		}
		batches = append(batches, Batch{Offset: start, Forts: forts[start:end]})
	}
	return batches
}

// LoadRecords reads a JSON array of forts. Bare NaN tokens, which pandas exports
// write for missing values, are read as null.
func LoadRecords(path string) ([]entity.Fort, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read forts file: %w", err)
	}

	var forts []entity.Fort
	if err := json.Unmarshal(replaceBareNaN(raw), &forts); err != nil {
		return nil, fmt.Errorf("parse forts file %s: %w", path, err)
	}
	return forts, nil
}

func replaceBareNaN(raw []byte) []byte {
	if !bytes.Contains(raw, []byte("NaN")) {
		return raw
	}

	out := make([]byte, 0, len(raw))
	inString, escaped := false, false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
		}
		if c == 'N' && bytes.HasPrefix(raw[i:], []byte("NaN")) {
			out = append(out, "null"...)
			i += 2
			continue
		}
		out = append(out, c)
	}
	return out
}
