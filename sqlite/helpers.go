package sqlite

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/ficbot"
)

// formatTime formats t as a fixed-width UTC timestamp, so that stored
// timestamps sort chronologically as text.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// hashRecord computes the xxHash of a record and returns it as hex.
func hashRecord(record []byte) string {
	h := xxhash.Sum64(record)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

func decodeFic(record string) (*ficbot.Fic, error) {
	var fic ficbot.Fic
	if err := json.Unmarshal([]byte(record), &fic); err != nil {
		return nil, fmt.Errorf("failed to decode fic record: %w", err)
	}
	return &fic, nil
}

func decodeAuthor(record string) (*ficbot.Author, error) {
	var author ficbot.Author
	if err := json.Unmarshal([]byte(record), &author); err != nil {
		return nil, fmt.Errorf("failed to decode author record: %w", err)
	}
	return &author, nil
}
