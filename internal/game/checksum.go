package game

import (
	"encoding/json"
	"strconv"
	"unicode/utf16"
)

// Checksum hashes gameID, turn and board into a short base-36 token. Both
// peers compute it independently; a mismatch means their states diverged.
// It is an integrity check, not a signature.
func Checksum(gameID string, turn int, board Board) string {
	encoded, err := json.Marshal(board)
	if err != nil {
		// Board only holds types with infallible encoders.
		encoded = []byte("null")
	}
	input := gameID + "-" + strconv.Itoa(turn) + "-" + string(encoded)
	return strconv.FormatInt(abs64(int64(rollingHash(input))), 36)
}

// rollingHash is h = h*31 + unit over UTF-16 code units with 32-bit
// wraparound, so peers agree regardless of how they store strings.
func rollingHash(s string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(unit)
	}
	return h
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
