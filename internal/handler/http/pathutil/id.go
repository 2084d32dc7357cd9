package pathutil

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractUUID extracts and parses a UUID from a URL path.
// It removes the specified prefix and attempts to parse the remaining string.
//
// Parameters:
//   - path: The full URL path (e.g., "/v1/audits/0b06ba2c-6a51-4d0e-9d52-1f0a7c3c9a10")
//   - prefix: The prefix to remove (e.g., "/v1/audits/")
//
// Returns:
//   - uuid.UUID: The parsed ID
//   - error: ErrInvalidID if the remainder is not a valid UUID
func ExtractUUID(path, prefix string) (uuid.UUID, error) {
	idStr := strings.TrimPrefix(path, prefix)
	if idStr == "" || strings.ContainsRune(idStr, '/') {
		return uuid.Nil, ErrInvalidID
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
