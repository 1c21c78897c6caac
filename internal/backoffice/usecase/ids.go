package usecase

import (
	"crypto/rand"
	"encoding/hex"
	mathrand "math/rand"
	"strconv"
	"strings"
	"time"

	"metadata-backoffice/internal/shared/errors"
)

const (
	base36Digits    = "0123456789abcdefghijklmnopqrstuvwxyz"
	idSuffixLength  = 5
	mockIDBytes     = 6
	maxIDGeneration = 16
)

// newMetadataID returns the base36 millisecond clock followed by five random base36 digits.
func newMetadataID() string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 36))
	for i := 0; i < idSuffixLength; i++ {
		b.WriteByte(base36Digits[mathrand.Intn(len(base36Digits))])
	}
	return b.String()
}

// newMockID returns 6 random bytes as 12 hex characters.
func newMockID() string {
	buf := make([]byte, mockIDBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// uniqueID draws ids from gen until one is not taken.
func uniqueID(gen func() string, taken func(id string) bool) (string, error) {
	for attempt := 0; attempt < maxIDGeneration; attempt++ {
		if id := gen(); !taken(id) {
			return id, nil
		}
	}
	return "", errors.NewInternalError("Failed to generate a unique id")
}
