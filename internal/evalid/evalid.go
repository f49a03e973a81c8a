package evalid

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// IDVersion is the current version of the record ID algorithm
	IDVersion = "v1"
)

// RecordIDV1 represents a parsed v1 record ID
type RecordIDV1 struct {
	Version   string
	KindCode  string
	InputHash string
	Raw       string
}

// String returns the raw record ID string
func (r RecordIDV1) String() string {
	return r.Raw
}

// ParseV1 parses a raw record ID string into a RecordIDV1 struct.
// The expected format is: v1:kindcode:inputhash
func ParseV1(raw string) (RecordIDV1, error) {
	if raw == "" {
		return RecordIDV1{}, fmt.Errorf("record ID cannot be empty")
	}

	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return RecordIDV1{}, fmt.Errorf("invalid record ID format: expected 3 colon-separated parts, got %d", len(parts))
	}

	if parts[0] != IDVersion {
		return RecordIDV1{}, fmt.Errorf("unsupported record ID version: %s (expected %s)", parts[0], IDVersion)
	}

	return RecordIDV1{
		Version:   parts[0],
		KindCode:  parts[1],
		InputHash: parts[2],
		Raw:       raw,
	}, nil
}

// CalculateV1 derives a record ID from the exercise kind and its input.
// The result is formatted as: idversion:kind:base64url(sha256(input)).
// The input may be empty; an empty expression is a legitimate thing to validate.
func CalculateV1(kind, input string) (string, error) {
	if kind == "" {
		return "", fmt.Errorf("kind cannot be empty")
	}

	inputHash := sha256.Sum256([]byte(input))
	inputEncoded := base64.RawURLEncoding.EncodeToString(inputHash[:])

	return fmt.Sprintf("%s:%s:%s", IDVersion, kind, inputEncoded), nil
}

// VerifyV1 checks that raw is the ID CalculateV1 derives for kind and input.
// A mismatch means the record was edited or written by something else.
func VerifyV1(raw, kind, input string) error {
	parsed, err := ParseV1(raw)
	if err != nil {
		return err
	}
	if parsed.KindCode != kind {
		return fmt.Errorf("record ID kind %q does not match record kind %q", parsed.KindCode, kind)
	}

	expected, err := CalculateV1(kind, input)
	if err != nil {
		return err
	}
	if raw != expected {
		return fmt.Errorf("record ID hash does not match input %q", input)
	}
	return nil
}
