package exercise

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies which stack exercise produced an evaluation
type Kind string

const (
	Parens    Kind = "p"
	Factorial Kind = "f"
)

// KindNameToCode maps human-readable kind names to their single-character codes
var KindNameToCode = map[string]string{
	"parens":    "p",
	"factorial": "f",
}

// KindCodeToName maps single-character codes to their human-readable names
var KindCodeToName = map[string]string{
	"p": "parens",
	"f": "factorial",
}

// Name returns the human-readable name, or the raw code if it is unknown
func (k Kind) Name() string {
	if name, ok := KindCodeToName[string(k)]; ok {
		return name
	}
	return string(k)
}

// ParseKind accepts either a kind name or a kind code, case-insensitively
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if code, ok := KindNameToCode[s]; ok {
		return Kind(code), nil
	}
	if _, ok := KindCodeToName[s]; ok {
		return Kind(s), nil
	}
	return "", fmt.Errorf("invalid kind %q. %s", s, ValidKindsText())
}

func ValidKindsText() string {
	validKinds := make([]string, 0, len(KindNameToCode))
	for name := range KindNameToCode {
		validKinds = append(validKinds, name)
	}
	sort.Strings(validKinds)
	return "Valid kinds: " + strings.Join(validKinds, ", ")
}
