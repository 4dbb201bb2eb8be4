package utils

import (
	rndm "math/rand"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateID creates a random alphanumeric string of length n.
func GenerateID(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

func GetUUID() string {
	return uuid.New().String()
}

// --- Multi-value display fields ---

// SplitList takes a comma-separated display string and returns a cleaned
// []string. Order and case are preserved so JoinList(SplitList(s)) survives
// the edit-form round trip for comma-free values.
func SplitList(input string) []string {
	if input == "" {
		return []string{}
	}
	parts := strings.Split(input, ",")
	var values []string
	seen := make(map[string]bool)

	for _, p := range parts {
		v := strings.TrimSpace(p)
		if v == "" {
			continue
		}
		if !seen[v] {
			values = append(values, v)
			seen[v] = true
		}
	}
	return values
}

// JoinList renders a multi-value field back into its display string.
func JoinList(values []string) string {
	return strings.Join(values, ", ")
}

func ContainsIgnoreCase(str, substr string) bool {
	return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
}

// --- Slice Helpers ---

func Contains(slice []string, value string) bool {
	return slices.Contains(slice, value)
}

// --- Directory Helper ---

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
