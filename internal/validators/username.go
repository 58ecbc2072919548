package validators

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pro-master/backend/internal/httperr"
)

func usernameRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '_', '.', '@', '+', '-':
		return true
	}
	return false
}

// ValidateUsername accepts letters, digits and _.@+- only. The error lists
// every offending character once, in order of appearance.
func ValidateUsername(name string) error {
	if name == "" {
		return httperr.Invalid("invalid_username", "Username must not be empty.")
	}

	var bad []string
	seen := map[rune]bool{}
	for _, r := range name {
		if usernameRune(r) || seen[r] {
			continue
		}
		seen[r] = true
		bad = append(bad, fmt.Sprintf("%q", r))
	}

	if len(bad) == 0 {
		return nil
	}
	return httperr.Invalid("invalid_username",
		fmt.Sprintf("Username contains disallowed characters: %s.", strings.Join(bad, ", ")))
}
