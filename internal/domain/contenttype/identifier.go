package contenttype

import (
	"fmt"
	"regexp"
	"strings"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier accepts a bare SQL identifier or a schema-qualified
// one ("schema.table"). Anything else, quotes and whitespace included, is
// rejected before it can reach generated SQL.
func ValidIdentifier(name string) error {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	for _, p := range parts {
		if len(p) > 63 || !identPattern.MatchString(p) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
		}
	}
	return nil
}
