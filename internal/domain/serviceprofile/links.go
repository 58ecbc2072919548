package serviceprofile

import (
	"fmt"
	"strings"

	"github.com/pro-master/backend/internal/httperr"
)

// ValidateLinks checks a list of related ids submitted with a profile:
// at least one is required when required is set, no id may repeat and
// every id must be in existing.
func ValidateLinks(field string, ids, existing []uint, required bool) error {
	if len(ids) == 0 {
		if required {
			return httperr.Invalid(field+"_required",
				fmt.Sprintf("At least one item is required in %s.", field))
		}
		return nil
	}

	known := make(map[uint]struct{}, len(existing))
	for _, id := range existing {
		known[id] = struct{}{}
	}

	seen := make(map[uint]struct{}, len(ids))
	var missing []string
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return httperr.Invalid("duplicate_"+field,
				fmt.Sprintf("Item %d is repeated in %s.", id, field))
		}
		seen[id] = struct{}{}

		if _, ok := known[id]; !ok {
			missing = append(missing, fmt.Sprint(id))
		}
	}

	if len(missing) > 0 {
		return httperr.Invalid("unknown_"+field,
			fmt.Sprintf("Unknown %s: %s.", field, strings.Join(missing, ", ")))
	}
	return nil
}
