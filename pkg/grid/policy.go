package grid

import (
	"sort"
	"strings"

	"github.com/matzehuels/gridboard/pkg/errors"
)

// Policy names accepted by [ParsePolicy].
const (
	PolicyPush    = "push"
	PolicyArrange = "arrange"
)

// DefaultPolicy is the policy a new [Engine] uses.
const DefaultPolicy = PolicyPush

// Policy resolves the conflicts caused by moving one item.
//
// Resolve receives the current layout and the moved item at its requested
// rectangle. It must not modify l; it returns a new layout with the moved
// item (and anything it displaced) in place, or an error. The engine validates
// the result before committing it.
type Policy interface {
	Name() string
	Resolve(l *Layout, moved Item) (*Layout, error)
}

// ParsePolicy returns the policy with the given name.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicyPush, "":
		return PushPolicy{}, nil
	case PolicyArrange:
		return ArrangePolicy{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown conflict policy %q (want %s or %s)", name, PolicyPush, PolicyArrange)
}

// PolicyNames returns the accepted policy names.
func PolicyNames() []string {
	names := []string{PolicyPush, PolicyArrange}
	sort.Strings(names)
	return names
}
