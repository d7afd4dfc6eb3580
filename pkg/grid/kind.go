package grid

import (
	"sort"

	"github.com/matzehuels/gridboard/pkg/errors"
)

// Kind is the static size metadata of a widget type.
type Kind struct {
	Name      string `json:"name"`
	MinW      int    `json:"min_w"`
	MinH      int    `json:"min_h"`
	MaxW      int    `json:"max_w"`
	MaxH      int    `json:"max_h"`
	DefaultW  int    `json:"default_w"`
	DefaultH  int    `json:"default_h"`
	Resizable bool   `json:"resizable"`
}

// Validate checks min <= default <= max on both axes.
func (k Kind) Validate() error {
	if err := errors.ValidateKindName(k.Name); err != nil {
		return err
	}
	if k.MinW <= 0 || k.MinH <= 0 {
		return errors.New(errors.ErrCodeInvalidKind, "kind %q: minimum size must be positive", k.Name)
	}
	if !(k.MinW <= k.DefaultW && k.DefaultW <= k.MaxW) {
		return errors.New(errors.ErrCodeInvalidKind, "kind %q: width constraint violated (min %d, default %d, max %d)",
			k.Name, k.MinW, k.DefaultW, k.MaxW)
	}
	if !(k.MinH <= k.DefaultH && k.DefaultH <= k.MaxH) {
		return errors.New(errors.ErrCodeInvalidKind, "kind %q: height constraint violated (min %d, default %d, max %d)",
			k.Name, k.MinH, k.DefaultH, k.MaxH)
	}
	return nil
}

// ClampW clamps w to the kind's width range.
func (k Kind) ClampW(w int) int { return clamp(w, k.MinW, k.MaxW) }

// ClampH clamps h to the kind's height range.
func (k Kind) ClampH(h int) int { return clamp(h, k.MinH, k.MaxH) }

// Registry holds widget kinds by name.
type Registry struct {
	kinds map[string]Kind
}

// NewRegistry creates a registry from the given kinds.
// It fails on the first kind that does not validate.
func NewRegistry(kinds ...Kind) (*Registry, error) {
	r := &Registry{kinds: make(map[string]Kind, len(kinds))}
	for _, k := range kinds {
		if err := r.Register(k); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry returns a registry with the built-in dashboard widget kinds.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultKinds()...)
	if err != nil {
		panic("grid: invalid built-in kind: " + err.Error())
	}
	return r
}

// Register adds k, replacing any kind with the same name.
func (r *Registry) Register(k Kind) error {
	if err := k.Validate(); err != nil {
		return err
	}
	r.kinds[k.Name] = k
	return nil
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (Kind, bool) {
	k, ok := r.kinds[name]
	return k, ok
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int { return len(r.kinds) }

// Kinds returns every registered kind sorted by name.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, 0, len(r.kinds))
	for _, k := range r.kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// kind builds a resizable kind; the table below reads better positionally.
func kind(name string, minW, minH, maxW, maxH, defW, defH int) Kind {
	return Kind{
		Name: name,
		MinW: minW, MinH: minH,
		MaxW: maxW, MaxH: maxH,
		DefaultW: defW, DefaultH: defH,
		Resizable: true,
	}
}

// DefaultKinds returns the built-in widget kinds of the manager dashboard.
func DefaultKinds() []Kind {
	return []Kind{
		kind("todays-focus", 2, 2, 4, 3, 2, 2),
		kind("executive-summary", 2, 2, 6, 4, 3, 2),
		kind("task-manager", 2, 2, 4, 4, 2, 3),
		kind("project-manager", 2, 2, 4, 4, 2, 3),
		kind("cash-flow", 2, 2, 4, 3, 2, 2),
		kind("live-prices", 1, 2, 2, 3, 1, 2),
		kind("order-pipeline", 2, 2, 5, 4, 3, 2),
		kind("strategic-goals", 2, 2, 4, 4, 2, 3),
		kind("revenue-target", 2, 2, 4, 3, 2, 2),
		kind("profit-product", 2, 2, 4, 3, 2, 2),
		kind("accounts-receivable", 2, 2, 4, 3, 2, 2),
		kind("delivery-trends", 2, 2, 4, 3, 2, 2),
		kind("bottleneck-map", 2, 2, 4, 3, 2, 2),
		kind("team-capacity", 2, 2, 3, 3, 2, 2),
		kind("customer-health", 2, 2, 3, 3, 2, 2),
		kind("sales-pipeline", 2, 2, 4, 3, 2, 2),
		kind("top-customers", 2, 2, 3, 3, 2, 2),
		kind("team-scorecard", 2, 2, 4, 3, 2, 2),
		kind("overdue-tasks", 1, 2, 3, 4, 2, 2),
		kind("custom-chart", 2, 2, 6, 4, 3, 2),
	}
}

// DefaultSeed lists the widget kinds placed on a fresh dashboard, in order.
var DefaultSeed = []string{
	"todays-focus",
	"executive-summary",
	"task-manager",
	"project-manager",
	"cash-flow",
	"live-prices",
	"order-pipeline",
	"strategic-goals",
}
