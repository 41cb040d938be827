package argspec

import (
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"

	prvsnrerrors "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/errors"
)

// suggestionDistance is the maximum edit distance for "did you mean" hints.
const suggestionDistance = 3

// EnumRegistry maps enumeration names to their ordered sets of allowed
// values. The hosting application populates it before catalog load; lookups
// of unregistered names are fatal, explicit errors.
type EnumRegistry struct {
	enums map[string][]string

	mu sync.RWMutex
}

// NewEnumRegistry creates an empty registry.
func NewEnumRegistry() *EnumRegistry {
	return &EnumRegistry{enums: make(map[string][]string)}
}

// Register associates name with an ordered set of allowed values. Registering
// the same name again replaces the previous values.
func (r *EnumRegistry) Register(name string, values []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enums[name] = append([]string(nil), values...)
}

// Resolve returns the ordered values registered under name. It fails with an
// UNKNOWN_ENUM structured error if the name is not registered, including the
// closest registered name as a hint when one is near enough.
func (r *EnumRegistry) Resolve(name string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	values, ok := r.enums[name]
	if !ok {
		if hint := r.closest(name); hint != "" {
			return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeUnknownEnum,
				"enumeration %q is not registered (did you mean %q?)", name, hint)
		}
		return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeUnknownEnum,
			"enumeration %q is not registered", name)
	}
	return append([]string(nil), values...), nil
}

// Names returns the registered enumeration names, sorted.
func (r *EnumRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.enums))
	for name := range r.enums {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// closest returns the registered name nearest to the miss, or "" if none is
// within suggestionDistance. Callers must hold at least the read lock.
func (r *EnumRegistry) closest(name string) string {
	best := ""
	bestDist := suggestionDistance + 1
	for candidate := range r.enums {
		d := levenshtein.ComputeDistance(name, candidate)
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
