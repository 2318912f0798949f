// Package diff computes structural differences between two configuration
// documents. The editor derives its dirty flag from the changed-path set.
package diff

import (
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-configform/pkg/configdoc"
)

// Path locates a changed value as a sequence of nested keys.
type Path []string

// String renders the path in dot notation.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Changed returns the set of paths whose values differ between the two
// documents. A key present in either operand is compared; structurally equal
// values are skipped, nested mappings recurse, and everything else is
// recorded as changed. The result is sorted by dotted path so output is
// stable regardless of map iteration order.
func Changed(before, after configdoc.Document) []Path {
	var changed []Path
	walk(nil, map[string]any(before), map[string]any(after), &changed)
	sort.Slice(changed, func(i, j int) bool {
		return changed[i].String() < changed[j].String()
	})
	return changed
}

// Equal reports whether the two documents are structurally identical.
func Equal(before, after configdoc.Document) bool {
	return len(Changed(before, after)) == 0
}

func walk(prefix Path, before, after map[string]any, changed *[]Path) {
	keys := make(map[string]struct{}, len(before)+len(after))
	for key := range before {
		keys[key] = struct{}{}
	}
	for key := range after {
		keys[key] = struct{}{}
	}

	for key := range keys {
		path := append(append(Path(nil), prefix...), key)
		beforeValue, inBefore := before[key]
		afterValue, inAfter := after[key]

		if inBefore != inAfter {
			*changed = append(*changed, path)
			continue
		}

		beforeChild, beforeIsMap := beforeValue.(map[string]any)
		afterChild, afterIsMap := afterValue.(map[string]any)
		if beforeIsMap && afterIsMap {
			walk(path, beforeChild, afterChild, changed)
			continue
		}

		if !cmp.Equal(beforeValue, afterValue) {
			*changed = append(*changed, path)
		}
	}
}
