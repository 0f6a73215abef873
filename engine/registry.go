package engine

import (
	"fmt"
	"sort"
)

// Registry holds the registered rules bucketed by category. Rules are
// probed for their categories once at registration, and every bucket
// keeps a stable priority order: higher priority first, registration
// order among equals.
type Registry struct {
	serial int

	elements     []registered[ElementRule]
	properties   []registered[PropertyRule]
	extensions   []registered[ExtensionRule]
	restructures []registered[RestructureRule]
	cleanups     []registered[CleanupRule]
}

// registered pairs a rule with its registration serial so equal
// priorities sort deterministically even after re-sorting.
type registered[R Rule] struct {
	rule   R
	serial int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register probes each rule for its categories and files it into the
// matching buckets. A rule implementing no category interface is a
// programming error and rejects the whole call.
func (r *Registry) Register(rules ...Rule) error {
	for _, rule := range rules {
		if err := r.register(rule); err != nil {
			return err
		}
	}

	return nil
}

// MustRegister is Register for static rule sets assembled at startup.
func (r *Registry) MustRegister(rules ...Rule) {
	if err := r.Register(rules...); err != nil {
		panic(err)
	}
}

func (r *Registry) register(rule Rule) error {
	r.serial++

	categories := 0

	if er, ok := rule.(ElementRule); ok {
		r.elements = insertSorted(r.elements, registered[ElementRule]{er, r.serial})
		categories++
	}

	if pr, ok := rule.(PropertyRule); ok {
		r.properties = insertSorted(r.properties, registered[PropertyRule]{pr, r.serial})
		categories++
	}

	if xr, ok := rule.(ExtensionRule); ok {
		r.extensions = insertSorted(r.extensions, registered[ExtensionRule]{xr, r.serial})
		categories++
	}

	if rr, ok := rule.(RestructureRule); ok {
		r.restructures = insertSorted(r.restructures, registered[RestructureRule]{rr, r.serial})
		categories++
	}

	if cr, ok := rule.(CleanupRule); ok {
		r.cleanups = insertSorted(r.cleanups, registered[CleanupRule]{cr, r.serial})
		categories++
	}

	if categories == 0 {
		return fmt.Errorf("rule %q implements no dispatch category", rule.Name())
	}

	return nil
}

// insertSorted re-sorts the bucket after appending. Buckets are small
// and registration happens once at startup.
func insertSorted[R Rule](bucket []registered[R], entry registered[R]) []registered[R] {
	bucket = append(bucket, entry)

	sort.SliceStable(bucket, func(i, j int) bool {
		if bucket[i].rule.Priority() != bucket[j].rule.Priority() {
			return bucket[i].rule.Priority() > bucket[j].rule.Priority()
		}

		return bucket[i].serial < bucket[j].serial
	})

	return bucket
}

// Len returns the number of category registrations, counting a rule
// once per category it serves.
func (r *Registry) Len() int {
	return len(r.elements) + len(r.properties) + len(r.extensions) + len(r.restructures) + len(r.cleanups)
}

// ElementRules returns the element bucket in dispatch order.
func (r *Registry) ElementRules() []ElementRule {
	return unwrap(r.elements)
}

// PropertyRules returns the property bucket in dispatch order.
func (r *Registry) PropertyRules() []PropertyRule {
	return unwrap(r.properties)
}

// ExtensionRules returns the extension bucket in dispatch order.
func (r *Registry) ExtensionRules() []ExtensionRule {
	return unwrap(r.extensions)
}

// RestructureRules returns the restructure bucket in dispatch order.
func (r *Registry) RestructureRules() []RestructureRule {
	return unwrap(r.restructures)
}

// CleanupRules returns the cleanup bucket in dispatch order.
func (r *Registry) CleanupRules() []CleanupRule {
	return unwrap(r.cleanups)
}

func unwrap[R Rule](bucket []registered[R]) []R {
	out := make([]R, len(bucket))
	for i, entry := range bucket {
		out[i] = entry.rule
	}

	return out
}

// needsTypes reports whether a rule asks for the typed layer.
func needsTypes(rule Rule) bool {
	tr, ok := rule.(TypedRule)
	return ok && tr.NeedsTypedView()
}
