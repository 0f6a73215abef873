package mapping

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks a mapping file for structural problems (missing
// required keys) and semantic ones: duplicate sources, chained renames
// that would make the table non-idempotent, and malformed selectors.
// All problems are reported in one combined error.
func Validate(mf *File) error {
	var problems []string

	err := validate.Struct(mf)
	if err != nil {
		problems = append(problems, structuralProblems(err)...)
	}

	problems = append(problems, semanticProblems(mf)...)

	if len(problems) == 0 {
		return nil
	}

	return errors.New(strings.Join(problems, "; "))
}

// structuralProblems converts go-playground/validator errors into plain
// messages.
func structuralProblems(err error) []string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []string{err.Error()}
	}

	var out []string

	for _, e := range validationErrs {
		field := strings.TrimPrefix(e.Namespace(), "File.")

		switch e.Tag() {
		case "required":
			out = append(out, fmt.Sprintf("%s is required", field))
		default:
			out = append(out, fmt.Sprintf("%s is invalid", field))
		}
	}

	return out
}

func semanticProblems(mf *File) []string {
	var out []string

	out = append(out, namespaceProblems(mf.Namespaces)...)
	out = append(out, renameProblems("type", mf.Types)...)
	out = append(out, renameProblems("event", mf.Events)...)
	out = append(out, propertyProblems(mf.Properties)...)
	out = append(out, conditionProblems(mf.Conditions)...)

	return out
}

func namespaceProblems(list []NamespaceRename) []string {
	var out []string

	seen := map[string]bool{}
	for _, ns := range list {
		if seen[ns.Source] {
			out = append(out, fmt.Sprintf("duplicate namespace source %q", ns.Source))
		}

		seen[ns.Source] = true
	}

	return out
}

// renameProblems flags duplicate sources and chained renames. A chain
// is a pair where one entry's target is another entry's source, so
// A -> B -> C could collapse into A -> C on a second application.
func renameProblems(kind string, list RenameList) []string {
	var out []string

	sources := map[string]bool{}
	for _, m := range list {
		if sources[m.Source] {
			out = append(out, fmt.Sprintf("duplicate %s source %q", kind, m.Source))
		}

		sources[m.Source] = true
	}

	for _, m := range list {
		if m.Target != m.Source && sources[m.Target] {
			out = append(out, fmt.Sprintf("chained %s rename: %q maps to %q which is itself renamed", kind, m.Source, m.Target))
		}
	}

	return out
}

func propertyProblems(list PropertyRenames) []string {
	var out []string

	type key struct{ source, owner string }

	seen := map[key]bool{}
	sources := map[string]bool{}

	for _, m := range list {
		k := key{m.Source, m.Owner}
		if seen[k] {
			out = append(out, fmt.Sprintf("duplicate property source %q (owner %q)", m.Source, m.Owner))
		}

		seen[k] = true
		sources[m.Source] = true
	}

	// Chains are flagged across owner scopes: a scoped rename landing on
	// a name another entry consumes is just as order-dependent.
	for _, m := range list {
		if m.Target != m.Source && sources[m.Target] {
			out = append(out, fmt.Sprintf("chained property rename: %q maps to %q which is itself renamed", m.Source, m.Target))
		}
	}

	return out
}

func conditionProblems(list []ConditionRule) []string {
	var out []string

	type key struct{ property, value string }

	seen := map[key]bool{}
	for _, c := range list {
		k := key{c.Property, strings.ToLower(c.Value)}
		if seen[k] {
			out = append(out, fmt.Sprintf("duplicate condition %s=%s", c.Property, c.Value))
		}

		seen[k] = true

		if c.Selector != "" && !strings.HasPrefix(c.Selector, ":") && !strings.HasPrefix(c.Selector, "[") {
			out = append(out, fmt.Sprintf("condition %s=%s: selector %q must start with ':' or '['", c.Property, c.Value, c.Selector))
		}
	}

	return out
}
