// Package access holds the declarative capability table and the gate that
// checks it. Handlers ask the gate once per route; services never look at roles.
package access

import (
	_ "embed"
	"fmt"
	"sort"

	"assurgest/internal/core/domain"

	"gopkg.in/yaml.v3"
)

//go:embed capabilities.yaml
var defaultTable []byte

type table struct {
	Roles map[string][]string `yaml:"roles"`
}

// Gate answers "may role perform operation"
type Gate struct {
	caps map[domain.Role]map[Operation]struct{}
}

// Default builds the gate from the embedded capability table
func Default() (*Gate, error) {
	return Load(defaultTable)
}

// Load parses a YAML capability table. Unknown operations are rejected so a
// typo never silently denies or grants access.
func Load(data []byte) (*Gate, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse capability table: %w", err)
	}

	known := make(map[Operation]struct{}, len(All))
	for _, op := range All {
		known[op] = struct{}{}
	}

	g := &Gate{caps: make(map[domain.Role]map[Operation]struct{}, len(t.Roles))}
	for role, ops := range t.Roles {
		set := make(map[Operation]struct{}, len(ops))
		for _, raw := range ops {
			if raw == "*" {
				for op := range known {
					set[op] = struct{}{}
				}
				continue
			}
			op := Operation(raw)
			if _, ok := known[op]; !ok {
				return nil, fmt.Errorf("role %s: unknown operation %q", role, raw)
			}
			set[op] = struct{}{}
		}
		g.caps[domain.Role(role)] = set
	}
	return g, nil
}

// Allows reports whether role may perform op
func (g *Gate) Allows(role domain.Role, op Operation) bool {
	_, ok := g.caps[role][op]
	return ok
}

// Authorize returns domain.ErrForbidden when role may not perform op
func (g *Gate) Authorize(role domain.Role, op Operation) error {
	if role == "" {
		return domain.ErrUnauthorized
	}
	if !g.Allows(role, op) {
		return fmt.Errorf("%w: role %s cannot %s", domain.ErrForbidden, role, op)
	}
	return nil
}

// Operations lists what role may do, sorted
func (g *Gate) Operations(role domain.Role) []string {
	ops := make([]string, 0, len(g.caps[role]))
	for op := range g.caps[role] {
		ops = append(ops, string(op))
	}
	sort.Strings(ops)
	return ops
}

// KnownRole reports whether the table defines role
func (g *Gate) KnownRole(role domain.Role) bool {
	_, ok := g.caps[role]
	return ok
}
