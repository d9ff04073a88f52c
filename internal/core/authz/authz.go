// Package authz is the role gate: a pure allow/deny decision over a closed
// role set fixed at startup.
package authz

import "github.com/99minutos/auth-service/internal/core/domain"

// RoleSet is the closed set of roles permitted to reach a resource.
type RoleSet map[string]struct{}

func NewRoleSet(roles ...string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Authorize grants access iff role is a member of the set. A role outside
// the set is always forbidden, even when it came from an otherwise valid
// token.
func (s RoleSet) Authorize(role string) error {
	if _, ok := s[role]; !ok {
		return domain.ErrForbidden
	}
	return nil
}
