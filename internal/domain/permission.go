package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// WildcardAction is the action-position wildcard: "scope:*" grants every
// action within scope.
const WildcardAction = "*"

// permissionNamePattern matches "scope:action" where scope is one or more
// lowercase letters and action is either one or more lowercase letters or the
// literal wildcard "*".
var permissionNamePattern = regexp.MustCompile(`^[a-z]+:([a-z]+|\*)$`)

// Permission is a single grantable capability, named "scope:action". The
// all-wildcard permission "*:*" grants every permission.
type Permission struct {
	ID          uuid.UUID
	Name        string
	Description string
}

// ValidPermissionName reports whether name matches the "scope:action" format.
func ValidPermissionName(name string) bool {
	return permissionNamePattern.MatchString(name)
}

// SplitPermissionName splits "scope:action" into its two parts. It assumes
// name has already passed ValidPermissionName.
func SplitPermissionName(name string) (scope, action string) {
	parts := strings.SplitN(name, ":", 2)
	if len(parts) != 2 {
		return name, ""
	}
	return parts[0], parts[1]
}

// PermissionSatisfies reports whether the permission set granted contains a
// permission matching required ("scope:action"), honoring wildcards in
// either position: "*:*", "scope:*", "*:action", or the exact match.
func PermissionSatisfies(granted map[string]struct{}, required string) bool {
	scope, action := SplitPermissionName(required)

	candidates := [...]string{
		"*:*",
		scope + ":*",
		"*:" + action,
		scope + ":" + action,
	}
	for _, c := range candidates {
		if _, ok := granted[c]; ok {
			return true
		}
	}
	return false
}
