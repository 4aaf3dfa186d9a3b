package auth

import (
	"slices"
	"strings"
)

// Role constants define the available user roles in the system.
const (
	// RoleAdmin has full access to all endpoints and methods
	RoleAdmin = "admin"
	// RoleEditor can send messages, trigger hooks and read history
	RoleEditor = "editor"
	// RoleViewer can only read message history
	RoleViewer = "viewer"
)

// Permission defines the allowed operations for a role.
type Permission struct {
	AllowedMethods []string

	// "/*" matches everything; "/api/line/*" matches /api/line and everything below it
	AllowedPaths []string
}

// RolePermissions maps each role to its allowed permissions.
var RolePermissions = map[string]Permission{
	RoleAdmin: {
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedPaths:   []string{"/*"},
	},
	RoleEditor: {
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedPaths: []string{
			"/api/line/*",
		},
	},
	RoleViewer: {
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedPaths: []string{
			"/api/line/messages",
			"/api/line/messages/*",
		},
	},
}

// checkRolePermission checks if a role has permission for a method and path.
// Unknown and empty roles are denied.
func checkRolePermission(role, method, path string) bool {
	perm, exists := RolePermissions[role]
	if !exists {
		return false
	}
	if !slices.Contains(perm.AllowedMethods, method) {
		return false
	}
	return matchesPathPattern(path, perm.AllowedPaths)
}

// matchesPathPattern checks if a path matches any of the allowed patterns.
func matchesPathPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "/*" {
			return true
		}

		if strings.HasSuffix(pattern, "/*") {
			prefix := strings.TrimSuffix(pattern, "/*")
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}

		if path == pattern {
			return true
		}
	}
	return false
}
