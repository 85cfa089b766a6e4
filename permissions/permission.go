// Package permissions holds the route level role table. Owner checks live with each domain.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"medimate/shared/role"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles allowed on one method and route pattern. Skip marks a public route.
type Permission struct {
	Roles  []role.Role `json:"roles"`
	Path   string      `json:"path"`
	Method string      `json:"method"`
	Skip   bool        `json:"skip"`
}

// Allows reports whether r may call the route. An entry without roles admits any authenticated caller.
func (p Permission) Allows(r role.Role) bool {
	if len(p.Roles) == 0 {
		return r.Valid()
	}

	return slices.Contains(p.Roles, r)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func key(method, path string) string {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}

	return strings.ToUpper(method) + " " + path
}

// FindPermissions looks up a chi route pattern. Trailing slashes are ignored.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.index == nil {
		r.build()
	}

	return r.index[key(method, path)]
}

func (r *PermissionData) build() {
	r.index = make(map[string]Permission, len(r.Endpoints))

	for _, endpoint := range r.Endpoints {
		r.index[key(endpoint.Method, endpoint.Path)] = endpoint
	}
}

// Parse decodes a permission table and rejects unknown role names.
func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	for _, endpoint := range permissions.Endpoints {
		for _, r := range endpoint.Roles {
			if !r.Valid() {
				return nil, fmt.Errorf("%w: %q on %s %s", role.ErrUnknownRole, r, endpoint.Method, endpoint.Path)
			}
		}
	}

	permissions.build()

	return &permissions, nil
}

func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded permissions")
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
