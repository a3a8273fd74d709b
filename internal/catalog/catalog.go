// Package catalog provides the role profiles analyses run against.
// A loaded Catalog is immutable; live reloads swap in a fresh one
// atomically so in-flight analyses keep the snapshot they started with.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"

	apperrors "resumelens/internal/errors"
	"resumelens/internal/types"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

type roleEntry struct {
	Name           string   `mapstructure:"name"`
	Description    string   `mapstructure:"description"`
	RequiredSkills []string `mapstructure:"requiredSkills"`
}

type catalogFile struct {
	Categories map[string][]roleEntry `mapstructure:"categories"`
}

// Catalog is a read-only set of role profiles keyed by category and
// role name. All lookups are case-insensitive.
type Catalog struct {
	categories []string
	roles      map[string][]types.RoleProfile // category -> roles in file order
	index      map[string]types.RoleProfile   // "category/role" -> profile
}

// LoadDefault parses the embedded catalog. The embedded file is
// validated at build time by the package tests, so a failure here
// means the binary itself is broken.
func LoadDefault() (*Catalog, error) {
	return parse(defaultCatalogYAML)
}

// LoadFile reads a catalog override from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewIOError(apperrors.ErrCodeFileNotReadable,
			fmt.Sprintf("cannot read catalog file: %s", path), err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, apperrors.NewConfigError(apperrors.ErrCodeInvalidCatalog,
			"catalog is not valid YAML", err)
	}

	var file catalogFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, apperrors.NewConfigError(apperrors.ErrCodeInvalidCatalog,
			"catalog has an unexpected structure", err)
	}
	if len(file.Categories) == 0 {
		return nil, apperrors.NewConfigError(apperrors.ErrCodeInvalidCatalog,
			"catalog defines no categories", nil)
	}

	c := &Catalog{
		roles: make(map[string][]types.RoleProfile, len(file.Categories)),
		index: make(map[string]types.RoleProfile),
	}
	for category, entries := range file.Categories {
		key := normalize(category)
		for _, entry := range entries {
			if strings.TrimSpace(entry.Name) == "" {
				return nil, apperrors.NewConfigError(apperrors.ErrCodeInvalidCatalog,
					fmt.Sprintf("category %q contains a role without a name", category), nil)
			}
			profile := types.RoleProfile{
				Category:       key,
				Name:           entry.Name,
				Description:    entry.Description,
				RequiredSkills: entry.RequiredSkills,
			}
			c.roles[key] = append(c.roles[key], profile)
			c.index[key+"/"+normalize(entry.Name)] = profile
		}
		c.categories = append(c.categories, key)
	}
	sort.Strings(c.categories)
	return c, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Categories lists the category keys in sorted order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Roles lists the profiles of one category in file order.
func (c *Catalog) Roles(category string) ([]types.RoleProfile, error) {
	roles, ok := c.roles[normalize(category)]
	if !ok {
		return nil, unknownRole(category, "")
	}
	out := make([]types.RoleProfile, len(roles))
	copy(out, roles)
	return out, nil
}

// Resolve looks up one role profile by category and role name.
func (c *Catalog) Resolve(category, role string) (types.RoleProfile, error) {
	profile, ok := c.index[normalize(category)+"/"+normalize(role)]
	if !ok {
		return types.RoleProfile{}, unknownRole(category, role)
	}
	return profile, nil
}

// Len reports the total number of roles across all categories.
func (c *Catalog) Len() int {
	return len(c.index)
}

func unknownRole(category, role string) error {
	msg := fmt.Sprintf("unknown category: %s", category)
	if role != "" {
		msg = fmt.Sprintf("unknown role: %s/%s", category, role)
	}
	return apperrors.NewValidationError(apperrors.ErrCodeUnknownRole, msg, nil).
		WithContext("category", category).
		WithContext("role", role)
}
