package config

import "jianstory-server/internal/domain"

// serviceRoleConfig swaps the anon key for the service-role key so admin
// tooling bypasses row-level security.
type serviceRoleConfig struct {
	domain.Config
}

func (c serviceRoleConfig) GetSupabaseKey() string {
	if key := c.Config.GetSupabaseServiceKey(); key != "" {
		return key
	}
	return c.Config.GetSupabaseKey()
}

// ServiceRole wraps a config so Supabase clients built from it authenticate
// with the service-role key. Only the import and seed tools use this.
func ServiceRole(cfg domain.Config) domain.Config {
	return serviceRoleConfig{Config: cfg}
}
