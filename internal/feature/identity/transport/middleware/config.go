package middleware

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"stockwatch/internal/feature/identity/domain/entity"
)

// Config holds the static gate configuration. It is constructed once at
// startup and passed into AuthRequired; nothing here is read from ambient
// state at request time.
type Config struct {
	// AdminAPIKeys is the set of static keys accepted in the x-api-key
	// header for trusted automation such as the sync trigger.
	AdminAPIKeys []string

	// AdminIdentity is attached to requests authenticated via admin key.
	AdminIdentity entity.Identity
}

// LoadConfig loads gate configuration from environment variables.
// ADMIN_API_KEYS is a comma-separated key list; ADMIN_IDENTITY is a JSON
// identity payload, falling back to a fixed system identity when unset.
func LoadConfig() Config {
	cfg := Config{
		AdminIdentity: entity.Identity{ID: "admin", Name: "system"},
	}

	for _, k := range strings.Split(os.Getenv("ADMIN_API_KEYS"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			cfg.AdminAPIKeys = append(cfg.AdminAPIKeys, k)
		}
	}

	if raw := os.Getenv("ADMIN_IDENTITY"); raw != "" {
		var ident entity.Identity
		if err := json.Unmarshal([]byte(raw), &ident); err != nil {
			slog.Warn("invalid ADMIN_IDENTITY, using default", "error", err)
		} else {
			cfg.AdminIdentity = ident
		}
	}

	return cfg
}
