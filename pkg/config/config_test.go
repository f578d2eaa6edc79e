package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestGetDefaultConfig_PerService(t *testing.T) {
	RegisterTestingT(t)

	users := GetDefaultConfig(ServiceUsers)
	todos := GetDefaultConfig(ServiceTodos)

	Expect(users.Port).To(Equal("3001"))
	Expect(todos.Port).To(Equal("3002"))
	Expect(todos.Storage.Driver).To(Equal("json"))
	Expect(todos.Storage.DataPath).To(Equal("data"))
	Expect(todos.IsProduction()).To(BeFalse())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	RegisterTestingT(t)

	t.Setenv("PORT", "4000")
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("GIN_MODE", "release")

	cfg, err := Load(ServiceTodos)

	Expect(err).NotTo(HaveOccurred())
	Expect(cfg.Address()).To(Equal("0.0.0.0:4000"))
	Expect(cfg.Storage.Driver).To(Equal("sqlite"))
	Expect(cfg.Cache.Enabled).To(BeTrue())
	Expect(cfg.IsProduction()).To(BeTrue())
	Expect(cfg.EnforceHTTPS).To(BeTrue())
}

func TestLoad_TOMLFileUnderEnv(t *testing.T) {
	RegisterTestingT(t)

	path := filepath.Join(t.TempDir(), "taskboard.toml")
	content := `
port = "5000"
jwt_secret = "from-file"

[storage]
driver = "memory"

[cache]
enabled = true
ttl = "30s"

[rate_limits."POST /todos"]
requests = 3
window = "10s"
by_user = true
`
	Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(ServiceTodos)

	Expect(err).NotTo(HaveOccurred())
	Expect(cfg.Port).To(Equal("5000"))
	Expect(cfg.JWTSecret).To(Equal("from-env"))
	Expect(cfg.Storage.Driver).To(Equal("memory"))
	Expect(cfg.Cache.TTL).To(Equal(30 * time.Second))
	Expect(cfg.RateLimitConfigs).To(HaveKeyWithValue("POST /todos", RateLimitConfig{Requests: 3, Window: 10 * time.Second, ByUser: true}))
}

func TestLoad_InvalidValues(t *testing.T) {
	RegisterTestingT(t)

	t.Setenv("CACHE_ENABLED", "maybe")
	_, err := Load(ServiceTodos)
	Expect(err).To(MatchError(ContainSubstring("CACHE_ENABLED")))

	t.Setenv("CACHE_ENABLED", "")
	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err = Load(ServiceTodos)
	Expect(err).To(MatchError(ContainSubstring("unknown storage driver")))

	t.Setenv("STORAGE_DRIVER", "postgres")
	_, err = Load(ServiceTodos)
	Expect(err).To(MatchError(ContainSubstring("DATABASE_URL")))
}
