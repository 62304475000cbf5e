package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds all the settings of the console. Values come from defaults,
// an optional config/.env.<env> file and environment variables (prefixed
// with the current ENV, eg. PROD_SECRETKEY).
type Config struct {
	Debug        bool
	TestMode     bool
	AppName      string
	SecretKey    string
	Env          string // DEV (default), TEST, QA, PROD
	Build        string
	RollbarToken string

	Server struct {
		Host            string
		Port            int
		ShutdownTimeout time.Duration
	}

	API struct {
		// BaseURL of the school REST backend, eg. https://api.school.cd.
		// Empty in DEV/TEST mode means the seeded in-memory backend is used.
		BaseURL string
	}

	SessionCookie struct {
		Name   string
		MaxAge time.Duration
	}
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LoadConfig reads the configuration for the current ENV.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Shule")
	v.SetDefault("secretKey", "")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("api.baseURL", "")
	v.SetDefault("sessionCookie.name", "shule_session")
	v.SetDefault("sessionCookie.maxAge", 24*time.Hour)

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetDefault("env", env)
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}

	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		return nil, errors.Wrap(err, "unmarshalling config")
	}
	return conf, nil
}
