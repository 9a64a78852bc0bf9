package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	auth "github.com/goliatone/go-auth-service"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "AUTH_"

const (
	LogFormatPretty = "pretty"
	LogFormatPlain  = "plain"
)

// Config is the process configuration, loaded from AUTH_* variables
type Config struct {
	Addr        string   `env:"ADDR" envDefault:"0.0.0.0:3000"`
	JWTSecret   string   `env:"JWT_SECRET,required,notEmpty"`
	JWTIssuer   string   `env:"JWT_ISSUER" envDefault:"go-auth-service"`
	Directory   string   `env:"DIRECTORY" envDefault:"memory"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*"`

	ContextKey  string `env:"CONTEXT_KEY" envDefault:"user"`
	TokenLookup string `env:"TOKEN_LOOKUP" envDefault:"header:Authorization"`
	AuthScheme  string `env:"AUTH_SCHEME" envDefault:"Bearer"`

	SeedAdmin SeedAdmin `envPrefix:"SEED_ADMIN_"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"pretty"`
	Debug     bool   `env:"DEBUG" envDefault:"false"`
}

// SeedAdmin describes the bootstrap administrator
type SeedAdmin struct {
	Email     string `env:"EMAIL" envDefault:"admin@example.com"`
	Password  string `env:"PASSWORD" envDefault:"adminpassword"`
	FirstName string `env:"FIRST_NAME" envDefault:"Admin"`
	LastName  string `env:"LAST_NAME" envDefault:"User"`
}

var _ auth.Config = Config{}

// Load parses the configuration from environ, or from the process
// environment when environ is nil.
func Load(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "parse env").
			WithTextCode("INVALID_CONFIG")
	}

	switch cfg.Directory {
	case auth.DirectoryMemory, auth.DirectorySQLite:
	default:
		return nil, invalid("DIRECTORY", cfg.Directory)
	}

	switch cfg.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return nil, invalid("LOG_LEVEL", cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case LogFormatPretty, LogFormatPlain:
	default:
		return nil, invalid("LOG_FORMAT", cfg.LogFormat)
	}

	return cfg, nil
}

func invalid(name, value string) error {
	return errors.New(fmt.Sprintf("%s%s: unsupported value %q", EnvPrefix, name, value), errors.CategoryBadInput).
		WithTextCode("INVALID_CONFIG").
		WithMetadata(map[string]any{"variable": EnvPrefix + name})
}

func (c Config) GetSigningKey() string {
	return c.JWTSecret
}

func (c Config) GetIssuer() string {
	return c.JWTIssuer
}

func (c Config) GetContextKey() string {
	return c.ContextKey
}

func (c Config) GetTokenLookup() string {
	return c.TokenLookup
}

func (c Config) GetAuthScheme() string {
	return c.AuthScheme
}

// Seed returns the bootstrap administrator account
func (c Config) Seed() auth.SeedAccount {
	return auth.SeedAccount{
		Email:     c.SeedAdmin.Email,
		Password:  c.SeedAdmin.Password,
		FirstName: c.SeedAdmin.FirstName,
		LastName:  c.SeedAdmin.LastName,
	}
}

// CORSAllowOrigins returns the origins in the form the cors middleware expects
func (c Config) CORSAllowOrigins() string {
	return strings.Join(c.CORSOrigins, ",")
}

// Masked returns a copy safe to log
func (c Config) Masked() Config {
	out := c
	out.JWTSecret = mask(c.JWTSecret)
	out.SeedAdmin.Password = mask(c.SeedAdmin.Password)
	return out
}

// String renders the masked configuration as indented JSON
func (c Config) String() string {
	return print.MaybePrettyJSON(c.Masked())
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}
