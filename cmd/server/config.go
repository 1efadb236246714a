package main

import (
	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
)

// Config is read once from the environment at startup and never
// mutated afterwards.
type Config struct {
	ListenAddr             string `env:"LISTEN_ADDR" envDefault:":8000" json:"listen_addr"`
	DSN                    string `env:"DATABASE_DSN" envDefault:"file:accounts.db?cache=shared" json:"dsn"`
	SigningKey             string `env:"SECRET_KEY,required" json:"-"`
	SigningMethod          string `env:"ALGORITHM" envDefault:"HS256" json:"signing_method"`
	AuthScheme             string `env:"AUTH_SCHEME" envDefault:"Bearer" json:"auth_scheme"`
	TokenExpirationMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"15" json:"token_expiration_minutes"`
	Issuer                 string `env:"TOKEN_ISSUER" json:"issuer"`
	Debug                  bool   `env:"DEBUG" json:"debug"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "unable to parse environment config")
	}
	return cfg, nil
}

func (c *Config) GetSigningKey() string    { return c.SigningKey }
func (c *Config) GetSigningMethod() string { return c.SigningMethod }
func (c *Config) GetAuthScheme() string    { return c.AuthScheme }
func (c *Config) GetTokenExpiration() int  { return c.TokenExpirationMinutes }
func (c *Config) GetIssuer() string        { return c.Issuer }
func (c *Config) GetDSN() string           { return c.DSN }
func (c *Config) GetListenAddr() string    { return c.ListenAddr }
func (c *Config) GetDebug() bool           { return c.Debug }
