package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env      string
	LogLevel int

	ApiServer APIServerConfigs
	Database  DatabaseConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
}

type ServerConfigs struct {
	Host      string
	Port      string
	AllowCORS []string
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type APIServerConfigs struct {
	ServerConfigs

	MaxLimit     int
	DefaultLimit int
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration Duration
}

type RedisConfigs struct {
	Addr string
}

// Duration wraps time.Duration so configurations can use the "1h30m" string
// form in TOML files.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	*d = Duration(v)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Load reads configurations from the TOML file at path. Missing fields keep
// the default values.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: 1,
		ApiServer: APIServerConfigs{
			ServerConfigs: ServerConfigs{
				Host:      "localhost",
				Port:      "8080",
				AllowCORS: []string{"http://localhost:3000"},
			},
			MaxLimit:     50,
			DefaultLimit: 20,
		},
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "ripple",
			User:     "ripple",
			Password: "ripple",
		},
		Auth: AuthConfigs{
			TokenSecret: "token-secret",
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: Duration(24 * time.Hour),
			},
		},
		Redis: RedisConfigs{
			Addr: "localhost:6379",
		},
	}
}
