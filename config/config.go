package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	Driver string // sqlite or mysql
	Path   string // sqlite file
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
}

type Session struct {
	Secret     string
	CookieName string
	TTLMin     int
	Secure     bool
}

type Config struct {
	HTTP    HTTP
	DB      DB
	Session Session
	Redis   struct {
		Addr string // empty selects the in-process session store
	}
	Templates struct {
		Dir string // empty renders the embedded templates
	}
	Log struct {
		Path string
	}
}

// Load reads the optional YAML file at path, with FEEDBACK_* environment
// variables overriding any key (FEEDBACK_SESSION_SECRET, FEEDBACK_DB_DRIVER,
// ...).
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("http.host", "127.0.0.1")
	v.SetDefault("http.port", 8080)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "feedback.db")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "feedback")
	v.SetDefault("session.cookie_name", "feedback_session")
	v.SetDefault("session.ttl_min", 1440)
	v.SetDefault("session.secure", false)
	v.SetDefault("redis.addr", "")
	v.SetDefault("templates.dir", "")
	v.SetDefault("log.path", "")

	v.SetEnvPrefix("FEEDBACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		HTTP: HTTP{Host: v.GetString("http.host"), Port: v.GetInt("http.port")},
		DB: DB{
			Driver: v.GetString("db.driver"),
			Path:   v.GetString("db.path"),
			Host:   v.GetString("db.host"),
			Port:   v.GetInt("db.port"),
			User:   v.GetString("db.user"),
			Pass:   v.GetString("db.pass"),
			Name:   v.GetString("db.name"),
		},
		Session: Session{
			Secret:     v.GetString("session.secret"),
			CookieName: v.GetString("session.cookie_name"),
			TTLMin:     v.GetInt("session.ttl_min"),
			Secure:     v.GetBool("session.secure"),
		},
	}
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Templates.Dir = v.GetString("templates.dir")
	cfg.Log.Path = v.GetString("log.path")

	return cfg, nil
}

func (h HTTP) Addr() string { return fmt.Sprintf("%s:%d", h.Host, h.Port) }
