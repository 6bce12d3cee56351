package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/kjeyarn/lending-gateway/pkg/auth0"
	"github.com/kjeyarn/lending-gateway/pkg/kafka"
	"github.com/kjeyarn/lending-gateway/pkg/logger"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"GATEWAY_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"GATEWAY_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"15s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

// BackendAPI locates the KjeyArn REST backend and its image host.
type BackendAPI struct {
	BaseURL      string        `envconfig:"BACKEND_API_URL" required:"true"`
	ImageBaseURL string        `envconfig:"IMAGE_BASE_URL"`
	Timeout      time.Duration `envconfig:"BACKEND_TIMEOUT" default:"30s"`
}

type Config struct {
	Server          HTTPServer   `yaml:"server"`
	Backend         BackendAPI   `yaml:"backend"`
	Auth0           auth0.Config `yaml:"auth0"`
	Kafka           kafka.Config `yaml:"kafka"`
	DefaultTimezone string       `yaml:"defaultTimezone" envconfig:"DEFAULT_TIMEZONE" default:"UTC"`
	Log             logger.Log   `yaml:"log"`
}

// Location resolves DefaultTimezone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
