package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	// Config -.
	Config struct {
		App  `yaml:"app"`
		HTTP `yaml:"http"`
		Log  `yaml:"logger"`
		RMQ  `yaml:"rabbitmq"`
		RTC  `yaml:"rtc"`
	}

	// App -.
	App struct {
		Name    string `env-required:"true" yaml:"name"    env:"APP_NAME"`
		Version string `env-required:"true" yaml:"version" env:"APP_VERSION"`
	}

	// HTTP -.
	HTTP struct {
		Port string `env-required:"true" yaml:"port" env:"HTTP_PORT"`
	}

	// Log -.
	Log struct {
		Level string `env-required:"true" yaml:"log_level" env:"LOG_LEVEL"`
	}

	// RMQ -.
	RMQ struct {
		ServerExchange string `env-required:"true" yaml:"rpc_server_exchange" env:"RMQ_RPC_SERVER"`
		ClientExchange string `env-required:"true" yaml:"rpc_client_exchange" env:"RMQ_RPC_CLIENT"`
		URL            string `env-required:"true"                            env:"RMQ_URL"`
	}

	// RTC -. SealKey comes from the environment only; empty disables join
	// token checks.
	RTC struct {
		ICEServers         []string      `yaml:"ice_servers"         env:"RTC_ICE_SERVERS"`
		PortMin            uint16        `yaml:"port_min"            env:"RTC_PORT_MIN"`
		PortMax            uint16        `yaml:"port_max"            env:"RTC_PORT_MAX"`
		AudioCodec         string        `yaml:"audio_codec"         env:"RTC_AUDIO_CODEC"`
		VideoCodec         string        `yaml:"video_codec"         env:"RTC_VIDEO_CODEC"`
		PreferredCodec     string        `yaml:"preferred_codec"     env:"RTC_PREFERRED_CODEC"`
		AdaptationInterval time.Duration `yaml:"adaptation_interval" env:"RTC_ADAPTATION_INTERVAL"`
		SealKey            string        `yaml:"-"                   env:"RTC_SEAL_KEY"`
	}
)

// NewConfig returns app config.
func NewConfig() (*Config, error) {
	cfg := &Config{}

	err := cleanenv.ReadConfig("./config/config.yml", cfg)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	err = cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
