package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	Game       `yaml:"game"`
	Feed       `yaml:"feed"`
	Pusher     `yaml:"pusher"`
	HTTPServer `yaml:"http_server"`
	WSServer   `yaml:"ws_server"`
}

type Game struct {
	Durations       []int         `yaml:"durations" env-default:"10,15,20"`
	DefaultDuration int           `yaml:"default_duration" env-default:"10"`
	ResolveDwell    time.Duration `yaml:"resolve_dwell" env-default:"1500ms"`
	ShowDwell       time.Duration `yaml:"show_dwell" env-default:"3s"`
	HistorySize     int           `yaml:"history_size" env-default:"10"`
}

type Feed struct {
	FeedEnabled bool          `yaml:"feed_enabled" env-default:"true"`
	FeedTTL     time.Duration `yaml:"feed_ttl" env-default:"30s"`
}

type Pusher struct {
	PusherEnabled bool   `yaml:"pusher_enabled" env-default:"false"`
	AppID         string `yaml:"pusher_app_id" env:"PUSHER_APP_ID"`
	Key           string `yaml:"pusher_key" env:"PUSHER_KEY"`
	Secret        string `yaml:"pusher_secret" env:"PUSHER_SECRET"`
	Cluster       string `yaml:"pusher_cluster" env-default:"eu"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type WSServer struct {
	WSAddress   string        `yaml:"ws_address" env-default:"localhost:8081"`
	WSTimeout   time.Duration `yaml:"ws_timeout" env-default:"10s"`
	WSIdleTime  time.Duration `yaml:"ws_idle_timeout" env-default:"60s"`
	GameChannel string        `yaml:"game_channel" env-default:"wingo"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/local.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}
