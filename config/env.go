// Package config loads the simulation core's configuration: a godotenv
// pass for local .env files, then viper layered on top to bind an
// optional "simcore.toml" config file and environment variables onto the
// same keys.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything cmd/simcore needs to wire a repository, a cache,
// and a deterministic RNG seed. The simulation core packages themselves
// never read the environment directly; they take these values as explicit
// constructor arguments.
type Config struct {
	DatabaseURL string
	RedisURL    string
	LogLevel    string
	RandomSeed  int64
	CacheTTL    time.Duration
	SafetyBound int
}

// Load reads a .env file if present, then binds "simcore.toml" (if found
// on the config search path) and the process environment through viper,
// falling back to the defaults below for anything unset.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	v.SetConfigName("simcore")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.simcore")
	v.AddConfigPath("/etc/simcore")

	v.SetDefault("database_url", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("random_seed", int64(0))
	v.SetDefault("cache_ttl", "30s")
	v.SetDefault("fast_forward_safety_bound", 20)

	v.AutomaticEnv()
	v.BindEnv("database_url", "DATABASE_URL")
	v.BindEnv("redis_url", "REDIS_URL")
	v.BindEnv("log_level", "LOG_LEVEL")
	v.BindEnv("random_seed", "SIM_RANDOM_SEED")
	v.BindEnv("cache_ttl", "SIM_CACHE_TTL")
	v.BindEnv("fast_forward_safety_bound", "SIM_FAST_FORWARD_SAFETY_BOUND")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "simcore.toml found but unreadable: %v\n", err)
		}
	}

	return &Config{
		DatabaseURL: v.GetString("database_url"),
		RedisURL:    v.GetString("redis_url"),
		LogLevel:    v.GetString("log_level"),
		RandomSeed:  v.GetInt64("random_seed"),
		CacheTTL:    v.GetDuration("cache_ttl"),
		SafetyBound: v.GetInt("fast_forward_safety_bound"),
	}
}
