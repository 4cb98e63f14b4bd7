package main

import (
	"log"
	"strconv"

	"github.com/hibiken/asynq"

	"noteboard-backend/internal/shared/utils"
)

// Config holds all configuration for the worker
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int
}

// loadConfig loads configuration from environment variables
func loadConfig() *Config {
	cfg := &Config{
		RedisAddr:     utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
		RedisPassword: utils.GetEnvVariable("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		Concurrency:   getEnvInt("WORKER_CONCURRENCY", 20),
	}

	log.Printf("[Config] Redis: %s (db %d), Concurrency: %d",
		cfg.RedisAddr, cfg.RedisDB, cfg.Concurrency)

	return cfg
}

// redisOpt builds the asynq connection options shared by the server
// and the scheduler.
func (c *Config) redisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

func getEnvInt(key string, defaultValue int) int {
	raw := utils.GetEnvVariable(key, "")
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
