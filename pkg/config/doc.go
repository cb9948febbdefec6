// Package config loads typed configuration structs from environment variables
// using github.com/caarlos0/env, with optional .env files read through
// github.com/joho/godotenv.
//
// Each package that needs settings declares its own Config struct with `env`
// tags; main loads them one by one:
//
//	var dbCfg pg.Config
//	config.MustLoad(&dbCfg)
package config
