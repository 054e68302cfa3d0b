package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	ModeReadWrite = "RW"
	ModeReadOnly  = "RO"
)

type HTTPServer struct {
	Host           string
	Port           string
	Mode           string
	APIPrefix      string
	RequestTimeout time.Duration
}

type RedisCache struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Auth struct {
	Secret   string
	TokenTTL time.Duration
}

type Membership struct {
	DefaultCapacity int
	MaxAttempts     int
}

type Storage struct {
	Driver string
}

type Config struct {
	HTTP       HTTPServer
	Redis      RedisCache
	Postgres   Postgres
	Auth       Auth
	Membership Membership
	Storage    Storage
}

const logtag = "[config]"

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%s %v", logtag, err)
	}
	return cfg
}

// FromEnv builds the config from the process environment only.
func FromEnv() *Config {
	cfg := &Config{
		HTTP:       *newHTTP(),
		Redis:      *newRedis(),
		Postgres:   *newPostgres(),
		Auth:       *newAuth(),
		Membership: *newMembership(),
		Storage:    *newStorage(),
	}

	log.Printf("%s storage=%s http=%s:%s mode=%s", logtag, cfg.Storage.Driver, cfg.HTTP.Host, cfg.HTTP.Port, cfg.HTTP.Mode)
	return cfg
}

// Validate rejects settings the service must not start with.
func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port:           getenv("HTTP_PORT", "8080"),
		Host:           getenv("HTTP_HOST", "0.0.0.0"),
		Mode:           getenv("HTTP_MODE", ModeReadWrite),
		APIPrefix:      getenv("HTTP_API_PREFIX", "/api"),
		RequestTimeout: getduration("HTTP_REQUEST_TIMEOUT", 5*time.Second),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Enabled:  getbool("REDIS_ENABLED", true),
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getsecret("REDIS_PASSWORD", "shared"),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getsecret("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "rooms"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newAuth() *Auth {
	return &Auth{
		Secret:   getsecret("JWT_SECRET", ""),
		TokenTTL: getduration("JWT_TTL", 360000*time.Second),
	}
}

func newMembership() *Membership {
	return &Membership{
		DefaultCapacity: getint("ROOM_DEFAULT_CAPACITY", 5),
		MaxAttempts:     getint("ROOM_MAX_ATTEMPTS", 3),
	}
}

func newStorage() *Storage {
	return &Storage{
		Driver: getenv("STORAGE_DRIVER", StorageDriverPostgres),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

// Same as getenv but never prints the value.
func getsecret(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value\n", logtag, key)
		return defaultValue
	}
	return val
}

func getint(key string, defaultValue int) int {
	raw := getenv(key, strconv.Itoa(defaultValue))
	val, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Printf("%s %s is not an integer (%q). Using default value %d\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return val
}

func getbool(key string, defaultValue bool) bool {
	raw := getenv(key, strconv.FormatBool(defaultValue))
	val, err := strconv.ParseBool(raw)
	if err != nil {
		fmt.Printf("%s %s is not a boolean (%q). Using default value %t\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return val
}

func getduration(key string, defaultValue time.Duration) time.Duration {
	raw := getenv(key, defaultValue.String())
	val, err := time.ParseDuration(raw)
	if err != nil {
		fmt.Printf("%s %s is not a duration (%q). Using default value %s\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return val
}
