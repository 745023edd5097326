package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type RedisCache struct {
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

type Kafka struct {
	Brokers []string
	Topic   string
}

type Deezer struct {
	BaseURL string
}

type Game struct {
	MaxPlayers      int
	SelectionWindow time.Duration
	VoteWindow      time.Duration
	RoomTTL         time.Duration
}

type Config struct {
	HTTP     HTTPServer
	Redis    RedisCache
	Postgres Postgres
	Kafka    Kafka
	Deezer   Deezer
	Game     Game
}

const logtag = "[config]"

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

	cfg := &Config{
		HTTP:     *newHTTP(),
		Redis:    *newRedis(),
		Postgres: *newPostgres(),
		Kafka:    *newKafka(),
		Deezer:   *newDeezer(),
		Game:     *newGame(),
	}

	log.Printf("%s backend config : %+v\n", logtag, cfg)
	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getenv("REDIS_PASSWORD", "shared"),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "squabble"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newKafka() *Kafka {
	k := &Kafka{
		Topic: getenv("KAFKA_TOPIC", "squabble-events"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		k.Brokers = strings.Split(brokers, ",")
	}
	return k
}

func newDeezer() *Deezer {
	return &Deezer{
		BaseURL: getenv("DEEZER_BASE_URL", "https://api.deezer.com"),
	}
}

func newGame() *Game {
	return &Game{
		MaxPlayers:      getenvInt("GAME_MAX_PLAYERS", 6),
		SelectionWindow: time.Duration(getenvInt("GAME_SELECTION_WINDOW_SEC", 30)) * time.Second,
		VoteWindow:      time.Duration(getenvInt("GAME_VOTE_WINDOW_SEC", 15)) * time.Second,
		RoomTTL:         time.Duration(getenvInt("GAME_ROOM_TTL_MIN", 60)) * time.Minute,
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

func getenvInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("%s bad int for %s, using default %d", logtag, key, defaultValue)
		return defaultValue
	}
	return n
}
