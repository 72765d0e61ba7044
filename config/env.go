package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	WordsFile      string
	Debug          bool
}

// Load reads configuration from the environment, after loading a local .env
// file when one exists.
func Load() Config {
	godotenv.Load()

	cfg := Config{
		Port:      "8000",
		WordsFile: "./words.txt",
	}

	if port, exists := os.LookupEnv("PORT"); exists {
		cfg.Port = port
	}
	if origins, exists := os.LookupEnv("ALLOWED_ORIGINS"); exists {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}
	if wordsFile, exists := os.LookupEnv("WORDS_FILE"); exists {
		cfg.WordsFile = wordsFile
	}
	cfg.Debug = os.Getenv("DEBUG") == "true"

	return cfg
}
