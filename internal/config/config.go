package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// APIBaseURL is the FitCheck backend the client talks to.
	APIBaseURL string

	// DataDir holds the on-device SQLite store (session token, user data).
	DataDir string

	ServerPort string

	JWTSecret string

	AccessTokenMaxAge int
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	apiBaseURL := os.Getenv("FITCHECK_API_URL")
	if apiBaseURL == "" {
		apiBaseURL = "http://localhost:8080"
	}

	dataDir := os.Getenv("FITCHECK_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataDir = filepath.Join(home, ".fitcheck")
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	accessTokenMaxAge, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_MAX_AGE"))
	if err != nil || accessTokenMaxAge <= 0 {
		accessTokenMaxAge = 86400
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret"
	}

	return &Config{
		APIBaseURL: apiBaseURL,
		DataDir:    dataDir,

		ServerPort: serverPort,

		JWTSecret: jwtSecret,

		AccessTokenMaxAge: accessTokenMaxAge,
	}, nil
}
