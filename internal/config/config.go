package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DemoUser es el usuario de demostración que el callback de OAuth
// devuelve al frontend. Viene de configuración, nunca de literales en
// el código.
type DemoUser struct {
	ID     string
	Nombre string
	Email  string
	Foto   string
}

type Config struct {
	Port     string
	MongoURI string
	DBName   string

	CORSOrigins []string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	FrontendURL        string
	DemoUser           DemoUser

	WeatherAPIKey  string
	WeatherBaseURL string

	RedisAddr string
}

// Load lee la configuración del entorno, cargando antes un .env si
// existe. Todo lo sensible (URI de Mongo, credenciales de Google, API
// key del clima) entra por aquí.
func Load() Config {
	godotenv.Load()

	return Config{
		Port:     getenv("PORT", "3000"),
		MongoURI: os.Getenv("MONGODB_URI"),
		DBName:   getenv("DB_NAME", "escuela"),

		CORSOrigins: strings.Split(getenv("CORS_ORIGINS", "http://localhost:5173,http://localhost:5174"), ","),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:  getenv("GOOGLE_REDIRECT_URI", "http://localhost:3000/auth/google/callback"),
		FrontendURL:        getenv("FRONTEND_URL", "http://localhost:5174"),
		DemoUser: DemoUser{
			ID:     getenv("DEMO_USER_ID", "123456789"),
			Nombre: getenv("DEMO_USER_NAME", "Usuario Demo"),
			Email:  getenv("DEMO_USER_EMAIL", "demo@example.com"),
			Foto:   getenv("DEMO_USER_PHOTO", "https://via.placeholder.com/50"),
		},

		WeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		WeatherBaseURL: os.Getenv("OPENWEATHER_BASE_URL"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
