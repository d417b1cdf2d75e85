package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"escuela-backend/internal/config"
	"escuela-backend/internal/handlers"
	"escuela-backend/internal/middleware"
	"escuela-backend/internal/routes"
	"escuela-backend/internal/store"
	"escuela-backend/internal/weather"
)

func main() {
	useMem := flag.Bool("mem", false, "usar almacenes en memoria en lugar de Mongo")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	cfg := config.Load()

	var stores store.Stores
	if *useMem {
		log.Info("usando almacenes en memoria")
		stores = store.NewMemoryStores()
	} else {
		client, err := connectMongo(cfg.MongoURI)
		if err != nil {
			log.Error("no se pudo conectar a MongoDB", "error", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			client.Disconnect(ctx)
		}()
		log.Info("conectado a MongoDB", "db", cfg.DBName)
		stores = store.NewMongoStores(client.Database(cfg.DBName))
	}

	var cache *weather.Cache
	if cfg.RedisAddr != "" {
		cache = weather.NewCache(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		log.Info("caché de clima en Redis activada", "addr", cfg.RedisAddr)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	routes.Setup(r, routes.Handlers{
		Alumnos:    handlers.NewAlumnoHandler(stores),
		Profesores: handlers.NewProfesorHandler(stores),
		Clases:     handlers.NewClaseHandler(stores),
		Horarios:   handlers.NewHorarioHandler(stores),
		Auth:       handlers.NewAuthHandler(cfg),
		Weather:    handlers.NewWeatherHandler(weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey, cache)),
	})

	log.Info("servidor escuchando", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Error("el servidor terminó con error", "error", err)
		os.Exit(1)
	}
}

func connectMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	return client, nil
}
