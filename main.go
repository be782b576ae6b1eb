package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v9"
	"github.com/rs/zerolog"

	"api/auth"
	"api/config"
	"api/crypto"
	"api/game"
	"api/migrations"
	"api/moderation"
	"api/realtime"
	"api/storage"
	"api/telemetry"
	"api/wordbank"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(ctx *gin.Context) { ctx.String(200, "healthy") })

	if len(allowedOrigins) == 0 {
		return r
	}

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")

		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Authorization",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Debug {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger().
			Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	if err := migrations.Up(cfg.PostgresURL); err != nil {
		log.Fatal(err)
	}
	logger.Info().Msg("migrations applied")

	pgRepo, err := storage.NewPostgresRepo(context.Background(), cfg.PostgresURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pgRepo.Close()

	var metrics telemetry.Sink = telemetry.Noop{}
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		metrics = telemetry.NewRedisSink(redis.NewClient(redisOpts), logger)
	}

	tokenAge := time.Hour * 24 * 7 // 7 days
	passwordHasher := crypto.NewArgon2idHasher(3, 1024*64, 32, 16, 1)
	tokenManager := crypto.NewJWTManager(cfg.JWTKey, tokenAge)

	authService := auth.NewService(pgRepo, passwordHasher, tokenManager)
	authHandler := auth.NewAuthHandler(authService, tokenAge)

	filterOpts := []moderation.Option{}
	if cfg.FlagBareNaziCodes {
		filterOpts = append(filterOpts, moderation.WithBareNaziCodes())
	}
	filter := moderation.New(filterOpts...)

	bank := wordbank.New()
	games := game.NewService(bank, logger)
	rt := realtime.NewServer(games, filter, metrics, pgRepo, logger, cfg.Debug)

	r := CreateServer(cfg.AllowedOrigins)

	{
		authGroup := r.Group("/auth")
		authGroup.POST("/signup", authHandler.SignupHandler)
		authGroup.POST("/login", authHandler.LoginHandler)
		authGroup.POST("/logout", authHandler.LogoutHandler)
		authGroup.POST("/guest", authHandler.GuestHandler)
		authGroup.GET("/refresh", authHandler.RefreshSessionHandler)
	}

	{
		gameGroup := r.Group("/game")
		gameGroup.Use(authHandler.OptionalAuthMiddleware())
		rt.RegisterRoutes(gameGroup)
	}

	if redisSink, ok := metrics.(*telemetry.RedisSink); ok {
		r.GET("/stats", func(ctx *gin.Context) {
			counters, err := redisSink.Snapshot(ctx.Request.Context(), telemetry.CounterNames())
			if err != nil {
				logger.Error().Err(err).Msg("stats query failed")
				ctx.String(http.StatusInternalServerError, "unknown-error")
				return
			}
			ctx.JSON(http.StatusOK, counters)
		})
	}

	r.GET("/leaderboard", func(ctx *gin.Context) {
		limit, _ := strconv.Atoi(ctx.Query("limit"))
		rows, err := pgRepo.GetLeaderboard(ctx.Request.Context(), limit)
		if err != nil {
			logger.Error().Err(err).Msg("leaderboard query failed")
			ctx.String(http.StatusInternalServerError, "unknown-error")
			return
		}
		ctx.JSON(http.StatusOK, rows)
	})

	logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting server")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
