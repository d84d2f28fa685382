package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appauth "github.com/jiggy-ai/jiggy-user-api/internal/application/auth"
	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	"github.com/jiggy-ai/jiggy-user-api/internal/application/team"
	"github.com/jiggy-ai/jiggy-user-api/internal/application/user"
	"github.com/jiggy-ai/jiggy-user-api/internal/config"
	infraauth "github.com/jiggy-ai/jiggy-user-api/internal/infrastructure/auth"
	"github.com/jiggy-ai/jiggy-user-api/internal/infrastructure/cache"
	httprouter "github.com/jiggy-ai/jiggy-user-api/internal/infrastructure/http"
	"github.com/jiggy-ai/jiggy-user-api/internal/infrastructure/http/handlers"
	"github.com/jiggy-ai/jiggy-user-api/internal/infrastructure/http/middleware"
	"github.com/jiggy-ai/jiggy-user-api/internal/infrastructure/persistence/postgres"
	"github.com/jiggy-ai/jiggy-user-api/internal/infrastructure/storage"
	"github.com/jiggy-ai/jiggy-user-api/internal/infrastructure/webhook"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	userRepo := postgres.NewUserRepository(pool)
	keyRepo := postgres.NewAPIKeyRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)

	ids, err := snowflake.NewNode(1)
	if err != nil {
		log.Fatal().Err(err).Msg("create id node")
	}

	pemBytes, err := cfg.LoadJWTPrivateKey()
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT private key")
	}
	privateKey, err := infraauth.LoadRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("parse JWT private key")
	}
	publicKey := &privateKey.PublicKey
	if pubBytes, err := cfg.LoadJWTPublicKey(); err != nil {
		log.Fatal().Err(err).Msg("load JWT public key")
	} else if pubBytes != nil {
		publicKey, err = infraauth.LoadRSAPublicKeyFromPEM(pubBytes)
		if err != nil {
			log.Fatal().Err(err).Msg("parse JWT public key")
		}
	}
	issuer := infraauth.NewTokenIssuer(privateKey, publicKey, cfg.JWT.Issuer, time.Duration(cfg.JWT.AccessExpiry)*time.Second)

	provider := infraauth.NewProviderVerifier(cfg.Auth0.Domain, cfg.Auth0.Audience, &infraauth.HTTPKeysetFetcher{}, time.Duration(cfg.Auth0.JWKSTTL)*time.Second)

	memberships := cache.NewMembershipCache(teamRepo, time.Duration(cfg.Cache.MembershipTTL)*time.Second)

	var emitter ports.WebhookEmitter
	if cfg.Webhook.URL != "" {
		emitter = webhook.NewHTTPEmitter(cfg.Webhook.URL)
	} else {
		emitter = webhook.NewNoopEmitter()
	}

	exchangeUC := appauth.NewExchangeKey(keyRepo, issuer)
	createKeyUC := appauth.NewCreateKey(keyRepo)
	verifyUC := appauth.NewVerifyCredential(issuer, provider, userRepo)
	registerUC := user.NewRegister(userRepo, provider, ids)
	deleteUserUC := user.NewDelete(userRepo, memberships)
	createTeamUC := team.NewCreateTeam(teamRepo, memberships, ids)
	listTeamsUC := team.NewListTeams(teamRepo, memberships)
	listMembersUC := team.NewListMembers(teamRepo)
	addMemberUC := team.NewAddMember(teamRepo, userRepo, memberships, ids)
	updateMemberUC := team.NewUpdateMember(teamRepo, memberships)
	removeMemberUC := team.NewRemoveMember(teamRepo, memberships)

	var assetsHandler *handlers.AssetsHandler
	if cfg.StorageConfigured() {
		presigner, err := storage.NewPresigner(ctx, storage.Config{
			Endpoint:  cfg.Storage.Endpoint,
			Region:    cfg.Storage.Region,
			Bucket:    cfg.Storage.Bucket,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("create asset presigner")
		}
		assetsHandler = handlers.NewAssetsHandler(presigner, log)
	}

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP, redisClient)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil)
	requireAuth := middleware.NewAuthValidator(verifyUC).Handler

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:   handlers.NewAuthHandler(exchangeUC, emitter, log),
		HealthHandler: healthHandler,
		UsersHandler:  handlers.NewUsersHandler(registerUC, deleteUserUC, userRepo, emitter, log),
		APIKeyHandler: handlers.NewAPIKeyHandler(createKeyUC, keyRepo, log),
		TeamsHandler:  handlers.NewTeamsHandler(createTeamUC, listTeamsUC, listMembersUC, addMemberUC, updateMemberUC, removeMemberUC, log),
		AssetsHandler: assetsHandler,
		RequireAuth:   requireAuth,
		Log:           log,
		Secure:        secureMiddleware,
		CORS:          corsMiddleware,
		IPRateLimit:   ipLimit,
		Metrics:       true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
