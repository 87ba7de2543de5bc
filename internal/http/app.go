package http

import (
	"net/http"
	"time"

	"passwordreset/internal/config"
	dl "passwordreset/internal/core/domain/logging"
	drl "passwordreset/internal/core/domain/ratelimiter"
	changepassword "passwordreset/internal/core/services/change_password"
	getaccountbytoken "passwordreset/internal/core/services/get_account_by_token"
	listresetrequests "passwordreset/internal/core/services/list_reset_requests"
	ratelimiting "passwordreset/internal/core/services/rate_limiting"
	sendresettoken "passwordreset/internal/core/services/send_reset_token"
	dbaccount "passwordreset/internal/db/account"
	dbtoken "passwordreset/internal/db/token"
	handlerChangePassword "passwordreset/internal/http/handlers/reset/change_password"
	handlerGetResetRequest "passwordreset/internal/http/handlers/reset/get_reset_request"
	handlerListResetRequests "passwordreset/internal/http/handlers/reset/list_reset_requests"
	handlerSendResetToken "passwordreset/internal/http/handlers/reset/send_reset_token"
	"passwordreset/internal/implementations/mailer"
	passwordhasher "passwordreset/internal/implementations/password_hasher"
	ratelimiter "passwordreset/internal/implementations/rate_limiter"
	tokengenerator "passwordreset/internal/implementations/token_generator"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

// InitServer wires the reset services and returns an HTTP server ready
// to run. The reset routes are mounted only when resets are enabled;
// otherwise the server answers 404 for all of them.
func InitServer(
	cfg *config.Config,
	logger dl.Logger,
	db *pgxpool.Pool,
	redisClient *redis.Client,
	awsConfig aws.Config,
) *http.Server {
	now := func() time.Time { return time.Now().UTC() }

	accountRepository := dbaccount.NewPgxAccountRepository(db)
	tokenRepository := dbtoken.NewPgxTokenRepository(db)
	tokenGenerator := tokengenerator.NewGenerator()
	passwordHasher := passwordhasher.NewBcrypt(cfg.Secret, cfg.BcryptHasherCost)
	rateLimiter := ratelimiter.NewRedis(redisClient, logger, now)
	tokenSender := mailer.NewSesMailer(
		awsConfig,
		cfg.EmailSenderName,
		cfg.EmailSenderAddress,
		cfg.ServerURL,
		cfg.EmailSubject,
		cfg.EmailBody,
	)

	sendResetTokenService := ratelimiting.New(
		logger,
		rateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		sendresettoken.New(
			logger,
			accountRepository,
			tokenRepository,
			tokenGenerator,
			tokenSender,
			cfg.ServerDomain,
			cfg.TokenExpiresIn,
			now,
		),
	)
	getAccountByTokenService := getaccountbytoken.New(
		logger,
		accountRepository,
		tokenRepository,
		now,
	)
	changePasswordService := changepassword.New(
		logger,
		accountRepository,
		tokenRepository,
		passwordHasher,
		changepassword.PasswordLengthPolicy{
			MinLength: cfg.MinPasswordLength,
			MaxLength: cfg.MaxPasswordLength,
		},
		now,
	)
	listResetRequestsService := listresetrequests.New(
		logger,
		tokenRepository,
		now,
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	if cfg.ResetEnabled {
		router.Post(
			"/password-reset/send",
			handlerSendResetToken.New(sendResetTokenService, cfg.IsTestMode).ServeHTTP,
		)
		router.Get(
			"/password-reset",
			handlerGetResetRequest.New(getAccountByTokenService).ServeHTTP,
		)
		router.Post(
			"/password-reset/change",
			handlerChangePassword.New(changePasswordService).ServeHTTP,
		)
		router.Get(
			"/password-reset/requests",
			handlerListResetRequests.New(listResetRequestsService).ServeHTTP,
		)
	}

	return &http.Server{
		Handler:           router,
		Addr:              cfg.Address,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       5 * time.Second,
	}
}
