package api

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	db "github.com/fintrackpro/FinTrack-Backend/db/sqlc"
	"github.com/fintrackpro/FinTrack-Backend/models"
	"github.com/fintrackpro/FinTrack-Backend/services/monitoring/logging"
	"github.com/fintrackpro/FinTrack-Backend/services/notification"
	redisservice "github.com/fintrackpro/FinTrack-Backend/services/redis"
	"github.com/fintrackpro/FinTrack-Backend/services/security"
	"github.com/fintrackpro/FinTrack-Backend/services/user"
	"github.com/fintrackpro/FinTrack-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// / If there's a better place to access this
// / TODO, I feel the config should be the one accessible like this
var TokenController *utils.JWTToken

type Server struct {
	router   *gin.Engine
	store    *db.Store
	config   *utils.Config
	logger   *logging.Logger
	mailer   *notification.Plunk
	sessions *redisservice.RedisService
	cleanup  *user.TokenCleanupService
}

func NewServer(envPath string) *Server {
	c, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	conn, err := sql.Open(c.DBDriver, utils.GetDBSource(c, c.DBName))
	if err != nil {
		panic(fmt.Sprintf("Could not load DB: %v", err))
	}

	m, err := migrate.New(
		c.MigrationSourceURL,
		utils.GetDBSource(c, c.DBName),
	)
	if err != nil {
		log.Fatalf("Unable to instantiate the database schema migrator - %v", err)
	}

	if err := m.Up(); err != nil {
		if err != migrate.ErrNoChange {
			log.Fatalf("Unable to migrate up to the latest database schema - %v", err)
		}
	}

	store := db.NewStore(conn)
	g := gin.Default()
	l := logging.NewLogger()

	registerValidators()

	cache := security.NewCache()
	if err := cache.Start(); err != nil {
		log.Fatalf("Unable to start the token cache - %v", err)
	}

	var sessions *redisservice.RedisService
	if c.RedisHost != "" {
		sessions, err = redisservice.NewRedisService(&redisservice.RedisConfig{
			Host:     c.RedisHost,
			Port:     c.RedisPort,
			Password: c.RedisPassword,
		})
		if err != nil {
			l.Error(fmt.Sprintf("redis unavailable, session cache disabled: %v", err))
		}
	}

	g.Use(CORSMiddleware())
	g.Use(l.LoggingMiddleWare())

	TokenController = utils.NewJWTToken(c)

	return &Server{
		router:   g,
		store:    store,
		config:   c,
		logger:   l,
		mailer:   notification.NewPlunk(c),
		sessions: sessions,
		cleanup:  user.NewTokenCleanupService(store, l, time.Duration(c.TokenSweepMinutes)*time.Minute),
	}
}

func (s *Server) Start() {

	dr := models.SuccessResponse{
		Status:  "success",
		Message: "Welcome to FinTrack!",
		Version: utils.REVISION,
	}

	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dr)
	})

	s.cleanup.Start(context.Background())

	/// Register Object Routers Below
	Auth{}.router(s)
	Wallets{}.router(s)
	Transactions{}.router(s)

	s.router.Run(fmt.Sprintf(":%v", s.config.ServerPort))
}

func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// ISO 4217-ish: three upper-case letters.
	v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) != 3 {
			return false
		}
		for _, r := range code {
			if r < 'A' || r > 'Z' {
				return false
			}
		}
		return true
	})

	v.RegisterValidation("wallettype", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "CASH", "BANK_ACCOUNT", "CREDIT_CARD", "INVESTMENT", "SAVINGS", "DIGITAL_WALLET", "OTHER":
			return true
		}
		return false
	})
}
