package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/api"
	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/shareit-backend/internal/booking/http"
	"github.com/nekogravitycat/shareit-backend/internal/clock"
	"github.com/nekogravitycat/shareit-backend/internal/file"
	fileHttp "github.com/nekogravitycat/shareit-backend/internal/file/http"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/itemrequest"
	itemRequestHttp "github.com/nekogravitycat/shareit-backend/internal/itemrequest/http"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/storage"
	"github.com/nekogravitycat/shareit-backend/internal/user"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       zerolog.Logger
	// Clock defaults to the system clock.
	Clock clock.Clock

	JWTSecret   string
	JWTTTL      time.Duration
	BcryptCost  int
	MaxPageSize int
	UploadDir   string

	RateLimitRPS   float64
	RateLimitBurst int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.System()
	}
	log := cfg.Logger

	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher, clk, log)

	// Item Request Module
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool, log)
	requestService := itemrequest.NewService(requestRepo, userService, clk, log)

	// File Module
	fileRepo := file.NewRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, store, clk, log)
	fileHandler := fileHttp.NewHandler(fileService, log)

	// Item Module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	commentRepo := item.NewPgxCommentRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, commentRepo, userService, requestService, clk, log)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, userService, itemService, clk, log)

	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		Logger:             log,
		DB:                 cfg.DBPool,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
		JWTManager:         jwtManager,
		UserHandler:        userHttp.NewHandler(userService, jwtManager, cfg.MaxPageSize),
		ItemHandler:        itemHttp.NewHandler(itemService, fileHandler, cfg.MaxPageSize),
		BookingHandler:     bookingHttp.NewHandler(bookingService, cfg.MaxPageSize),
		ItemRequestHandler: itemRequestHttp.NewHandler(requestService, cfg.MaxPageSize),
		FileHandler:        fileHandler,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
