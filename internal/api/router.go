package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	bookingHttp "github.com/nekogravitycat/shareit-backend/internal/booking/http"
	fileHttp "github.com/nekogravitycat/shareit-backend/internal/file/http"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	itemRequestHttp "github.com/nekogravitycat/shareit-backend/internal/itemrequest/http"
	"github.com/nekogravitycat/shareit-backend/internal/logging"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

// Config collects the handlers and settings the router is assembled from.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       zerolog.Logger
	DB           Pinger

	RateLimitRPS   float64
	RateLimitBurst int

	JWTManager         *auth.JWTManager
	UserHandler        *userHttp.UserHandler
	ItemHandler        *itemHttp.Handler
	BookingHandler     *bookingHttp.Handler
	ItemRequestHandler *itemRequestHttp.Handler
	FileHandler        *fileHttp.Handler
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (recovery, access log, metrics, CORS) and registers
// routes for every module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.GinLogger(cfg.Logger), metrics.GinMiddleware())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", Healthz(cfg.DB))
	r.GET("/metrics", metrics.Handler())

	// The limiter runs after auth so that callers are keyed by user ID.
	limit := RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)
	authenticate := auth.AuthRequired(cfg.JWTManager)
	authMiddleware := func(c *gin.Context) {
		authenticate(c)
		if c.IsAborted() {
			return
		}
		limit(c)
	}

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, cfg.UserHandler, authMiddleware)
		itemHttp.RegisterRoutes(v1, cfg.ItemHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, cfg.BookingHandler, authMiddleware)
		itemRequestHttp.RegisterRoutes(v1, cfg.ItemRequestHandler, authMiddleware)
		fileHttp.RegisterRoutes(v1, cfg.FileHandler, authMiddleware)
	}

	return r
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
