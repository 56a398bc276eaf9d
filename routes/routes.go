package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ExpenseTracker/controllers"
	"ExpenseTracker/middleware"
	"ExpenseTracker/pkg/config"
	"ExpenseTracker/pkg/logger"
	"ExpenseTracker/pkg/metrics"
	"ExpenseTracker/pkg/token"

	authRoutes "ExpenseTracker/routes/auth"
	categoryRoutes "ExpenseTracker/routes/category"
	expenseRoutes "ExpenseTracker/routes/expense"
	userRoutes "ExpenseTracker/routes/user"
	websocketRoutes "ExpenseTracker/routes/websocket"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Logger    *logger.Logger
	Metrics   *metrics.Metrics
	Validator *token.Validator
}

// NewEngine builds the gin engine with global middleware and all routes.
func NewEngine(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinLogger(d.Logger, "/metrics"))

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// runs before any handler, protected or not
	r.Use(middleware.TokenGate(d.Validator.Ledger(), middleware.GateConfig{
		Enabled: d.Config.TokenGateEnabled,
		Policy:  d.Validator.Policy(),
		Logger:  d.Logger.Logger,
		Metrics: d.Metrics,
	}))

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/", controllers.Index())
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	limiter := middleware.NewRateLimiter(
		time.Duration(d.Config.RateLimitWindowSeconds)*time.Second,
		d.Config.RateLimitCapacity,
	)
	authRoutes.RegisterPublic(r, d.DB, d.Validator.Codec(), limiter)
	websocketRoutes.Register(r, d.Validator, d.Config.SessionWatchInterval, d.Logger.Logger)

	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(d.Validator))
	authRoutes.RegisterProtected(protected, d.Validator.Ledger())
	userRoutes.Register(protected, d.DB)
	categoryRoutes.Register(protected, d.DB)
	expenseRoutes.Register(protected, d.DB)
}
