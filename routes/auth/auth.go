package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ExpenseTracker/controllers"
	"ExpenseTracker/middleware"
	"ExpenseTracker/models"
	"ExpenseTracker/pkg/token"
)

// RegisterPublic registers public auth routes: /api/register, /api/login_check
func RegisterPublic(r gin.IRouter, db *gorm.DB, codec *token.Codec, limiter *middleware.RateLimiter) {
	r.POST("/api/register", limiter.Middleware(), controllers.Register(db))
	r.POST("/api/login_check", limiter.Middleware(), controllers.Login(db, codec))
}

// RegisterProtected registers protected auth routes (e.g. logout)
func RegisterProtected(g *gin.RouterGroup, ledger *token.Ledger) {
	g.POST("/logout", controllers.Logout(ledger))

	admin := g.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.DELETE("/revocations", controllers.Unrevoke(ledger))
}
