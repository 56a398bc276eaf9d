package user

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ExpenseTracker/controllers"
)

func Register(g *gin.RouterGroup, db *gorm.DB) {
	g.GET("/user", controllers.CurrentUser(db))
	g.POST("/user/status", controllers.UserStatus(db))
}
