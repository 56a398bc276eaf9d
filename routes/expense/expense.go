package expense

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ExpenseTracker/controllers"
)

func Register(g *gin.RouterGroup, db *gorm.DB) {
	g.POST("/expenses", controllers.ListExpenses(db))
	g.POST("/addExpense", controllers.AddExpense(db))
	g.POST("/editExpense", controllers.EditExpense(db))
	g.POST("/deleteExpense", controllers.DeleteExpense(db))
	g.GET("/categories/:id/expenses", controllers.CategoryExpenses(db))
}
