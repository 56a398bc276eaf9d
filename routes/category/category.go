package category

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ExpenseTracker/controllers"
)

func Register(g *gin.RouterGroup, db *gorm.DB) {
	g.POST("/categories", controllers.ListCategories(db))
	g.POST("/addCategory", controllers.AddCategory(db))
	g.PUT("/editCategory", controllers.EditCategory(db))
	g.DELETE("/deleteCategory/:id", controllers.DeleteCategory(db))
}
