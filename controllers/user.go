package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ExpenseTracker/middleware"
	"ExpenseTracker/models"
	"ExpenseTracker/pkg/messages"
)

// loadCurrentUser writes the error response itself when it returns false.
func loadCurrentUser(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": messages.TokenNotFound})
		return nil, false
	}
	var user models.User
	if err := db.First(&user, uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": messages.TokenInvalid})
			return nil, false
		}
		serverError(c, err, messages.DatabaseError)
		return nil, false
	}
	return &user, true
}

func CurrentUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadCurrentUser(c, db)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, user.View())
	}
}

type userStats struct {
	ExpenseCount  int64   `json:"expenseCount"`
	CategoryCount int64   `json:"categoryCount"`
	TotalAmount   float64 `json:"totalAmount"`
}

func UserStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadCurrentUser(c, db)
		if !ok {
			return
		}

		var stats userStats
		err := db.Model(&models.Expense{}).
			Where("user_id = ?", user.ID).
			Select("COUNT(*) AS expense_count, COUNT(DISTINCT category_id) AS category_count, COALESCE(SUM(amount), 0) AS total_amount").
			Scan(&stats).Error
		if err != nil {
			serverError(c, err, messages.DatabaseError)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user_status": gin.H{
				"firstName": user.FirstName,
				"lastName":  user.LastName,
				"email":     user.Email,
				"roles":     user.GetRoles(),
			},
			"stats": stats,
		})
	}
}
