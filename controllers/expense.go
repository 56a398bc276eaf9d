package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ExpenseTracker/middleware"
	"ExpenseTracker/models"
	"ExpenseTracker/pkg/messages"
)

var requiredExpenseFields = []string{"title", "amount", "date", "category", "description"}

func expenseViews(expenses []models.Expense) []models.ExpenseView {
	out := make([]models.ExpenseView, 0, len(expenses))
	for i := range expenses {
		out = append(out, expenses[i].View())
	}
	return out
}

func ListExpenses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _ := middleware.CurrentUserID(c)

		var expenses []models.Expense
		if err := db.Preload("Category").Where("user_id = ?", uid).Order("date DESC, id DESC").Find(&expenses).Error; err != nil {
			serverError(c, err, messages.DatabaseError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"expenses": expenseViews(expenses)})
	}
}

// findOrCreateCategory looks a category up by name and creates it when missing.
func findOrCreateCategory(tx *gorm.DB, name string) (*models.Category, error) {
	var category models.Category
	err := tx.Where(models.Category{Name: name}).FirstOrCreate(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func AddExpense(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _ := middleware.CurrentUserID(c)
		p, err := readPayload(c)
		if err != nil {
			badRequest(c, messages.InvalidInput)
			return
		}
		for _, f := range requiredExpenseFields {
			if !p.has(f) {
				badRequest(c, fmt.Sprintf("The field '%s' is missing.", f))
				return
			}
			if isEmpty(p[f]) {
				badRequest(c, messages.ForField(f))
				return
			}
		}
		amount, ok := p.amount("amount")
		if !ok {
			badRequest(c, messages.InvalidInput)
			return
		}
		date, ok := p.date("date")
		if !ok {
			badRequest(c, messages.InvalidInput)
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			category, err := findOrCreateCategory(tx, p.str("category"))
			if err != nil {
				return err
			}
			expense := models.Expense{
				UserID:      uid,
				CategoryID:  &category.ID,
				Title:       p.str("title"),
				Amount:      amount,
				Date:        date,
				Description: p.str("description"),
			}
			return tx.Create(&expense).Error
		})
		if err != nil {
			serverError(c, err, messages.DatabaseError)
			return
		}
		success(c, "Expense added successfully!")
	}
}

// findUserExpense only returns expenses owned by uid.
func findUserExpense(db *gorm.DB, uid, id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := db.Preload("Category").Where("user_id = ?", uid).First(&expense, id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func EditExpense(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _ := middleware.CurrentUserID(c)
		p, err := readPayload(c)
		if err != nil {
			badRequest(c, messages.InvalidInput)
			return
		}
		if emptyFieldResponse(c, p) {
			return
		}
		id, ok := p.id("id")
		if !ok {
			badRequest(c, messages.NoID)
			return
		}

		expense, err := findUserExpense(db, uid, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c, fmt.Sprintf("No expense found for id %d", id))
			return
		}
		if err != nil {
			serverError(c, err, messages.DatabaseError)
			return
		}

		updated := false
		if title := p.str("title"); title != "" && title != expense.Title {
			expense.Title = title
			updated = true
		}
		if p.has("amount") {
			amount, ok := p.amount("amount")
			if !ok {
				badRequest(c, messages.InvalidInput)
				return
			}
			if amount != expense.Amount {
				expense.Amount = amount
				updated = true
			}
		}
		if p.has("date") {
			date, ok := p.date("date")
			if !ok {
				badRequest(c, messages.InvalidInput)
				return
			}
			if date.Format(models.DateLayout) != expense.Date.Format(models.DateLayout) {
				expense.Date = date
				updated = true
			}
		}
		if name := p.str("category"); name != "" && (expense.Category == nil || name != expense.Category.Name) {
			var category models.Category
			if err := db.Where("name = ?", name).First(&category).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					badRequest(c, "No category found for name "+name)
					return
				}
				serverError(c, err, messages.DatabaseError)
				return
			}
			expense.CategoryID = &category.ID
			expense.Category = &category
			updated = true
		}
		if desc := p.str("description"); desc != "" && desc != expense.Description {
			expense.Description = desc
			updated = true
		}
		if !updated {
			badRequest(c, messages.UnexpectedError)
			return
		}

		if err := db.Omit("Category").Save(expense).Error; err != nil {
			serverError(c, err, messages.DatabaseError)
			return
		}
		success(c, "Expense edited successfully!")
	}
}

func DeleteExpense(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _ := middleware.CurrentUserID(c)
		p, err := readPayload(c)
		if err != nil {
			badRequest(c, messages.InvalidInput)
			return
		}
		if isEmpty(p["id"]) {
			badRequest(c, "No id provided")
			return
		}
		id, ok := p.id("id")
		if !ok {
			badRequest(c, messages.InvalidInput)
			return
		}

		res := db.Where("user_id = ?", uid).Delete(&models.Expense{}, id)
		if res.Error != nil {
			serverError(c, res.Error, messages.DatabaseError)
			return
		}
		if res.RowsAffected == 0 {
			badRequest(c, fmt.Sprintf("No expense found for id %d", id))
			return
		}
		success(c, "Expense deleted")
	}
}

// CategoryExpenses lists the current user's expenses in one category.
func CategoryExpenses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _ := middleware.CurrentUserID(c)
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			badRequest(c, messages.InvalidInput)
			return
		}

		var category models.Category
		if err := db.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				badRequest(c, fmt.Sprintf("No category found for id %d", id))
				return
			}
			serverError(c, err, messages.DatabaseError)
			return
		}

		var expenses []models.Expense
		if err := db.Preload("Category").
			Where("user_id = ? AND category_id = ?", uid, category.ID).
			Order("date DESC, id DESC").
			Find(&expenses).Error; err != nil {
			serverError(c, err, messages.DatabaseError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"expenses": expenseViews(expenses)})
	}
}
