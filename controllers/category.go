package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ExpenseTracker/models"
	"ExpenseTracker/pkg/messages"
)

func ListCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("id").Find(&categories).Error; err != nil {
			serverError(c, err, messages.DatabaseError)
			return
		}
		out := make([]models.CategoryView, 0, len(categories))
		for i := range categories {
			out = append(out, categories[i].View())
		}
		c.JSON(http.StatusOK, out)
	}
}

func AddCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := readPayload(c)
		if err != nil {
			badRequest(c, messages.InvalidInput)
			return
		}
		name := p.str("name")
		if name == "" {
			badRequest(c, "The field 'name' is required.")
			return
		}

		category := models.Category{Name: name, Description: p.str("description")}
		if err := db.Create(&category).Error; err != nil {
			serverError(c, err, messages.UnexpectedCategoryError)
			return
		}
		success(c, "Category added successfully!")
	}
}

func EditCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
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

		var category models.Category
		if err := db.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				badRequest(c, fmt.Sprintf("No category found for id %d", id))
				return
			}
			serverError(c, err, messages.UnexpectedCategoryError)
			return
		}

		updated := false
		if name := p.str("name"); name != "" && name != category.Name {
			category.Name = name
			updated = true
		}
		if desc := p.str("description"); desc != "" && desc != category.Description {
			category.Description = desc
			updated = true
		}
		if !updated {
			badRequest(c, messages.UnexpectedError)
			return
		}

		if err := db.Save(&category).Error; err != nil {
			serverError(c, err, messages.UnexpectedCategoryError)
			return
		}
		success(c, "Category updated successfully!")
	}
}

// DeleteCategory detaches the category from its expenses before removing it.
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			badRequest(c, messages.InvalidInput)
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var category models.Category
			if err := tx.First(&category, id).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Expense{}).
				Where("category_id = ?", category.ID).
				Update("category_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&category).Error
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c, fmt.Sprintf("No category found for id %d", id))
			return
		}
		if err != nil {
			serverError(c, err, messages.UnexpectedCategoryError)
			return
		}
		success(c, "Category removed successfully!")
	}
}
