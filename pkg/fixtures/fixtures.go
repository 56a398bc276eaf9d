// Package fixtures seeds a database with the demo and test data set.
package fixtures

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ExpenseTracker/models"
)

const (
	TestUserEmail     = "test@test.com"
	TestUserPassword  = "test"
	AdminUserEmail    = "admin@test.com"
	AdminUserPassword = "admin"
	FoodCategory      = "Food"
)

// Load inserts the fixture rows that are not present yet. Safe to run twice.
func Load(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		user, err := ensureUser(tx, models.User{
			FirstName: "testName",
			LastName:  "testLastName",
			Email:     TestUserEmail,
			Roles:     []string{models.RoleUser},
		}, TestUserPassword)
		if err != nil {
			return err
		}
		if _, err := ensureUser(tx, models.User{
			FirstName: "adminName",
			LastName:  "adminLastName",
			Email:     AdminUserEmail,
			Roles:     []string{models.RoleAdmin},
		}, AdminUserPassword); err != nil {
			return err
		}

		food := models.Category{Name: FoodCategory}
		if err := tx.Where(models.Category{Name: FoodCategory}).
			Attrs(models.Category{Description: "Food category for test"}).
			FirstOrCreate(&food).Error; err != nil {
			return fmt.Errorf("fixtures: category: %w", err)
		}

		expense := models.Expense{
			UserID:      user.ID,
			CategoryID:  &food.ID,
			Title:       "Groceries",
			Amount:      50.25,
			Date:        time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC),
			Description: "Purchased groceries for the week",
		}
		if err := tx.Where(&models.Expense{UserID: user.ID, Title: expense.Title}).
			FirstOrCreate(&expense).Error; err != nil {
			return fmt.Errorf("fixtures: expense: %w", err)
		}
		return nil
	})
}

func ensureUser(tx *gorm.DB, u models.User, password string) (*models.User, error) {
	var existing models.User
	err := tx.Where("email = ?", u.Email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("fixtures: lookup %s: %w", u.Email, err)
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	if err := tx.Create(&u).Error; err != nil {
		return nil, fmt.Errorf("fixtures: create %s: %w", u.Email, err)
	}
	return &u, nil
}
