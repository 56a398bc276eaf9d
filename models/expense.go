package models

import (
	"time"

	"gorm.io/gorm"
)

// DateLayout is the wire format of expense dates.
const DateLayout = "2006-01-02"

type Expense struct {
	gorm.Model
	UserID      uint      `gorm:"not null;index"`
	CategoryID  *uint     `gorm:"index"`
	Category    *Category
	Title       string    `gorm:"size:255;not null"`
	Amount      float64   `gorm:"not null"`
	Date        time.Time `gorm:"not null"`
	Description string    `gorm:"type:text"`
}

type ExpenseView struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    *string `json:"category"`
	Description string  `json:"description"`
}

// View needs Category preloaded to report the category name.
func (e *Expense) View() ExpenseView {
	v := ExpenseView{
		ID:          e.ID,
		Title:       e.Title,
		Amount:      e.Amount,
		Date:        e.Date.Format(DateLayout),
		Description: e.Description,
	}
	if e.Category != nil {
		name := e.Category.Name
		v.Category = &name
	}
	return v
}
