package models

import "gorm.io/gorm"

// Category is shared by all users.
type Category struct {
	gorm.Model
	Name        string    `gorm:"size:255;not null;index"`
	Description string    `gorm:"type:text"`
	Expenses    []Expense `gorm:"constraint:OnDelete:SET NULL"`
}

type CategoryView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c *Category) View() CategoryView {
	return CategoryView{ID: c.ID, Name: c.Name, Description: c.Description}
}
