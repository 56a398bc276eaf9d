package models

import (
	"slices"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

type User struct {
	gorm.Model
	FirstName    string   `gorm:"size:100;not null"`
	LastName     string   `gorm:"size:100;not null"`
	Email        string   `gorm:"uniqueIndex;size:180;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Roles        []string `gorm:"serializer:json;type:text"`
	Expenses     []Expense
}

func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// GetRoles always includes ROLE_USER.
func (u *User) GetRoles() []string {
	roles := slices.Clone(u.Roles)
	if !slices.Contains(roles, RoleUser) {
		roles = append(roles, RoleUser)
	}
	return roles
}

func (u *User) HasRole(role string) bool {
	return slices.Contains(u.GetRoles(), role)
}

type UserView struct {
	ID        uint     `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
}

func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Roles:     u.GetRoles(),
	}
}
