package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ExpenseTracker/middleware"
	"ExpenseTracker/models"
	"ExpenseTracker/pkg/messages"
	"ExpenseTracker/pkg/token"
)

type registerRequest struct {
	FirstName            string `json:"firstName" form:"firstName" validate:"required"`
	LastName             string `json:"lastName" form:"lastName" validate:"required"`
	Email                string `json:"email" form:"email" validate:"required,email"`
	Password             string `json:"password" form:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"passwordConfirmation" form:"passwordConfirmation" validate:"required,eqfield=Password"`
}

// Register handler
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body registerRequest
		if err := c.ShouldBind(&body); err != nil && c.Request.ContentLength != 0 {
			badRequest(c, messages.InvalidInput)
			return
		}
		body.FirstName = strings.TrimSpace(body.FirstName)
		body.LastName = strings.TrimSpace(body.LastName)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if err := validate.Struct(body); err != nil {
			badRequest(c, validationMessage(err))
			return
		}

		var exists models.User
		if err := db.Where("email = ?", body.Email).First(&exists).Error; err == nil {
			badRequest(c, messages.EmailAlreadyExists)
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			serverError(c, err, messages.UnexpectedRegisterError)
			return
		}

		user := models.User{
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Email:     body.Email,
			Roles:     []string{models.RoleUser},
		}
		if err := user.SetPassword(body.Password); err != nil {
			serverError(c, err, messages.UnexpectedRegisterError)
			return
		}
		if err := db.Create(&user).Error; err != nil {
			// lost a race with a concurrent registration for the same email
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				badRequest(c, messages.EmailAlreadyExists)
				return
			}
			serverError(c, err, messages.UnexpectedRegisterError)
			return
		}

		success(c, messages.RegistrationSuccess)
	}
}

// Login handler
func Login(db *gorm.DB, codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Email    string `json:"email" form:"email"`
			Password string `json:"password" form:"password"`
		}
		if err := c.ShouldBind(&body); err != nil {
			badRequest(c, messages.InvalidInput)
			return
		}
		email := strings.TrimSpace(strings.ToLower(body.Email))
		if email == "" || body.Password == "" {
			badRequest(c, messages.AllFieldsRequired)
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				_ = c.Error(err)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"message": messages.InvalidCredentials})
			return
		}
		if !user.CheckPassword(body.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": messages.InvalidCredentials})
			return
		}

		raw, _, err := codec.Issue(strconv.FormatUint(uint64(user.ID), 10), user.Email, user.GetRoles())
		if err != nil {
			serverError(c, err, messages.UnexpectedError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": raw})
	}
}

// Logout revokes the presented token for the rest of its lifetime. The client
// is only told about success once the revocation is stored.
func Logout(ledger *token.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.CurrentClaims(c)
		raw := middleware.CurrentToken(c)
		if !ok || raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": messages.TokenNotFound})
			return
		}

		if err := ledger.RevokeToken(c.Request.Context(), raw, claims.Expiry()); err != nil {
			serverError(c, err, messages.UnexpectedLogoutError)
			return
		}
		success(c, messages.LogoutSuccessful)
	}
}

// Unrevoke lets an administrator restore a revoked token.
func Unrevoke(ledger *token.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Token string `json:"token" validate:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, messages.InvalidInput)
			return
		}
		body.Token = strings.TrimSpace(body.Token)
		if err := validate.Struct(body); err != nil {
			badRequest(c, messages.ValueEmpty)
			return
		}

		if err := ledger.UnrevokeToken(c.Request.Context(), body.Token); err != nil {
			serverError(c, err, messages.UnexpectedError)
			return
		}
		success(c, messages.TokenRestored)
	}
}
