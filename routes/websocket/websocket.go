package websocket

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"ExpenseTracker/controllers"
	"ExpenseTracker/pkg/token"
)

func Register(r gin.IRouter, v *token.Validator, interval time.Duration, log zerolog.Logger) {
	r.GET("/ws/session", controllers.SessionWS(v, interval, log))
}
