package controllers

import "github.com/gin-gonic/gin"

func Index() gin.HandlerFunc {
	return func(c *gin.Context) {
		success(c, "ET API loaded successfully")
	}
}
