package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Success writes data as the JSON body with status 200.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes data with status 201 and a Location header when location
// is not empty.
func Created(c *gin.Context, location string, data interface{}) {
	if location != "" {
		c.Header("Location", location)
	}
	c.JSON(http.StatusCreated, data)
}

// Error responses

func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

func NotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: message})
}

func Conflict(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusConflict, ErrorResponse{Error: message})
}

func RequestTooLarge(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: message})
}

func InternalError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

func ServiceUnavailable(c *gin.Context, data interface{}) {
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, data)
}
