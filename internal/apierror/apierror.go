// Package apierror writes the JSON error body shared by every endpoint:
//
//	{"error":{"code":"NOT_FOUND","message":"member not found"}}
package apierror

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeTeamExists     = "TEAM_EXISTS"
	CodeInternal       = "INTERNAL_ERROR"
)

// Response is the error envelope.
type Response struct {
	Error Body `json:"error"`
}

// Body carries a machine-readable code and a human-readable message.
type Body struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Write renders an error with the given status.
func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{Error: Body{Code: code, Message: message}})
}

// Abort renders an error and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Response{Error: Body{Code: code, Message: message}})
}

// BadRequest renders a 400.
func BadRequest(c *gin.Context, message string) {
	Write(c, http.StatusBadRequest, CodeInvalidRequest, message)
}

// NotFound renders a 404.
func NotFound(c *gin.Context, message string) {
	Write(c, http.StatusNotFound, CodeNotFound, message)
}

// Internal renders a 500 without leaking the cause.
func Internal(c *gin.Context) {
	Write(c, http.StatusInternalServerError, CodeInternal, "internal server error")
}
