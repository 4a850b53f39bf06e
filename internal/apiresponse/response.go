// Package apiresponse defines the standard JSON envelope returned by every
// HTTP endpoint in this service, and maps internal engine errors onto it.
package apiresponse

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tesseract-nexus/vehicle-tax-engine/internal/engine"
)

// Response is the standard API response envelope.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error describes a failed request.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success sends a 200 response carrying data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// Created sends a 201 response carrying data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

// BadRequest sends a 400 response.
func BadRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: &Error{Code: code, Message: message}})
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, code, message string) {
	c.JSON(http.StatusNotFound, Response{Success: false, Error: &Error{Code: code, Message: message}})
}

// NotImplemented sends a 501 response.
func NotImplemented(c *gin.Context, code, message string) {
	c.JSON(http.StatusNotImplemented, Response{Success: false, Error: &Error{Code: code, Message: message}})
}

// InternalError sends a 500 response.
func InternalError(c *gin.Context, code, message string) {
	c.JSON(http.StatusInternalServerError, Response{Success: false, Error: &Error{Code: code, Message: message}})
}

// ServiceUnavailable sends a 503 response.
func ServiceUnavailable(c *gin.Context, message string) {
	c.JSON(http.StatusServiceUnavailable, Response{Success: false, Error: &Error{Code: "SERVICE_UNAVAILABLE", Message: message}})
}

// TaxError writes the appropriate HTTP status/body for a *engine.TaxError,
// per the Code -> status mapping: InvalidInput -> 400, UnknownState -> 404,
// NotImplementedForState -> 501, InternalInconsistency -> 500.
func TaxError(c *gin.Context, err *engine.TaxError) {
	switch err.Code {
	case engine.ErrInvalidInput:
		BadRequest(c, string(err.Code), err.Error())
	case engine.ErrUnknownState:
		NotFound(c, string(err.Code), err.Error())
	case engine.ErrNotImplementedForState:
		NotImplemented(c, string(err.Code), err.Error())
	default:
		InternalError(c, string(err.Code), err.Error())
	}
}
