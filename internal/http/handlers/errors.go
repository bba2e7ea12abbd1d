package handlers

import (
	"errors"
	"net/http"

	"corptransit/internal/domain"
	"corptransit/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err) || isDuplicateKey(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsUnknownModel(err):
		respondError(c, http.StatusUnprocessableEntity, "unknown_model", err.Error(), nil)
	case domain.IsConfiguration(err):
		respondError(c, http.StatusUnprocessableEntity, "configuration_error", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}

// isDuplicateKey detects a MySQL unique constraint violation (error 1062).
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
