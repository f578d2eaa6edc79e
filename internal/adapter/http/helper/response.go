package helper

import (
	"errors"
	"net/http"

	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/model/response"

	"github.com/gin-gonic/gin"
)

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	response := response.SuccessResponse{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		response.Message = message[0]
	}

	c.JSON(statusCode, response)
}

func SendMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, response.SuccessResponse{Message: message})
}

func SendError(c *gin.Context, statusCode int, code string, message string, errors []response.ValidationError, details ...any) {
	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:       code,
			Message:    message,
			StatusCode: statusCode,
			Errors:     errors,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.AbortWithStatusJSON(statusCode, errorResponse)
}

func SendValidationError(c *gin.Context, err error) {
	validationErrors := validation.FormatValidationErrors(err)
	message := "Validation failed"

	if len(validationErrors) > 0 {
		message = validationErrors[0].Message
	}

	SendError(c, http.StatusBadRequest, string(domain.KindValidation), message, validationErrors)
}

func SendInternalError(c *gin.Context, message string, details ...any) {
	SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil, details...)
}

func SendUnauthorizedError(c *gin.Context, message string) {
	SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	errors := []response.ValidationError{
		{
			Field:   field,
			Message: message,
		},
	}

	SendError(c, http.StatusBadRequest, "BAD_REQUEST", message, errors)
}

func SendNotFoundError(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, string(domain.KindNotFound), message, nil)
}

// SendDomainError maps domain errors to their status code. Anything else is
// reported as a 500 without leaking its text.
func SendDomainError(c *gin.Context, err error) {
	var domainErr *domain.Error

	if errors.As(err, &domainErr) {
		SendError(c, domainErr.StatusCode(), string(domainErr.Kind), domainErr.Message, nil)
		return
	}

	c.Error(err)
	SendInternalError(c, "Internal server error")
}
