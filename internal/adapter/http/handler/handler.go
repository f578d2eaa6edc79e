package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	. "taskboard/internal/adapter/http/helper"
	. "taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/util"
	"taskboard/pkg/auth"
	. "taskboard/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const emptyUpdateMessage = "At least one field must be provided for update"

type normalizer interface {
	Normalize()
}

// bindRequest decodes and validates the JSON body. On failure the response
// has already been written and ok is false.
func bindRequest[T any](c *gin.Context, bindMessage string) (params T, ok bool) {
	params, err := util.ParamsToMap[T](c)

	if err != nil {
		SendBadRequestError(c, "request", bindMessage)
		return params, false
	}

	if n, isNormalizer := any(&params).(normalizer); isNormalizer {
		n.Normalize()
	}

	return params, true
}

func validate(c *gin.Context, params any) bool {
	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return false
	}

	return true
}

// resolveUserID prefers the user id of a verified bearer token over the one
// sent by the client.
func resolveUserID(c *gin.Context, fromClient string) string {
	if userID, ok := auth.UserIDFrom(c); ok {
		return userID
	}

	return fromClient
}

func startSpan(c *gin.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	)

	return CreateChildSpan(c.Request.Context(), name, attrs...)
}

// fail writes err to the client. Unexpected errors are logged, domain errors
// are not.
func fail(c *gin.Context, logger *zap.Logger, span trace.Span, message string, err error) {
	AddSpanError(span, err)

	if !errors.Is(err, domain.ErrValidation) && !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrConflict) {
		logger.Error(message, zap.Error(err), zap.String("path", c.FullPath()))
	}

	SendDomainError(c, err)
}

type HealthHandler struct {
	service string
}

func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{service: service}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   h.service,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
