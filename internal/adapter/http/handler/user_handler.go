package handler

import (
	"net/http"

	. "taskboard/internal/adapter/http/helper"
	"taskboard/internal/core/model/request"
	"taskboard/internal/core/model/response"
	"taskboard/internal/core/port"
	"taskboard/internal/core/telemetry"
	"taskboard/pkg/auth"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type UserHandler struct {
	svc     port.UserService
	jwt     *auth.JWT
	metrics *telemetry.AppMetrics
	logger  *zap.Logger
}

func NewUserHandler(svc port.UserService, jwt *auth.JWT, metrics *telemetry.AppMetrics, logger *zap.Logger) *UserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &UserHandler{
		svc:     svc,
		jwt:     jwt,
		metrics: metrics,
		logger:  logger,
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx, span := startSpan(c, "handler.user.CreateUser")
	defer span.End()

	params, ok := bindRequest[request.CreateUserRequest](c, "Invalid request parameters")

	if !ok {
		return
	}

	if !validate(c, params) {
		return
	}

	user, err := h.svc.Create(ctx, params.ToInput())

	if err != nil {
		fail(c, h.logger, span, "Failed to create user", err)
		return
	}

	h.record(c, "create")
	SendSuccess(c, http.StatusCreated, response.NewUserResponse(*user))
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	ctx, span := startSpan(c, "handler.user.GetUsers")
	defer span.End()

	users, err := h.svc.List(ctx)

	if err != nil {
		fail(c, h.logger, span, "Failed to get users", err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewUserResponses(users))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	ctx, span := startSpan(c, "handler.user.GetUser", attribute.String("user.id", c.Param("id")))
	defer span.End()

	user, err := h.svc.Get(ctx, c.Param("id"))

	if err != nil {
		fail(c, h.logger, span, "Failed to get user", err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewUserResponse(*user))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	ctx, span := startSpan(c, "handler.user.DeleteUser", attribute.String("user.id", c.Param("id")))
	defer span.End()

	if err := h.svc.Delete(ctx, c.Param("id")); err != nil {
		fail(c, h.logger, span, "Failed to delete user", err)
		return
	}

	h.record(c, "delete")
	SendMessage(c, "User deleted successfully")
}

// Login checks the credentials and returns the user with a signed token.
func (h *UserHandler) Login(c *gin.Context) {
	ctx, span := startSpan(c, "handler.user.Login")
	defer span.End()

	params, ok := bindRequest[request.LoginRequest](c, "Invalid request parameters")

	if !ok {
		return
	}

	if !validate(c, params) {
		return
	}

	user, err := h.svc.Login(ctx, params.Username, params.Password)

	if err != nil {
		fail(c, h.logger, span, "Failed to login", err)
		return
	}

	token, err := h.jwt.CreateToken(user.ID)

	if err != nil {
		h.logger.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID))
		SendInternalError(c, "Error generating access token")
		return
	}

	h.record(c, "login")

	c.JSON(http.StatusOK, response.LoginResponse{
		Data:  response.NewUserResponse(*user),
		Token: token,
	})
}

func (h *UserHandler) record(c *gin.Context, operation string) {
	if h.metrics != nil {
		h.metrics.RecordUserOperation(c.Request.Context(), operation)
	}
}
