package handler

import (
	"net/http"

	. "taskboard/internal/adapter/http/helper"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/model/request"
	"taskboard/internal/core/model/response"
	"taskboard/internal/core/port"
	"taskboard/internal/core/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const reorderBindMessage = "Priority must be a number and userId must be a string"

type ListHandler struct {
	svc     port.ListService
	metrics *telemetry.AppMetrics
	logger  *zap.Logger
}

func NewListHandler(svc port.ListService, metrics *telemetry.AppMetrics, logger *zap.Logger) *ListHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ListHandler{
		svc:     svc,
		metrics: metrics,
		logger:  logger,
	}
}

func (h *ListHandler) CreateList(c *gin.Context) {
	ctx, span := startSpan(c, "handler.list.CreateList")
	defer span.End()

	params, ok := bindRequest[request.CreateListRequest](c, "Invalid request parameters")

	if !ok {
		return
	}

	params.UserID = resolveUserID(c, params.UserID)

	if !validate(c, params) {
		return
	}

	list, err := h.svc.Create(ctx, params.ToInput())

	if err != nil {
		fail(c, h.logger, span, "Failed to create list", err)
		return
	}

	h.record(c, "create")
	SendSuccess(c, http.StatusCreated, response.NewListResponse(*list))
}

// GetLists returns the lists of ?userId= ordered by priority, or every list
// when no user is given.
func (h *ListHandler) GetLists(c *gin.Context) {
	ctx, span := startSpan(c, "handler.list.GetLists")
	defer span.End()

	var (
		lists []domain.List
		err   error
	)

	if userID := resolveUserID(c, c.Query("userId")); userID != "" {
		span.SetAttributes(attribute.String("user.id", userID))
		lists, err = h.svc.ListByUser(ctx, userID)
	} else {
		lists, err = h.svc.ListAll(ctx)
	}

	if err != nil {
		fail(c, h.logger, span, "Failed to get lists", err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewListResponses(lists))
}

func (h *ListHandler) GetList(c *gin.Context) {
	ctx, span := startSpan(c, "handler.list.GetList", attribute.String("list.id", c.Param("id")))
	defer span.End()

	list, err := h.svc.Get(ctx, c.Param("id"))

	if err != nil {
		fail(c, h.logger, span, "Failed to get list", err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewListResponse(*list))
}

func (h *ListHandler) UpdateList(c *gin.Context) {
	ctx, span := startSpan(c, "handler.list.UpdateList", attribute.String("list.id", c.Param("id")))
	defer span.End()

	params, ok := bindRequest[request.UpdateListRequest](c, "Invalid request parameters")

	if !ok {
		return
	}

	if params.IsEmpty() {
		SendBadRequestError(c, "request", emptyUpdateMessage)
		return
	}

	if !validate(c, params) {
		return
	}

	list, err := h.svc.Update(ctx, c.Param("id"), params.ToInput())

	if err != nil {
		fail(c, h.logger, span, "Failed to update list", err)
		return
	}

	h.record(c, "update")
	SendSuccess(c, http.StatusOK, response.NewListResponse(*list))
}

func (h *ListHandler) DeleteList(c *gin.Context) {
	ctx, span := startSpan(c, "handler.list.DeleteList", attribute.String("list.id", c.Param("id")))
	defer span.End()

	userID := resolveUserID(c, c.Query("userId"))

	if userID == "" {
		SendBadRequestError(c, "userId", "User ID is required for list deletion")
		return
	}

	if err := h.svc.Delete(ctx, c.Param("id"), userID); err != nil {
		fail(c, h.logger, span, "Failed to delete list", err)
		return
	}

	h.record(c, "delete")
	SendMessage(c, "List deleted successfully")
}

func (h *ListHandler) ReorderList(c *gin.Context) {
	ctx, span := startSpan(c, "handler.list.ReorderList", attribute.String("list.id", c.Param("id")))
	defer span.End()

	params, ok := bindRequest[request.ReorderRequest](c, reorderBindMessage)

	if !ok {
		return
	}

	params.UserID = resolveUserID(c, params.UserID)

	if !validate(c, params) {
		return
	}

	lists, err := h.svc.Reorder(ctx, c.Param("id"), *params.Priority, params.UserID)

	if err != nil {
		fail(c, h.logger, span, "Failed to reorder list", err)
		return
	}

	h.record(c, "reorder")
	SendSuccess(c, http.StatusOK, response.NewListResponses(lists), "List reordered successfully")
}

func (h *ListHandler) EnsureDefaults(c *gin.Context) {
	ctx, span := startSpan(c, "handler.list.EnsureDefaults")
	defer span.End()

	params, ok := bindRequest[request.EnsureDefaultsRequest](c, "Invalid request parameters")

	if !ok {
		return
	}

	params.UserID = resolveUserID(c, params.UserID)

	if !validate(c, params) {
		return
	}

	lists, err := h.svc.EnsureDefaults(ctx, params.UserID)

	if err != nil {
		fail(c, h.logger, span, "Failed to create default lists", err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewListResponses(lists))
}

func (h *ListHandler) record(c *gin.Context, operation string) {
	if h.metrics != nil {
		h.metrics.RecordListOperation(c.Request.Context(), operation)
	}
}
