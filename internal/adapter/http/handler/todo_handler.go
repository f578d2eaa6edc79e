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

type TodoHandler struct {
	svc     port.TodoService
	metrics *telemetry.AppMetrics
	logger  *zap.Logger
}

func NewTodoHandler(svc port.TodoService, metrics *telemetry.AppMetrics, logger *zap.Logger) *TodoHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TodoHandler{
		svc:     svc,
		metrics: metrics,
		logger:  logger,
	}
}

func (h *TodoHandler) CreateTodo(c *gin.Context) {
	ctx, span := startSpan(c, "handler.todo.CreateTodo")
	defer span.End()

	params, ok := bindRequest[request.CreateTodoRequest](c, "Invalid request parameters")

	if !ok {
		return
	}

	params.UserID = resolveUserID(c, params.UserID)

	if !validate(c, params) {
		return
	}

	span.SetAttributes(attribute.String("list.id", params.ListID))

	todo, err := h.svc.Create(ctx, params.ToInput())

	if err != nil {
		fail(c, h.logger, span, "Failed to create todo", err)
		return
	}

	h.record(c, "create")
	SendSuccess(c, http.StatusCreated, response.NewTodoResponse(*todo))
}

// GetTodos filters by ?listId= first, then by ?userId=. Without either it
// returns every todo.
func (h *TodoHandler) GetTodos(c *gin.Context) {
	ctx, span := startSpan(c, "handler.todo.GetTodos")
	defer span.End()

	var (
		todos []domain.Todo
		err   error
	)

	listID := c.Query("listId")
	userID := resolveUserID(c, c.Query("userId"))

	switch {
	case listID != "":
		todos, err = h.svc.ListByList(ctx, listID)
	case userID != "":
		todos, err = h.svc.ListByUser(ctx, userID)
	default:
		todos, err = h.svc.ListAll(ctx)
	}

	if err != nil {
		fail(c, h.logger, span, "Failed to get todos", err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewTodoResponses(todos))
}

func (h *TodoHandler) GetTodo(c *gin.Context) {
	ctx, span := startSpan(c, "handler.todo.GetTodo", attribute.String("todo.id", c.Param("id")))
	defer span.End()

	todo, err := h.svc.Get(ctx, c.Param("id"))

	if err != nil {
		fail(c, h.logger, span, "Failed to get todo", err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewTodoResponse(*todo))
}

func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	ctx, span := startSpan(c, "handler.todo.UpdateTodo", attribute.String("todo.id", c.Param("id")))
	defer span.End()

	params, ok := bindRequest[request.UpdateTodoRequest](c, "Invalid request parameters")

	if !ok {
		return
	}

	input := params.ToInput()

	if input.IsEmpty() {
		SendBadRequestError(c, "request", emptyUpdateMessage)
		return
	}

	if !validate(c, params) {
		return
	}

	todo, err := h.svc.Update(ctx, c.Param("id"), input)

	if err != nil {
		fail(c, h.logger, span, "Failed to update todo", err)
		return
	}

	h.record(c, "update")
	SendSuccess(c, http.StatusOK, response.NewTodoResponse(*todo))
}

func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	ctx, span := startSpan(c, "handler.todo.DeleteTodo", attribute.String("todo.id", c.Param("id")))
	defer span.End()

	if err := h.svc.Delete(ctx, c.Param("id")); err != nil {
		fail(c, h.logger, span, "Failed to delete todo", err)
		return
	}

	h.record(c, "delete")
	SendMessage(c, "Todo deleted successfully")
}

func (h *TodoHandler) ReorderTodo(c *gin.Context) {
	ctx, span := startSpan(c, "handler.todo.ReorderTodo", attribute.String("todo.id", c.Param("id")))
	defer span.End()

	params, ok := bindRequest[request.ReorderRequest](c, reorderBindMessage)

	if !ok {
		return
	}

	params.UserID = resolveUserID(c, params.UserID)

	if !validate(c, params) {
		return
	}

	todos, err := h.svc.Reorder(ctx, c.Param("id"), *params.Priority, params.UserID)

	if err != nil {
		fail(c, h.logger, span, "Failed to reorder todo", err)
		return
	}

	h.record(c, "reorder")
	SendSuccess(c, http.StatusOK, response.NewTodoResponses(todos), "Todo reordered successfully")
}

func (h *TodoHandler) MoveTodo(c *gin.Context) {
	ctx, span := startSpan(c, "handler.todo.MoveTodo", attribute.String("todo.id", c.Param("id")))
	defer span.End()

	params, ok := bindRequest[request.MoveTodoRequest](c, "List ID must be a string")

	if !ok {
		return
	}

	if !validate(c, params) {
		return
	}

	span.SetAttributes(attribute.String("list.id", params.ListID))

	todo, err := h.svc.Move(ctx, c.Param("id"), params.ListID)

	if err != nil {
		fail(c, h.logger, span, "Failed to move todo", err)
		return
	}

	h.record(c, "move")
	SendSuccess(c, http.StatusOK, response.NewTodoResponse(*todo))
}

func (h *TodoHandler) record(c *gin.Context, operation string) {
	if h.metrics != nil {
		h.metrics.RecordTodoOperation(c.Request.Context(), operation)
	}
}
