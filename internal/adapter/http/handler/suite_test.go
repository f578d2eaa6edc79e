package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/adapter/database/memory"
	"taskboard/internal/adapter/http/handler"
	"taskboard/internal/adapter/http/routes"
	"taskboard/internal/core/model/response"
	"taskboard/internal/core/port"
	"taskboard/internal/core/service"
	"taskboard/pkg/auth"
	"taskboard/pkg/config"
	"taskboard/pkg/middlewares"
)

type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// apiSuite serves both services from one router backed by memory repositories.
type apiSuite struct {
	suite.Suite
	ctx      context.Context
	Router   *gin.Engine
	JWT      *auth.JWT
	ListRepo port.ListRepository
	TodoRepo port.TodoRepository
	UserRepo port.UserRepository
}

func (s *apiSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.ctx = context.Background()
	s.ListRepo = memory.NewListRepository(nil)
	s.TodoRepo = memory.NewTodoRepository(nil)
	s.UserRepo = memory.NewUserRepository(nil)
	s.JWT = auth.NewJWT("test-secret")

	locker := service.NewScopeLocker()
	lists := service.NewListService(s.ListRepo, s.TodoRepo, locker, nil, nil)
	todos := service.NewTodoService(s.TodoRepo, s.ListRepo, locker, nil, nil)
	users := service.NewUserService(s.UserRepo, nil, nil).WithPasswordCost(bcrypt.MinCost)

	cfg := config.GetDefaultConfig(config.ServiceTodos)
	cfg.RateLimitEnabled = false

	s.Router = routes.SetupRouter(routes.HandlersConfig{
		Health: handler.NewHealthHandler(cfg.ServiceName),
		User:   handler.NewUserHandler(users, s.JWT, nil, nil),
		List:   handler.NewListHandler(lists, nil, nil),
		Todo:   handler.NewTodoHandler(todos, nil, nil),
	}, middlewares.Options{
		Config: cfg,
		Logger: config.NewNopLogger(),
	}, s.JWT)
}

func (s *apiSuite) do(method, path string, body any, token ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader

	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if len(token) > 0 {
		req.Header.Set("Authorization", "Bearer "+token[0])
	}

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	return rr
}

func decode[T any](s *apiSuite, rr *httptest.ResponseRecorder) T {
	var out T
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &out))

	return out
}

func (s *apiSuite) errorOf(rr *httptest.ResponseRecorder) response.ResponseError {
	return decode[response.ErrorResponse](s, rr).Error
}

func (s *apiSuite) createList(userID, name string) response.ListResponse {
	rr := s.do(http.MethodPost, "/lists", map[string]any{"name": name, "userId": userID})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

	return decode[envelope[response.ListResponse]](s, rr).Data
}

func (s *apiSuite) createTodo(userID, listID, title string) response.TodoResponse {
	rr := s.do(http.MethodPost, "/todos", map[string]any{"title": title, "listId": listID, "userId": userID})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

	return decode[envelope[response.TodoResponse]](s, rr).Data
}
