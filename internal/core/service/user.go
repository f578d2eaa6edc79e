package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/port"
	"taskboard/internal/core/telemetry"
	"taskboard/internal/core/util"
)

const invalidCredentialsMessage = "Invalid username or password"

type UserService struct {
	repo   port.UserRepository
	probe  port.Telemetry
	logger *zap.Logger
	cost   int
	mu     sync.Mutex
	now    func() time.Time
}

func NewUserService(repo port.UserRepository, probe port.Telemetry, logger *zap.Logger) *UserService {
	if probe == nil {
		probe = telemetry.NewNoOpProbe()
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &UserService{
		repo:   repo,
		probe:  probe,
		logger: logger,
		cost:   util.PasswordCost,
		now:    time.Now,
	}
}

// WithPasswordCost overrides the bcrypt cost, mostly to keep tests fast.
func (s *UserService) WithPasswordCost(cost int) *UserService {
	s.cost = cost
	return s
}

func (s *UserService) Create(ctx context.Context, in domain.CreateUserInput) (user *domain.User, err error) {
	ctx, end := startOperation(ctx, s.probe, "user", "Create", "")
	defer func() { end(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.FindByUsername(ctx, in.Username)

	if err != nil {
		return nil, fmt.Errorf("looking up username: %w", err)
	}

	if existing != nil {
		return nil, domain.NewConflictError(fmt.Sprintf("Username '%s' already exists", in.Username))
	}

	hash, err := util.GenerateEncrypt(in.Password, s.cost)

	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := s.now()

	user, err = s.repo.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})

	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.probe.RecordBusinessEvent(ctx, "created", "user", user.ID, user.ID, nil)

	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)

	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, domain.NewNotFoundError("User", id)
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteByID(ctx, id)

	if err != nil {
		return fmt.Errorf("deleting user %s: %w", id, err)
	}

	if !deleted {
		return domain.NewNotFoundError("User", id)
	}

	return nil
}

// Login checks the credentials. Unknown users and wrong passwords fail with
// the same validation error.
func (s *UserService) Login(ctx context.Context, username string, password string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)

	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, domain.NewValidationError(invalidCredentialsMessage)
	}

	if err := util.ComparePassword(password, user.PasswordHash); err != nil {
		s.logger.Info("Login rejected", zap.String("username", username))
		return nil, domain.NewValidationError(invalidCredentialsMessage)
	}

	return user, nil
}
