package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"clientportal/internal/model"
	"clientportal/internal/repository"
	"clientportal/pkg/rbac"
	"clientportal/pkg/util"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	logger    *zap.Logger
}

func NewService(userRepo *repository.UserRepository, jwtSecret string, logger *zap.Logger) *Service {
	return &Service{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Register creates a portal user. Only admins reach this path; the role is
// whatever the admin picked, defaulting to client.
func (s *Service) Register(ctx context.Context, email, password, name, role string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("email already exists")
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = rbac.RoleClient
	}

	u := &model.User{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Login checks credentials and returns a signed token plus the user.
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !util.CheckPassword(password, u.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(u.ID.String(), u.Email, u.Role, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("User logged in",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)
	return token, u, nil
}

// ParseToken restores the authenticated user from a token.
func (s *Service) ParseToken(tokenStr string) (*model.User, error) {
	userID, email, role, err := util.ParseJWT(tokenStr, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &model.User{
		ID:    model.FlexID(userID),
		Email: email,
		Role:  role,
	}, nil
}
