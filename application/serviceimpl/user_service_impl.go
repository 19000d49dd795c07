package serviceimpl

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/apperror"
	"taskboard-api/pkg/logger"
	"taskboard-api/pkg/utils"
)

type UserServiceImpl struct {
	userRepo  repositories.UserRepository
	jwtSecret string
}

func NewUserService(userRepo repositories.UserRepository, jwtSecret string) services.UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !apperror.IsKind(err, apperror.KindNotFound) {
		return nil, err
	}
	if existing != nil {
		logger.WarnContext(ctx, "Email already exists", "email", req.Email)
		return nil, apperror.Conflict("email already exists")
	}

	existing, err = s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil && !apperror.IsKind(err, apperror.KindNotFound) {
		return nil, err
	}
	if existing != nil {
		logger.WarnContext(ctx, "Username already exists", "username", req.Username)
		return nil, apperror.Conflict("username already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return nil, apperror.Persistence("failed to hash password", err)
	}

	id := uuid.New()
	if req.ID != nil {
		id = *req.ID
	}
	role := models.RoleUser
	if req.Role != "" {
		role = models.Role(req.Role)
	}

	user := &models.User{
		ID:          id,
		Email:       req.Email,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Password:    string(hashed),
		Role:        role,
		TeamID:      req.TeamID,
		ManagerID:   req.ManagerID,
		IsActive:    true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to create user", "email", req.Email, "error", err)
		return nil, err
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Email, string(user.Role), s.jwtSecret, 24*time.Hour)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate token", "user_id", user.ID, "error", err)
		return nil, apperror.Persistence("failed to generate token", err)
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "email", user.Email)
	return &dto.AuthResponse{Token: token, User: dto.ToUserResponse(user)}, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.WarnContext(ctx, "Login failed, email not found", "email", req.Email)
		return nil, apperror.Unauthorized("invalid email or password")
	}
	if !user.IsActive {
		logger.WarnContext(ctx, "Login failed, account disabled", "user_id", user.ID)
		return nil, apperror.Unauthorized("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.WarnContext(ctx, "Login failed, invalid password", "user_id", user.ID)
		return nil, apperror.Unauthorized("invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Email, string(user.Role), s.jwtSecret, 24*time.Hour)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate token", "user_id", user.ID, "error", err)
		return nil, apperror.Persistence("failed to generate token", err)
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID)
	return &dto.AuthResponse{Token: token, User: dto.ToUserResponse(user)}, nil
}

func (s *UserServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserServiceImpl) ListByTeam(ctx context.Context, actor *models.User, teamID uint) ([]*models.User, error) {
	if !actor.BelongsToTeam(teamID) {
		return nil, apperror.Forbidden("not a member of this team")
	}
	return s.userRepo.ListByTeam(ctx, teamID)
}

func (s *UserServiceImpl) Purge(ctx context.Context, actor *models.User, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return apperror.Forbidden("only admins can purge users")
	}
	if actor.ID == id {
		return apperror.Conflict("cannot purge your own account")
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.Purge(ctx, id); err != nil {
		logger.ErrorContext(ctx, "Failed to purge user", "user_id", id, "error", err)
		return err
	}

	logger.InfoContext(ctx, "User purged", "user_id", id, "actor_id", actor.ID)
	return nil
}
