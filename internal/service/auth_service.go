package service

import (
	"errors"
	"strings"

	"github.com/pixmora/pixmora-backend/internal/apperr"
	"github.com/pixmora/pixmora-backend/internal/models"
	"github.com/pixmora/pixmora-backend/internal/repository"
	"github.com/pixmora/pixmora-backend/pkg/bcrypt"
	"github.com/pixmora/pixmora-backend/pkg/email"
	jwtPkg "github.com/pixmora/pixmora-backend/pkg/jwt"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo     *repository.UserRepository
	emailService *email.EmailService
	logger       *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, emailService *email.EmailService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		emailService: emailService,
		logger:       logger,
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || emailAddr == "" || req.Password == "" {
		return nil, apperr.Validation("username, email, and password are required")
	}

	taken, err := s.userRepo.UsernameExists(username)
	if err != nil {
		return nil, err
	}
	if !taken {
		taken, err = s.userRepo.EmailExists(emailAddr)
		if err != nil {
			return nil, err
		}
	}
	if taken {
		return nil, apperr.Conflict("username or email already taken")
	}

	hash, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        emailAddr,
		PasswordHash: hash,
	}
	// User and credit account persist together or not at all.
	if _, err := s.userRepo.CreateWithAccount(user); err != nil {
		// The unique constraints are the last word under concurrent signups.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("username or email already exists")
		}
		return nil, err
	}

	token, err := jwtPkg.GenerateToken(user.Email, user.ID)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.Username); err != nil {
			s.logger.Warn("welcome email failed", zap.String("email", user.Email), zap.Error(err))
		}
	}()

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))

	return &models.AuthResponse{
		UserID:   user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" || req.Password == "" {
		return nil, apperr.Validation("username/email and password are required")
	}

	// One generic message for unknown user and wrong password alike.
	user, err := s.userRepo.GetByIdentifier(identifier)
	if err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if err := bcrypt.ComparePassword(user.PasswordHash, req.Password); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	token, err := jwtPkg.GenerateToken(user.Email, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		UserID:   user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	}, nil
}
