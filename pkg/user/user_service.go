package user

import (
	"Recipe-Website/domain"
	"Recipe-Website/entities"
	"Recipe-Website/pkg/jwt"
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		Me(ctx context.Context, identity domain.Identity) (domain.AuthResponse, error)
		EnsureAdmin(ctx context.Context, email, password string) (*entities.User, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepository.CheckUserByEmail(ctx, email)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	if exists {
		return domain.AuthResponse{}, domain.ErrEmailAlreadyRegistered
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	user := &entities.User{
		ID:          uuid.New(),
		DisplayName: strings.TrimSpace(req.DisplayName),
		Email:       email,
		Password:    hashed,
		Role:        domain.RoleUser,
	}
	if err := s.userRepository.RegisterUser(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrEmailAlreadyRegistered) {
			log.Errorf("failed to register user %s: %v", email, err)
		}
		return domain.AuthResponse{}, err
	}

	return s.authResponse(user)
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.AuthResponse{}, domain.ErrInvalidCredentials
		}
		return domain.AuthResponse{}, err
	}

	if !checkPassword(user.Password, req.Password) {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}
	if user.IsBanned {
		return domain.AuthResponse{}, domain.ErrUserBanned
	}

	return s.authResponse(user)
}

func (s *userService) Me(ctx context.Context, identity domain.Identity) (domain.AuthResponse, error) {
	if identity.IsAnonymous() {
		return domain.AuthResponse{}, domain.ErrTokenNotFound
	}

	user, err := s.userRepository.GetUserByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.AuthResponse{}, domain.ErrUnauthorized
		}
		return domain.AuthResponse{}, err
	}

	return s.authResponse(user)
}

// EnsureAdmin creates the administrator account if no user owns the email yet.
func (s *userService) EnsureAdmin(ctx context.Context, email, password string) (*entities.User, error) {
	existing, err := s.userRepository.GetUserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	admin := &entities.User{
		ID:          uuid.New(),
		DisplayName: "Administrator",
		Email:       strings.ToLower(email),
		Password:    hashed,
		Role:        domain.RoleAdmin,
	}
	if err := s.userRepository.RegisterUser(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyRegistered) {
			return s.userRepository.GetUserByEmail(ctx, email)
		}
		return nil, err
	}
	log.Infof("created administrator %s", admin.Email)
	return admin, nil
}

func (s *userService) authResponse(user *entities.User) (domain.AuthResponse, error) {
	token, err := s.jwtService.GenerateTokenUser(user.ID, user.Role)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	return domain.AuthResponse{
		Token:       token,
		UserID:      user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		IsAdmin:     user.Role == domain.RoleAdmin,
		Roles:       []string{user.Role},
	}, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func checkPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
