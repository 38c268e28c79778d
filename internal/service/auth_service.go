package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

const (
	bcryptCost        = 12
	minPasswordLength = 8
	// bcrypt only hashes the first 72 bytes.
	maxPasswordBytes = 72
)

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, email, username, password string) (*model.User, error)
	// Login accepts either an email or a username as identifier.
	Login(ctx context.Context, identifier, password string) (accessToken string, user *model.User, err error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register validates the input before touching the store, then rejects a taken
// email and a taken username, in that order.
func (s *authService) Register(ctx context.Context, email, username, password string) (*model.User, error) {
	if !strings.Contains(email, "@") {
		return nil, apperrors.ErrInvalidEmail
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, apperrors.ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return nil, apperrors.ErrPasswordTooLong
	}

	if taken, err := s.exists(ctx, s.userRepo.FindByEmail, email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if taken {
		return nil, apperrors.ErrEmailTaken
	}
	if taken, err := s.exists(ctx, s.userRepo.FindByUsername, username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if taken {
		return nil, apperrors.ErrUsernameTaken
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Username: username,
		Password: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// HashPassword returns the bcrypt hash stored in model.User.Password.
func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", apperrors.ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *authService) exists(ctx context.Context, find func(context.Context, string) (*model.User, error), value string) (bool, error) {
	_, err := find(ctx, value)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// Login authenticates a user and issues an access token. It never writes to the user store.
func (s *authService) Login(ctx context.Context, identifier, password string) (string, *model.User, error) {
	byEmail := isEmail(identifier)

	var (
		user *model.User
		err  error
	)
	if byEmail {
		user, err = s.userRepo.FindByEmail(ctx, identifier)
	} else {
		user, err = s.userRepo.FindByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if byEmail {
				return "", nil, apperrors.ErrEmailNotFound
			}
			return "", nil, apperrors.ErrUsernameNotFound
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID.Hex(), user.Email, user.IsAdmin)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, user, nil
}

// Logout revokes the presented access token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	return s.tokenStore.BlacklistAccessToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}

// isEmail reports whether a login identifier should be looked up as an email.
func isEmail(identifier string) bool {
	return strings.Contains(identifier, "@") && strings.Contains(identifier, ".")
}
