package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers unknown emails, wrong passwords and
	// deactivated accounts without distinguishing between them.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidToken covers expired, malformed and wrongly signed tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the JWT payload issued at login.
type Claims struct {
	Role     Role       `json:"role"`
	DealerID *uuid.UUID `json:"dealerId,omitempty"`
	jwt.RegisteredClaims
}

// Service handles account management and token issuance.
type Service struct {
	db       *gorm.DB
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates a new auth Service.
func NewService(db *gorm.DB, secret string, tokenTTL time.Duration) *Service {
	return &Service{db: db, secret: []byte(secret), tokenTTL: tokenTTL}
}

// RegisterInput describes a new account.
type RegisterInput struct {
	Email    string     `json:"email" binding:"required,email"`
	Name     string     `json:"name" binding:"required"`
	Password string     `json:"password" binding:"required,min=8"`
	Role     Role       `json:"role" binding:"required"`
	DealerID *uuid.UUID `json:"dealerId"`
}

// Register creates a new user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if input.Role == RoleDealer && input.DealerID == nil {
		return nil, fmt.Errorf("dealer users must belong to a dealership")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
		Role:         input.Role,
		DealerID:     input.DealerID,
		Active:       true,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login verifies credentials and returns a signed JWT plus the user.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.Active {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.signToken(&user)
	if err != nil {
		return "", nil, err
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID, "role", user.Role)
	return token, &user, nil
}

func (s *Service) signToken(user *User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role:     user.Role,
		DealerID: user.DealerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// ParseToken validates a JWT and returns the auth context it encodes.
func (s *Service) ParseToken(tokenString string) (*AuthContext, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &AuthContext{
		UserID:   userID,
		Role:     claims.Role,
		DealerID: claims.DealerID,
	}, nil
}
