package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/DhruvKhambhata/trackflow/internal/notification"
	"github.com/DhruvKhambhata/trackflow/internal/types/user"
)

type AuthService struct {
	db        *pgxpool.Pool
	emails    *notification.EmailService
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(db *pgxpool.Pool, emails *notification.EmailService) (*AuthService, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	return &AuthService{
		db:        db,
		emails:    emails,
		jwtSecret: []byte(secret),
		tokenTTL:  7 * 24 * time.Hour,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, req *user.RegisterRequest) (*user.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, created_at
	`

	u := &user.User{}
	err = s.db.QueryRow(ctx, query, name, email, string(hash)).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	// Welcome email is best-effort and must not block registration.
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.emails.SendWelcomeEmail(bgCtx, u.Email, u.Name); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", u.Email, err)
		}
	}()

	return &user.AuthResponse{Token: token, User: u}, nil
}

func (s *AuthService) Login(ctx context.Context, req *user.LoginRequest) (*user.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	u := &user.User{}
	var hash string
	err := s.db.QueryRow(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &hash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &user.AuthResponse{Token: token, User: u}, nil
}

func (s *AuthService) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// VerifyToken validates a bearer token and returns the user id it carries.
func (s *AuthService) VerifyToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}

	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("token has no user_id claim")
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user_id claim: %w", err)
	}
	return userID, nil
}
