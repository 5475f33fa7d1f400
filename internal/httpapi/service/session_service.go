package service

import (
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/natealva/blind-beer-tasting/internal/config"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/repository"
	"github.com/natealva/blind-beer-tasting/internal/middleware/auth"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionClosed      = errors.New("session is no longer active")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrCodeExhausted      = errors.New("could not generate a unique session code")
)

// Join codes skip ambiguous characters (0/O, 1/I) so they survive being
// shouted across a table.
const (
	codeCharset  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 6
	codeAttempts = 10

	defaultSessionName = "Blind Tasting"
)

type SessionService interface {
	Create(name string, beerCount int, adminPassword string) (*models.Session, string, error)
	GetByCode(code string) (*models.Session, error)
	Authenticate(code, password string) (string, error)
	ValidateAdminToken(tokenString string) (string, error)
	Close(code string) error
}

type sessionService struct {
	sessionRepo   repository.SessionRepository
	jwtSecret     string
	adminTokenTTL time.Duration
}

func NewSessionService(sessionRepo repository.SessionRepository, cfg *config.Config) SessionService {
	return &sessionService{
		sessionRepo:   sessionRepo,
		jwtSecret:     cfg.JWTSecret,
		adminTokenTTL: cfg.AdminTokenTTL,
	}
}

// Create inserts a session with a freshly generated join code, retrying on a
// code collision up to codeAttempts times. The admin password is stored only
// as a bcrypt hash. Returns the session and an admin token so the host is
// signed in immediately.
func (s *sessionService) Create(name string, beerCount int, adminPassword string) (*models.Session, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultSessionName
	}
	if beerCount < 1 {
		beerCount = 1
	}
	if beerCount > 99 {
		beerCount = 99
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return nil, "", err
	}

	for attempt := 0; attempt < codeAttempts; attempt++ {
		session := &models.Session{
			Code:              generateSessionCode(),
			Name:              name,
			BeerCount:         beerCount,
			AdminPasswordHash: hash,
			IsActive:          true,
		}
		err := s.sessionRepo.Create(session)
		if err == nil {
			token, err := s.generateAdminToken(session.Code)
			if err != nil {
				return nil, "", err
			}
			return session, token, nil
		}
		if repository.IsUniqueViolation(err) {
			continue
		}
		return nil, "", err
	}
	return nil, "", ErrCodeExhausted
}

// GetByCode looks a session up by join code
func (s *sessionService) GetByCode(code string) (*models.Session, error) {
	session, err := s.sessionRepo.FindByCode(normalizeCode(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// Authenticate verifies the admin password and issues a signed admin token
// bound to the session code.
func (s *sessionService) Authenticate(code, password string) (string, error) {
	session, err := s.sessionRepo.FindByCode(normalizeCode(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Dummy compare to mitigate timing attacks (always take same time)
			auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
			return "", ErrSessionNotFound
		}
		return "", err
	}

	if err := auth.VerifyPassword(session.AdminPasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateAdminToken(session.Code)
}

// ValidateAdminToken checks signature and expiry and returns the session code
// the token was issued for.
func (s *sessionService) ValidateAdminToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if claims["type"] != "admin" {
		return "", ErrInvalidToken
	}
	code, ok := claims["session_code"].(string)
	if !ok || code == "" {
		return "", ErrInvalidToken
	}
	return code, nil
}

// Close deactivates a session so no new players can join
func (s *sessionService) Close(code string) error {
	session, err := s.GetByCode(code)
	if err != nil {
		return err
	}
	return s.sessionRepo.SetActive(session.ID, false)
}

func (s *sessionService) generateAdminToken(code string) (string, error) {
	claims := jwt.MapClaims{
		"session_code": code,
		"exp":          time.Now().Add(s.adminTokenTTL).Unix(),
		"iat":          time.Now().Unix(),
		"type":         "admin",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func generateSessionCode() string {
	buf := make([]byte, codeLength)
	// crypto/rand.Read never fails on supported platforms
	rand.Read(buf)
	code := make([]byte, codeLength)
	for i, b := range buf {
		code[i] = codeCharset[int(b)%len(codeCharset)]
	}
	return string(code)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
