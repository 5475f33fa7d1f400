package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/natealva/blind-beer-tasting/internal/config"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
)

// MockSessionRepository mocks the SessionRepository interface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(session *models.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByCode(code string) (*models.Session, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionRepository) FindByID(id string) (*models.Session, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionRepository) SetActive(id string, active bool) error {
	args := m.Called(id, active)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret-that-is-long-enough-to-pass",
		AdminTokenTTL: time.Hour,
	}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

func TestCreateSession_Success(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	svc := NewSessionService(mockRepo, testConfig())

	mockRepo.On("Create", mock.AnythingOfType("*models.Session")).Return(nil)

	session, token, err := svc.Create("Friday Tasting", 8, "hunter2")

	assert.NoError(t, err)
	assert.NotNil(t, session)
	assert.Equal(t, "Friday Tasting", session.Name)
	assert.Equal(t, 8, session.BeerCount)
	assert.True(t, session.IsActive)
	assert.Len(t, session.Code, 6)
	for _, c := range session.Code {
		assert.Contains(t, codeCharset, string(c))
	}

	// The password is stored hashed, never verbatim
	assert.NotEqual(t, "hunter2", session.AdminPasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(session.AdminPasswordHash), []byte("hunter2")))

	// The returned token is already valid for this session
	code, err := svc.ValidateAdminToken(token)
	assert.NoError(t, err)
	assert.Equal(t, session.Code, code)

	mockRepo.AssertExpectations(t)
}

func TestCreateSession_RetriesOnCodeCollision(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	svc := NewSessionService(mockRepo, testConfig())

	mockRepo.On("Create", mock.AnythingOfType("*models.Session")).Return(uniqueViolation()).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Session")).Return(nil).Once()

	session, _, err := svc.Create("Tasting", 4, "hunter2")

	assert.NoError(t, err)
	assert.NotNil(t, session)
	mockRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestCreateSession_CodeExhausted(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	svc := NewSessionService(mockRepo, testConfig())

	mockRepo.On("Create", mock.AnythingOfType("*models.Session")).Return(uniqueViolation())

	session, token, err := svc.Create("Tasting", 4, "hunter2")

	assert.ErrorIs(t, err, ErrCodeExhausted)
	assert.Nil(t, session)
	assert.Empty(t, token)
	mockRepo.AssertNumberOfCalls(t, "Create", codeAttempts)
}

func TestCreateSession_OtherCreateErrorNotRetried(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	svc := NewSessionService(mockRepo, testConfig())

	mockRepo.On("Create", mock.AnythingOfType("*models.Session")).Return(gorm.ErrInvalidData)

	_, _, err := svc.Create("Tasting", 4, "hunter2")

	assert.ErrorIs(t, err, gorm.ErrInvalidData)
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestCreateSession_DefaultsAndClamps(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	svc := NewSessionService(mockRepo, testConfig())

	mockRepo.On("Create", mock.AnythingOfType("*models.Session")).Return(nil)

	session, _, err := svc.Create("   ", 0, "hunter2")
	assert.NoError(t, err)
	assert.Equal(t, defaultSessionName, session.Name)
	assert.Equal(t, 1, session.BeerCount)

	session, _, err = svc.Create("Big One", 500, "hunter2")
	assert.NoError(t, err)
	assert.Equal(t, 99, session.BeerCount)
}

func TestGetSessionByCode_NormalizesCode(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	svc := NewSessionService(mockRepo, testConfig())

	session := &models.Session{ID: "session-id", Code: "ABC234"}
	mockRepo.On("FindByCode", "ABC234").Return(session, nil)

	found, err := svc.GetByCode("  abc234 ")

	assert.NoError(t, err)
	assert.Equal(t, "session-id", found.ID)
	mockRepo.AssertExpectations(t)
}

func TestGetSessionByCode_NotFound(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	svc := NewSessionService(mockRepo, testConfig())

	mockRepo.On("FindByCode", "XXXXXX").Return(nil, gorm.ErrRecordNotFound)

	found, err := svc.GetByCode("XXXXXX")

	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Nil(t, found)
}

func TestAuthenticate_Success(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	svc := NewSessionService(mockRepo, testConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	session := &models.Session{ID: "session-id", Code: "ABC234", AdminPasswordHash: string(hash)}
	mockRepo.On("FindByCode", "ABC234").Return(session, nil)

	token, err := svc.Authenticate("abc234", "hunter2")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	code, err := svc.ValidateAdminToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "ABC234", code)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	svc := NewSessionService(mockRepo, testConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	session := &models.Session{ID: "session-id", Code: "ABC234", AdminPasswordHash: string(hash)}
	mockRepo.On("FindByCode", "ABC234").Return(session, nil)

	token, err := svc.Authenticate("ABC234", "wrongpassword")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestAuthenticate_SessionNotFound(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	svc := NewSessionService(mockRepo, testConfig())

	mockRepo.On("FindByCode", "XXXXXX").Return(nil, gorm.ErrRecordNotFound)

	token, err := svc.Authenticate("XXXXXX", "hunter2")

	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, token)
}

func TestValidateAdminToken_WrongType(t *testing.T) {
	cfg := testConfig()
	mockRepo := new(MockSessionRepository)
	svc := NewSessionService(mockRepo, cfg)

	claims := jwt.MapClaims{
		"session_code": "ABC234",
		"exp":          time.Now().Add(time.Hour).Unix(),
		"type":         "player",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(cfg.JWTSecret))

	code, err := svc.ValidateAdminToken(signed)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, code)
}

func TestValidateAdminToken_Expired(t *testing.T) {
	cfg := testConfig()
	mockRepo := new(MockSessionRepository)
	svc := NewSessionService(mockRepo, cfg)

	claims := jwt.MapClaims{
		"session_code": "ABC234",
		"exp":          time.Now().Add(-time.Hour).Unix(),
		"type":         "admin",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(cfg.JWTSecret))

	code, err := svc.ValidateAdminToken(signed)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, code)
}

func TestValidateAdminToken_WrongSecret(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	svc := NewSessionService(mockRepo, testConfig())

	claims := jwt.MapClaims{
		"session_code": "ABC234",
		"exp":          time.Now().Add(time.Hour).Unix(),
		"type":         "admin",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte("a-different-secret-entirely-and-long"))

	code, err := svc.ValidateAdminToken(signed)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, code)
}

func TestCloseSession(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	svc := NewSessionService(mockRepo, testConfig())

	session := &models.Session{ID: "session-id", Code: "ABC234", IsActive: true}
	mockRepo.On("FindByCode", "ABC234").Return(session, nil)
	mockRepo.On("SetActive", "session-id", false).Return(nil)

	err := svc.Close("ABC234")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestGenerateSessionCode_SkipsAmbiguousCharacters(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := generateSessionCode()
		assert.Len(t, code, 6)
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
		assert.Equal(t, strings.ToUpper(code), code)
	}
}
