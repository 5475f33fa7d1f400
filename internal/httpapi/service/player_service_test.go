package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
)

// MockPlayerRepository mocks the PlayerRepository interface
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) Create(player *models.Player) error {
	args := m.Called(player)
	return args.Error(0)
}

func (m *MockPlayerRepository) FindByID(id string) (*models.Player, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) FindBySessionAndName(sessionID, name string) (*models.Player, error) {
	args := m.Called(sessionID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) ListBySession(sessionID string) ([]models.Player, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Player), args.Error(1)
}

func activeSessionFixture() *models.Session {
	return &models.Session{ID: "session-id", Code: "ABC234", BeerCount: 6, IsActive: true}
}

func newPlayerServiceForTest(t *testing.T, session *models.Session) (PlayerService, *MockPlayerRepository) {
	t.Helper()
	mockSessionRepo := new(MockSessionRepository)
	mockSessionRepo.On("FindByCode", session.Code).Return(session, nil)
	sessionSvc := NewSessionService(mockSessionRepo, testConfig())

	mockPlayerRepo := new(MockPlayerRepository)
	return NewPlayerService(mockPlayerRepo, sessionSvc, nil), mockPlayerRepo
}

func TestJoinOrResume_NewPlayer(t *testing.T) {
	svc, mockPlayerRepo := newPlayerServiceForTest(t, activeSessionFixture())

	mockPlayerRepo.On("FindBySessionAndName", "session-id", "Dana").Return(nil, gorm.ErrRecordNotFound)
	mockPlayerRepo.On("Create", mock.AnythingOfType("*models.Player")).Return(nil)

	player, resumed, err := svc.JoinOrResume("ABC234", "Dana", models.OrderDescending)

	assert.NoError(t, err)
	assert.False(t, resumed)
	assert.Equal(t, "session-id", player.SessionID)
	assert.Equal(t, "Dana", player.Name)
	assert.Equal(t, models.OrderDescending, player.OrderDirection)
	mockPlayerRepo.AssertExpectations(t)
}

func TestJoinOrResume_ResumesExistingPlayer(t *testing.T) {
	svc, mockPlayerRepo := newPlayerServiceForTest(t, activeSessionFixture())

	existing := &models.Player{ID: "player-id", SessionID: "session-id", Name: "Dana", OrderDirection: models.OrderAscending}
	mockPlayerRepo.On("FindBySessionAndName", "session-id", "Dana").Return(existing, nil)

	player, resumed, err := svc.JoinOrResume("ABC234", "Dana", models.OrderDescending)

	assert.NoError(t, err)
	assert.True(t, resumed)
	assert.Equal(t, "player-id", player.ID)
	// Resuming keeps the original direction rather than the one resubmitted
	assert.Equal(t, models.OrderAscending, player.OrderDirection)
	mockPlayerRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestJoinOrResume_TrimsName(t *testing.T) {
	svc, mockPlayerRepo := newPlayerServiceForTest(t, activeSessionFixture())

	mockPlayerRepo.On("FindBySessionAndName", "session-id", "Dana").Return(nil, gorm.ErrRecordNotFound)
	mockPlayerRepo.On("Create", mock.AnythingOfType("*models.Player")).Return(nil)

	player, _, err := svc.JoinOrResume("ABC234", "  Dana  ", "")

	assert.NoError(t, err)
	assert.Equal(t, "Dana", player.Name)
	mockPlayerRepo.AssertExpectations(t)
}

func TestJoinOrResume_DefaultsDirectionToAscending(t *testing.T) {
	svc, mockPlayerRepo := newPlayerServiceForTest(t, activeSessionFixture())

	mockPlayerRepo.On("FindBySessionAndName", "session-id", "Dana").Return(nil, gorm.ErrRecordNotFound)
	mockPlayerRepo.On("Create", mock.AnythingOfType("*models.Player")).Return(nil)

	player, _, err := svc.JoinOrResume("ABC234", "Dana", "sideways")

	assert.NoError(t, err)
	assert.Equal(t, models.OrderAscending, player.OrderDirection)
}

func TestJoinOrResume_SessionClosed(t *testing.T) {
	closed := activeSessionFixture()
	closed.IsActive = false
	svc, mockPlayerRepo := newPlayerServiceForTest(t, closed)

	player, resumed, err := svc.JoinOrResume("ABC234", "Dana", "")

	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.False(t, resumed)
	assert.Nil(t, player)
	mockPlayerRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestJoinOrResume_SessionNotFound(t *testing.T) {
	mockSessionRepo := new(MockSessionRepository)
	mockSessionRepo.On("FindByCode", "XXXXXX").Return(nil, gorm.ErrRecordNotFound)
	sessionSvc := NewSessionService(mockSessionRepo, testConfig())
	svc := NewPlayerService(new(MockPlayerRepository), sessionSvc, nil)

	player, _, err := svc.JoinOrResume("XXXXXX", "Dana", "")

	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Nil(t, player)
}

func TestGetPlayerByID_NotFound(t *testing.T) {
	mockPlayerRepo := new(MockPlayerRepository)
	mockPlayerRepo.On("FindByID", "missing").Return(nil, gorm.ErrRecordNotFound)
	svc := NewPlayerService(mockPlayerRepo, nil, nil)

	player, err := svc.GetByID("missing")

	assert.ErrorIs(t, err, ErrPlayerNotFound)
	assert.Nil(t, player)
}
