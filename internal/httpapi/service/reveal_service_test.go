package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/natealva/blind-beer-tasting/internal/httpapi/dto"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
)

// MockRevealRepository mocks the RevealRepository interface
type MockRevealRepository struct {
	mock.Mock
}

func (m *MockRevealRepository) Upsert(reveal *models.BeerReveal) error {
	args := m.Called(reveal)
	return args.Error(0)
}

func (m *MockRevealRepository) ListBySession(sessionID string) ([]models.BeerReveal, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BeerReveal), args.Error(1)
}

func (m *MockRevealRepository) Delete(sessionID string, beerNumber int) error {
	args := m.Called(sessionID, beerNumber)
	return args.Error(0)
}

func newRevealServiceForTest(t *testing.T, session *models.Session) (RevealService, *MockRevealRepository) {
	t.Helper()
	mockSessionRepo := new(MockSessionRepository)
	mockSessionRepo.On("FindByCode", session.Code).Return(session, nil)
	sessionSvc := NewSessionService(mockSessionRepo, testConfig())

	mockRevealRepo := new(MockRevealRepository)
	return NewRevealService(mockRevealRepo, sessionSvc, nil), mockRevealRepo
}

func TestUpsertReveal_Success(t *testing.T) {
	svc, mockRevealRepo := newRevealServiceForTest(t, activeSessionFixture())

	mockRevealRepo.On("Upsert", mock.AnythingOfType("*models.BeerReveal")).Return(nil)

	reveal, err := svc.Upsert("ABC234", dto.UpsertRevealDTO{
		BeerNumber: 2,
		BeerName:   "  Pliny the Elder  ",
		Brewery:    sptr("Russian River"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "session-id", reveal.SessionID)
	assert.Equal(t, 2, reveal.BeerNumber)
	assert.Equal(t, "Pliny the Elder", reveal.BeerName)
	assert.Equal(t, "Russian River", *reveal.Brewery)
	mockRevealRepo.AssertExpectations(t)
}

func TestUpsertReveal_BeerNumberOutOfRange(t *testing.T) {
	svc, mockRevealRepo := newRevealServiceForTest(t, activeSessionFixture())

	reveal, err := svc.Upsert("ABC234", dto.UpsertRevealDTO{BeerNumber: 7, BeerName: "Extra Beer"})

	assert.ErrorIs(t, err, ErrBeerNumberOutOfRange)
	assert.Nil(t, reveal)
	mockRevealRepo.AssertNotCalled(t, "Upsert", mock.Anything)
}

func TestDeleteReveal(t *testing.T) {
	svc, mockRevealRepo := newRevealServiceForTest(t, activeSessionFixture())

	mockRevealRepo.On("Delete", "session-id", 2).Return(nil)

	err := svc.Delete("ABC234", 2)

	assert.NoError(t, err)
	mockRevealRepo.AssertExpectations(t)
}

func TestListReveals(t *testing.T) {
	svc, mockRevealRepo := newRevealServiceForTest(t, activeSessionFixture())

	mockRevealRepo.On("ListBySession", "session-id").Return([]models.BeerReveal{
		{SessionID: "session-id", BeerNumber: 1, BeerName: "Pilsner Urquell"},
		{SessionID: "session-id", BeerNumber: 3, BeerName: "Guinness"},
	}, nil)

	reveals, err := svc.List("ABC234")

	assert.NoError(t, err)
	assert.Len(t, reveals, 2)
}
