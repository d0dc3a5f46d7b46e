package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/docutrack/internal/model"
	"github.com/iliyamo/docutrack/internal/queue"
)

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, u model.User) (uint64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

// MockCertificateStore mocks the CertificateStore interface
type MockCertificateStore struct {
	mock.Mock
}

func (m *MockCertificateStore) Create(ctx context.Context, req *model.CertificateRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockCertificateStore) ListByUser(ctx context.Context, userID uint64) ([]model.CertificateRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.CertificateRequest), args.Error(1)
}

func (m *MockCertificateStore) GetByIDForUser(ctx context.Context, id, userID uint64) (model.CertificateRequest, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(model.CertificateRequest), args.Error(1)
}

func (m *MockCertificateStore) ListAll(ctx context.Context) ([]model.CertificateRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.CertificateRequest), args.Error(1)
}

func (m *MockCertificateStore) UpdateStatus(ctx context.Context, id uint64, status model.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockCertificateStore) Stats(ctx context.Context) (model.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Stats), args.Error(1)
}

// MockPublisher mocks the EventPublisher interface
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, ev queue.CertificateEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

// MockStatsCache mocks the StatsCache interface
type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Get(ctx context.Context) (model.Stats, int64, bool) {
	args := m.Called(ctx)
	return args.Get(0).(model.Stats), args.Get(1).(int64), args.Bool(2)
}

func (m *MockStatsCache) Set(ctx context.Context, gen int64, st model.Stats) {
	m.Called(ctx, gen, st)
}

func (m *MockStatsCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}
