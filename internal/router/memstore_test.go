package router

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/docutrack/internal/model"
	"github.com/iliyamo/docutrack/internal/repository"
)

// memStore is an in-memory stand-in for the MySQL repositories with the
// same error contract.
type memStore struct {
	mu     sync.Mutex
	users  []model.User
	certs  []model.CertificateRequest
	clock  time.Time
	nextID uint64
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type memUsers struct{ *memStore }

func (m memUsers) Create(_ context.Context, u model.User) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.Email = repository.NormalizeEmail(u.Email)
	for _, x := range m.users {
		if x.Email == u.Email {
			return 0, repository.ErrEmailExists
		}
	}
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = m.tick()
	m.users = append(m.users, u)
	return u.ID, nil
}

func (m memUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = repository.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

type memCerts struct{ *memStore }

func (m memCerts) Create(_ context.Context, req *model.CertificateRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	req.ID = m.nextID
	req.Status = model.StatusPending
	req.CreatedAt = m.tick()
	m.certs = append(m.certs, *req)
	return nil
}

func (m memCerts) ListByUser(_ context.Context, userID uint64) ([]model.CertificateRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.CertificateRequest, 0)
	for _, c := range m.certs {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	newestFirst(out)
	return out, nil
}

func (m memCerts) GetByIDForUser(_ context.Context, id, userID uint64) (model.CertificateRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.certs {
		if c.ID == id && c.UserID == userID {
			return c, nil
		}
	}
	return model.CertificateRequest{}, repository.ErrNotFound
}

func (m memCerts) ListAll(_ context.Context) ([]model.CertificateRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.CertificateRequest, 0, len(m.certs))
	for _, c := range m.certs {
		for _, u := range m.users {
			if u.ID == c.UserID {
				c.Owner = &model.Owner{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
			}
		}
		out = append(out, c)
	}
	newestFirst(out)
	return out, nil
}

func (m memCerts) UpdateStatus(_ context.Context, id uint64, status model.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.certs {
		if m.certs[i].ID == id {
			m.certs[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m memCerts) Stats(_ context.Context) (model.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var s model.Stats
	for _, c := range m.certs {
		s.Total++
		switch c.Status {
		case model.StatusPending:
			s.Pending++
		case model.StatusProcessing:
			s.Processing++
		case model.StatusReady:
			s.Ready++
		}
	}
	return s, nil
}

func newestFirst(rows []model.CertificateRequest) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID > rows[j].ID
	})
}
