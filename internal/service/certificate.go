package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/docutrack/internal/logger"
	"github.com/iliyamo/docutrack/internal/metrics"
	"github.com/iliyamo/docutrack/internal/model"
	"github.com/iliyamo/docutrack/internal/queue"
)

// CertificateStore is the persistence the certificate service relies on.
type CertificateStore interface {
	Create(ctx context.Context, req *model.CertificateRequest) error
	ListByUser(ctx context.Context, userID uint64) ([]model.CertificateRequest, error)
	GetByIDForUser(ctx context.Context, id, userID uint64) (model.CertificateRequest, error)
	ListAll(ctx context.Context) ([]model.CertificateRequest, error)
	UpdateStatus(ctx context.Context, id uint64, status model.Status) error
	Stats(ctx context.Context) (model.Stats, error)
}

// EventPublisher delivers certificate events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.CertificateEvent) error
}

// StatsCache holds the dashboard counters between writes. Get reports the
// cache generation it looked at; Set only makes a value visible if that
// generation is still current, and Invalidate starts a new one.
type StatsCache interface {
	Get(ctx context.Context) (st model.Stats, gen int64, hit bool)
	Set(ctx context.Context, gen int64, st model.Stats)
	Invalidate(ctx context.Context)
}

type CertificateService struct {
	store  CertificateStore
	events EventPublisher
	cache  StatsCache
	log    *logger.Logger
}

// NewCertificateService wires the service. events and cache may be nil.
func NewCertificateService(store CertificateStore, events EventPublisher, cache StatsCache, log *logger.Logger) *CertificateService {
	if events == nil {
		events = NoopPublisher{}
	}
	if cache == nil {
		cache = noCache{}
	}
	return &CertificateService{store: store, events: events, cache: cache, log: log}
}

// Create validates the typed form payload and stores a pending request owned
// by userID.
func (s *CertificateService) Create(ctx context.Context, userID uint64, certType string, form json.RawMessage) (model.CertificateRequest, error) {
	if certType == "" || isEmptyJSON(form) {
		return model.CertificateRequest{}, invalid("certificateType and formData are required")
	}
	t := model.CertificateType(certType)
	if !t.Valid() {
		return model.CertificateRequest{}, invalid("invalid certificate type")
	}
	data, err := model.ParseForm(t, form)
	if err != nil {
		return model.CertificateRequest{}, invalid(err.Error())
	}

	req := model.CertificateRequest{UserID: userID, Type: t, Form: data}
	if err := s.store.Create(ctx, &req); err != nil {
		return model.CertificateRequest{}, fmt.Errorf("create request: %w", err)
	}
	metrics.CertificateRequested(string(t))
	s.cache.Invalidate(ctx)
	s.publish(ctx, queue.CertificateEvent{
		Event:           queue.EventRequested,
		RequestID:       req.ID,
		UserID:          userID,
		CertificateType: t,
		Status:          req.Status,
	})
	return req, nil
}

// ListMine returns the caller's requests, newest first.
func (s *CertificateService) ListMine(ctx context.Context, userID uint64) ([]model.CertificateRequest, error) {
	return s.store.ListByUser(ctx, userID)
}

// GetOne returns request id if userID owns it, repository.ErrNotFound
// otherwise.
func (s *CertificateService) GetOne(ctx context.Context, id, userID uint64) (model.CertificateRequest, error) {
	return s.store.GetByIDForUser(ctx, id, userID)
}

// ListAll returns every request with its owner's identity.
func (s *CertificateService) ListAll(ctx context.Context) ([]model.CertificateRequest, error) {
	return s.store.ListAll(ctx)
}

// SetStatus moves request id to status. Any status may follow any other.
func (s *CertificateService) SetStatus(ctx context.Context, id uint64, status string) (model.Status, error) {
	st := model.Status(status)
	if !st.Valid() {
		return "", invalid("invalid status")
	}
	if err := s.store.UpdateStatus(ctx, id, st); err != nil {
		return "", err
	}
	metrics.StatusChanged(string(st))
	s.cache.Invalidate(ctx)
	s.publish(ctx, queue.CertificateEvent{Event: queue.EventStatusChanged, RequestID: id, Status: st})
	return st, nil
}

// Stats returns the dashboard counters, served from cache when possible.
func (s *CertificateService) Stats(ctx context.Context) (model.Stats, error) {
	st, gen, ok := s.cache.Get(ctx)
	if ok {
		return st, nil
	}
	st, err := s.store.Stats(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	s.cache.Set(ctx, gen, st)
	return st, nil
}

// publish never fails the calling operation; the row is already committed.
func (s *CertificateService) publish(ctx context.Context, ev queue.CertificateEvent) {
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("publish event failed", "event", ev.Event, "request_id", ev.RequestID, "error", err)
	}
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}

type noCache struct{}

func (noCache) Get(context.Context) (model.Stats, int64, bool) { return model.Stats{}, -1, false }
func (noCache) Set(context.Context, int64, model.Stats)        {}
func (noCache) Invalidate(context.Context)                     {}
