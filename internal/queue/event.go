// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

import "github.com/iliyamo/docutrack/internal/model"

// Event names carried in CertificateEvent.Event.
const (
	EventRequested     = "certificate.requested"
	EventStatusChanged = "certificate.status_changed"
)

// CertificateEvent is published when a certificate request is created or its
// status changes. It carries enough to log or notify without querying the
// primary database.
type CertificateEvent struct {
	Event           string                `json:"event"`
	RequestID       uint64                `json:"request_id"`
	UserID          uint64                `json:"user_id,omitempty"`
	CertificateType model.CertificateType `json:"certificate_type,omitempty"`
	Status          model.Status          `json:"status"`
	OccurredAt      string                `json:"occurred_at"`
}
