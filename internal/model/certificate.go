package model

import "time"

// CertificateType identifies which document a request asks for.
type CertificateType string

const (
	CertificateBirth     CertificateType = "birth"
	CertificateEducation CertificateType = "education"
)

// Valid reports whether t is one of the supported certificate types.
func (t CertificateType) Valid() bool {
	return t == CertificateBirth || t == CertificateEducation
}

// Status is the lifecycle label of a certificate request. Any status may
// follow any other.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusDelivered  Status = "delivered"
	StatusRejected   Status = "rejected"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{StatusPending, StatusProcessing, StatusReady, StatusDelivered, StatusRejected}

// Valid reports whether s is one of the five enumerated statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// CertificateRequest mirrors a row of the `certificate_requests` table.
// Everything except Status is fixed at creation.
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – owner of the request.
//	Type      – requested certificate type.
//	Form      – typed form payload, variant chosen by Type.
//	Status    – current lifecycle label.
//	CreatedAt – creation timestamp.
//	Owner     – requester identity; only populated by admin listings.
type CertificateRequest struct {
	ID        uint64
	UserID    uint64
	Type      CertificateType
	Form      FormData
	Status    Status
	CreatedAt time.Time
	Owner     *Owner
}

// Owner is the requester identity joined onto admin listings.
type Owner struct {
	FirstName string
	LastName  string
	Email     string
}

// Stats holds the admin dashboard counters. Delivered and rejected requests
// only contribute to Total.
type Stats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Ready      int64 `json:"ready"`
}
