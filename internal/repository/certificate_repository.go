package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/docutrack/internal/model"
)

// CertificateRepo persists certificate requests. Apart from UpdateStatus,
// rows are never modified after insert.
type CertificateRepo struct {
	db *sql.DB
}

func NewCertificateRepo(db *sql.DB) *CertificateRepo {
	return &CertificateRepo{db: db}
}

const certificateColumns = "cr.id, cr.user_id, cr.certificate_type, cr.form_data, cr.status, cr.created_at"

// Create inserts req with status pending and fills in its ID, Status and
// CreatedAt.
func (r *CertificateRepo) Create(ctx context.Context, req *model.CertificateRequest) error {
	payload, err := json.Marshal(req.Form)
	if err != nil {
		return fmt.Errorf("encode form: %w", err)
	}
	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	const q = "INSERT INTO certificate_requests (user_id, certificate_type, form_data, status, created_at) VALUES (?,?,?,?,?)"
	res, err := r.db.ExecContext(ctx, q, req.UserID, string(req.Type), payload, string(model.StatusPending), createdAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = uint64(id)
	req.Status = model.StatusPending
	req.CreatedAt = createdAt
	return nil
}

// ListByUser returns every request owned by userID, newest first.
func (r *CertificateRepo) ListByUser(ctx context.Context, userID uint64) ([]model.CertificateRequest, error) {
	q := "SELECT " + certificateColumns + " FROM certificate_requests cr WHERE cr.user_id = ? ORDER BY cr.created_at DESC, cr.id DESC"
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.CertificateRequest, 0)
	for rows.Next() {
		req, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// GetByIDForUser fetches a request only when it is owned by userID. A row
// owned by someone else yields ErrNotFound, same as a missing row.
func (r *CertificateRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (model.CertificateRequest, error) {
	q := "SELECT " + certificateColumns + " FROM certificate_requests cr WHERE cr.id = ? AND cr.user_id = ? LIMIT 1"
	req, err := scanCertificate(r.db.QueryRowContext(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CertificateRequest{}, ErrNotFound
		}
		return model.CertificateRequest{}, err
	}
	return req, nil
}

// ListAll returns every request joined with its owner's identity, newest
// first.
func (r *CertificateRepo) ListAll(ctx context.Context) ([]model.CertificateRequest, error) {
	q := "SELECT " + certificateColumns + ", u.first_name, u.last_name, u.email" +
		" FROM certificate_requests cr JOIN users u ON u.id = cr.user_id" +
		" ORDER BY cr.created_at DESC, cr.id DESC"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.CertificateRequest, 0)
	for rows.Next() {
		var (
			req         model.CertificateRequest
			typ, status string
			form        []byte
			owner       model.Owner
		)
		if err := rows.Scan(&req.ID, &req.UserID, &typ, &form, &status, &req.CreatedAt,
			&owner.FirstName, &owner.LastName, &owner.Email); err != nil {
			return nil, err
		}
		if err := fillCertificate(&req, typ, status, form); err != nil {
			return nil, err
		}
		req.Owner = &owner
		out = append(out, req)
	}
	return out, rows.Err()
}

// UpdateStatus sets the status of request id. It returns ErrNotFound when no
// row has that id. The DSN's clientFoundRows flag makes an unchanged status
// still count as a match.
func (r *CertificateRepo) UpdateStatus(ctx context.Context, id uint64, status model.Status) error {
	res, err := r.db.ExecContext(ctx, "UPDATE certificate_requests SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats counts requests in a single statement so the buckets never exceed
// the total.
func (r *CertificateRepo) Stats(ctx context.Context) (model.Stats, error) {
	const q = `SELECT COUNT(*),
		COALESCE(SUM(status = 'pending'), 0),
		COALESCE(SUM(status = 'processing'), 0),
		COALESCE(SUM(status = 'ready'), 0)
		FROM certificate_requests`
	var s model.Stats
	if err := r.db.QueryRowContext(ctx, q).Scan(&s.Total, &s.Pending, &s.Processing, &s.Ready); err != nil {
		return model.Stats{}, err
	}
	return s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCertificate(s scanner) (model.CertificateRequest, error) {
	var (
		req         model.CertificateRequest
		typ, status string
		form        []byte
	)
	if err := s.Scan(&req.ID, &req.UserID, &typ, &form, &status, &req.CreatedAt); err != nil {
		return model.CertificateRequest{}, err
	}
	if err := fillCertificate(&req, typ, status, form); err != nil {
		return model.CertificateRequest{}, err
	}
	return req, nil
}

func fillCertificate(req *model.CertificateRequest, typ, status string, form []byte) error {
	req.Type = model.CertificateType(typ)
	req.Status = model.Status(status)
	f, err := model.DecodeStoredForm(req.Type, form)
	if err != nil {
		return fmt.Errorf("request %d: %w", req.ID, err)
	}
	req.Form = f
	return nil
}
