package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/docutrack/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var certCols = []string{"id", "user_id", "certificate_type", "form_data", "status", "created_at"}

func TestUserRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(`INSERT INTO users \(email, password_hash, first_name, last_name, role\)`).
		WithArgs("jane@example.com", "hash", "Jane", "Doe", "user").
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := repo.Create(context.Background(), model.User{
		Email: "  Jane@Example.com ", PasswordHash: "hash", FirstName: "Jane", LastName: "Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_CreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := repo.Create(context.Background(), model.User{Email: "a@x.com", PasswordHash: "h", Role: model.RoleAdmin})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id,email,password_hash,first_name,last_name,role,created_at FROM users WHERE email=\?`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "first_name", "last_name", "role", "created_at"}).
			AddRow(1, "a@x.com", "hash", "A", "X", "admin", now))

	u, err := repo.GetByEmail(context.Background(), "A@X.com")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), u.ID)
	assert.Equal(t, model.RoleAdmin, u.Role)
	assert.Equal(t, now, u.CreatedAt)
}

func TestCertificateRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCertificateRepo(db)

	mock.ExpectExec(`INSERT INTO certificate_requests \(user_id, certificate_type, form_data, status, created_at\)`).
		WithArgs(uint64(3), "birth", []byte(`{"fullName":"Jane Doe"}`), "pending", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(10, 1))

	req := &model.CertificateRequest{UserID: 3, Type: model.CertificateBirth, Form: model.BirthForm{FullName: "Jane Doe"}}
	require.NoError(t, repo.Create(context.Background(), req))
	assert.Equal(t, uint64(10), req.ID)
	assert.Equal(t, model.StatusPending, req.Status)
	assert.False(t, req.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificateRepo_ListByUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCertificateRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM certificate_requests cr WHERE cr.user_id = \? ORDER BY cr.created_at DESC, cr.id DESC`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(certCols).
			AddRow(2, 3, "education", []byte(`{"fullName":"Jane","graduationYear":"2015"}`), "processing", now).
			AddRow(1, 3, "birth", []byte(`{"fullName":"Jane"}`), "pending", now.Add(-time.Hour)))

	got, err := repo.ListByUser(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(2), got[0].ID)
	assert.Equal(t, model.EducationForm{FullName: "Jane", GraduationYear: "2015"}, got[0].Form)
	assert.Equal(t, model.StatusPending, got[1].Status)
	assert.Nil(t, got[0].Owner)
}

func TestCertificateRepo_ListByUserEmpty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCertificateRepo(db)

	mock.ExpectQuery(`FROM certificate_requests cr WHERE cr.user_id = \?`).
		WillReturnRows(sqlmock.NewRows(certCols))

	got, err := repo.ListByUser(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCertificateRepo_GetByIDForUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCertificateRepo(db)

	mock.ExpectQuery(`WHERE cr.id = \? AND cr.user_id = \?`).
		WithArgs(uint64(5), uint64(3)).
		WillReturnRows(sqlmock.NewRows(certCols).AddRow(5, 3, "birth", []byte(`{"fullName":"Jane"}`), "ready", time.Now()))
	mock.ExpectQuery(`WHERE cr.id = \? AND cr.user_id = \?`).
		WithArgs(uint64(5), uint64(4)).
		WillReturnRows(sqlmock.NewRows(certCols))

	got, err := repo.GetByIDForUser(context.Background(), 5, 3)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReady, got.Status)

	_, err = repo.GetByIDForUser(context.Background(), 5, 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCertificateRepo_ListAll(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCertificateRepo(db)

	mock.ExpectQuery(`FROM certificate_requests cr JOIN users u ON u.id = cr.user_id ORDER BY cr.created_at DESC`).
		WillReturnRows(sqlmock.NewRows(append(certCols, "first_name", "last_name", "email")).
			AddRow(1, 3, "birth", []byte(`{"fullName":"Jane"}`), "pending", time.Now(), "Jane", "Doe", "a@x.com"))

	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Owner)
	assert.Equal(t, model.Owner{FirstName: "Jane", LastName: "Doe", Email: "a@x.com"}, *got[0].Owner)
}

func TestCertificateRepo_UpdateStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCertificateRepo(db)

	mock.ExpectExec(`UPDATE certificate_requests SET status = \? WHERE id = \?`).
		WithArgs("ready", uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE certificate_requests SET status = \? WHERE id = \?`).
		WithArgs("ready", uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE certificate_requests`).
		WillReturnError(errors.New("conn reset"))

	assert.NoError(t, repo.UpdateStatus(context.Background(), 1, model.StatusReady))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), 99, model.StatusReady), ErrNotFound)
	err := repo.UpdateStatus(context.Background(), 1, model.StatusReady)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestCertificateRepo_Stats(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCertificateRepo(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\),\s+COALESCE\(SUM\(status = 'pending'\), 0\)`).
		WillReturnRows(sqlmock.NewRows([]string{"total", "pending", "processing", "ready"}).AddRow(7, 2, 1, 3))

	s, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Stats{Total: 7, Pending: 2, Processing: 1, Ready: 3}, s)
	assert.LessOrEqual(t, s.Pending+s.Processing+s.Ready, s.Total)
}
