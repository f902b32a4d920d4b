package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionMock(t *testing.T) (*SessionRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSessionRepo(db), mock
}

const testHash = "a3f5c9d1e7b24860a3f5c9d1e7b24860a3f5c9d1e7b24860a3f5c9d1e7b24860"

func TestSessionValidate(t *testing.T) {
	future := time.Now().UTC().Add(24 * time.Hour)
	past := time.Now().UTC().Add(-time.Hour)
	revoked := time.Now().UTC().Add(-time.Minute)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantUser  uint64
		wantErr   bool
	}{
		{
			name: "live session resolves the user",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM sessions WHERE token_hash=").
					WithArgs(testHash).
					WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
						AddRow(42, future, nil))
			},
			wantUser: 42,
		},
		{
			name: "unknown hash",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM sessions WHERE token_hash=").
					WithArgs(testHash).
					WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}))
			},
			wantErr: true,
		},
		{
			name: "revoked session",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM sessions WHERE token_hash=").
					WithArgs(testHash).
					WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
						AddRow(42, future, revoked))
			},
			wantErr: true,
		},
		{
			name: "expired session",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM sessions WHERE token_hash=").
					WithArgs(testHash).
					WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
						AddRow(42, past, nil))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newSessionMock(t)
			tt.setupMock(mock)

			uid, err := repo.Validate(context.Background(), testHash)
			if tt.wantErr {
				require.ErrorIs(t, err, sql.ErrNoRows)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUser, uid)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionStoreAndRevoke(t *testing.T) {
	repo, mock := newSessionMock(t)
	exp := time.Now().UTC().Add(7 * 24 * time.Hour)

	mock.ExpectExec("INSERT INTO sessions \\(user_id, token_hash, expires_at\\)").
		WithArgs(42, testHash, exp).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE sessions SET revoked_at=NOW\\(\\) WHERE token_hash=(.+) AND revoked_at IS NULL").
		WithArgs(testHash).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Store(context.Background(), 42, testHash, exp))
	require.NoError(t, repo.Revoke(context.Background(), testHash))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRevokeAllForUser(t *testing.T) {
	repo, mock := newSessionMock(t)

	mock.ExpectExec("UPDATE sessions SET revoked_at=NOW\\(\\) WHERE user_id=(.+) AND revoked_at IS NULL").
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.RevokeAllForUser(context.Background(), 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}
