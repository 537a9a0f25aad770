package repositories

import (
	"database/sql"
	"errors"
	"time"

	intconfig "careline-backend/internal/config"
	"careline-backend/internal/domain"
	"careline-backend/internal/domain/models"
)

type AdminRepository struct {
	DB *sql.DB
}

func (r AdminRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r AdminRepository) GetByUsername(username string) (models.Admin, error) {
	var a models.Admin
	err := r.db().QueryRow(`SELECT id, username, password_hash, created_at FROM admins
		WHERE username=? LIMIT 1`, username).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, domain.NotFoundError{Resource: "admin"}
	}
	return a, err
}

// CreateSession stores a server-side session token for an admin.
func (r AdminRepository) CreateSession(adminID int64, token string, expiresAt time.Time) error {
	_, err := r.db().Exec(`INSERT INTO admin_sessions (admin_id, token, expires_at, created_at)
		VALUES (?,?,?,NOW())`, adminID, token, expiresAt)
	return err
}

// LookupSession resolves a session token to an admin id. The join
// re-checks the admin row on every call so a deleted admin is locked
// out immediately.
func (r AdminRepository) LookupSession(token string) (int64, error) {
	var adminID int64
	err := r.db().QueryRow(`
		SELECT s.admin_id FROM admin_sessions s
		JOIN admins a ON a.id = s.admin_id
		WHERE s.token=? AND s.expires_at > NOW() LIMIT 1`, token).Scan(&adminID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.UnauthorizedError{Msg: "invalid admin session"}
	}
	return adminID, err
}

func (r AdminRepository) DeleteSession(token string) error {
	_, err := r.db().Exec(`DELETE FROM admin_sessions WHERE token=?`, token)
	return err
}
