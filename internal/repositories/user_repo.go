package repositories

import (
	"database/sql"
	"errors"

	intconfig "careline-backend/internal/config"
	intdb "careline-backend/internal/db"
	"careline-backend/internal/domain"
	"careline-backend/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `id, role, name, phone, COALESCE(email,''), password_hash, COALESCE(address,''), created_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Role, &u.Name, &u.Phone, &u.Email, &u.PasswordHash, &u.Address, &u.CreatedAt)
	return u, err
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE id=? LIMIT 1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE email=? LIMIT 1`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

func (r UserRepository) CountByEmail(email string) (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email=?`, email).Scan(&n)
	return n, err
}

func (r UserRepository) Insert(u models.User) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (role, name, phone, email, password_hash, address, created_at)
		VALUES (?,?,?,?,?,?,NOW())`,
		u.Role, u.Name, u.Phone,
		intdb.NullIfEmpty(u.Email),
		u.PasswordHash,
		intdb.NullIfEmpty(u.Address),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Delete removes an identity row; the compensating step of manager
// signup when the profile insert fails.
func (r UserRepository) Delete(id int64) error {
	_, err := r.db().Exec(`DELETE FROM users WHERE id=?`, id)
	return err
}
