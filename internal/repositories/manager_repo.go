package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "careline-backend/internal/config"
	intdb "careline-backend/internal/db"
	"careline-backend/internal/domain"
	"careline-backend/internal/domain/models"
	"careline-backend/internal/utils"
)

type ManagerRepository struct {
	DB *sql.DB
}

func (r ManagerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const managerColumns = `id, user_id, name, phone, COALESCE(email,''), COALESCE(photo_url,''),
	COALESCE(specialty,''), approval_status, is_active,
	COALESCE(bank_name,''), COALESCE(bank_account,''), created_at`

func scanManager(row interface{ Scan(...any) error }) (models.Manager, error) {
	var (
		m         models.Manager
		specialty string
		approval  string
	)
	if err := row.Scan(
		&m.ID, &m.UserID, &m.Name, &m.Phone, &m.Email, &m.PhotoURL,
		&specialty, &approval, &m.IsActive,
		&m.BankName, &m.BankAccount, &m.CreatedAt,
	); err != nil {
		return models.Manager{}, err
	}
	m.Specialty = utils.SplitList(specialty)
	m.ApprovalStatus = domain.ManagerApproval(approval)
	return m, nil
}

func (r ManagerRepository) GetByID(id int64) (models.Manager, error) {
	if id <= 0 {
		return models.Manager{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`SELECT `+managerColumns+` FROM managers WHERE id=? LIMIT 1`, id)
	m, err := scanManager(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Manager{}, domain.NotFoundError{Resource: "manager"}
	}
	return m, err
}

func (r ManagerRepository) GetByUserID(userID int64) (models.Manager, error) {
	row := r.db().QueryRow(`SELECT `+managerColumns+` FROM managers WHERE user_id=? LIMIT 1`, userID)
	m, err := scanManager(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Manager{}, domain.NotFoundError{Resource: "manager"}
	}
	return m, err
}

func (r ManagerRepository) Insert(m models.Manager) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO managers
			(user_id, name, phone, email, photo_url, specialty, approval_status, is_active,
			 bank_name, bank_account, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,NOW())`,
		m.UserID, m.Name, m.Phone,
		intdb.NullIfEmpty(m.Email),
		intdb.NullIfEmpty(m.PhotoURL),
		intdb.NullIfEmpty(utils.JoinList(m.Specialty)),
		string(m.ApprovalStatus), m.IsActive,
		intdb.NullIfEmpty(m.BankName),
		intdb.NullIfEmpty(m.BankAccount),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Search does a substring lookup over approved, active managers only.
// Used by customers picking a designated manager; capped at limit.
func (r ManagerRepository) Search(keyword string, limit int) ([]models.ManagerSummary, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, domain.ValidationError{Field: "keyword", Msg: "keyword required"}
	}
	if limit <= 0 || limit > 10 {
		limit = 10
	}
	like := "%" + keyword + "%"
	rows, err := r.db().Query(`
		SELECT id, name, phone, COALESCE(photo_url,''), COALESCE(specialty,'')
		FROM managers
		WHERE approval_status=? AND is_active=1 AND (name LIKE ? OR phone LIKE ?)
		ORDER BY name ASC LIMIT ?`,
		string(domain.ManagerApproved), like, like, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ManagerSummary{}
	for rows.Next() {
		var (
			s         models.ManagerSummary
			specialty string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.PhotoURL, &specialty); err != nil {
			return nil, err
		}
		s.Specialty = utils.SplitList(specialty)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r ManagerRepository) ListByApproval(status domain.ManagerApproval) ([]models.Manager, error) {
	rows, err := r.db().Query(`SELECT `+managerColumns+` FROM managers
		WHERE approval_status=? ORDER BY created_at ASC`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Manager{}
	for rows.Next() {
		m, err := scanManager(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r ManagerRepository) SetApproval(id int64, status domain.ManagerApproval) error {
	res, err := r.db().Exec(`UPDATE managers SET approval_status=? WHERE id=?`, string(status), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "manager"}
	}
	return nil
}
