package repositories

import (
	"database/sql"
	"errors"

	intconfig "careline-backend/internal/config"
	intdb "careline-backend/internal/db"
	"careline-backend/internal/domain"
	"careline-backend/internal/domain/models"
)

type ApplicationRepository struct {
	DB *sql.DB
}

func (r ApplicationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const applicationColumns = `id, manager_id, service_request_id, status, COALESCE(message,''), created_at`

func scanApplication(row interface{ Scan(...any) error }) (models.ManagerApplication, error) {
	var (
		app    models.ManagerApplication
		status string
	)
	if err := row.Scan(&app.ID, &app.ManagerID, &app.ServiceRequestID, &status, &app.Message, &app.CreatedAt); err != nil {
		return models.ManagerApplication{}, err
	}
	app.Status = domain.ApplicationStatus(status)
	return app, nil
}

func (r ApplicationRepository) GetByID(id int64) (models.ManagerApplication, error) {
	if id <= 0 {
		return models.ManagerApplication{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`SELECT `+applicationColumns+` FROM manager_applications WHERE id=? LIMIT 1`, id)
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ManagerApplication{}, domain.NotFoundError{Resource: "application"}
	}
	return app, err
}

// GetAnyByRequest returns the application holding the marketplace slot
// for a request, or (nil, nil) when the slot is free. The existence
// check is on presence of a row, not on its status.
func (r ApplicationRepository) GetAnyByRequest(requestID int64) (*models.ManagerApplication, error) {
	row := r.db().QueryRow(`SELECT `+applicationColumns+` FROM manager_applications
		WHERE service_request_id=? ORDER BY created_at ASC LIMIT 1`, requestID)
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// InsertIfAbsent claims the slot with a conditional insert so two
// racing managers cannot both pass the existence check. Returns false
// when another row already holds the request.
func (r ApplicationRepository) InsertIfAbsent(app models.ManagerApplication) (int64, bool, error) {
	res, err := r.db().Exec(`
		INSERT INTO manager_applications (manager_id, service_request_id, status, message, created_at)
		SELECT ?, ?, ?, ?, NOW() FROM DUAL
		WHERE NOT EXISTS (
			SELECT 1 FROM manager_applications WHERE service_request_id=?
		)`,
		app.ManagerID, app.ServiceRequestID, string(app.Status),
		intdb.NullIfEmpty(app.Message), app.ServiceRequestID,
	)
	if err != nil {
		return 0, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	id, err := res.LastInsertId()
	return id, true, err
}

func (r ApplicationRepository) ListByRequest(requestID int64) ([]models.ManagerApplication, error) {
	rows, err := r.db().Query(`SELECT `+applicationColumns+` FROM manager_applications
		WHERE service_request_id=? ORDER BY created_at ASC`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r ApplicationRepository) ListByManager(managerID int64) ([]models.ManagerApplication, error) {
	rows, err := r.db().Query(`SELECT `+applicationColumns+` FROM manager_applications
		WHERE manager_id=? ORDER BY created_at DESC`, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r ApplicationRepository) CountPendingByRequest(requestID int64) (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM manager_applications
		WHERE service_request_id=? AND status=?`, requestID, string(domain.ApplicationPending)).Scan(&n)
	return n, err
}

// SetStatusIf moves an application out of the expected state; false
// means it was already processed.
func (r ApplicationRepository) SetStatusIf(id int64, from, to domain.ApplicationStatus) (bool, error) {
	res, err := r.db().Exec(`UPDATE manager_applications SET status=? WHERE id=? AND status=?`,
		string(to), id, string(from))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// RejectOthers bulk-rejects every PENDING application on the request
// except the accepted one.
func (r ApplicationRepository) RejectOthers(requestID, exceptID int64) error {
	_, err := r.db().Exec(`UPDATE manager_applications SET status=?
		WHERE service_request_id=? AND id<>? AND status=?`,
		string(domain.ApplicationRejected), requestID, exceptID, string(domain.ApplicationPending))
	return err
}

// RejectLive bulk-rejects PENDING and ACCEPTED applications; used by the
// cancellation cascade and by designated-approval override.
func (r ApplicationRepository) RejectLive(requestID int64) error {
	_, err := r.db().Exec(`UPDATE manager_applications SET status=?
		WHERE service_request_id=? AND status IN (?,?)`,
		string(domain.ApplicationRejected), requestID,
		string(domain.ApplicationPending), string(domain.ApplicationAccepted))
	return err
}

func collectApplications(rows *sql.Rows) ([]models.ManagerApplication, error) {
	out := []models.ManagerApplication{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}
