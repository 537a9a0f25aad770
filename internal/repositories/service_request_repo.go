package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "careline-backend/internal/config"
	intdb "careline-backend/internal/db"
	"careline-backend/internal/domain"
	"careline-backend/internal/domain/models"
)

type ServiceRequestRepository struct {
	DB *sql.DB
}

func (r ServiceRequestRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const requestColumns = `id, customer_id, COALESCE(guest_name,''), COALESCE(guest_phone,''),
	service_type, service_date, start_time, duration_minutes,
	address, COALESCE(address_detail,''), phone, COALESCE(details,''),
	status, estimated_price, final_price, manager_id, designated_manager_id,
	created_at, confirmed_at, completed_at`

func scanRequest(row interface{ Scan(...any) error }) (models.ServiceRequest, error) {
	var (
		req          models.ServiceRequest
		customerID   sql.NullInt64
		finalPrice   sql.NullInt64
		managerID    sql.NullInt64
		designatedID sql.NullInt64
		confirmedAt  sql.NullTime
		completedAt  sql.NullTime
		status       string
	)
	if err := row.Scan(
		&req.ID, &customerID, &req.GuestName, &req.GuestPhone,
		&req.ServiceType, &req.ServiceDate, &req.StartTime, &req.DurationMinutes,
		&req.Address, &req.AddressDetail, &req.Phone, &req.Details,
		&status, &req.EstimatedPrice, &finalPrice, &managerID, &designatedID,
		&req.CreatedAt, &confirmedAt, &completedAt,
	); err != nil {
		return models.ServiceRequest{}, err
	}
	req.Status = domain.RequestStatus(status)
	req.CustomerID = intdb.Int64Ptr(customerID)
	req.FinalPrice = intdb.Int64Ptr(finalPrice)
	req.ManagerID = intdb.Int64Ptr(managerID)
	req.DesignatedManagerID = intdb.Int64Ptr(designatedID)
	req.ConfirmedAt = intdb.TimePtr(confirmedAt)
	req.CompletedAt = intdb.TimePtr(completedAt)
	return req, nil
}

// Create inserts a new service request and returns its id. A chosen
// manager goes into designated_manager_id only; manager_id stays NULL
// until the request leaves PENDING.
func (r ServiceRequestRepository) Create(req models.ServiceRequest) (int64, error) {
	var customerID any
	if req.CustomerID != nil {
		customerID = *req.CustomerID
	}
	var designatedID any
	if req.DesignatedManagerID != nil {
		designatedID = *req.DesignatedManagerID
	}

	res, err := r.db().Exec(`
		INSERT INTO service_requests
			(customer_id, guest_name, guest_phone, service_type, service_date, start_time,
			 duration_minutes, address, address_detail, phone, details, status,
			 estimated_price, designated_manager_id, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,NOW())`,
		customerID,
		intdb.NullIfEmpty(req.GuestName),
		intdb.NullIfEmpty(req.GuestPhone),
		req.ServiceType, req.ServiceDate, req.StartTime,
		req.DurationMinutes, req.Address,
		intdb.NullIfEmpty(req.AddressDetail),
		req.Phone,
		intdb.NullIfEmpty(req.Details),
		string(req.Status),
		req.EstimatedPrice,
		designatedID,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ServiceRequestRepository) GetByID(id int64) (models.ServiceRequest, error) {
	if id <= 0 {
		return models.ServiceRequest{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`SELECT `+requestColumns+` FROM service_requests WHERE id=? LIMIT 1`, id)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ServiceRequest{}, domain.NotFoundError{Resource: "request"}
	}
	return req, err
}

// GetForCustomer applies row scoping: a customer only sees their own rows.
func (r ServiceRequestRepository) GetForCustomer(id, customerID int64) (models.ServiceRequest, error) {
	row := r.db().QueryRow(`SELECT `+requestColumns+` FROM service_requests WHERE id=? AND customer_id=? LIMIT 1`,
		id, customerID)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ServiceRequest{}, domain.NotFoundError{Resource: "request"}
	}
	return req, err
}

func (r ServiceRequestRepository) ListByCustomer(customerID int64) ([]models.ServiceRequest, error) {
	rows, err := r.db().Query(`SELECT `+requestColumns+` FROM service_requests
		WHERE customer_id=? ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

// List is the privileged admin listing with optional status filter,
// paging, and a total count.
func (r ServiceRequestRepository) List(filter models.RequestFilter) ([]models.ServiceRequest, int, error) {
	where := []string{"1=1"}
	args := []any{}
	if filter.Status != "" {
		where = append(where, "status=?")
		args = append(args, string(filter.Status))
	}
	if filter.Designated {
		where = append(where, "manager_id IS NOT NULL", "status IN ('CONFIRMED','MATCHING')")
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM service_requests WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 || size > 100 {
		size = 20
	}
	args = append(args, size, (page-1)*size)

	rows, err := r.db().Query(`SELECT `+requestColumns+` FROM service_requests WHERE `+cond+`
		ORDER BY created_at DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out, err := collectRequests(rows)
	return out, total, err
}

// ListOpenPool returns requests a manager may still apply to.
func (r ServiceRequestRepository) ListOpenPool() ([]models.ServiceRequest, error) {
	rows, err := r.db().Query(`SELECT ` + requestColumns + ` FROM service_requests
		WHERE status IN ('CONFIRMED','MATCHING') AND manager_id IS NULL
		ORDER BY service_date ASC, start_time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

// SetStatus writes the given status unconditionally and stamps the
// matching timestamp column. Legality is the caller's concern. Moving
// to CONFIRMED promotes a staged designation into manager_id, so the
// column is only ever populated on a confirmed row.
func (r ServiceRequestRepository) SetStatus(id int64, to domain.RequestStatus) error {
	sets := []string{"status=?"}
	args := []any{string(to)}
	switch to {
	case domain.RequestConfirmed:
		sets = append(sets, "confirmed_at=NOW()", "manager_id=COALESCE(designated_manager_id, manager_id)")
	case domain.RequestCompleted:
		sets = append(sets, "completed_at=NOW()")
	}
	args = append(args, id)
	res, err := r.db().Exec(`UPDATE service_requests SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "request"}
	}
	return nil
}

// SetStatusIf performs a guarded transition; false means the row was
// not in the expected state anymore.
func (r ServiceRequestRepository) SetStatusIf(id int64, from, to domain.RequestStatus) (bool, error) {
	res, err := r.db().Exec(`UPDATE service_requests SET status=? WHERE id=? AND status=?`,
		string(to), id, string(from))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// AssignManager sets the accepted manager and moves the request to
// MATCHED in a single write.
func (r ServiceRequestRepository) AssignManager(id, managerID int64) error {
	res, err := r.db().Exec(`UPDATE service_requests SET manager_id=?, status=? WHERE id=?`,
		managerID, string(domain.RequestMatched), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "request"}
	}
	return nil
}

// ClearManager removes a designation, leaving status untouched.
func (r ServiceRequestRepository) ClearManager(id int64) error {
	_, err := r.db().Exec(`UPDATE service_requests SET manager_id=NULL, designated_manager_id=NULL WHERE id=?`, id)
	return err
}

// MarkCancelled flips to CANCELLED and clears both manager columns in
// one write, guarded on the cancellable states so a concurrent
// start/complete wins.
func (r ServiceRequestRepository) MarkCancelled(id int64) (bool, error) {
	res, err := r.db().Exec(`UPDATE service_requests SET status=?, manager_id=NULL, designated_manager_id=NULL
		WHERE id=? AND status IN ('PENDING','CONFIRMED','MATCHING','MATCHED')`,
		string(domain.RequestCancelled), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func collectRequests(rows *sql.Rows) ([]models.ServiceRequest, error) {
	out := []models.ServiceRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
