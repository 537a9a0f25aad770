package repositories

import (
	"database/sql"
	"errors"

	intconfig "careline-backend/internal/config"
	intdb "careline-backend/internal/db"
	"careline-backend/internal/domain"
	"careline-backend/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentColumns = `id, service_request_id, order_id, payment_key, amount, refund_amount,
	status, COALESCE(method,''), approved_at, refunded_at, partial_refunded, created_at`

func scanPayment(row interface{ Scan(...any) error }) (models.Payment, error) {
	var (
		p          models.Payment
		requestID  sql.NullInt64
		approvedAt sql.NullTime
		refundedAt sql.NullTime
		status     string
	)
	if err := row.Scan(
		&p.ID, &requestID, &p.OrderID, &p.PaymentKey, &p.Amount, &p.RefundAmount,
		&status, &p.Method, &approvedAt, &refundedAt, &p.PartialRefunded, &p.CreatedAt,
	); err != nil {
		return models.Payment{}, err
	}
	p.Status = domain.PaymentStatus(status)
	p.ServiceRequestID = intdb.Int64Ptr(requestID)
	p.ApprovedAt = intdb.TimePtr(approvedAt)
	p.RefundedAt = intdb.TimePtr(refundedAt)
	return p, nil
}

// Insert records a confirmed charge.
func (r PaymentRepository) Insert(p models.Payment) (int64, error) {
	var requestID any
	if p.ServiceRequestID != nil {
		requestID = *p.ServiceRequestID
	}
	var approvedAt any
	if p.ApprovedAt != nil {
		approvedAt = *p.ApprovedAt
	}
	res, err := r.db().Exec(`
		INSERT INTO payments
			(service_request_id, order_id, payment_key, amount, refund_amount,
			 status, method, approved_at, partial_refunded, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,NOW())`,
		requestID, p.OrderID, p.PaymentKey, p.Amount, p.RefundAmount,
		string(p.Status), intdb.NullIfEmpty(p.Method), approvedAt, p.PartialRefunded,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	if id <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id=? LIMIT 1`, id)
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, domain.NotFoundError{Resource: "payment"}
	}
	return p, err
}

// GetRefundableByRequest finds the request's payment still carrying
// money, or (nil, nil) when there is nothing to refund.
func (r PaymentRepository) GetRefundableByRequest(requestID int64) (*models.Payment, error) {
	row := r.db().QueryRow(`SELECT `+paymentColumns+` FROM payments
		WHERE service_request_id=? AND status IN (?,?) LIMIT 1`,
		requestID, string(domain.PaymentPaid), string(domain.PaymentPartialRefunded))
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r PaymentRepository) GetByRequest(requestID int64) (*models.Payment, error) {
	row := r.db().QueryRow(`SELECT `+paymentColumns+` FROM payments
		WHERE service_request_id=? ORDER BY created_at DESC LIMIT 1`, requestID)
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r PaymentRepository) List(page, size int) ([]models.Payment, int, error) {
	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM payments`).Scan(&total); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	rows, err := r.db().Query(`SELECT `+paymentColumns+` FROM payments
		ORDER BY created_at DESC LIMIT ? OFFSET ?`, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// AddRefund bumps the running refund total by delta with the ledger
// invariant enforced in the WHERE clause, so a concurrent refund cannot
// push the total past the original amount. MySQL applies SET clauses
// left to right, so the status IF() sees the updated total.
func (r PaymentRepository) AddRefund(id, delta int64) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE payments
		SET refund_amount = refund_amount + ?,
		    status = IF(refund_amount = amount, ?, ?),
		    partial_refunded = IF(refund_amount = amount, 0, 1),
		    refunded_at = NOW()
		WHERE id=? AND status <> ? AND refund_amount + ? <= amount`,
		delta, string(domain.PaymentRefunded), string(domain.PaymentPartialRefunded),
		id, string(domain.PaymentRefunded), delta,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SetFullyRefunded overwrites the running total with the original
// amount. Used by full refunds and the cancellation cascade.
func (r PaymentRepository) SetFullyRefunded(id int64) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE payments
		SET refund_amount = amount,
		    status = ?,
		    partial_refunded = 0,
		    refunded_at = NOW()
		WHERE id=? AND status <> ?`,
		string(domain.PaymentRefunded), id, string(domain.PaymentRefunded),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
