package repositories

import (
	"database/sql"
	"errors"

	intconfig "careline-backend/internal/config"
	"careline-backend/internal/domain"
	"careline-backend/internal/domain/models"
)

type PriceRepository struct {
	DB *sql.DB
}

func (r PriceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetActiveByServiceType reads the current hourly rate for a service
// type. Read per booking, never cached process-wide.
func (r PriceRepository) GetActiveByServiceType(serviceType string) (models.ServicePrice, error) {
	var p models.ServicePrice
	err := r.db().QueryRow(`SELECT id, service_type, price_per_hour, is_active
		FROM service_prices WHERE service_type=? AND is_active=1 LIMIT 1`, serviceType).
		Scan(&p.ID, &p.ServiceType, &p.PricePerHour, &p.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ServicePrice{}, domain.NotFoundError{Resource: "service price"}
	}
	return p, err
}

func (r PriceRepository) List(activeOnly bool) ([]models.ServicePrice, error) {
	query := `SELECT id, service_type, price_per_hour, is_active FROM service_prices`
	if activeOnly {
		query += ` WHERE is_active=1`
	}
	query += ` ORDER BY service_type ASC`

	rows, err := r.db().Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ServicePrice{}
	for rows.Next() {
		var p models.ServicePrice
		if err := rows.Scan(&p.ID, &p.ServiceType, &p.PricePerHour, &p.IsActive); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PriceRepository) Insert(p models.ServicePrice) (int64, error) {
	res, err := r.db().Exec(`INSERT INTO service_prices (service_type, price_per_hour, is_active)
		VALUES (?,?,?)`, p.ServiceType, p.PricePerHour, p.IsActive)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PriceRepository) Update(p models.ServicePrice) error {
	res, err := r.db().Exec(`UPDATE service_prices SET price_per_hour=?, is_active=? WHERE id=?`,
		p.PricePerHour, p.IsActive, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "service price"}
	}
	return nil
}
