package db

import "database/sql"

// EnsureSchema creates the tables this service needs when they do not
// exist yet. Production databases are migrated out of band; this keeps
// a fresh dev database usable without extra steps.
func EnsureSchema(conn *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := conn.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		role VARCHAR(20) NOT NULL,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL,
		email VARCHAR(255) NULL,
		password_hash VARCHAR(255) NOT NULL,
		address VARCHAR(500) NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS admins (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(100) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_admins_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS admin_sessions (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		admin_id BIGINT NOT NULL,
		token VARCHAR(64) NOT NULL,
		expires_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_admin_sessions_token (token),
		KEY idx_admin_sessions_admin (admin_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS managers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL,
		email VARCHAR(255) NULL,
		photo_url VARCHAR(500) NULL,
		specialty VARCHAR(500) NULL,
		approval_status VARCHAR(20) NOT NULL DEFAULT 'pending',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		bank_name VARCHAR(100) NULL,
		bank_account VARCHAR(100) NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_managers_user (user_id),
		KEY idx_managers_approval (approval_status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS service_prices (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		service_type VARCHAR(100) NOT NULL,
		price_per_hour BIGINT NOT NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		UNIQUE KEY uniq_service_prices_type (service_type)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS service_requests (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		customer_id BIGINT NULL,
		guest_name VARCHAR(255) NULL,
		guest_phone VARCHAR(50) NULL,
		service_type VARCHAR(100) NOT NULL,
		service_date VARCHAR(10) NOT NULL,
		start_time VARCHAR(5) NOT NULL,
		duration_minutes INT NOT NULL,
		address VARCHAR(500) NOT NULL,
		address_detail VARCHAR(500) NULL,
		phone VARCHAR(50) NOT NULL,
		details TEXT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		estimated_price BIGINT NOT NULL,
		final_price BIGINT NULL,
		manager_id BIGINT NULL,
		designated_manager_id BIGINT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		confirmed_at TIMESTAMP NULL,
		completed_at TIMESTAMP NULL,
		KEY idx_requests_customer (customer_id),
		KEY idx_requests_status (status),
		KEY idx_requests_manager (manager_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS manager_applications (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		manager_id BIGINT NOT NULL,
		service_request_id BIGINT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		message VARCHAR(1000) NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		KEY idx_applications_request (service_request_id),
		KEY idx_applications_manager (manager_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS payments (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		service_request_id BIGINT NULL,
		order_id VARCHAR(64) NOT NULL,
		payment_key VARCHAR(200) NOT NULL,
		amount BIGINT NOT NULL,
		refund_amount BIGINT NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		method VARCHAR(50) NULL,
		approved_at TIMESTAMP NULL,
		refunded_at TIMESTAMP NULL,
		partial_refunded TINYINT(1) NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_payments_key (payment_key),
		KEY idx_payments_request (service_request_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}
