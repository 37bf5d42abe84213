package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "nandighosh/internal/config"
	intdb "nandighosh/internal/db"
	"nandighosh/internal/domain/models"
)

const contactTable = "contact_messages"

// ContactRepository stores contact form messages in MySQL. It is the
// non-simulated submitter for the contact form.
type ContactRepository struct {
	DB *sql.DB
}

func (r ContactRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.CurrentDB()
}

// EnsureTable creates the inbox table on first use.
func (r ContactRepository) EnsureTable(ctx context.Context) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not available")
	}
	if intdb.HasTable(ctx, db, contactTable) {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS contact_messages (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	phone VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL,
	message TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.ExecContext(ctx, ddl)
	return err
}

// OpenContactInbox connects the shared database and prepares the inbox
// table. When the table cannot be prepared the shared handle is closed
// again, so the database only looks connected while the inbox uses it.
func OpenContactInbox(ctx context.Context, dsn string) (ContactRepository, error) {
	db, err := intconfig.ConnectDB(dsn)
	if err != nil {
		return ContactRepository{}, err
	}
	repo := ContactRepository{DB: db}
	if err := repo.EnsureTable(ctx); err != nil {
		intconfig.CloseDB()
		return ContactRepository{}, err
	}
	return repo, nil
}

// Submit inserts one message. The table must exist; see EnsureTable.
func (r ContactRepository) Submit(ctx context.Context, msg models.ContactDraft) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not available")
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, phone, email, message) VALUES (?, ?, ?, ?)`,
		msg.Name, msg.Phone, msg.Email, msg.Message,
	)
	return err
}
