package repositories

import (
	"context"
	"errors"
	"testing"

	intconfig "nandighosh/internal/config"
	"nandighosh/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestContactRepositoryEnsureTableCreatesTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("contact_messages").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS contact_messages").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := ContactRepository{DB: db}
	if err := repo.EnsureTable(context.Background()); err != nil {
		t.Fatalf("EnsureTable returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestContactRepositoryEnsureTableExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("contact_messages").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("contact_messages"))

	repo := ContactRepository{DB: db}
	if err := repo.EnsureTable(context.Background()); err != nil {
		t.Fatalf("EnsureTable returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestContactRepositorySubmitOnlyInserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// No information_schema lookup per message.
	mock.ExpectExec("INSERT INTO contact_messages").
		WithArgs("Asha Patra", "9000000000", "asha@example.com", "Is there a night bus?").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO contact_messages").
		WillReturnResult(sqlmock.NewResult(2, 1))

	repo := ContactRepository{DB: db}
	msg := models.ContactDraft{
		Name:    "Asha Patra",
		Phone:   "9000000000",
		Email:   "asha@example.com",
		Message: "Is there a night bus?",
	}
	for i := 0; i < 2; i++ {
		if err := repo.Submit(context.Background(), msg); err != nil {
			t.Fatalf("Submit %d returned error: %v", i, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestContactRepositorySubmitInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO contact_messages").
		WillReturnError(errors.New("connection reset"))

	repo := ContactRepository{DB: db}
	err = repo.Submit(context.Background(), models.ContactDraft{Name: "A", Phone: "1", Email: "a@b.co", Message: "m"})
	if err == nil {
		t.Fatalf("expected insert error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestContactRepositoryWithoutDatabase(t *testing.T) {
	if intconfig.CurrentDB() != nil {
		t.Skip("shared database connected")
	}
	repo := ContactRepository{}
	if err := repo.Submit(context.Background(), models.ContactDraft{}); err == nil {
		t.Fatalf("expected error without database")
	}
	if err := repo.EnsureTable(context.Background()); err == nil {
		t.Fatalf("expected error without database")
	}
}

func TestOpenContactInboxReleasesDatabaseOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	intconfig.DB = db
	defer intconfig.CloseDB()

	mock.ExpectQuery("information_schema\\.tables").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS contact_messages").
		WillReturnError(errors.New("CREATE command denied"))
	mock.ExpectClose()

	if _, err := OpenContactInbox(context.Background(), "unused"); err == nil {
		t.Fatalf("expected error when the table cannot be created")
	}
	if intconfig.CurrentDB() != nil {
		t.Fatalf("shared database still open after failed setup")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenContactInboxKeepsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	intconfig.DB = db
	defer intconfig.CloseDB()

	mock.ExpectQuery("information_schema\\.tables").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("contact_messages"))

	repo, err := OpenContactInbox(context.Background(), "unused")
	if err != nil {
		t.Fatalf("OpenContactInbox returned error: %v", err)
	}
	if repo.DB != db || intconfig.CurrentDB() != db {
		t.Fatalf("inbox not bound to the shared database")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
