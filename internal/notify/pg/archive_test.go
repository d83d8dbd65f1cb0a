package pg

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/spex2024/ug-dashboard/internal/notify"
)

func TestAppendBatchTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	batch := []notify.Notification{
		{ID: "create-o1-X", Message: "New officer added: Kwame Mensah", Timestamp: at, OfficerID: "o1", Type: notify.TypeCreate},
		{ID: "delete-a1-Y", Message: "Admin Akosua Boateng was removed", Timestamp: at, AdminID: "a1", Type: notify.TypeDelete},
	}

	mock.ExpectBegin()
	mock.ExpectExec("insert into notifications").
		WithArgs("create-o1-X", "New officer added: Kwame Mensah", at, false, "o1", nil, "create").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("insert into notifications").
		WithArgs("delete-a1-Y", "Admin Akosua Boateng was removed", at, false, nil, "a1", "delete").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := New(db).Append(context.Background(), batch); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAppendEmptyBatchIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	if err := New(db).Append(context.Background(), nil); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no statements expected: %v", err)
	}
}

func TestAppendRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("insert into notifications").
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	batch := []notify.Notification{{ID: "x", Message: "m", Timestamp: time.Now(), Type: notify.TypeUpdate}}
	if err := New(db).Append(context.Background(), batch); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "message", "created_at", "read", "officer_id", "admin_id", "type"}).
		AddRow("update-o1-Z", "Officer Kwame Mensah was updated", at, true, "o1", "", "update")

	mock.ExpectQuery("select id, message, created_at").
		WithArgs(50).
		WillReturnRows(rows)

	got, err := New(db).Recent(context.Background(), 50)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].Type != notify.TypeUpdate || !got[0].Read {
		t.Fatalf("unexpected rows: %+v", got)
	}
	if !got[0].Timestamp.Equal(at) {
		t.Fatalf("timestamp mismatch: %s", got[0].Timestamp)
	}
}
