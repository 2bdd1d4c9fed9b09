package revokedtokens

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	revokeQ = `(?s)^INSERT\s+INTO\s+revoked_tokens\s*\(token\)\s*VALUES\s*\(\$1\)\s*ON\s+CONFLICT\s*\(token\)\s*DO\s+NOTHING\s*$`
	existsQ = `(?s)^SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+revoked_tokens\s+WHERE\s+token\s*=\s*\$1\)\s*$`
)

func TestRevoke(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(revokeQ).WithArgs("tok").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(revokeQ).WithArgs("tok").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(revokeQ).WithArgs("tok").WillReturnError(errors.New("db down"))

	if err := repo.Revoke(context.Background(), "tok"); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if err := repo.Revoke(context.Background(), "tok"); err != nil {
		t.Fatalf("second Revoke must be a no-op, got %v", err)
	}
	err := repo.Revoke(context.Background(), "tok")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIsRevoked(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(existsQ).WithArgs("a").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(existsQ).WithArgs("b").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(existsQ).WithArgs("c").WillReturnError(errors.New("db err"))

	if ok, err := repo.IsRevoked(context.Background(), "a"); err != nil || !ok {
		t.Fatalf("IsRevoked(a) = %v, %v", ok, err)
	}
	if ok, err := repo.IsRevoked(context.Background(), "b"); err != nil || ok {
		t.Fatalf("IsRevoked(b) = %v, %v", ok, err)
	}
	if _, err := repo.IsRevoked(context.Background(), "c"); err == nil {
		t.Fatal("expected error")
	}
}
