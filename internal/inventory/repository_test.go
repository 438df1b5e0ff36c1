package inventory

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open dry-run db: %v", err)
	}
	return db
}

func TestLockForUpdateEmitsRowLock(t *testing.T) {
	db := newDryRunDB(t)

	var tickets []Ticket
	stmt := lockForUpdate(db).
		Where("session_id = ?", uuid.New()).
		Find(&tickets).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "FOR UPDATE") {
		t.Errorf("expected a FOR UPDATE row lock, got %q", sql)
	}
}

func TestCancelReservedByIDsGuardsStatus(t *testing.T) {
	db := newDryRunDB(t)

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	stmt := cancelReservedByIDs(db, ids).Statement

	// The write must be conditional on the row still being RESERVED, so a
	// concurrently sold ticket is never flipped to CANCELLED
	sql := stmt.SQL.String()
	if !strings.Contains(sql, "status = ?") {
		t.Errorf("expected a status guard in the update, got %q", sql)
	}

	var sawReserved, sawCancelled bool
	for _, v := range stmt.Vars {
		switch v {
		case StatusReserved:
			sawReserved = true
		case StatusCancelled:
			sawCancelled = true
		}
	}
	if !sawReserved {
		t.Errorf("update must only match RESERVED rows, vars: %v", stmt.Vars)
	}
	if !sawCancelled {
		t.Errorf("update must set CANCELLED, vars: %v", stmt.Vars)
	}
}
