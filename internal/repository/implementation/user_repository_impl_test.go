package implementation

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestActivateUserMarksEmailVerified(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewUserRepository(db)

	if err := repo.ActivateUser(context.Background(), uuid.New()); err != nil {
		t.Fatalf("ActivateUser: %v", err)
	}

	sql := rec.last()
	if !strings.Contains(sql, `UPDATE "users"`) {
		t.Fatalf("expected update on users, got: %s", sql)
	}
	// Login requires both flags, so activation must flip them together.
	if !strings.Contains(sql, `"email_verified"=true`) {
		t.Fatalf("expected email_verified to be set, got: %s", sql)
	}
	if !strings.Contains(sql, `"status"='active'`) {
		t.Fatalf("expected status to be set to active, got: %s", sql)
	}
}
