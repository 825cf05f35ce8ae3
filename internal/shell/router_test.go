package shell

import (
	"errors"
	"testing"

	"primoboost-be/internal/entity"

	"github.com/google/uuid"
)

func TestRouterResolve(t *testing.T) {
	r := NewRouter()
	admin := &entity.User{Id: uuid.New(), Role: entity.UserRoleAdmin}
	member := &entity.User{Id: uuid.New(), Role: entity.UserRoleUser}

	tests := []struct {
		name        string
		path        string
		user        *entity.User
		wantPattern string
		wantPage    string
		wantParams  map[string]string
		wantErr     error
	}{
		{
			name:        "root",
			path:        "/",
			wantPattern: "/",
			wantPage:    "home",
		},
		{
			name:        "param binding",
			path:        "/jobs/42/apply",
			wantPattern: "/jobs/:jobId/apply",
			wantPage:    "job_application",
			wantParams:  map[string]string{"jobId": "42"},
		},
		{
			name:        "static route wins over param sibling",
			path:        "/jobs/applications",
			wantPattern: "/jobs/applications",
			wantPage:    "my_applications",
		},
		{
			name:    "unknown path",
			path:    "/definitely/not/registered",
			wantErr: ErrRouteNotFound,
		},
		{
			name:    "admin route without user",
			path:    "/admin/dashboard",
			wantErr: ErrAdminOnly,
		},
		{
			name:    "admin route as member",
			path:    "/admin/dashboard",
			user:    member,
			wantErr: ErrAdminOnly,
		},
		{
			name:        "admin route as admin",
			path:        "/admin/dashboard",
			user:        admin,
			wantPattern: "/admin/dashboard",
			wantPage:    "admin_dashboard",
		},
		{
			name:        "admin route with params",
			path:        "/admin/jobs/7/edit",
			user:        admin,
			wantPattern: "/admin/jobs/:jobId/edit",
			wantPage:    "admin_job_edit",
			wantParams:  map[string]string{"jobId": "7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := r.Resolve(tt.path, tt.user)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve(%q) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.path, err)
			}
			if resolved.Pattern != tt.wantPattern {
				t.Errorf("Pattern = %q, want %q", resolved.Pattern, tt.wantPattern)
			}
			if resolved.Page.Name != tt.wantPage {
				t.Errorf("Page = %q, want %q", resolved.Page.Name, tt.wantPage)
			}
			for k, want := range tt.wantParams {
				if got := resolved.Params[k]; got != want {
					t.Errorf("Params[%q] = %q, want %q", k, got, want)
				}
			}
		})
	}
}

func TestRouterLazyLoadOnce(t *testing.T) {
	r := &Router{}
	calls := 0
	r.Register("/lazy", func() (*Page, error) {
		calls++
		return &Page{Name: "lazy"}, nil
	})

	for i := 0; i < 3; i++ {
		if _, err := r.Resolve("/lazy", nil); err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("factory ran %d times, want 1", calls)
	}
}

func TestRouterLoadErrorIsSticky(t *testing.T) {
	r := &Router{}
	loadErr := errors.New("chunk failed")
	calls := 0
	r.Register("/broken", func() (*Page, error) {
		calls++
		return nil, loadErr
	})

	for i := 0; i < 2; i++ {
		if _, err := r.Resolve("/broken", nil); !errors.Is(err, loadErr) {
			t.Fatalf("Resolve error = %v, want %v", err, loadErr)
		}
	}
	if calls != 1 {
		t.Errorf("factory ran %d times, want 1", calls)
	}
}

func TestAdminGuardRunsBeforeLoad(t *testing.T) {
	r := &Router{}
	calls := 0
	r.RegisterAdmin("/admin/secret", func() (*Page, error) {
		calls++
		return &Page{Name: "secret"}, nil
	})

	if _, err := r.Resolve("/admin/secret", nil); !errors.Is(err, ErrAdminOnly) {
		t.Fatalf("Resolve error = %v, want %v", err, ErrAdminOnly)
	}
	if calls != 0 {
		t.Errorf("factory ran %d times before the guard, want 0", calls)
	}
}
