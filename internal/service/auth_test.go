package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/metrics"
	"github.com/taskhive/taskhive/internal/service"
	"github.com/taskhive/taskhive/internal/testutil"
)

func newAuthService(t *testing.T) (*service.AuthService, *testutil.MemStore, *auth.TokenService) {
	t.Helper()
	store := testutil.NewMemStore()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return service.NewAuthService(store, tokens, metrics.NewNoop()), store, tokens
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	svc, store, _ := newAuthService(t)

	user, err := svc.Register(context.Background(), "alice", "hunter22")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if user.ID == "" {
		t.Error("registered user should have an id")
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, want %q", user.Username, "alice")
	}
	if user.PasswordHash == "hunter22" || user.PasswordHash == "" {
		t.Error("password should be stored hashed, never raw")
	}

	stored, err := store.GetUserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.ID != user.ID {
		t.Errorf("stored id = %q, want %q", stored.ID, user.ID)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc, store, _ := newAuthService(t)

	if _, err := svc.Register(context.Background(), "alice", "hunter22"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), "alice", "different66")
	if !errors.Is(err, service.ErrUsernameExists) {
		t.Errorf("duplicate Register = %v, want ErrUsernameExists", err)
	}

	if store.UserCount() != 1 {
		t.Errorf("UserCount = %d, want 1", store.UserCount())
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc, store, _ := newAuthService(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "hunter22"},
		{"short username", "ab", "hunter22"},
		{"empty password", "alice", ""},
		{"short password", "alice", "12345"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Register(context.Background(), tt.username, tt.password)

			var ve *service.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Register(%q, %q) = %v, want ValidationError", tt.username, tt.password, err)
			}
			if len(ve.Violations) == 0 {
				t.Error("ValidationError should name the failing field")
			}
		})
	}

	if store.UserCount() != 0 {
		t.Errorf("invalid registrations must not persist, UserCount = %d", store.UserCount())
	}
}

func TestAuthService_Register_BoundaryLengths(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService(t)

	// Exactly at the minimums is accepted.
	if _, err := svc.Register(context.Background(), "abc", "123456"); err != nil {
		t.Errorf("Register at minimum lengths failed: %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	svc, _, tokens := newAuthService(t)

	user, err := svc.Register(context.Background(), "alice", "hunter22")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	token, err := svc.Login(context.Background(), "alice", "hunter22")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token UserID = %q, want %q", claims.UserID, user.ID)
	}
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService(t)

	if _, err := svc.Register(context.Background(), "alice", "hunter22"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Wrong password and unknown username must fail identically.
	_, wrongPass := svc.Login(context.Background(), "alice", "wrong-password")
	_, unknownUser := svc.Login(context.Background(), "nobody", "hunter22")

	if !errors.Is(wrongPass, service.ErrInvalidCredentials) {
		t.Errorf("wrong password = %v, want ErrInvalidCredentials", wrongPass)
	}
	if !errors.Is(unknownUser, service.ErrInvalidCredentials) {
		t.Errorf("unknown username = %v, want ErrInvalidCredentials", unknownUser)
	}
	if wrongPass.Error() != unknownUser.Error() {
		t.Errorf("failure modes must be indistinguishable: %q vs %q", wrongPass, unknownUser)
	}
}

func TestAuthService_Login_Validation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), "", "")

	var ve *service.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Login with empty fields = %v, want ValidationError", err)
	}
	if len(ve.Violations) != 2 {
		t.Errorf("expected violations for both fields, got %v", ve.Violations)
	}
}

func TestAuthService_Metrics(t *testing.T) {
	t.Parallel()

	store := testutil.NewMemStore()
	recorder := metrics.NewInMemory()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	svc := service.NewAuthService(store, tokens, recorder)

	if _, err := svc.Register(context.Background(), "alice", "hunter22"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "alice", "hunter22"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	_, _ = svc.Login(context.Background(), "alice", "wrong-password")

	snap := recorder.Snapshot()
	if snap.UsersRegistered != 1 {
		t.Errorf("UsersRegistered = %d, want 1", snap.UsersRegistered)
	}
	if snap.LoginSuccesses != 1 {
		t.Errorf("LoginSuccesses = %d, want 1", snap.LoginSuccesses)
	}
	if snap.LoginFailures != 1 {
		t.Errorf("LoginFailures = %d, want 1", snap.LoginFailures)
	}
}
