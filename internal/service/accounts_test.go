package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"avatar_platform/internal/models"
	"avatar_platform/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// mockCredentialStore is a lightweight in-test mock for repository.CredentialStore.
type mockCredentialStore struct {
	CreateFn      func(email, name, hash string) (int64, error)
	FindByEmailFn func(email string) (*models.User, error)
	FindByIDFn    func(id int64) (*models.User, error)

	createCalls []struct {
		email string
		name  string
		hash  string
	}
	findCalls []string
}

func (m *mockCredentialStore) Create(_ context.Context, email, name, hash string) (int64, error) {
	m.createCalls = append(m.createCalls, struct {
		email string
		name  string
		hash  string
	}{email: email, name: name, hash: hash})
	return m.CreateFn(email, name, hash)
}

func (m *mockCredentialStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.findCalls = append(m.findCalls, email)
	if m.FindByEmailFn == nil {
		return nil, nil
	}
	return m.FindByEmailFn(email)
}

func (m *mockCredentialStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	return m.FindByIDFn(id)
}

func newTestAccounts(store repository.CredentialStore) *AccountService {
	return &AccountService{store: store, cost: bcrypt.MinCost}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

// --- Create tests ---

func TestAccountService_Create_SuccessHashesPasswordAndCallsStore(t *testing.T) {
	store := &mockCredentialStore{
		CreateFn: func(email, name, hash string) (int64, error) {
			return 42, nil
		},
	}
	svc := newTestAccounts(store)

	u, err := svc.Create(context.Background(), "alice@example.com", "Alice", "s3cr3t")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if u.ID != 42 || u.Email != "alice@example.com" || u.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if len(store.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(store.createCalls))
	}
	call := store.createCalls[0]
	if call.hash == "s3cr3t" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if !svc.Verify(&models.User{PasswordHash: call.hash}, "s3cr3t") {
		t.Errorf("stored hash does not verify with original password")
	}
}

func TestAccountService_Create_Validation(t *testing.T) {
	cases := []struct{ email, password string }{
		{"", "pw"},
		{"a@example.com", ""},
		{"a@example.com", "   "},
		{"  ", "pw"},
	}
	for _, tc := range cases {
		store := &mockCredentialStore{
			CreateFn: func(email, name, hash string) (int64, error) {
				t.Fatal("Create should not be called for invalid input")
				return 0, nil
			},
		}
		svc := newTestAccounts(store)

		_, err := svc.Create(context.Background(), tc.email, "", tc.password)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("email=%q password=%q: expected ErrValidation, got %v", tc.email, tc.password, err)
		}
		if len(store.findCalls) != 0 {
			t.Fatalf("store should not be queried for invalid input")
		}
	}
}

func TestAccountService_Create_ExistingEmail(t *testing.T) {
	store := &mockCredentialStore{
		FindByEmailFn: func(email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email}, nil
		},
		CreateFn: func(email, name, hash string) (int64, error) {
			t.Fatal("Create should not be called for a taken email")
			return 0, nil
		},
	}
	svc := newTestAccounts(store)

	_, err := svc.Create(context.Background(), "taken@example.com", "", "pw")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAccountService_Create_RaceMapsToDuplicate(t *testing.T) {
	store := &mockCredentialStore{
		CreateFn: func(email, name, hash string) (int64, error) {
			return 0, fmt.Errorf("insert user %q: %w", email, repository.ErrDuplicateEmail)
		},
	}
	svc := newTestAccounts(store)

	_, err := svc.Create(context.Background(), "race@example.com", "", "pw")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAccountService_Create_StoreError(t *testing.T) {
	store := &mockCredentialStore{
		CreateFn: func(email, name, hash string) (int64, error) {
			return 0, errors.New("db down")
		},
	}
	svc := newTestAccounts(store)

	_, err := svc.Create(context.Background(), "carl@example.com", "", "pass123")
	if err == nil || errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected plain store error, got %v", err)
	}
}

func TestAccountService_Create_PasswordTooLong(t *testing.T) {
	store := &mockCredentialStore{}
	svc := newTestAccounts(store)

	_, err := svc.Create(context.Background(), "long@example.com", "", strings.Repeat("x", 73))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if len(store.createCalls) != 0 {
		t.Fatalf("Create should not be called")
	}
}

// --- Authenticate tests ---

func TestAccountService_Authenticate(t *testing.T) {
	hash := mustHash(t, "letmein")
	user := &models.User{ID: 7, Email: "diana@example.com", PasswordHash: hash}

	tests := []struct {
		name     string
		email    string
		password string
		findErr  error
		wantUser bool
		wantErr  error
	}{
		{name: "success", email: "diana@example.com", password: "letmein", wantUser: true},
		{name: "wrong password", email: "diana@example.com", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "ghost@example.com", password: "letmein", wantErr: ErrInvalidCredentials},
		{name: "store error", email: "diana@example.com", password: "letmein", findErr: errors.New("query failed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockCredentialStore{
				FindByEmailFn: func(email string) (*models.User, error) {
					if tt.findErr != nil {
						return nil, tt.findErr
					}
					if email == user.Email {
						return user, nil
					}
					return nil, nil
				},
			}
			svc := newTestAccounts(store)

			got, err := svc.Authenticate(context.Background(), tt.email, tt.password)
			switch {
			case tt.wantUser:
				if err != nil || got == nil || got.ID != 7 {
					t.Fatalf("expected user 7, got %+v, %v", got, err)
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			default:
				if err == nil || errors.Is(err, ErrInvalidCredentials) {
					t.Fatalf("expected store error to propagate, got %v", err)
				}
			}
		})
	}
}

func TestAccountService_Verify(t *testing.T) {
	svc := newTestAccounts(&mockCredentialStore{})
	u := &models.User{PasswordHash: mustHash(t, "correct")}

	if !svc.Verify(u, "correct") {
		t.Fatalf("expected correct password to verify")
	}
	if svc.Verify(u, "wrong") {
		t.Fatalf("expected wrong password to fail")
	}
	if svc.Verify(nil, "correct") || svc.Verify(&models.User{}, "") {
		t.Fatalf("missing user or hash must not verify")
	}
}
