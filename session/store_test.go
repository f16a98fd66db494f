package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"food-delivery-admin/apiclient"
	"food-delivery-admin/models"

	"github.com/golang-jwt/jwt/v5"
)

type fakeAuth struct {
	password string
	token    string
	calls    int
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*models.LoginResponse, error) {
	f.calls++
	if password != f.password {
		return nil, &apiclient.APIError{Status: 401, Message: "Invalid email or password"}
	}
	return &models.LoginResponse{
		Token: f.token,
		User:  models.User{ID: "u1", Firstname: "Sami", Lastname: "Admin", Email: email},
	}, nil
}

func TestLogin_Success(t *testing.T) {
	s, err := NewStore(&fakeAuth{password: "pw", token: "t1"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Login(context.Background(), "sami@x.tn", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.Token() != "t1" || s.User() == nil || s.User().Email != "sami@x.tn" || s.Error() != "" {
		t.Fatalf("state after login: token=%q user=%+v err=%q", s.Token(), s.User(), s.Error())
	}
}

func TestLogin_WrongPasswordLeavesStateUnchanged(t *testing.T) {
	auth := &fakeAuth{password: "pw", token: "t1"}
	s, _ := NewStore(auth, nil, nil)
	if err := s.Login(context.Background(), "sami@x.tn", "pw"); err != nil {
		t.Fatal(err)
	}
	before := s.User()

	err := s.Login(context.Background(), "other@x.tn", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if s.Token() != "t1" {
		t.Fatalf("token changed to %q", s.Token())
	}
	if got := s.User(); got == nil || *got != *before {
		t.Fatalf("user changed to %+v", got)
	}
	if s.Error() != "Invalid email or password" {
		t.Fatalf("Error() = %q", s.Error())
	}

	s.ClearError()
	if s.Error() != "" {
		t.Fatal("ClearError did not clear")
	}
}

func TestLogin_WrongPasswordFromEmpty(t *testing.T) {
	s, _ := NewStore(&fakeAuth{password: "pw"}, nil, nil)
	_ = s.Login(context.Background(), "a@x.tn", "nope")
	if s.Token() != "" || s.User() != nil {
		t.Fatal("failed login populated state")
	}
	if s.Error() == "" {
		t.Fatal("error not set")
	}
}

func TestLogin_EmptyTokenIsFailure(t *testing.T) {
	s, _ := NewStore(&fakeAuth{password: "pw", token: ""}, nil, nil)
	if err := s.Login(context.Background(), "a@x.tn", "pw"); !errors.Is(err, errNoToken) {
		t.Fatalf("err = %v", err)
	}
	if s.Authenticated() || s.Error() != "Login failed" {
		t.Fatalf("authenticated=%v err=%q", s.Authenticated(), s.Error())
	}
}

func TestLogout_Clears(t *testing.T) {
	s, _ := NewStore(&fakeAuth{password: "pw", token: "t1"}, nil, nil)
	_ = s.Login(context.Background(), "a@x.tn", "pw")
	s.Logout()
	if s.Authenticated() || s.User() != nil {
		t.Fatal("logout left state behind")
	}
	s.Logout()
}

func TestPersistence_SurvivesReopen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "session.db")

	repo, err := OpenRepository(dsn)
	if err != nil {
		t.Fatalf("OpenRepository: %v", err)
	}
	s, err := NewStore(&fakeAuth{password: "pw", token: "persisted"}, repo, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Login(context.Background(), "a@x.tn", "pw"); err != nil {
		t.Fatal(err)
	}
	_ = repo.Close()

	repo2, err := OpenRepository(dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer repo2.Close()
	restored, err := NewStore(&fakeAuth{}, repo2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if restored.Token() != "persisted" || restored.User().Email != "a@x.tn" {
		t.Fatalf("restored token=%q user=%+v", restored.Token(), restored.User())
	}

	restored.Logout()
	snap, err := repo2.Load()
	if err != nil || snap != nil {
		t.Fatalf("after logout snapshot=%+v err=%v", snap, err)
	}
}

func TestExpiresAt_ReadsClaim(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("any-key"))
	if err != nil {
		t.Fatal(err)
	}
	s, _ := NewStore(&fakeAuth{password: "pw", token: tok}, nil, nil)
	if _, ok := s.ExpiresAt(); ok {
		t.Fatal("expiry reported without a token")
	}
	_ = s.Login(context.Background(), "a@x.tn", "pw")
	got, ok := s.ExpiresAt()
	if !ok || !got.Equal(exp) {
		t.Fatalf("ExpiresAt = %v, %v; want %v", got, ok, exp)
	}
}
