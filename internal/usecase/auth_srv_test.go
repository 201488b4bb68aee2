package usecase

import (
	"context"
	"errors"
	"testing"

	"homecare-booking/internal/dto/request"
	"homecare-booking/pkg/utils"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo, _, _, _ := newTestRepo()
	svc := NewAuthService(repo, testConfig(), testLogger())
	ctx := context.Background()

	reg := &request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret-pass-1",
		Role:     "customer",
	}

	resp, err := svc.Register(ctx, reg)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if resp.User.Username != "alice" {
		t.Errorf("Username = %s, want alice", resp.User.Username)
	}
	if resp.Session != nil {
		t.Error("register must not open a session")
	}

	if _, err := svc.Register(ctx, reg); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate register: error = %v, want %v", err, ErrEmailTaken)
	}

	login, err := svc.Login(ctx, &request.LoginRequest{Username: "alice", Password: "secret-pass-1"}, nil, nil)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if login.Session == nil || login.Session.Token == "" {
		t.Fatal("login must return a session token")
	}

	_, err = svc.Login(ctx, &request.LoginRequest{Username: "alice", Password: "wrong"}, nil, nil)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: error = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	repo, _, _, _ := newTestRepo()
	svc := NewAuthService(repo, testConfig(), testLogger())
	ctx := context.Background()

	if _, err := svc.Register(ctx, &request.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "first-pass-1",
		Role:     "helper",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	login, err := svc.Login(ctx, &request.LoginRequest{Username: "bob", Password: "first-pass-1"}, nil, nil)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	user, _ := repo.User.FindByUsername(ctx, "bob")
	if err := svc.ChangePassword(ctx, user.ID, &request.ChangePasswordRequest{
		OldPassword: "first-pass-1",
		NewPassword: "second-pass-2",
	}); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if session, _ := repo.Session.FindValidSession(ctx, login.Session.Token); session != nil {
		t.Error("old session must be revoked after password change")
	}

	if _, err := svc.Login(ctx, &request.LoginRequest{Username: "bob", Password: "first-pass-1"}, nil, nil); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password must stop working")
	}
	if _, err := svc.Login(ctx, &request.LoginRequest{Username: "bob", Password: "second-pass-2"}, nil, nil); err != nil {
		t.Errorf("new password login: error = %v", err)
	}
}
