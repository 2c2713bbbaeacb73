package service_test

import (
	"errors"
	"testing"

	"dealership-backend/internal/model"
	"dealership-backend/internal/service"
	"dealership-backend/pkg/jwt"
)

func seedUser(repo *fakeUserRepo, email, password, role string) model.User {
	user := model.User{Name: "Rui Costa", Email: email, Role: role}
	if err := user.SetPassword(password); err != nil {
		panic(err)
	}
	user.ID = repo.add(user)
	return user
}

func TestLoginIssuesToken(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "rui@example.com", "secret123", model.RoleOwner)
	svc := service.NewAuthService(repo)

	resp, err := svc.Login("rui@example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := jwt.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Email != "rui@example.com" || claims.Role != model.RoleOwner {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if resp.User.Email != "rui@example.com" {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "rui@example.com", "secret123", model.RoleOwner)
	svc := service.NewAuthService(repo)

	if _, err := svc.Login("rui@example.com", "wrong"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login("nobody@example.com", "secret123"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "rui@example.com", "secret123", model.RoleOwner)
	svc := service.NewAuthService(repo)

	_, err := svc.Register(&service.RegisterRequest{
		Name:     "Other",
		Email:    "rui@example.com",
		Password: "secret123",
		Role:     model.RoleViewer,
	})
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(repo)

	user, err := svc.Register(&service.RegisterRequest{
		Name:     "Ana Silva",
		Email:    "ana@example.com",
		Password: "secret123",
		Role:     model.RoleSalesperson,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Password == "secret123" {
		t.Fatal("password stored in plain text")
	}
	if !user.CheckPassword("secret123") {
		t.Fatal("stored hash does not verify")
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(repo)

	_, err := svc.Register(&service.RegisterRequest{
		Name:     "Ana Silva",
		Email:    "ana@example.com",
		Password: "secret123",
		Role:     "SUPERADMIN",
	})
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(repo, "rui@example.com", "secret123", model.RoleOwner)
	svc := service.NewAuthService(repo)

	if err := svc.ResetPassword("rui@example.com", "wrong", "newpass1"); !errors.Is(err, service.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	if err := svc.ResetPassword("rui@example.com", "secret123", "newpass1"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	stored, _ := repo.FindByID(user.ID)
	if !stored.CheckPassword("newpass1") {
		t.Fatal("new password does not verify")
	}
	if stored.CheckPassword("secret123") {
		t.Fatal("old password still verifies")
	}
}
