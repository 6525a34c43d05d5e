package services

import (
	"context"
	"errors"
	"testing"

	"patitas-adopciones/internal/adapters/persistence/models"
	"patitas-adopciones/internal/pkg/jwt"
	"patitas-adopciones/internal/pkg/password"
)

func TestRegisterHashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterInput{
		Email:    "Nuevo@Example.com",
		Nombre:   "  María García  ",
		Password: "secreto123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if user.PasswordHash == "secreto123" {
		t.Fatal("password stored in plaintext")
	}
	if !password.Verify("secreto123", user.PasswordHash) {
		t.Fatal("stored hash does not verify against the password")
	}
	if user.Email != "nuevo@example.com" {
		t.Fatalf("email not normalized, got %q", user.Email)
	}
	if user.Nombre != "María García" {
		t.Fatalf("name not trimmed, got %q", user.Nombre)
	}
	if user.Rol != models.RoleAdoptant {
		t.Fatalf("self-registration must create adoptantes, got %q", user.Rol)
	}
	if !user.Activo {
		t.Fatal("new accounts must start active")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	seedUser(t, db, "ana@example.com", models.RoleAdoptant, true)

	_, err := svc.Register(ctx, &RegisterInput{
		Email:    "ANA@example.com",
		Nombre:   "Ana",
		Password: "secreto123",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	seeded := seedUser(t, db, "ana@example.com", models.RoleAdoptant, true)

	user, err := svc.Login(ctx, &LoginInput{Email: " ANA@Example.com ", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != seeded.ID {
		t.Fatalf("logged in as user %d, want %d", user.ID, seeded.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	seedUser(t, db, "ana@example.com", models.RoleAdoptant, true)

	_, err := svc.Login(ctx, &LoginInput{Email: "ana@example.com", Password: "otracosa"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	_, err := svc.Login(context.Background(), &LoginInput{Email: "nadie@example.com", Password: "secret123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	seedUser(t, db, "baja@example.com", models.RoleAdoptant, false)

	_, err := svc.Login(context.Background(), &LoginInput{Email: "baja@example.com", Password: "secret123"})
	if !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestInactiveFlagPersistsOnCreate(t *testing.T) {
	db := newTestDB(t)

	seedUser(t, db, "baja@example.com", models.RoleAdoptant, false)

	var stored models.User
	if err := db.Where("email = ?", "baja@example.com").First(&stored).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if stored.Activo {
		t.Fatal("Activo=false was not stored on insert")
	}
}

func TestLoginWithToken(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	seeded := seedUser(t, db, "api@example.com", models.RoleAdoptant, true)

	resp, err := svc.LoginWithToken(context.Background(), &LoginInput{Email: "api@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("LoginWithToken failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a bearer token")
	}
	if resp.User == nil || resp.User.Email != "api@example.com" {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}

	claims, err := jwt.ValidateToken(resp.Token, "test-secret")
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != seeded.ID {
		t.Fatalf("token carries user %d, want %d", claims.UserID, seeded.ID)
	}
	if claims.Rol != models.RoleAdoptant {
		t.Fatalf("token carries role %q, want %q", claims.Rol, models.RoleAdoptant)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := jwt.GenerateToken(1, models.RoleAdoptant, "test-secret", 1)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := jwt.ValidateToken(token, "otro-secreto"); !errors.Is(err, jwt.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
