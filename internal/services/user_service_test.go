package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/validator"
)

func newUserService(t *testing.T) (*mockRepo, UserService) {
	t.Helper()
	repo := newMockRepo(time.Now)
	return repo, NewUserService(repo, testLogger(), validator.New())
}

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	_, svc := newUserService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:     "anna@example.com",
		Password:  "correct horse battery",
		FirstName: "Anna",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.UserType != models.UserTypeNormal {
		t.Errorf("new user type = %s, want NORMAL", resp.UserType)
	}

	user, err := svc.Authenticate(ctx, "anna@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.Email != "anna@example.com" {
		t.Errorf("authenticated email = %s", user.Email)
	}
	if user.Password == "correct horse battery" {
		t.Error("password stored in plain text")
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	_, svc := newUserService(t)
	ctx := context.Background()

	req := RegisterRequest{Email: "anna@example.com", Password: "correct horse battery"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("second register err = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestUserService_Authenticate_Failures(t *testing.T) {
	_, svc := newUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Email: "anna@example.com", Password: "correct horse battery"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	t.Run("wrong password", func(t *testing.T) {
		if _, err := svc.Authenticate(ctx, "anna@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := svc.Authenticate(ctx, "nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestUserService_Register_Validation(t *testing.T) {
	_, svc := newUserService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "not-an-email", Password: "short"})
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want validation errors", err)
	}
}

func TestUserService_Update_Role(t *testing.T) {
	_, svc := newUserService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterRequest{Email: "anna@example.com", Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	role := models.UserTypeInstructor
	updated, err := svc.Update(ctx, created.ID, UpdateUserRequest{UserType: &role})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.UserType != models.UserTypeInstructor {
		t.Errorf("updated user type = %s, want INSTRUCTOR", updated.UserType)
	}
}
