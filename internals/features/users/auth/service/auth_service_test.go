package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campusevents_backend/internals/constants"
	collegeModel "campusevents_backend/internals/features/campus/colleges/model"
	authDTO "campusevents_backend/internals/features/users/auth/dto"
	authModel "campusevents_backend/internals/features/users/auth/model"
	userModel "campusevents_backend/internals/features/users/user/model"
	helper "campusevents_backend/internals/helpers"
)

func newAuthFixture(t *testing.T) (*AuthService, collegeModel.CollegeModel) {
	t.Helper()
	setTestSecrets(t)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&collegeModel.CollegeModel{},
		&userModel.UserModel{},
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklistModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	college := collegeModel.CollegeModel{CollegeName: "REVA University", CollegeLocation: "Bengaluru"}
	if err := db.Create(&college).Error; err != nil {
		t.Fatalf("seed college: %v", err)
	}
	return NewAuthService(db), college
}

func registerStudent(t *testing.T, svc *AuthService, college collegeModel.CollegeModel, name string) *userModel.UserModel {
	t.Helper()
	user, err := svc.Register(context.Background(), &authDTO.RegisterRequest{
		UserName:     name,
		UserEmail:    name + "@reva.edu.in",
		UserPassword: "sup3r-secret",
		UserFullName: name,
		CollegeID:    college.CollegeID.String(),
	})
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return user
}

func TestRegisterCreatesStudent(t *testing.T) {
	svc, college := newAuthFixture(t)

	user := registerStudent(t, svc, college, "asha")
	if user.UserRole != constants.RoleStudent {
		t.Errorf("role = %q, public sign-up must always be student", user.UserRole)
	}
	if user.UserPasswordHash == "sup3r-secret" {
		t.Error("password stored unhashed")
	}
	if user.UserEmail != "asha@reva.edu.in" {
		t.Errorf("email = %q", user.UserEmail)
	}
}

func TestRegisterRejectsUnknownCollege(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), &authDTO.RegisterRequest{
		UserName:     "asha",
		UserEmail:    "asha@reva.edu.in",
		UserPassword: "sup3r-secret",
		UserFullName: "Asha",
		CollegeID:    "0b0545e4-2c73-44dd-9da1-7262d8dcd2d0",
	})
	if !helper.IsKind(err, helper.KindNotFound) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	svc, college := newAuthFixture(t)
	registerStudent(t, svc, college, "asha")

	_, err := svc.Register(context.Background(), &authDTO.RegisterRequest{
		UserName:     "asha",
		UserEmail:    "other@reva.edu.in",
		UserPassword: "sup3r-secret",
		UserFullName: "Other",
		CollegeID:    college.CollegeID.String(),
	})
	if !helper.IsKind(err, helper.KindConflict) {
		t.Errorf("dup username err = %v, want Conflict", err)
	}

	_, err = svc.Register(context.Background(), &authDTO.RegisterRequest{
		UserName:     "other",
		UserEmail:    "asha@reva.edu.in",
		UserPassword: "sup3r-secret",
		UserFullName: "Other",
		CollegeID:    college.CollegeID.String(),
	})
	if !helper.IsKind(err, helper.KindConflict) {
		t.Errorf("dup email err = %v, want Conflict", err)
	}
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	svc, college := newAuthFixture(t)
	registerStudent(t, svc, college, "asha")
	ctx := context.Background()

	for _, identifier := range []string{"asha", "asha@reva.edu.in"} {
		resp, err := svc.Login(ctx, &authDTO.LoginRequest{Identifier: identifier, UserPassword: "sup3r-secret"})
		if err != nil {
			t.Fatalf("login as %q: %v", identifier, err)
		}
		if resp.AccessToken == "" || resp.RefreshToken == "" {
			t.Errorf("login as %q: missing tokens", identifier)
		}
		if resp.User.UserName != "asha" {
			t.Errorf("login as %q: user = %q", identifier, resp.User.UserName)
		}
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, college := newAuthFixture(t)
	registerStudent(t, svc, college, "asha")
	ctx := context.Background()

	if _, err := svc.Login(ctx, &authDTO.LoginRequest{Identifier: "asha", UserPassword: "wrong"}); !helper.IsKind(err, helper.KindUnauthorized) {
		t.Errorf("wrong password err = %v, want Unauthorized", err)
	}
	if _, err := svc.Login(ctx, &authDTO.LoginRequest{Identifier: "nobody", UserPassword: "sup3r-secret"}); !helper.IsKind(err, helper.KindUnauthorized) {
		t.Errorf("unknown user err = %v, want Unauthorized", err)
	}
}

func TestCreateAdmin(t *testing.T) {
	svc, college := newAuthFixture(t)

	admin, err := svc.CreateAdmin(context.Background(), &authDTO.CreateAdminRequest{
		UserName:     "admin_reva",
		UserEmail:    "admin@reva.edu.in",
		UserPassword: "sup3r-secret",
		UserFullName: "REVA Admin",
		CollegeID:    college.CollegeID.String(),
	})
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if admin.UserRole != constants.RoleAdmin {
		t.Errorf("role = %q, want admin", admin.UserRole)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, college := newAuthFixture(t)
	registerStudent(t, svc, college, "asha")
	ctx := context.Background()

	login, err := svc.Login(ctx, &authDTO.LoginRequest{Identifier: "asha", UserPassword: "sup3r-secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// the old token is spent
	if _, err := svc.Refresh(ctx, login.RefreshToken); !helper.IsKind(err, helper.KindUnauthorized) {
		t.Errorf("replayed token err = %v, want Unauthorized", err)
	}
}

func TestLogoutBlacklistsAccessToken(t *testing.T) {
	svc, college := newAuthFixture(t)
	registerStudent(t, svc, college, "asha")
	ctx := context.Background()

	login, err := svc.Login(ctx, &authDTO.LoginRequest{Identifier: "asha", UserPassword: "sup3r-secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(ctx, login.AccessToken, login.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	var blacklisted int64
	svc.DB.Model(&authModel.TokenBlacklistModel{}).
		Where("token_blacklist_token = ?", login.AccessToken).
		Count(&blacklisted)
	if blacklisted != 1 {
		t.Errorf("blacklist rows = %d, want 1", blacklisted)
	}

	if _, err := svc.Refresh(ctx, login.RefreshToken); !helper.IsKind(err, helper.KindUnauthorized) {
		t.Errorf("refresh after logout err = %v, want Unauthorized", err)
	}

	// logging out twice is harmless
	if err := svc.Logout(ctx, login.AccessToken, ""); err != nil {
		t.Errorf("second logout: %v", err)
	}
}
