package service

import (
	"context"
	"errors"
	"log"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusevents_backend/internals/configs"
	"campusevents_backend/internals/constants"
	collegeModel "campusevents_backend/internals/features/campus/colleges/model"
	authDTO "campusevents_backend/internals/features/users/auth/dto"
	authModel "campusevents_backend/internals/features/users/auth/model"
	userModel "campusevents_backend/internals/features/users/user/model"
	helper "campusevents_backend/internals/helpers"
)

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// Register creates a student account. Admin accounts come from the seed or
// CreateAdmin, never from public sign-up.
func (s *AuthService) Register(ctx context.Context, req *authDTO.RegisterRequest) (*userModel.UserModel, error) {
	collegeID, err := uuid.Parse(req.CollegeID)
	if err != nil {
		return nil, helper.ErrInvalidInput("college_id must be a valid UUID")
	}

	var college collegeModel.CollegeModel
	if err := s.DB.WithContext(ctx).Where("college_id = ?", collegeID).Take(&college).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("college not found")
		}
		return nil, helper.ErrInternal("college lookup failed", err)
	}

	hash, err := HashPassword(req.UserPassword)
	if err != nil {
		return nil, helper.ErrInternal("password hash failed", err)
	}

	user := &userModel.UserModel{
		UserName:         req.UserName,
		UserEmail:        strings.ToLower(req.UserEmail),
		UserPasswordHash: hash,
		UserFullName:     req.UserFullName,
		UserRole:         constants.RoleStudent,
		UserCollegeID:    collegeID,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, helper.ErrConflict("username or email already taken")
		}
		return nil, helper.ErrInternal("user create failed", err)
	}
	return user, nil
}

// CreateAdmin provisions an admin account (admin-only route).
func (s *AuthService) CreateAdmin(ctx context.Context, req *authDTO.CreateAdminRequest) (*userModel.UserModel, error) {
	collegeID, err := uuid.Parse(req.CollegeID)
	if err != nil {
		return nil, helper.ErrInvalidInput("college_id must be a valid UUID")
	}

	hash, err := HashPassword(req.UserPassword)
	if err != nil {
		return nil, helper.ErrInternal("password hash failed", err)
	}

	user := &userModel.UserModel{
		UserName:         req.UserName,
		UserEmail:        strings.ToLower(req.UserEmail),
		UserPasswordHash: hash,
		UserFullName:     req.UserFullName,
		UserRole:         constants.RoleAdmin,
		UserCollegeID:    collegeID,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, helper.ErrConflict("username or email already taken")
		}
		return nil, helper.ErrInternal("admin create failed", err)
	}
	return user, nil
}

// Login accepts username or email.
func (s *AuthService) Login(ctx context.Context, req *authDTO.LoginRequest) (*authDTO.AuthResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)

	var user userModel.UserModel
	err := s.DB.WithContext(ctx).
		Where("user_name = ? OR user_email = ?", identifier, strings.ToLower(identifier)).
		Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrUnauthorized("invalid credentials")
		}
		return nil, helper.ErrInternal("user lookup failed", err)
	}

	if !CheckPassword(user.UserPasswordHash, req.UserPassword) {
		return nil, helper.ErrUnauthorized("invalid credentials")
	}

	return s.issueTokens(ctx, &user)
}

// LoginGoogle verifies the Google ID token and logs in an existing account.
// Sign-up still goes through Register because a college must be chosen.
func (s *AuthService) LoginGoogle(ctx context.Context, idToken string) (*authDTO.AuthResponse, error) {
	if configs.GoogleClientID == "" {
		return nil, helper.ErrInternal("google sign-in is not configured", nil)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{configs.GoogleClientID}); err != nil {
		return nil, helper.ErrUnauthorized("invalid Google ID token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil || claimSet.Email == "" {
		return nil, helper.ErrUnauthorized("invalid Google ID token")
	}

	var user userModel.UserModel
	err = s.DB.WithContext(ctx).
		Where("user_email = ?", strings.ToLower(claimSet.Email)).
		Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("no account for this Google email, please register first")
		}
		return nil, helper.ErrInternal("user lookup failed", err)
	}

	return s.issueTokens(ctx, &user)
}

// Refresh rotates the refresh token and issues a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*authDTO.AuthResponse, error) {
	userID, err := ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, helper.ErrUnauthorized("invalid refresh token")
	}

	var stored authModel.RefreshTokenModel
	err = s.DB.WithContext(ctx).
		Where("refresh_token_token = ? AND refresh_token_user_id = ?", refreshToken, userID).
		Take(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrUnauthorized("refresh token not recognized")
		}
		return nil, helper.ErrInternal("refresh token lookup failed", err)
	}

	var user userModel.UserModel
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrUnauthorized("user no longer exists")
		}
		return nil, helper.ErrInternal("user lookup failed", err)
	}

	// rotate: old token out, new one in
	if err := s.DB.WithContext(ctx).Delete(&stored).Error; err != nil {
		return nil, helper.ErrInternal("refresh token rotation failed", err)
	}
	return s.issueTokens(ctx, &user)
}

// Logout blacklists the presented access token until its natural expiry and
// drops the refresh token if one was sent.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	entry := &authModel.TokenBlacklistModel{
		TokenBlacklistToken:     accessToken,
		TokenBlacklistExpiresAt: TokenExpiry(accessToken),
	}
	if err := s.DB.WithContext(ctx).Create(entry).Error; err != nil && !isUniqueViolation(err) {
		return helper.ErrInternal("token blacklist failed", err)
	}
	if refreshToken != "" {
		if err := s.DB.WithContext(ctx).
			Where("refresh_token_token = ?", refreshToken).
			Delete(&authModel.RefreshTokenModel{}).Error; err != nil {
			log.Printf("[WARN] refresh token delete on logout: %v", err)
		}
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *userModel.UserModel) (*authDTO.AuthResponse, error) {
	access, err := GenerateAccessToken(user)
	if err != nil {
		return nil, helper.ErrInternal("access token issue failed", err)
	}
	refresh, expiresAt, err := GenerateRefreshToken(user.UserID)
	if err != nil {
		return nil, helper.ErrInternal("refresh token issue failed", err)
	}
	row := &authModel.RefreshTokenModel{
		RefreshTokenUserID:    user.UserID,
		RefreshTokenToken:     refresh,
		RefreshTokenExpiresAt: expiresAt,
	}
	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		return nil, helper.ErrInternal("refresh token store failed", err)
	}
	return &authDTO.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}
