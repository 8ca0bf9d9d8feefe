package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/adapters/persistence/repositories"
	"assurgest/internal/config"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/actor"
	"assurgest/internal/pkg/jwt"
	"assurgest/internal/pkg/logger"
	"assurgest/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
)

// TokenBlacklist remembers revoked access token ids until they expire
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	blacklist        TokenBlacklist
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	blacklist TokenBlacklist,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		blacklist:        blacklist,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	LastName        string `json:"nom"`
	FirstName       string `json:"prenom"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirme_password"`
	Function        string `json:"fonction"`
	Department      string `json:"direction"`
}

// RequestAccessInput carries an access request for an inactive account
type RequestAccessInput struct {
	Email         string `json:"email"`
	Function      string `json:"fonction"`
	Department    string `json:"direction"`
	Justification string `json:"justificatif"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordInput represents password change input
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// Register creates an inactive account waiting for an administrator
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.UserResponse, error) {
	email := normalizeEmail(input.Email)
	lastName := strings.ToUpper(strings.TrimSpace(input.LastName))
	if err := required("nom", lastName); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if input.Password != input.ConfirmPassword {
		return nil, domain.Invalid("confirme_password", "passwords do not match")
	}
	if err := password.Validate(input.Password); err != nil {
		return nil, domain.Invalid("password", "%s", err.Error())
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err := ensureUnique(exists, err, domain.EntityUser, "email", email); err != nil {
		return nil, err
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:          uuid.New(),
		LastName:    lastName,
		FirstName:   strings.ToUpper(strings.TrimSpace(input.FirstName)),
		Email:       email,
		Password:    hashedPassword,
		Function:    strings.TrimSpace(input.Function),
		Department:  strings.TrimSpace(input.Department),
		IsActive:    false,
		RequestedAt: &now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, duplicateAs(err, domain.EntityUser, "email", email)
	}

	logger.Info(ctx, "user registered", "id_utilisateur", user.ID, "email", user.Email)
	return user.ToResponse(), nil
}

// RequestAccess records why an inactive account needs access. Active accounts must log in instead.
func (s *AuthService) RequestAccess(ctx context.Context, input *RequestAccessInput) (*models.UserResponse, error) {
	email := normalizeEmail(input.Email)
	fields := []struct{ name, value string }{
		{"email", email},
		{"fonction", strings.TrimSpace(input.Function)},
		{"direction", strings.TrimSpace(input.Department)},
		{"justificatif", strings.TrimSpace(input.Justification)},
	}
	for _, f := range fields {
		if err := required(f.name, f.value); err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.IsActive {
		return nil, domain.InvalidState(domain.EntityUser, "actif", "inactif")
	}

	now := time.Now().UTC()
	user.Function = fields[1].value
	user.Department = fields[2].value
	user.Justification = fields[3].value
	user.RequestedAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "access requested", "id_utilisateur", user.ID, "email", user.Email)
	return user.ToResponse(), nil
}

// Login authenticates an active user
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}

	resp, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user logged in", "id_utilisateur", user.ID)
	return resp, nil
}

// RefreshToken rotates a refresh token: the presented one is revoked and a new pair issued
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	tokenHash := password.HashToken(refreshToken)
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	if storedToken.IsRevoked() {
		return nil, domain.ErrTokenRevoked
	}
	if storedToken.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}

	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

// Logout revokes the refresh token and blacklists the access token until it expires
func (s *AuthService) Logout(ctx context.Context, refreshToken string, access *jwt.Claims) error {
	if refreshToken != "" {
		if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, password.HashToken(refreshToken)); err != nil {
			return err
		}
	}
	if access != nil && access.ExpiresAt != nil {
		if ttl := time.Until(access.ExpiresAt.Time); ttl > 0 {
			if err := s.blacklist.Revoke(ctx, access.ID, ttl); err != nil {
				return err
			}
		}
	}

	logger.Info(ctx, "user logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}
	logger.Info(ctx, "all sessions revoked", "id_utilisateur", userID)
	return nil
}

// ValidateAccessToken validates an access token and rejects blacklisted ones
func (s *AuthService) ValidateAccessToken(ctx context.Context, accessToken string) (*jwt.Claims, error) {
	claims, err := jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	return claims, nil
}

// ChangePassword replaces the password and signs out every other session
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !password.Verify(input.CurrentPassword, user.Password) {
		return domain.ErrInvalidCredentials
	}
	if err := password.Validate(input.NewPassword); err != nil {
		return domain.Invalid("new_password", "%s", err.Error())
	}

	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	return s.refreshTokenRepo.RevokeAllByUserID(ctx, user.ID)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// Sessions lists the signed-in devices of a user
func (s *AuthService) Sessions(ctx context.Context, userID uuid.UUID) ([]*models.RefreshToken, error) {
	return s.refreshTokenRepo.ListActiveByUserID(ctx, userID)
}

// CleanupExpiredTokens deletes refresh tokens past their expiry
func (s *AuthService) CleanupExpiredTokens(ctx context.Context) error {
	return s.refreshTokenRepo.DeleteExpired(ctx)
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*AuthResponse, error) {
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}
	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(user *models.User) (*domain.TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		user.RoleName(),
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		uuid.NewString(),
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token hash in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: password.HashToken(refreshToken),
		Device:    deviceLabel(actor.UserAgent(ctx)),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	return s.refreshTokenRepo.Create(ctx, token)
}

// deviceLabel turns a User-Agent header into "Browser on OS"
func deviceLabel(header string) string {
	if header == "" {
		return "inconnu"
	}
	ua := useragent.New(header)
	if ua.Bot() {
		return "robot"
	}
	browser, _ := ua.Browser()
	label := browser
	if system := ua.OS(); system != "" {
		label += " on " + system
	}
	if ua.Mobile() {
		label += " (mobile)"
	}
	if len(label) > 120 {
		label = label[:120]
	}
	return label
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
