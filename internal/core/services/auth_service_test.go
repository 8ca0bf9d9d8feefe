package services

import (
	"strings"
	"testing"

	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/actor"

	"github.com/stretchr/testify/assert"
)

func (s *ServiceSuite) register(email string) *RegisterInput {
	in := &RegisterInput{
		LastName:        "Durand",
		FirstName:       "Paul",
		Email:           email,
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Function:        "Gestionnaire sinistres",
	}
	_, err := s.svc.Auth.Register(s.ctx, in)
	s.Require().NoError(err)
	return in
}

func (s *ServiceSuite) TestRegisterCreatesInactiveAccount() {
	in := s.register("Paul.Durand@Assur.test")

	user, err := s.svc.Repos.Users.GetByEmail(s.ctx, "paul.durand@assur.test")
	s.Require().NoError(err)
	s.False(user.IsActive)
	s.Nil(user.RoleID)
	s.Equal("DURAND", user.LastName)
	s.NotEqual(in.Password, user.Password)

	_, err = s.svc.Auth.Login(s.ctx, &LoginInput{Email: in.Email, Password: in.Password})
	s.Require().ErrorIs(err, domain.ErrInactiveAccount)

	s.Run("duplicate email", func() {
		_, err := s.svc.Auth.Register(s.ctx, &RegisterInput{
			LastName:        "Autre",
			Email:           "paul.durand@assur.test",
			Password:        "secret123",
			ConfirmPassword: "secret123",
		})
		s.requireDuplicate(err, "email")
	})

	s.Run("password mismatch", func() {
		_, err := s.svc.Auth.Register(s.ctx, &RegisterInput{
			LastName:        "Autre",
			Email:           "autre@assur.test",
			Password:        "secret123",
			ConfirmPassword: "secret124",
		})
		s.requireInvalid(err, "confirme_password")
	})

	s.Run("weak password", func() {
		_, err := s.svc.Auth.Register(s.ctx, &RegisterInput{
			LastName:        "Autre",
			Email:           "autre@assur.test",
			Password:        "short",
			ConfirmPassword: "short",
		})
		s.requireInvalid(err, "password")
	})
}

func (s *ServiceSuite) TestActivationRequiresRole() {
	in := s.register("agent@assur.test")
	user, err := s.svc.Repos.Users.GetByEmail(s.ctx, in.Email)
	s.Require().NoError(err)

	active := true
	_, err = s.svc.Users.UpdateUserByAdmin(s.ctx, user.ID, &UpdateUserByAdminInput{IsActive: &active})
	s.requireInvalid(err, "role")

	role := string(domain.RoleAgent)
	resp, err := s.svc.Users.UpdateUserByAdmin(s.ctx, user.ID, &UpdateUserByAdminInput{IsActive: &active, Role: &role})
	s.Require().NoError(err)
	s.True(resp.IsActive)
	s.Equal(role, resp.Role)

	_, err = s.svc.Users.UpdateUserByAdmin(actor.WithID(s.ctx, user.ID), user.ID, &UpdateUserByAdminInput{IsActive: &active})
	s.requireInvalid(err, "id_utilisateur")
}

func (s *ServiceSuite) TestRequestAccess() {
	in := s.register("demande@assur.test")
	ask := &RequestAccessInput{
		Email:         " Demande@Assur.test ",
		Function:      "Chargé de clientèle",
		Department:    "Direction commerciale",
		Justification: "Gestion du portefeuille automobile",
	}

	resp, err := s.svc.Auth.RequestAccess(s.ctx, ask)
	s.Require().NoError(err)
	s.False(resp.IsActive)
	s.Equal("Direction commerciale", resp.Department)
	s.Equal("Gestion du portefeuille automobile", resp.Justification)

	user, err := s.svc.Repos.Users.GetByEmail(s.ctx, in.Email)
	s.Require().NoError(err)
	s.Equal("Chargé de clientèle", user.Function)
	s.Equal("Gestion du portefeuille automobile", user.Justification)
	s.Require().NotNil(user.RequestedAt)

	s.Run("missing justification", func() {
		missing := *ask
		missing.Justification = "  "
		_, err := s.svc.Auth.RequestAccess(s.ctx, &missing)
		s.requireInvalid(err, "justificatif")
	})

	s.Run("unknown account", func() {
		unknown := *ask
		unknown.Email = "personne@assur.test"
		_, err := s.svc.Auth.RequestAccess(s.ctx, &unknown)
		s.Require().ErrorIs(err, domain.ErrNotFound)
	})

	s.Run("active account", func() {
		active, role := true, string(domain.RoleAgent)
		_, err := s.svc.Users.UpdateUserByAdmin(s.ctx, user.ID, &UpdateUserByAdminInput{IsActive: &active, Role: &role})
		s.Require().NoError(err)

		_, err = s.svc.Auth.RequestAccess(s.ctx, ask)
		s.Require().ErrorIs(err, domain.ErrInvalidState)
	})
}

func (s *ServiceSuite) TestLoginRefreshLogout() {
	in := s.register("gestion@assur.test")
	user, err := s.svc.Repos.Users.GetByEmail(s.ctx, in.Email)
	s.Require().NoError(err)
	active, role := true, string(domain.RoleManager)
	_, err = s.svc.Users.UpdateUserByAdmin(s.ctx, user.ID, &UpdateUserByAdminInput{IsActive: &active, Role: &role})
	s.Require().NoError(err)

	_, err = s.svc.Auth.Login(s.ctx, &LoginInput{Email: in.Email, Password: "wrong-pass1"})
	s.Require().ErrorIs(err, domain.ErrInvalidCredentials)

	_, err = s.svc.Auth.Login(s.ctx, &LoginInput{Email: "nobody@assur.test", Password: in.Password})
	s.Require().ErrorIs(err, domain.ErrInvalidCredentials)

	session, err := s.svc.Auth.Login(s.ctx, &LoginInput{Email: "  GESTION@assur.test ", Password: in.Password})
	s.Require().NoError(err)
	s.Equal(role, session.User.Role)

	access := session.AccessToken
	claims, err := s.svc.Auth.ValidateAccessToken(s.ctx, access)
	s.Require().NoError(err)
	s.Equal(user.ID, claims.UserID)
	s.Equal(role, claims.Role)

	s.Run("refresh rotates the token", func() {
		rotated, err := s.svc.Auth.RefreshToken(s.ctx, session.RefreshToken)
		s.Require().NoError(err)
		s.NotEqual(session.RefreshToken, rotated.RefreshToken)

		_, err = s.svc.Auth.RefreshToken(s.ctx, session.RefreshToken)
		s.Require().ErrorIs(err, domain.ErrTokenRevoked)

		session = rotated
	})

	s.Run("garbage refresh token", func() {
		_, err := s.svc.Auth.RefreshToken(s.ctx, "not-a-token")
		s.Require().ErrorIs(err, domain.ErrTokenInvalid)
	})

	s.Require().NoError(s.svc.Auth.Logout(s.ctx, session.RefreshToken, claims))

	_, err = s.svc.Auth.ValidateAccessToken(s.ctx, access)
	s.Require().ErrorIs(err, domain.ErrTokenRevoked)

	_, err = s.svc.Auth.ValidateAccessToken(s.ctx, session.AccessToken)
	s.Require().NoError(err)

	_, err = s.svc.Auth.ValidateAccessToken(s.ctx, "")
	s.Require().ErrorIs(err, domain.ErrTokenInvalid)

	revoked, err := s.blacklist.IsRevoked(s.ctx, claims.ID)
	s.Require().NoError(err)
	s.True(revoked)

	_, err = s.svc.Auth.RefreshToken(s.ctx, session.RefreshToken)
	s.Require().ErrorIs(err, domain.ErrTokenRevoked)
}

func (s *ServiceSuite) TestSessionsRecordDevice() {
	in := s.register("mobile@assur.test")
	user, err := s.svc.Repos.Users.GetByEmail(s.ctx, in.Email)
	s.Require().NoError(err)
	active, role := true, string(domain.RoleAgent)
	_, err = s.svc.Users.UpdateUserByAdmin(s.ctx, user.ID, &UpdateUserByAdminInput{IsActive: &active, Role: &role})
	s.Require().NoError(err)

	firefox := actor.WithUserAgent(s.ctx, "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0")
	_, err = s.svc.Auth.Login(firefox, &LoginInput{Email: in.Email, Password: in.Password})
	s.Require().NoError(err)
	second, err := s.svc.Auth.Login(s.ctx, &LoginInput{Email: in.Email, Password: in.Password})
	s.Require().NoError(err)

	sessions, err := s.svc.Auth.Sessions(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().Len(sessions, 2)
	devices := []string{sessions[0].Device, sessions[1].Device}
	s.Contains(devices, "inconnu")
	s.True(strings.HasPrefix(devices[0], "Firefox") || strings.HasPrefix(devices[1], "Firefox"))

	s.Require().NoError(s.svc.Auth.Logout(s.ctx, second.RefreshToken, nil))
	sessions, err = s.svc.Auth.Sessions(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().Len(sessions, 1)
	s.True(strings.HasPrefix(sessions[0].Device, "Firefox"))
}

func TestDeviceLabel(t *testing.T) {
	assert.Equal(t, "inconnu", deviceLabel(""))
	assert.Equal(t, "robot", deviceLabel("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"))
	assert.Contains(t, deviceLabel("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"), "(mobile)")
}

func (s *ServiceSuite) TestChangePassword() {
	in := s.register("pwd@assur.test")
	user, err := s.svc.Repos.Users.GetByEmail(s.ctx, in.Email)
	s.Require().NoError(err)

	err = s.svc.Auth.ChangePassword(s.ctx, user.ID, &ChangePasswordInput{CurrentPassword: "bad-pass1", NewPassword: "newsecret1"})
	s.Require().ErrorIs(err, domain.ErrInvalidCredentials)

	err = s.svc.Auth.ChangePassword(s.ctx, user.ID, &ChangePasswordInput{CurrentPassword: in.Password, NewPassword: "short"})
	s.requireInvalid(err, "new_password")

	s.Require().NoError(s.svc.Auth.ChangePassword(s.ctx, user.ID, &ChangePasswordInput{CurrentPassword: in.Password, NewPassword: "newsecret1"}))

	_, err = s.svc.Auth.Login(s.ctx, &LoginInput{Email: in.Email, Password: in.Password})
	s.Require().ErrorIs(err, domain.ErrInvalidCredentials)
}
