package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"assurgest/internal/adapters/http/handlers"
	"assurgest/internal/adapters/http/middleware"
	"assurgest/internal/adapters/http/routes"
	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/adapters/persistence/testdb"
	"assurgest/internal/adapters/storage"
	"assurgest/internal/adapters/tokenstore"
	"assurgest/internal/config"
	"assurgest/internal/core/access"
	"assurgest/internal/core/domain"
	"assurgest/internal/core/services"
	"assurgest/internal/pkg/jwt"
	"assurgest/internal/pkg/metrics"
	"assurgest/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RoutesSuite struct {
	suite.Suite

	db  *gorm.DB
	cfg *config.Config
	app *fiber.App
	svc *services.Services
}

func TestRoutesSuite(t *testing.T) {
	suite.Run(t, new(RoutesSuite))
}

func (s *RoutesSuite) SetupTest() {
	s.db = testdb.Open(s.T())
	s.cfg = &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "routes-access-secret",
			RefreshSecret:    "routes-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}

	gate, err := access.Default()
	s.Require().NoError(err)

	registry := prometheus.NewRegistry()
	s.svc = services.New(s.db, s.cfg, tokenstore.NewMemory(), storage.NewMemory(), metrics.New(registry))

	s.app = fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	routes.Setup(s.app, s.svc, s.cfg, routes.Options{
		Gate:     gate,
		Gatherer: registry,
		Checks:   map[string]handlers.Pinger{"database": config.DatabaseHealth{DB: s.db}},
	})
}

func (s *RoutesSuite) token(role domain.Role) string {
	token, err := jwt.GenerateAccessToken(uuid.New(), string(role)+"@assur.test", string(role), s.cfg.JWT.Secret, 15)
	s.Require().NoError(err)
	return token
}

func (s *RoutesSuite) do(method, path, token string, body any) (int, response.Response) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var out response.Response
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	if len(raw) > 0 && raw[0] == '{' {
		s.Require().NoError(json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func (s *RoutesSuite) referenceIDs() (insuranceTypeID, companyID string) {
	var auto models.InsuranceType
	s.Require().NoError(s.db.Where("nom = ?", "Automobile").First(&auto).Error)

	code, body := s.do(http.MethodPost, "/api/v1/compagnies", s.token(domain.RoleAdmin), map[string]string{"nom_compagnie": "Atlantique"})
	s.Require().Equal(http.StatusCreated, code, body.Error)
	company := body.Data.(map[string]any)
	return auto.ID.String(), company["id_compagnie"].(string)
}

func (s *RoutesSuite) TestHealthAndMetrics() {
	code, _ := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, code)

	manager := s.token(domain.RoleManager)
	code, _ = s.do(http.MethodPost, "/api/v1/clients", manager, map[string]string{
		"nom": "Martin", "email": "martin@mail.test", "carte_identite": "CIN-1",
	})
	s.Require().Equal(http.StatusCreated, code)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	s.Require().NoError(err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(string(raw), `assurgest_workflow_operations_total{operation="client.create",outcome="success"} 1`)
	s.Contains(string(raw), "assurgest_history_events_total")
}

func (s *RoutesSuite) TestAuthentication() {
	code, body := s.do(http.MethodGet, "/api/v1/clients", "", nil)
	s.Equal(http.StatusUnauthorized, code)
	s.False(body.Success)

	code, _ = s.do(http.MethodGet, "/api/v1/clients", "not-a-jwt", nil)
	s.Equal(http.StatusUnauthorized, code)

	forged, err := jwt.GenerateAccessToken(uuid.New(), "x@assur.test", string(domain.RoleAdmin), "other-secret", 15)
	s.Require().NoError(err)
	code, _ = s.do(http.MethodGet, "/api/v1/clients", forged, nil)
	s.Equal(http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodGet, "/api/v1/clients", s.token(domain.RoleAgent), nil)
	s.Equal(http.StatusOK, code)
}

func (s *RoutesSuite) TestCapabilities() {
	tests := []struct {
		name   string
		role   domain.Role
		method string
		path   string
		want   int
	}{
		{"client role reads nothing", domain.RoleClient, http.MethodGet, "/api/v1/contrats", http.StatusForbidden},
		{"agent cannot delete clients", domain.RoleAgent, http.MethodDelete, "/api/v1/clients/" + uuid.NewString(), http.StatusForbidden},
		{"agent cannot validate indemnities", domain.RoleAgent, http.MethodPost, "/api/v1/indemnisations/" + uuid.NewString() + "/valider", http.StatusForbidden},
		{"agent cannot read history", domain.RoleAgent, http.MethodGet, "/api/v1/historique", http.StatusForbidden},
		{"manager cannot manage users", domain.RoleManager, http.MethodGet, "/api/v1/users", http.StatusForbidden},
		{"manager reads dashboard", domain.RoleManager, http.MethodGet, "/api/v1/dashboard", http.StatusOK},
		{"admin manages users", domain.RoleAdmin, http.MethodGet, "/api/v1/users", http.StatusOK},
		{"unknown role", domain.Role("stagiaire"), http.MethodGet, "/api/v1/clients", http.StatusForbidden},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			code, _ := s.do(tt.method, tt.path, s.token(tt.role), nil)
			s.Equal(tt.want, code)
		})
	}
}

func (s *RoutesSuite) TestErrorMapping() {
	manager := s.token(domain.RoleManager)
	typeID, companyID := s.referenceIDs()

	code, body := s.do(http.MethodPost, "/api/v1/clients", manager, map[string]string{
		"nom": "Martin", "email": "bad-email", "carte_identite": "CIN-1",
	})
	s.Equal(http.StatusBadRequest, code)
	s.Equal("email", body.Field)

	code, body = s.do(http.MethodPost, "/api/v1/clients", manager, map[string]string{
		"nom": "Martin", "email": "martin@mail.test", "carte_identite": "CIN-1",
	})
	s.Require().Equal(http.StatusCreated, code)
	clientID := body.Data.(map[string]any)["id_client"].(string)

	code, body = s.do(http.MethodPost, "/api/v1/clients", manager, map[string]string{
		"nom": "Autre", "email": "martin@mail.test", "carte_identite": "CIN-2",
	})
	s.Equal(http.StatusConflict, code)
	s.Equal("email", body.Field)

	code, _ = s.do(http.MethodGet, "/api/v1/clients/"+uuid.NewString(), manager, nil)
	s.Equal(http.StatusNotFound, code)

	code, body = s.do(http.MethodGet, "/api/v1/clients/not-a-uuid", manager, nil)
	s.Equal(http.StatusBadRequest, code)
	s.Equal("id", body.Field)

	code, body = s.do(http.MethodPost, "/api/v1/contrats", manager, map[string]any{
		"numero_contrat":    "POL-HTTP",
		"date_debut":        "2025-01-01",
		"date_fin":          "2026-01-01",
		"montant_prime":     "420.50",
		"id_client":         clientID,
		"id_type_assurance": typeID,
		"id_compagnie":      companyID,
	})
	s.Require().Equal(http.StatusCreated, code, body.Error)
	contractID := body.Data.(map[string]any)["id_police"].(string)

	code, _ = s.do(http.MethodPost, "/api/v1/contrats/"+contractID+"/annuler", manager, nil)
	s.Require().Equal(http.StatusOK, code)

	code, _ = s.do(http.MethodPost, "/api/v1/contrats/"+contractID+"/renouveler", manager, map[string]string{"nouvelle_date_fin": "2027-01-01"})
	s.Equal(http.StatusConflict, code)

	code, body = s.do(http.MethodGet, "/api/v1/historique/"+domain.EntityContract+"/"+contractID, manager, nil)
	s.Require().Equal(http.StatusOK, code)
	events, ok := body.Data.([]any)
	s.Require().True(ok)
	s.Len(events, 2)
}

func (s *RoutesSuite) TestLoginFlow() {
	_, err := s.svc.Auth.Register(context.Background(), &services.RegisterInput{
		LastName: "Durand", Email: "durand@assur.test", Password: "secret123", ConfirmPassword: "secret123",
	})
	s.Require().NoError(err)

	code, _ := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "durand@assur.test", "password": "secret123"})
	s.Equal(http.StatusForbidden, code)

	code, _ = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "durand@assur.test", "password": "wrong-pass1"})
	s.Equal(http.StatusUnauthorized, code)

	code, body := s.do(http.MethodPost, "/api/v1/auth/ask", "", map[string]string{
		"email": "durand@assur.test", "fonction": "Expert", "direction": "Sinistres", "justificatif": "Instruction des dossiers",
	})
	s.Equal(http.StatusCreated, code, body.Error)

	code, _ = s.do(http.MethodPost, "/api/v1/auth/ask", "", map[string]string{
		"email": "inconnu@assur.test", "fonction": "Expert", "direction": "Sinistres", "justificatif": "Instruction des dossiers",
	})
	s.Equal(http.StatusNotFound, code)

	code, body = s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"nom": "Durand", "email": "durand@assur.test", "password": "secret123", "confirme_password": "secret123",
	})
	s.Equal(http.StatusConflict, code)
	s.Equal("email", body.Field)
}
