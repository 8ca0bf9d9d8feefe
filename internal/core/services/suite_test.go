package services

import (
	"context"
	"testing"
	"time"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/adapters/persistence/testdb"
	"assurgest/internal/adapters/storage"
	"assurgest/internal/adapters/tokenstore"
	"assurgest/internal/config"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/actor"
	"assurgest/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Cron: config.CronConfig{Enabled: false},
	}
}

// ServiceSuite runs every workflow against a fresh sqlite database
type ServiceSuite struct {
	suite.Suite

	db        *gorm.DB
	svc       *Services
	store     *storage.Memory
	blacklist *tokenstore.Memory
	ctx       context.Context
	userID    uuid.UUID

	insuranceTypeID uuid.UUID
	companyID       uuid.UUID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupSuite() {
	password.Cost = bcrypt.MinCost
}

func (s *ServiceSuite) SetupTest() {
	s.db = testdb.Open(s.T())
	s.store = storage.NewMemory()
	s.blacklist = tokenstore.NewMemory()
	s.svc = New(s.db, testConfig(), s.blacklist, s.store, nil)

	s.userID = uuid.New()
	s.ctx = actor.WithTime(actor.WithID(context.Background(), s.userID), testNow)

	var auto models.InsuranceType
	s.Require().NoError(s.db.Where("nom = ?", "Automobile").First(&auto).Error)
	s.insuranceTypeID = auto.ID

	company, err := s.svc.References.CreateCompany(s.ctx, CompanyInput{Name: "Atlantique Assurances", Email: "contact@atlantique.test"})
	s.Require().NoError(err)
	s.companyID = company.ID
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func strPtr(v string) *string {
	return &v
}

func (s *ServiceSuite) newClient(email, nationalID string) *models.Client {
	client, err := s.svc.Clients.Create(s.ctx, ClientInput{
		LastName:   "Martin",
		FirstName:  "Claire",
		Email:      email,
		NationalID: nationalID,
	})
	s.Require().NoError(err)
	return client
}

func (s *ServiceSuite) newContract(number, start, end, premium string) *models.Contract {
	client := s.newClient(number+"@client.test", "CIN-"+number)
	contract, err := s.svc.Contracts.Create(s.ctx, CreateContractInput{
		Number:          number,
		StartDate:       start,
		EndDate:         end,
		Premium:         decPtr(premium),
		ClientID:        client.ID,
		InsuranceTypeID: s.insuranceTypeID,
		CompanyID:       s.companyID,
	})
	s.Require().NoError(err)
	return contract
}

func (s *ServiceSuite) newClaim(contract *models.Contract, number string) *models.Claim {
	claim, err := s.svc.Claims.Create(s.ctx, CreateClaimInput{
		Number:       number,
		IncidentDate: "2025-03-01",
		Description:  "Collision sur parking",
		Type:         "Accident",
		ContractID:   contract.ID,
	})
	s.Require().NoError(err)
	return claim
}

func (s *ServiceSuite) approvedClaim(contract *models.Contract, number string) *models.Claim {
	claim := s.newClaim(contract, number)
	for _, status := range []domain.ClaimStatus{domain.ClaimUnderReview, domain.ClaimApproved} {
		_, err := s.svc.Claims.Update(s.ctx, claim.ID, UpdateClaimInput{Status: strPtr(string(status))})
		s.Require().NoError(err)
	}
	return claim
}

func (s *ServiceSuite) timeline(entity string, e models.Auditable) []*models.HistoryEvent {
	events, err := s.svc.History.Timeline(s.ctx, entity, e.AuditKey())
	s.Require().NoError(err)
	return events
}

func (s *ServiceSuite) historyCount() int64 {
	var count int64
	s.Require().NoError(s.db.Model(&models.HistoryEvent{}).Count(&count).Error)
	return count
}

func (s *ServiceSuite) requireDuplicate(err error, field string) {
	s.Require().ErrorIs(err, domain.ErrDuplicate)
	var dup *domain.DuplicateError
	s.Require().ErrorAs(err, &dup)
	s.Equal(field, dup.Field)
}

func (s *ServiceSuite) requireInvalid(err error, field string) {
	s.Require().ErrorIs(err, domain.ErrValidation)
	var invalid *domain.ValidationError
	s.Require().ErrorAs(err, &invalid)
	s.Equal(field, invalid.Field)
}
