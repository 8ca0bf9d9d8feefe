package services

import (
	"errors"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *ServiceSuite) TestContractCreateAndRenew() {
	contract := s.newContract("POL-001", "2024-01-01", "2025-01-01", "1000")
	s.Equal(string(domain.ContractActive), contract.Status)

	renewed, err := s.svc.Contracts.Renew(s.ctx, contract.ID, RenewContractInput{NewEndDate: "2026-01-01"})
	s.Require().NoError(err)
	s.Equal(string(domain.ContractRenewed), renewed.Status)
	s.Equal("2026-01-01", models.FormatDate(renewed.EndDate))

	stored, err := s.svc.Contracts.Get(s.ctx, contract.ID)
	s.Require().NoError(err)
	s.Equal(string(domain.ContractRenewed), stored.Status)
	s.Equal("2026-01-01", models.FormatDate(stored.EndDate))

	events := s.timeline(domain.EntityContract, contract)
	s.Require().Len(events, 2)
	s.Equal(domain.EventCreated, events[0].EventType)
	s.Equal("POL-001", events[0].After["numero_contrat"])
	s.Equal("2025-01-01", events[0].After["date_fin"])
	s.Empty(events[0].Before)

	s.Equal(domain.EventContractRenewed, events[1].EventType)
	s.Equal("2025-01-01", events[1].Before["date_fin"])
	s.Equal("2026-01-01", events[1].After["date_fin"])
	s.Equal(string(domain.ContractRenewed), events[1].After["statut"])
	s.Require().NotNil(events[1].UserID)
	s.Equal(s.userID, *events[1].UserID)
	s.True(events[0].OccurredAt.Before(events[1].OccurredAt))
}

func (s *ServiceSuite) TestContractCreateValidation() {
	client := s.newClient("val@client.test", "CIN-VAL")
	base := CreateContractInput{
		Number:          "POL-VAL",
		StartDate:       "2025-01-01",
		EndDate:         "2026-01-01",
		Premium:         decPtr("500"),
		ClientID:        client.ID,
		InsuranceTypeID: s.insuranceTypeID,
		CompanyID:       s.companyID,
	}

	s.Run("end before start", func() {
		in := base
		in.EndDate = "2024-12-31"
		_, err := s.svc.Contracts.Create(s.ctx, in)
		s.requireInvalid(err, "date_fin")
	})

	s.Run("negative premium", func() {
		in := base
		in.Premium = decPtr("-1")
		_, err := s.svc.Contracts.Create(s.ctx, in)
		s.requireInvalid(err, "montant_prime")
	})

	s.Run("sub-cent premium", func() {
		in := base
		in.Premium = decPtr("1000.555")
		_, err := s.svc.Contracts.Create(s.ctx, in)
		s.requireInvalid(err, "montant_prime")
	})

	s.Run("malformed date", func() {
		in := base
		in.StartDate = "01/01/2025"
		_, err := s.svc.Contracts.Create(s.ctx, in)
		s.requireInvalid(err, "date_debut")
	})

	s.Run("initial status", func() {
		in := base
		in.Status = string(domain.ContractExpired)
		_, err := s.svc.Contracts.Create(s.ctx, in)
		s.requireInvalid(err, "statut")
	})

	s.Run("unknown client", func() {
		in := base
		in.ClientID = uuid.New()
		_, err := s.svc.Contracts.Create(s.ctx, in)
		s.Require().ErrorIs(err, domain.ErrNotFound)
	})

	s.Run("duplicate number", func() {
		_, err := s.svc.Contracts.Create(s.ctx, base)
		s.Require().NoError(err)

		_, err = s.svc.Contracts.Create(s.ctx, base)
		s.requireDuplicate(err, "numero_contrat")
	})

	s.EqualValues(1, s.countContracts("POL-VAL"))
}

func (s *ServiceSuite) TestContractUpdateRecordsChangedFieldsOnly() {
	contract := s.newContract("POL-UPD", "2025-01-01", "2026-01-01", "800")
	before := s.historyCount()

	s.Run("no field", func() {
		_, err := s.svc.Contracts.Update(s.ctx, contract.ID, UpdateContractInput{})
		s.Require().NoError(err)
		s.Equal(before, s.historyCount())
	})

	s.Run("same values", func() {
		_, err := s.svc.Contracts.Update(s.ctx, contract.ID, UpdateContractInput{
			Number:  strPtr("POL-UPD"),
			Premium: decPtr("800"),
		})
		s.Require().NoError(err)
		s.Equal(before, s.historyCount())
	})

	s.Run("two fields", func() {
		updated, err := s.svc.Contracts.Update(s.ctx, contract.ID, UpdateContractInput{
			Premium: decPtr("950"),
			EndDate: strPtr("2026-06-30"),
		})
		s.Require().NoError(err)
		s.Equal("950", updated.Premium.String())

		events := s.timeline(domain.EntityContract, contract)
		s.Require().Len(events, 2)
		last := events[1]
		s.Equal(domain.EventUpdated, last.EventType)
		s.Len(last.Before, 2)
		s.Len(last.After, 2)
		s.Equal("800", last.Before["montant_prime"])
		s.Equal("950", last.After["montant_prime"])
		s.Equal("2026-01-01", last.Before["date_fin"])
		s.Equal("2026-06-30", last.After["date_fin"])
		s.Contains(last.Description, "montant_prime")
	})

	s.Run("unknown status", func() {
		_, err := s.svc.Contracts.Update(s.ctx, contract.ID, UpdateContractInput{Status: strPtr("Suspendu")})
		s.requireInvalid(err, "statut")
	})

	s.Run("duplicate number", func() {
		other := s.newContract("POL-OTHER", "2025-01-01", "2026-01-01", "100")
		_, err := s.svc.Contracts.Update(s.ctx, other.ID, UpdateContractInput{Number: strPtr("POL-UPD")})
		s.requireDuplicate(err, "numero_contrat")
	})

	s.Run("missing contract", func() {
		_, err := s.svc.Contracts.Update(s.ctx, uuid.New(), UpdateContractInput{Premium: decPtr("1")})
		s.Require().ErrorIs(err, domain.ErrNotFound)
	})
}

func (s *ServiceSuite) TestContractUpdateCannotSetWorkflowStatuses() {
	contract := s.newContract("POL-BYP", "2024-01-01", "2025-01-01", "500")
	current := s.newContract("POL-BYP2", "2025-01-01", "2026-01-01", "500")
	events := s.historyCount()

	s.Run("renewed", func() {
		_, err := s.svc.Contracts.Update(s.ctx, contract.ID, UpdateContractInput{Status: strPtr(string(domain.ContractRenewed))})
		s.requireInvalid(err, "statut")
	})

	s.Run("expired before end date", func() {
		_, err := s.svc.Contracts.Update(s.ctx, current.ID, UpdateContractInput{Status: strPtr(string(domain.ContractExpired))})
		s.requireInvalid(err, "statut")
	})

	for _, c := range []*models.Contract{contract, current} {
		stored, err := s.svc.Contracts.Get(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal(string(domain.ContractActive), stored.Status)
		s.Equal(models.FormatDate(c.EndDate), models.FormatDate(stored.EndDate))
	}
	s.Equal(events, s.historyCount())

	cancelled, err := s.svc.Contracts.Update(s.ctx, current.ID, UpdateContractInput{Status: strPtr(string(domain.ContractCancelled))})
	s.Require().NoError(err)
	s.Equal(string(domain.ContractCancelled), cancelled.Status)
}

func (s *ServiceSuite) TestContractCancelRollsBackWhenHistoryFails() {
	contract := s.newContract("POL-AUDIT", "2025-01-01", "2026-01-01", "300")

	errAudit := errors.New("audit down")
	s.Require().NoError(s.db.Callback().Create().Before("gorm:create").Register("test:fail_history_insert", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "historique_events" {
			_ = tx.AddError(errAudit)
		}
	}))
	events := s.historyCount()

	_, err := s.svc.Contracts.Cancel(s.ctx, contract.ID)
	s.Require().ErrorIs(err, errAudit)

	stored, err := s.svc.Contracts.Get(s.ctx, contract.ID)
	s.Require().NoError(err)
	s.Equal(string(domain.ContractActive), stored.Status)
	s.Equal(events, s.historyCount())
}

func (s *ServiceSuite) TestContractRenewRules() {
	contract := s.newContract("POL-REN", "2024-01-01", "2025-01-01", "1000")

	s.Run("end date not after current", func() {
		_, err := s.svc.Contracts.Renew(s.ctx, contract.ID, RenewContractInput{NewEndDate: "2025-01-01"})
		s.requireInvalid(err, "nouvelle_date_fin")

		stored, err := s.svc.Contracts.Get(s.ctx, contract.ID)
		s.Require().NoError(err)
		s.Equal("2025-01-01", models.FormatDate(stored.EndDate))
		s.Equal(string(domain.ContractActive), stored.Status)
		s.Len(s.timeline(domain.EntityContract, contract), 1)
	})

	s.Run("negative premium", func() {
		_, err := s.svc.Contracts.Renew(s.ctx, contract.ID, RenewContractInput{NewEndDate: "2026-01-01", NewPremium: decPtr("-10")})
		s.requireInvalid(err, "nouveau_montant_prime")
	})

	s.Run("new premium applied", func() {
		renewed, err := s.svc.Contracts.Renew(s.ctx, contract.ID, RenewContractInput{NewEndDate: "2026-01-01", NewPremium: decPtr("1100")})
		s.Require().NoError(err)
		s.Equal("1100", renewed.Premium.String())
	})

	s.Run("cancelled contract", func() {
		_, err := s.svc.Contracts.Cancel(s.ctx, contract.ID)
		s.Require().NoError(err)

		_, err = s.svc.Contracts.Renew(s.ctx, contract.ID, RenewContractInput{NewEndDate: "2027-01-01"})
		s.Require().ErrorIs(err, domain.ErrInvalidState)
	})
}

func (s *ServiceSuite) TestContractCancel() {
	contract := s.newContract("POL-CAN", "2025-01-01", "2026-01-01", "300")

	cancelled, err := s.svc.Contracts.Cancel(s.ctx, contract.ID)
	s.Require().NoError(err)
	s.Equal(string(domain.ContractCancelled), cancelled.Status)

	events := s.timeline(domain.EntityContract, contract)
	s.Require().Len(events, 2)
	s.Equal(domain.EventContractCancelled, events[1].EventType)

	_, err = s.svc.Contracts.Cancel(s.ctx, contract.ID)
	s.requireInvalid(err, "statut")
	s.Len(s.timeline(domain.EntityContract, contract), 2)

	_, err = s.svc.Contracts.Cancel(s.ctx, uuid.New())
	s.Require().ErrorIs(err, domain.ErrNotFound)
}

func (s *ServiceSuite) TestContractDelete() {
	contract := s.newContract("POL-DEL", "2025-01-01", "2026-01-01", "300")
	s.newClaim(contract, "SIN-DEL")

	err := s.svc.Contracts.Delete(s.ctx, contract.ID)
	s.requireInvalid(err, "id_police")

	bare := s.newContract("POL-BARE", "2025-01-01", "2026-01-01", "300")
	s.Require().NoError(s.svc.Contracts.Delete(s.ctx, bare.ID))

	_, err = s.svc.Contracts.Get(s.ctx, bare.ID)
	s.Require().ErrorIs(err, domain.ErrNotFound)

	events := s.timeline(domain.EntityContract, bare)
	s.Require().Len(events, 2)
	s.Equal(domain.EventDeleted, events[1].EventType)
	s.Equal("POL-BARE", events[1].Before["numero_contrat"])
}

func (s *ServiceSuite) TestContractExpireLapsed() {
	lapsed := s.newContract("POL-LAPSED", "2024-01-01", "2025-01-01", "100")
	current := s.newContract("POL-CURRENT", "2025-01-01", "2026-01-01", "100")
	cancelled := s.newContract("POL-GONE", "2024-01-01", "2025-02-01", "100")
	_, err := s.svc.Contracts.Cancel(s.ctx, cancelled.ID)
	s.Require().NoError(err)

	cron := NewCronService(testConfig().Cron, s.svc.Contracts, s.svc.Premiums, s.svc.Auth, nil)
	s.Require().NoError(cron.RunContractExpiry(s.ctx))

	for id, want := range map[uuid.UUID]domain.ContractStatus{
		lapsed.ID:    domain.ContractExpired,
		current.ID:   domain.ContractActive,
		cancelled.ID: domain.ContractCancelled,
	} {
		c, err := s.svc.Contracts.Get(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(string(want), c.Status, c.Number)
	}

	events := s.timeline(domain.EntityContract, lapsed)
	s.Require().Len(events, 2)
	s.Equal(domain.EventContractExpired, events[1].EventType)

	expired, err := s.svc.Contracts.ExpireLapsed(s.ctx, testNow)
	s.Require().NoError(err)
	s.Zero(expired)

	renewed, err := s.svc.Contracts.Renew(s.ctx, lapsed.ID, RenewContractInput{NewEndDate: "2026-01-01"})
	s.Require().NoError(err)
	s.Equal(string(domain.ContractRenewed), renewed.Status)
}

func (s *ServiceSuite) countContracts(number string) int64 {
	var count int64
	s.Require().NoError(s.db.Model(&models.Contract{}).Where("numero_contrat = ?", number).Count(&count).Error)
	return count
}
