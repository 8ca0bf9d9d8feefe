package services

import (
	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/core/domain"

	"github.com/google/uuid"
)

func (s *ServiceSuite) TestClaimCreate() {
	contract := s.newContract("POL-SIN", "2025-01-01", "2026-01-01", "400")

	claim := s.newClaim(contract, "SIN-001")
	s.Equal(string(domain.ClaimDeclared), claim.Status)
	s.Equal("2025-03-10", models.FormatDate(claim.DeclarationDate))

	events := s.timeline(domain.EntityClaim, claim)
	s.Require().Len(events, 1)
	s.Equal("SIN-001", events[0].After["numero_sinistre"])
	s.Nil(events[0].After["montant_estime"])

	s.Run("duplicate number", func() {
		_, err := s.svc.Claims.Create(s.ctx, CreateClaimInput{Number: "SIN-001", IncidentDate: "2025-03-01", ContractID: contract.ID})
		s.requireDuplicate(err, "numero_sinistre")
	})

	s.Run("incident after declaration", func() {
		_, err := s.svc.Claims.Create(s.ctx, CreateClaimInput{
			Number:          "SIN-FUTURE",
			DeclarationDate: "2025-03-01",
			IncidentDate:    "2025-03-05",
			ContractID:      contract.ID,
		})
		s.requireInvalid(err, "date_incident")
	})

	s.Run("unknown contract", func() {
		_, err := s.svc.Claims.Create(s.ctx, CreateClaimInput{Number: "SIN-X", IncidentDate: "2025-03-01", ContractID: uuid.New()})
		s.Require().ErrorIs(err, domain.ErrNotFound)
	})

	s.Run("folder of another contract", func() {
		other := s.newContract("POL-SIN-2", "2025-01-01", "2026-01-01", "400")
		folder, err := s.svc.Folders.Create(s.ctx, CreateFolderInput{Number: "DOS-OTHER", Title: "Autre", ContractID: other.ID})
		s.Require().NoError(err)

		_, err = s.svc.Claims.Create(s.ctx, CreateClaimInput{
			Number:       "SIN-MIX",
			IncidentDate: "2025-03-01",
			ContractID:   contract.ID,
			FolderID:     &folder.ID,
		})
		s.requireInvalid(err, "id_dossier")
	})
}

func (s *ServiceSuite) TestClaimStatusTransitions() {
	contract := s.newContract("POL-FSM", "2025-01-01", "2026-01-01", "400")
	claim := s.newClaim(contract, "SIN-FSM")

	_, err := s.svc.Claims.Update(s.ctx, claim.ID, UpdateClaimInput{Status: strPtr(string(domain.ClaimApproved))})
	s.Require().ErrorIs(err, domain.ErrInvalidState)

	_, err = s.svc.Claims.Update(s.ctx, claim.ID, UpdateClaimInput{ResolutionDate: strPtr("2025-03-10")})
	s.requireInvalid(err, "date_resolution")

	for _, next := range []domain.ClaimStatus{domain.ClaimUnderReview, domain.ClaimApproved} {
		updated, err := s.svc.Claims.Update(s.ctx, claim.ID, UpdateClaimInput{Status: strPtr(string(next))})
		s.Require().NoError(err)
		s.Equal(string(next), updated.Status)
	}

	closed, err := s.svc.Claims.Update(s.ctx, claim.ID, UpdateClaimInput{
		Status:        strPtr(string(domain.ClaimClosed)),
		SettledAmount: decPtr("1200"),
	})
	s.Require().NoError(err)
	s.Require().NotNil(closed.ResolutionDate)
	s.Equal("2025-03-10", models.FormatDate(*closed.ResolutionDate))

	_, err = s.svc.Claims.Update(s.ctx, claim.ID, UpdateClaimInput{Status: strPtr(string(domain.ClaimUnderReview))})
	s.Require().ErrorIs(err, domain.ErrInvalidState)

	events := s.timeline(domain.EntityClaim, claim)
	s.Require().Len(events, 4)
	last := events[3]
	s.Equal(string(domain.ClaimClosed), last.After["statut"])
	s.Equal("1200", last.After["montant_regle"])
	s.Equal("2025-03-10", last.After["date_resolution"])
	s.Nil(last.Before["date_resolution"])
}

func (s *ServiceSuite) TestClaimDelete() {
	contract := s.newContract("POL-SDEL", "2025-01-01", "2026-01-01", "400")
	indemnified := s.approvedClaim(contract, "SIN-IND")
	_, err := s.svc.Indemnifications.Propose(s.ctx, ProposeInput{ClaimID: indemnified.ID, Amount: dec("100")})
	s.Require().NoError(err)

	err = s.svc.Claims.Delete(s.ctx, indemnified.ID)
	s.requireInvalid(err, "id_sinistre")

	plain := s.newClaim(contract, "SIN-PLAIN")
	s.Require().NoError(s.svc.Claims.Delete(s.ctx, plain.ID))
	_, err = s.svc.Claims.Get(s.ctx, plain.ID)
	s.Require().ErrorIs(err, domain.ErrNotFound)
}
