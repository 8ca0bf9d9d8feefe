package services

import (
	"assurgest/internal/core/domain"

	"github.com/google/uuid"
)

func (s *ServiceSuite) TestIndemnificationProposeValidatePay() {
	contract := s.newContract("POL-IND", "2025-01-01", "2026-01-01", "700")
	claim := s.approvedClaim(contract, "S1")

	proposed, err := s.svc.Indemnifications.Propose(s.ctx, ProposeInput{ClaimID: claim.ID, Amount: dec("5000"), Description: "Réparation carrosserie"})
	s.Require().NoError(err)
	s.Equal(string(domain.IndemnificationPending), proposed.Status)

	validated, err := s.svc.Indemnifications.Validate(s.ctx, proposed.ID)
	s.Require().NoError(err)
	s.Equal(string(domain.IndemnificationValidated), validated.Status)

	paid, err := s.svc.Indemnifications.RecordPayment(s.ctx, proposed.ID, PaymentInput{Method: "Virement", Reference: "PAY-42"})
	s.Require().NoError(err)
	s.Equal(string(domain.IndemnificationPaid), paid.Status)
	s.Require().NotNil(paid.PaymentReference)
	s.Equal("PAY-42", *paid.PaymentReference)

	events := s.timeline(domain.EntityIndemnification, proposed)
	s.Require().Len(events, 3)
	wantTypes := []string{
		domain.EventIndemnificationProposed,
		domain.EventIndemnificationApproved,
		domain.EventIndemnificationPaid,
	}
	for i, event := range events {
		s.Equal(wantTypes[i], event.EventType)
		s.Equal(proposed.ID.String(), event.EntityID)
		if i > 0 {
			s.True(events[i-1].OccurredAt.Before(event.OccurredAt))
		}
	}
	s.Equal("PAY-42", events[2].After["reference_paiement"])
	s.Equal("2025-03-10", events[2].After["date_paiement"])
	s.Equal(string(domain.IndemnificationValidated), events[2].Before["statut"])
}

func (s *ServiceSuite) TestIndemnificationStatusOnlyMovesForward() {
	contract := s.newContract("POL-MONO", "2025-01-01", "2026-01-01", "700")
	claim := s.approvedClaim(contract, "SIN-MONO")

	proposed, err := s.svc.Indemnifications.Propose(s.ctx, ProposeInput{ClaimID: claim.ID, Amount: dec("900")})
	s.Require().NoError(err)

	s.Run("pay before validation", func() {
		_, err := s.svc.Indemnifications.RecordPayment(s.ctx, proposed.ID, PaymentInput{Method: "Chèque", Reference: "CHQ-1"})
		s.Require().ErrorIs(err, domain.ErrInvalidState)
	})

	_, err = s.svc.Indemnifications.Validate(s.ctx, proposed.ID)
	s.Require().NoError(err)

	s.Run("validate twice", func() {
		_, err := s.svc.Indemnifications.Validate(s.ctx, proposed.ID)
		s.Require().ErrorIs(err, domain.ErrInvalidState)
	})

	s.Run("payment without reference", func() {
		_, err := s.svc.Indemnifications.RecordPayment(s.ctx, proposed.ID, PaymentInput{Method: "Chèque"})
		s.requireInvalid(err, "reference_paiement")

		current, err := s.svc.Indemnifications.Get(s.ctx, proposed.ID)
		s.Require().NoError(err)
		s.Equal(string(domain.IndemnificationValidated), current.Status)
		s.Nil(current.PaymentReference)
	})

	_, err = s.svc.Indemnifications.RecordPayment(s.ctx, proposed.ID, PaymentInput{Date: "2025-03-08", Method: "Chèque", Reference: "CHQ-2"})
	s.Require().NoError(err)

	s.Run("pay twice", func() {
		_, err := s.svc.Indemnifications.RecordPayment(s.ctx, proposed.ID, PaymentInput{Method: "Chèque", Reference: "CHQ-3"})
		s.Require().ErrorIs(err, domain.ErrInvalidState)
	})

	s.Len(s.timeline(domain.EntityIndemnification, proposed), 3)
}

func (s *ServiceSuite) TestIndemnificationProposeRules() {
	contract := s.newContract("POL-PROP", "2025-01-01", "2026-01-01", "700")
	claim := s.approvedClaim(contract, "SIN-PROP")

	s.Run("amount must be positive", func() {
		_, err := s.svc.Indemnifications.Propose(s.ctx, ProposeInput{ClaimID: claim.ID, Amount: dec("0")})
		s.requireInvalid(err, "montant")
	})

	s.Run("claim not approved", func() {
		declared := s.newClaim(contract, "SIN-DECL")
		_, err := s.svc.Indemnifications.Propose(s.ctx, ProposeInput{ClaimID: declared.ID, Amount: dec("10")})
		s.Require().ErrorIs(err, domain.ErrInvalidState)

		refused := s.newClaim(contract, "SIN-REFUS")
		for _, status := range []domain.ClaimStatus{domain.ClaimUnderReview, domain.ClaimRejected} {
			_, err := s.svc.Claims.Update(s.ctx, refused.ID, UpdateClaimInput{Status: strPtr(string(status))})
			s.Require().NoError(err)
		}
		_, err = s.svc.Indemnifications.Propose(s.ctx, ProposeInput{ClaimID: refused.ID, Amount: dec("5000")})
		s.Require().ErrorIs(err, domain.ErrInvalidState)

		for _, id := range []uuid.UUID{declared.ID, refused.ID} {
			list, err := s.svc.Indemnifications.ListByClaim(s.ctx, id)
			s.Require().NoError(err)
			s.Empty(list)
		}
	})

	s.Run("unknown claim", func() {
		_, err := s.svc.Indemnifications.Propose(s.ctx, ProposeInput{ClaimID: uuid.New(), Amount: dec("10")})
		s.Require().ErrorIs(err, domain.ErrNotFound)
	})

	s.Run("one per claim", func() {
		_, err := s.svc.Indemnifications.Propose(s.ctx, ProposeInput{ClaimID: claim.ID, Amount: dec("10")})
		s.Require().NoError(err)

		_, err = s.svc.Indemnifications.Propose(s.ctx, ProposeInput{ClaimID: claim.ID, Amount: dec("20")})
		s.requireDuplicate(err, "id_sinistre")
	})

	list, err := s.svc.Indemnifications.ListByClaim(s.ctx, claim.ID)
	s.Require().NoError(err)
	s.Len(list, 1)
}
