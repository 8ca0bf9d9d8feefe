package services

import (
	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/core/domain"
)

func (s *ServiceSuite) TestPremiumDueNotice() {
	contract := s.newContract("POL-PRI", "2025-01-01", "2026-01-01", "320")

	premium, err := s.svc.Premiums.GenerateDueNotice(s.ctx, DueNoticeInput{ContractID: contract.ID})
	s.Require().NoError(err)
	s.Equal(string(domain.PremiumPending), premium.Status)
	s.Equal("320", premium.Amount.String())
	s.Equal("2025-04-10", models.FormatDate(premium.DueDate))

	events := s.timeline(domain.EntityPremium, premium)
	s.Require().Len(events, 1)
	s.Equal(domain.EventPremiumDueNotice, events[0].EventType)

	s.Run("same due date", func() {
		_, err := s.svc.Premiums.GenerateDueNotice(s.ctx, DueNoticeInput{ContractID: contract.ID, DueDate: "2025-04-10"})
		s.requireDuplicate(err, "date_echeance")
	})

	s.Run("explicit amount", func() {
		p, err := s.svc.Premiums.GenerateDueNotice(s.ctx, DueNoticeInput{ContractID: contract.ID, DueDate: "2025-05-10", Amount: decPtr("160")})
		s.Require().NoError(err)
		s.Equal("160", p.Amount.String())
	})

	s.Run("zero amount", func() {
		_, err := s.svc.Premiums.GenerateDueNotice(s.ctx, DueNoticeInput{ContractID: contract.ID, DueDate: "2025-06-10", Amount: decPtr("0")})
		s.requireInvalid(err, "montant")
	})

	s.Run("cancelled contract", func() {
		_, err := s.svc.Contracts.Cancel(s.ctx, contract.ID)
		s.Require().NoError(err)

		_, err = s.svc.Premiums.GenerateDueNotice(s.ctx, DueNoticeInput{ContractID: contract.ID, DueDate: "2025-07-10"})
		s.Require().ErrorIs(err, domain.ErrInvalidState)
	})

	list, err := s.svc.Premiums.ListByContract(s.ctx, contract.ID)
	s.Require().NoError(err)
	s.Len(list, 2)
}

func (s *ServiceSuite) TestPremiumPayment() {
	contract := s.newContract("POL-PAY", "2025-01-01", "2026-01-01", "320")
	premium, err := s.svc.Premiums.GenerateDueNotice(s.ctx, DueNoticeInput{ContractID: contract.ID})
	s.Require().NoError(err)

	_, err = s.svc.Premiums.RecordPayment(s.ctx, premium.ID, PaymentInput{Reference: "CB-1"})
	s.requireInvalid(err, "mode_paiement")

	paid, err := s.svc.Premiums.RecordPayment(s.ctx, premium.ID, PaymentInput{Date: "2025-03-09", Method: "Carte", Reference: "CB-1"})
	s.Require().NoError(err)
	s.Equal(string(domain.PremiumPaid), paid.Status)
	s.Require().NotNil(paid.PaymentDate)
	s.Equal("2025-03-09", models.FormatDate(*paid.PaymentDate))

	_, err = s.svc.Premiums.RecordPayment(s.ctx, premium.ID, PaymentInput{Method: "Carte", Reference: "CB-2"})
	s.Require().ErrorIs(err, domain.ErrInvalidState)

	events := s.timeline(domain.EntityPremium, premium)
	s.Require().Len(events, 2)
	s.Equal(domain.EventPremiumPaid, events[1].EventType)
	s.Equal("CB-1", events[1].After["reference_paiement"])
}

func (s *ServiceSuite) TestPremiumMarkOverdue() {
	contract := s.newContract("POL-LATE", "2025-01-01", "2026-01-01", "320")
	late, err := s.svc.Premiums.GenerateDueNotice(s.ctx, DueNoticeInput{ContractID: contract.ID, DueDate: "2025-03-01"})
	s.Require().NoError(err)
	upcoming, err := s.svc.Premiums.GenerateDueNotice(s.ctx, DueNoticeInput{ContractID: contract.ID, DueDate: "2025-04-01"})
	s.Require().NoError(err)

	cron := NewCronService(testConfig().Cron, s.svc.Contracts, s.svc.Premiums, s.svc.Auth, nil)
	s.Require().NoError(cron.RunOverduePremiums(s.ctx))

	got, err := s.svc.Premiums.Get(s.ctx, late.ID)
	s.Require().NoError(err)
	s.Equal(string(domain.PremiumUnpaid), got.Status)

	got, err = s.svc.Premiums.Get(s.ctx, upcoming.ID)
	s.Require().NoError(err)
	s.Equal(string(domain.PremiumPending), got.Status)

	events := s.timeline(domain.EntityPremium, late)
	s.Require().Len(events, 2)
	s.Equal(domain.EventPremiumOverdue, events[1].EventType)

	marked, err := s.svc.Premiums.MarkOverdue(s.ctx, testNow)
	s.Require().NoError(err)
	s.Zero(marked)

	paid, err := s.svc.Premiums.RecordPayment(s.ctx, late.ID, PaymentInput{Method: "Espèces", Reference: "REC-9"})
	s.Require().NoError(err)
	s.Equal(string(domain.PremiumPaid), paid.Status)
}
