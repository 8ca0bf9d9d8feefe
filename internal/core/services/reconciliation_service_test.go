package services

import (
	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/pagination"
)

func (s *ServiceSuite) TestBankImport() {
	lines := []BankLineInput{
		{Date: "2025-03-05", Amount: dec("250"), Reference: "VIR-001", Type: string(domain.BankCredit)},
		{Date: "2025-03-06", Amount: dec("900"), Reference: "VIR-002", Type: string(domain.BankDebit)},
	}

	imported, err := s.svc.Reconciliation.Import(s.ctx, lines)
	s.Require().NoError(err)
	s.Len(imported, 2)

	s.Run("reference already imported", func() {
		_, err := s.svc.Reconciliation.Import(s.ctx, []BankLineInput{
			{Date: "2025-03-07", Amount: dec("10"), Reference: "VIR-003", Type: string(domain.BankCredit)},
			{Date: "2025-03-07", Amount: dec("10"), Reference: "VIR-001", Type: string(domain.BankCredit)},
		})
		s.requireDuplicate(err, "reference")
	})

	s.Run("duplicate inside batch", func() {
		_, err := s.svc.Reconciliation.Import(s.ctx, []BankLineInput{
			{Date: "2025-03-07", Amount: dec("10"), Reference: "VIR-004", Type: string(domain.BankCredit)},
			{Date: "2025-03-07", Amount: dec("10"), Reference: "VIR-004", Type: string(domain.BankCredit)},
		})
		s.requireDuplicate(err, "reference")
	})

	s.Run("unknown type", func() {
		_, err := s.svc.Reconciliation.Import(s.ctx, []BankLineInput{
			{Date: "2025-03-07", Amount: dec("10"), Reference: "VIR-005", Type: "Virement"},
		})
		s.requireInvalid(err, "type")
	})

	s.Run("empty batch", func() {
		_, err := s.svc.Reconciliation.Import(s.ctx, nil)
		s.requireInvalid(err, "transactions")
	})

	_, total, err := s.svc.Reconciliation.List(s.ctx, false, pagination.New(1, 20))
	s.Require().NoError(err)
	s.EqualValues(2, total)
}

func (s *ServiceSuite) TestReconcilePremium() {
	contract := s.newContract("POL-BANK", "2025-01-01", "2026-01-01", "250")
	premium, err := s.svc.Premiums.GenerateDueNotice(s.ctx, DueNoticeInput{ContractID: contract.ID})
	s.Require().NoError(err)

	imported, err := s.svc.Reconciliation.Import(s.ctx, []BankLineInput{
		{Date: "2025-03-05", Amount: dec("250"), Reference: "VIR-250", Type: string(domain.BankCredit)},
		{Date: "2025-03-05", Amount: dec("249"), Reference: "VIR-249", Type: string(domain.BankCredit)},
		{Date: "2025-03-05", Amount: dec("250"), Reference: "PRL-250", Type: string(domain.BankDebit)},
	})
	s.Require().NoError(err)
	exact, short, debit := imported[0], imported[1], imported[2]

	s.Run("amount mismatch", func() {
		_, err := s.svc.Reconciliation.Reconcile(s.ctx, short.ID, ReconcileInput{Kind: ReconcilePremium, TargetID: premium.ID})
		s.requireInvalid(err, "montant")
	})

	s.Run("debit line", func() {
		_, err := s.svc.Reconciliation.Reconcile(s.ctx, debit.ID, ReconcileInput{Kind: ReconcilePremium, TargetID: premium.ID})
		s.requireInvalid(err, "type")
	})

	s.Run("unknown kind", func() {
		_, err := s.svc.Reconciliation.Reconcile(s.ctx, exact.ID, ReconcileInput{Kind: "facture", TargetID: premium.ID})
		s.requireInvalid(err, "type_rapprochement")
	})

	tx, err := s.svc.Reconciliation.Reconcile(s.ctx, exact.ID, ReconcileInput{Kind: ReconcilePremium, TargetID: premium.ID})
	s.Require().NoError(err)
	s.Require().NotNil(tx.ReconciledWith)
	s.Equal(premium.ID, *tx.ReconciledWith)

	paid, err := s.svc.Premiums.Get(s.ctx, premium.ID)
	s.Require().NoError(err)
	s.Equal(string(domain.PremiumPaid), paid.Status)
	s.Equal("VIR-250", *paid.PaymentReference)
	s.Equal(bankTransferMethod, *paid.PaymentMethod)
	s.Equal("2025-03-05", models.FormatDate(*paid.PaymentDate))

	s.Run("line reconciled once", func() {
		_, err := s.svc.Reconciliation.Reconcile(s.ctx, exact.ID, ReconcileInput{Kind: ReconcilePremium, TargetID: premium.ID})
		s.requireInvalid(err, "id_transaction")
	})

	pending, total, err := s.svc.Reconciliation.List(s.ctx, true, pagination.New(1, 20))
	s.Require().NoError(err)
	s.EqualValues(2, total)
	for _, line := range pending {
		s.Nil(line.ReconciledWith)
	}

	events := s.timeline(domain.EntityBankTransaction, exact)
	s.Require().Len(events, 2)
	s.Equal(domain.EventReconciled, events[1].EventType)
	s.Equal(ReconcilePremium, events[1].After["type_rapprochement"])
}

func (s *ServiceSuite) TestReconcileIndemnification() {
	contract := s.newContract("POL-DEBIT", "2025-01-01", "2026-01-01", "250")
	claim := s.approvedClaim(contract, "SIN-DEBIT")
	indemnification, err := s.svc.Indemnifications.Propose(s.ctx, ProposeInput{ClaimID: claim.ID, Amount: dec("900")})
	s.Require().NoError(err)

	imported, err := s.svc.Reconciliation.Import(s.ctx, []BankLineInput{
		{Date: "2025-03-08", Amount: dec("900"), Reference: "SEPA-900", Type: string(domain.BankDebit)},
	})
	s.Require().NoError(err)

	_, err = s.svc.Reconciliation.Reconcile(s.ctx, imported[0].ID, ReconcileInput{Kind: ReconcileIndemnification, TargetID: indemnification.ID})
	s.Require().ErrorIs(err, domain.ErrInvalidState)

	line, err := s.svc.Reconciliation.Get(s.ctx, imported[0].ID)
	s.Require().NoError(err)
	s.Nil(line.ReconciledWith)

	_, err = s.svc.Indemnifications.Validate(s.ctx, indemnification.ID)
	s.Require().NoError(err)

	_, err = s.svc.Reconciliation.Reconcile(s.ctx, imported[0].ID, ReconcileInput{Kind: ReconcileIndemnification, TargetID: indemnification.ID})
	s.Require().NoError(err)

	paid, err := s.svc.Indemnifications.Get(s.ctx, indemnification.ID)
	s.Require().NoError(err)
	s.Equal(string(domain.IndemnificationPaid), paid.Status)
	s.Equal("SEPA-900", *paid.PaymentReference)
}
