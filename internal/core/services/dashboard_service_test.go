package services

import (
	"time"

	"assurgest/internal/core/domain"
)

func (s *ServiceSuite) TestDashboardOverview() {
	contract := s.newContract("POL-DASH", "2025-01-01", "2026-01-01", "300")
	other := s.newContract("POL-DASH-2", "2025-01-01", "2026-01-01", "150")
	_, err := s.svc.Contracts.Cancel(s.ctx, other.ID)
	s.Require().NoError(err)

	premium, err := s.svc.Premiums.GenerateDueNotice(s.ctx, DueNoticeInput{ContractID: contract.ID})
	s.Require().NoError(err)
	_, err = s.svc.Premiums.RecordPayment(s.ctx, premium.ID, PaymentInput{Date: "2025-03-05", Method: "Carte", Reference: "CB-9"})
	s.Require().NoError(err)

	_, err = s.svc.Premiums.GenerateDueNotice(s.ctx, DueNoticeInput{ContractID: contract.ID, DueDate: "2025-02-01"})
	s.Require().NoError(err)
	_, err = s.svc.Premiums.MarkOverdue(s.ctx, testNow)
	s.Require().NoError(err)

	s.newClaim(contract, "SIN-DASH")

	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	data, err := s.svc.Dashboard.GetOverview(s.ctx, from, to)
	s.Require().NoError(err)

	s.EqualValues(2, data.TotalClients)
	s.EqualValues(2, data.TotalContracts)
	s.EqualValues(1, data.ContractsByStatus[string(domain.ContractActive)])
	s.EqualValues(1, data.ContractsByStatus[string(domain.ContractCancelled)])
	s.EqualValues(2, data.ContractsByType["Automobile"])
	s.EqualValues(1, data.ClaimsByStatus[string(domain.ClaimDeclared)])
	s.Equal("300", data.PremiumsCollected.String())
	s.True(data.IndemnitiesPaid.IsZero())
	s.EqualValues(1, data.UnpaidPremiums)

	s.Run("payments outside the window", func() {
		data, err := s.svc.Dashboard.GetOverview(s.ctx, from.AddDate(0, 1, 0), to.AddDate(0, 1, 0))
		s.Require().NoError(err)
		s.True(data.PremiumsCollected.IsZero())
	})

	s.Run("inverted window", func() {
		_, err := s.svc.Dashboard.GetOverview(s.ctx, to, from)
		s.requireInvalid(err, "to")
	})
}
