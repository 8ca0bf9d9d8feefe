package services

import (
	"context"
	"time"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/core/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// DashboardService computes portfolio aggregates
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Overview represents dashboard data
type Overview struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	TotalClients   int64 `json:"total_clients"`
	TotalContracts int64 `json:"total_contrats"`

	ContractsByStatus        map[string]int64 `json:"contrats_par_statut"`
	ContractsByType          map[string]int64 `json:"contrats_par_type"`
	ClaimsByStatus           map[string]int64 `json:"sinistres_par_statut"`
	IndemnificationsByStatus map[string]int64 `json:"indemnisations_par_statut"`

	PremiumsCollected decimal.Decimal `json:"primes_collectees"`
	IndemnitiesPaid   decimal.Decimal `json:"indemnisations_payees"`
	UnpaidPremiums    int64           `json:"primes_impayees"`
}

type groupCount struct {
	Label string
	Total int64
}

// GetOverview returns the overview for [from, to]. Each aggregate runs in its own goroutine.
func (s *DashboardService) GetOverview(ctx context.Context, from, to time.Time) (*Overview, error) {
	if to.Before(from) {
		return nil, domain.Invalid("to", "must not be before from")
	}
	data := &Overview{From: from, To: to}
	fromDay, toDay := models.NewDate(from), models.NewDate(to)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.db.WithContext(ctx).Table("clients").Count(&data.TotalClients).Error
	})
	g.Go(func() error {
		return s.db.WithContext(ctx).Table("contrats_assurance").Count(&data.TotalContracts).Error
	})
	g.Go(func() (err error) {
		data.ContractsByStatus, err = s.countBy(ctx, "contrats_assurance", "statut")
		return err
	})
	g.Go(func() error {
		var rows []groupCount
		err := s.db.WithContext(ctx).Table("contrats_assurance").
			Joins("JOIN types_assurance ON types_assurance.id_type_assurance = contrats_assurance.id_type_assurance").
			Select("types_assurance.nom AS label, COUNT(*) AS total").
			Group("types_assurance.nom").
			Scan(&rows).Error
		data.ContractsByType = toMap(rows)
		return err
	})
	g.Go(func() (err error) {
		data.ClaimsByStatus, err = s.countBy(ctx, "sinistres", "statut")
		return err
	})
	g.Go(func() (err error) {
		data.IndemnificationsByStatus, err = s.countBy(ctx, "indemnisations_sinistre", "statut")
		return err
	})
	g.Go(func() (err error) {
		data.PremiumsCollected, err = s.paidBetween(ctx, "primes_assurance", string(domain.PremiumPaid), fromDay, toDay)
		return err
	})
	g.Go(func() (err error) {
		data.IndemnitiesPaid, err = s.paidBetween(ctx, "indemnisations_sinistre", string(domain.IndemnificationPaid), fromDay, toDay)
		return err
	})
	g.Go(func() error {
		return s.db.WithContext(ctx).Table("primes_assurance").
			Where("statut = ?", string(domain.PremiumUnpaid)).
			Count(&data.UnpaidPremiums).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *DashboardService) countBy(ctx context.Context, table, column string) (map[string]int64, error) {
	var rows []groupCount
	err := s.db.WithContext(ctx).Table(table).
		Select(column + " AS label, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toMap(rows), nil
}

func (s *DashboardService) paidBetween(ctx context.Context, table, status string, from, to any) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := s.db.WithContext(ctx).Table(table).
		Where("statut = ? AND date_paiement >= ? AND date_paiement <= ?", status, from, to).
		Select("SUM(montant)").
		Row().Scan(&total)
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func toMap(rows []groupCount) map[string]int64 {
	m := make(map[string]int64, len(rows))
	for _, r := range rows {
		m[r.Label] = r.Total
	}
	return m
}
