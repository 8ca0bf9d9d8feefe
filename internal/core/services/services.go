package services

import (
	"assurgest/internal/adapters/persistence/repositories"
	"assurgest/internal/config"
	"assurgest/internal/pkg/metrics"

	"gorm.io/gorm"
)

// Services bundles every service over one repository set.
// store may be nil, in which case document uploads report domain.ErrStorageDisabled.
type Services struct {
	Repos *repositories.Set

	Audit            *AuditService
	Auth             *AuthService
	Users            *UserService
	References       *ReferenceService
	Clients          *ClientService
	Contracts        *ContractService
	Claims           *ClaimService
	Folders          *FolderService
	Indemnifications *IndemnificationService
	Premiums         *PremiumService
	Vehicles         *VehicleService
	Documents        *DocumentService
	Reconciliation   *ReconciliationService
	History          *HistoryService
	Dashboard        *DashboardService
}

// New wires the services
func New(db *gorm.DB, cfg *config.Config, blacklist TokenBlacklist, store BlobStore, m *metrics.Metrics) *Services {
	repos := repositories.NewSet(db)
	audit := NewAuditService(repos.History, m)

	premiums := NewPremiumService(repos, audit, m)
	indemnifications := NewIndemnificationService(repos, audit, m)

	return &Services{
		Repos:            repos,
		Audit:            audit,
		Auth:             NewAuthService(repos.Users, repos.RefreshTokens, blacklist, cfg),
		Users:            NewUserService(repos.Users, repos.Roles),
		References:       NewReferenceService(repos, audit, m),
		Clients:          NewClientService(repos, audit, m),
		Contracts:        NewContractService(repos, audit, m),
		Claims:           NewClaimService(repos, audit, m),
		Folders:          NewFolderService(repos, audit, m),
		Indemnifications: indemnifications,
		Premiums:         premiums,
		Vehicles:         NewVehicleService(repos, audit, m),
		Documents:        NewDocumentService(repos, audit, m, store),
		Reconciliation:   NewReconciliationService(repos, audit, m, premiums, indemnifications),
		History:          NewHistoryService(repos.History),
		Dashboard:        NewDashboardService(db),
	}
}
