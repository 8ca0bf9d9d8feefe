package repositories

import "gorm.io/gorm"

// Set bundles every repository over one connection
type Set struct {
	Tx               *Transactor
	Users            UserRepository
	RefreshTokens    RefreshTokenRepository
	Roles            *RoleRepository
	Companies        *CompanyRepository
	InsuranceTypes   *InsuranceTypeRepository
	FolderStates     *FolderStateRepository
	Clients          *ClientRepository
	Contracts        *ContractRepository
	Folders          *FolderRepository
	Archives         *ArchiveRepository
	Claims           *ClaimRepository
	Indemnifications *IndemnificationRepository
	Premiums         *PremiumRepository
	Vehicles         *VehicleRepository
	Documents        *DocumentRepository
	BankTransactions *BankTransactionRepository
	History          *HistoryRepository
}

// NewSet creates every repository
func NewSet(db *gorm.DB) *Set {
	return &Set{
		Tx:               NewTransactor(db),
		Users:            NewUserRepository(db),
		RefreshTokens:    NewRefreshTokenRepository(db),
		Roles:            NewRoleRepository(db),
		Companies:        NewCompanyRepository(db),
		InsuranceTypes:   NewInsuranceTypeRepository(db),
		FolderStates:     NewFolderStateRepository(db),
		Clients:          NewClientRepository(db),
		Contracts:        NewContractRepository(db),
		Folders:          NewFolderRepository(db),
		Archives:         NewArchiveRepository(db),
		Claims:           NewClaimRepository(db),
		Indemnifications: NewIndemnificationRepository(db),
		Premiums:         NewPremiumRepository(db),
		Vehicles:         NewVehicleRepository(db),
		Documents:        NewDocumentRepository(db),
		BankTransactions: NewBankTransactionRepository(db),
		History:          NewHistoryRepository(db),
	}
}
