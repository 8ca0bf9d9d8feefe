package domain

// Role represents user role in the system
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "gestionnaire"
	RoleAgent   Role = "agent"
	RoleClient  Role = "client"
)

// Roles lists the roles seeded at startup
var Roles = []Role{RoleAdmin, RoleManager, RoleAgent, RoleClient}

// ContractStatus is the lifecycle status of an insurance contract
type ContractStatus string

const (
	ContractActive    ContractStatus = "Actif"
	ContractExpired   ContractStatus = "Expiré"
	ContractCancelled ContractStatus = "Annulé"
	ContractPending   ContractStatus = "En attente"
	ContractRenewed   ContractStatus = "Renouvelé"
)

// ClaimStatus is the lifecycle status of a claim (sinistre)
type ClaimStatus string

const (
	ClaimDeclared    ClaimStatus = "Déclaré"
	ClaimUnderReview ClaimStatus = "En expertise"
	ClaimApproved    ClaimStatus = "Approuvé"
	ClaimRejected    ClaimStatus = "Refusé"
	ClaimClosed      ClaimStatus = "Clos"
)

// IndemnificationStatus is the status of an indemnification payment
type IndemnificationStatus string

const (
	IndemnificationPending   IndemnificationStatus = "En attente de validation"
	IndemnificationValidated IndemnificationStatus = "Validée"
	IndemnificationPaid      IndemnificationStatus = "Payée"
)

// PremiumStatus is the payment status of a premium
type PremiumStatus string

const (
	PremiumPending PremiumStatus = "En attente"
	PremiumPaid    PremiumStatus = "Payée"
	PremiumUnpaid  PremiumStatus = "Impayée"
)

// BankTransactionType tells credits from debits on imported statements
type BankTransactionType string

const (
	BankCredit BankTransactionType = "Crédit"
	BankDebit  BankTransactionType = "Débit"
)

// Entity names recorded in history events
const (
	EntityClient          = "Client"
	EntityContract        = "ContratAssurance"
	EntityClaim           = "Sinistre"
	EntityFolder          = "Dossier"
	EntityArchive         = "Archive"
	EntityIndemnification = "IndemnisationSinistre"
	EntityPremium         = "PrimeAssurance"
	EntityVehicle         = "Vehicule"
	EntityDocument        = "Document"
	EntityBankTransaction = "TransactionBancaire"
	EntityUser            = "Utilisateur"
	EntityRole            = "Role"
	EntityInsuranceType   = "TypeAssurance"
	EntityCompany         = "Compagnie"
	EntityFolderState     = "EtatDossier"
)

// Event types recorded in history events
const (
	EventCreated                 = "Création"
	EventUpdated                 = "Mise à jour"
	EventDeleted                 = "Suppression"
	EventContractRenewed         = "Renouvellement"
	EventContractCancelled       = "Résiliation"
	EventContractExpired         = "Expiration"
	EventFolderArchived          = "Archivage"
	EventIndemnificationProposed = "Proposition d'indemnisation"
	EventIndemnificationApproved = "Validation d'indemnisation"
	EventIndemnificationPaid     = "Paiement d'indemnisation"
	EventPremiumDueNotice        = "Avis d'échéance"
	EventPremiumPaid             = "Paiement de prime"
	EventPremiumOverdue          = "Prime impayée"
	EventReconciled              = "Rapprochement bancaire"
)

// Folder states seeded at startup. New folders start in FolderStateOpen.
const (
	FolderStateOpen       = "Ouvert"
	FolderStateInProgress = "En cours"
	FolderStateClosed     = "Clôturé"
)

// Document owner kinds
const (
	OwnerFolder   = "dossier"
	OwnerContract = "contrat"
	OwnerClaim    = "sinistre"
)

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
