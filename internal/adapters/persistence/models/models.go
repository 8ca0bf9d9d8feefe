package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// Role represents roles table
type Role struct {
	ID          uuid.UUID `gorm:"column:id_role;type:char(36);primaryKey" json:"id_role"`
	Name        string    `gorm:"column:nom_role;size:50;uniqueIndex;not null" json:"nom_role"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Role) TableName() string {
	return "roles"
}

// User represents utilisateurs table
type User struct {
	ID            uuid.UUID  `gorm:"column:id_utilisateur;type:char(36);primaryKey" json:"id_utilisateur"`
	LastName      string     `gorm:"column:nom;size:100;not null" json:"nom"`
	FirstName     string     `gorm:"column:prenom;size:100" json:"prenom"`
	Email         string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"size:255;not null" json:"-"`
	Function      string     `gorm:"column:fonction;size:100" json:"fonction"`
	Department    string     `gorm:"column:direction;size:100" json:"direction"`
	Justification string     `gorm:"column:justificatif;type:text" json:"justificatif"`
	IsActive      bool       `gorm:"column:is_actif;default:false" json:"is_actif"`
	RequestedAt   *time.Time `gorm:"column:date_demande" json:"date_demande"`
	RoleID        *uuid.UUID `gorm:"column:id_role;type:char(36);index" json:"id_role"`
	Role          *Role      `gorm:"foreignKey:RoleID;references:ID" json:"role,omitempty"`
	CompanyID     *uuid.UUID `gorm:"column:id_compagnie;type:char(36);index" json:"id_compagnie"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "utilisateurs"
}

// RoleName returns the role name or empty when no role is loaded
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// UserResponse DTO
type UserResponse struct {
	ID            uuid.UUID  `json:"id_utilisateur"`
	LastName      string     `json:"nom"`
	FirstName     string     `json:"prenom"`
	Email         string     `json:"email"`
	Function      string     `json:"fonction"`
	Department    string     `json:"direction"`
	Justification string     `json:"justificatif,omitempty"`
	Role          string     `json:"role"`
	IsActive      bool       `json:"is_actif"`
	RequestedAt   *time.Time `json:"date_demande,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		LastName:      u.LastName,
		FirstName:     u.FirstName,
		Email:         u.Email,
		Function:      u.Function,
		Department:    u.Department,
		Justification: u.Justification,
		Role:          u.RoleName(),
		IsActive:      u.IsActive,
		RequestedAt:   u.RequestedAt,
		CreatedAt:     u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:char(36);index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	Device    string     `gorm:"size:120" json:"appareil"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Reference Tables
// ============================================================

// Company represents compagnies table
type Company struct {
	ID        uuid.UUID `gorm:"column:id_compagnie;type:char(36);primaryKey" json:"id_compagnie"`
	Name      string    `gorm:"column:nom_compagnie;size:255;not null" json:"nom_compagnie"`
	Address   string    `gorm:"column:adresse;size:255" json:"adresse"`
	Phone     string    `gorm:"column:telephone;size:20" json:"telephone"`
	Email     string    `gorm:"size:100" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Company) TableName() string {
	return "compagnies"
}

// InsuranceType represents types_assurance table
type InsuranceType struct {
	ID          uuid.UUID `gorm:"column:id_type_assurance;type:char(36);primaryKey" json:"id_type_assurance"`
	Name        string    `gorm:"column:nom;size:100;uniqueIndex;not null" json:"nom"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (InsuranceType) TableName() string {
	return "types_assurance"
}

// FolderState represents etats_dossier table
type FolderState struct {
	ID          uuid.UUID `gorm:"column:id_etat_dossier;type:char(36);primaryKey" json:"id_etat_dossier"`
	Name        string    `gorm:"column:nom_etat;size:100;uniqueIndex;not null" json:"nom_etat"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FolderState) TableName() string {
	return "etats_dossier"
}

// ============================================================
// Insurance Tables
// ============================================================

// Client represents clients table
type Client struct {
	ID         uuid.UUID `gorm:"column:id_client;type:char(36);primaryKey" json:"id_client"`
	LastName   string    `gorm:"column:nom;size:100;not null" json:"nom"`
	FirstName  string    `gorm:"column:prenom;size:100" json:"prenom"`
	Email      string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone      string    `gorm:"column:telephone;size:20" json:"telephone"`
	NationalID string    `gorm:"column:carte_identite;size:50;uniqueIndex;not null" json:"carte_identite"`
	Address    string    `gorm:"column:adresse;size:255" json:"adresse"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

// Contract represents contrats_assurance table
type Contract struct {
	ID              uuid.UUID       `gorm:"column:id_police;type:char(36);primaryKey" json:"id_police"`
	Number          string          `gorm:"column:numero_contrat;size:100;uniqueIndex;not null" json:"numero_contrat"`
	StartDate       datatypes.Date  `gorm:"column:date_debut;not null" json:"date_debut"`
	EndDate         datatypes.Date  `gorm:"column:date_fin;not null" json:"date_fin"`
	Premium         decimal.Decimal `gorm:"column:montant_prime;type:decimal(12,2);not null" json:"montant_prime"`
	Status          string          `gorm:"column:statut;size:50;not null;index" json:"statut"`
	ClientID        uuid.UUID       `gorm:"column:id_client;type:char(36);not null;index" json:"id_client"`
	InsuranceTypeID uuid.UUID       `gorm:"column:id_type_assurance;type:char(36);not null;index" json:"id_type_assurance"`
	CompanyID       uuid.UUID       `gorm:"column:id_compagnie;type:char(36);not null;index" json:"id_compagnie"`
	ManagerID       *uuid.UUID      `gorm:"column:id_utilisateur;type:char(36);index" json:"id_utilisateur"`
	Client          *Client         `gorm:"foreignKey:ClientID;references:ID" json:"client,omitempty"`
	InsuranceType   *InsuranceType  `gorm:"foreignKey:InsuranceTypeID;references:ID" json:"type_assurance,omitempty"`
	Company         *Company        `gorm:"foreignKey:CompanyID;references:ID" json:"compagnie,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Contract) TableName() string {
	return "contrats_assurance"
}

// Folder represents dossiers table. One folder per contract.
type Folder struct {
	ID          uuid.UUID      `gorm:"column:id_dossier;type:char(36);primaryKey" json:"id_dossier"`
	Number      string         `gorm:"column:numero_dossier;size:100;uniqueIndex;not null" json:"numero_dossier"`
	Title       string         `gorm:"column:titre;size:255;not null" json:"titre"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedOn   datatypes.Date `gorm:"column:date_creation;not null" json:"date_creation"`
	ContractID  uuid.UUID      `gorm:"column:id_police;type:char(36);uniqueIndex;not null" json:"id_police"`
	StateID     *uuid.UUID     `gorm:"column:id_etat_dossier;type:char(36);index" json:"id_etat_dossier"`
	ArchiveID   *uuid.UUID     `gorm:"column:id_archive;type:char(36)" json:"id_archive"`
	Contract    *Contract      `gorm:"foreignKey:ContractID;references:ID" json:"contrat,omitempty"`
	State       *FolderState   `gorm:"foreignKey:StateID;references:ID" json:"etat,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Folder) TableName() string {
	return "dossiers"
}

// Archive represents archives table. Rows are never updated.
type Archive struct {
	ID           uuid.UUID         `gorm:"column:id_archive;type:char(36);primaryKey" json:"id_archive"`
	FolderID     uuid.UUID         `gorm:"column:id_dossier;type:char(36);index;not null" json:"id_dossier"`
	FolderNumber string            `gorm:"column:numero_dossier;size:100;index;not null" json:"numero_dossier"`
	ArchivedAt   time.Time         `gorm:"column:date_archivage;not null" json:"date_archivage"`
	Reason       string            `gorm:"column:raison_archivage;type:text" json:"raison_archivage"`
	Content      datatypes.JSONMap `gorm:"column:contenu_dossier" json:"contenu_dossier"`
	ArchivedBy   *uuid.UUID        `gorm:"column:id_utilisateur;type:char(36)" json:"id_utilisateur"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (Archive) TableName() string {
	return "archives"
}

// Claim represents sinistres table
type Claim struct {
	ID              uuid.UUID           `gorm:"column:id_sinistre;type:char(36);primaryKey" json:"id_sinistre"`
	Number          string              `gorm:"column:numero_sinistre;size:100;uniqueIndex;not null" json:"numero_sinistre"`
	DeclarationDate datatypes.Date      `gorm:"column:date_declaration;not null" json:"date_declaration"`
	IncidentDate    datatypes.Date      `gorm:"column:date_incident;not null" json:"date_incident"`
	Description     string              `gorm:"type:text" json:"description"`
	Type            string              `gorm:"column:type_sinistre;size:100" json:"type_sinistre"`
	Status          string              `gorm:"column:statut;size:50;not null;index" json:"statut"`
	EstimatedAmount decimal.NullDecimal `gorm:"column:montant_estime;type:decimal(12,2)" json:"montant_estime"`
	SettledAmount   decimal.NullDecimal `gorm:"column:montant_regle;type:decimal(12,2)" json:"montant_regle"`
	ResolutionDate  *datatypes.Date     `gorm:"column:date_resolution" json:"date_resolution"`
	ContractID      uuid.UUID           `gorm:"column:id_police;type:char(36);not null;index" json:"id_police"`
	FolderID        *uuid.UUID          `gorm:"column:id_dossier;type:char(36);index" json:"id_dossier"`
	AssigneeID      *uuid.UUID          `gorm:"column:id_utilisateur;type:char(36);index" json:"id_utilisateur"`
	Contract        *Contract           `gorm:"foreignKey:ContractID;references:ID" json:"contrat,omitempty"`
	CreatedAt       time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Claim) TableName() string {
	return "sinistres"
}

// Indemnification represents indemnisations_sinistre table
type Indemnification struct {
	ID               uuid.UUID       `gorm:"column:id_indemnisation;type:char(36);primaryKey" json:"id_indemnisation"`
	ClaimID          uuid.UUID       `gorm:"column:id_sinistre;type:char(36);not null;index" json:"id_sinistre"`
	Amount           decimal.Decimal `gorm:"column:montant;type:decimal(12,2);not null" json:"montant"`
	Description      string          `gorm:"column:description_indemnisation;type:text" json:"description_indemnisation"`
	Status           string          `gorm:"column:statut;size:50;not null;index" json:"statut"`
	PaymentDate      *datatypes.Date `gorm:"column:date_paiement" json:"date_paiement"`
	PaymentMethod    *string         `gorm:"column:mode_paiement;size:50" json:"mode_paiement"`
	PaymentReference *string         `gorm:"column:reference_paiement;size:255" json:"reference_paiement"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Indemnification) TableName() string {
	return "indemnisations_sinistre"
}

// Premium represents primes_assurance table
type Premium struct {
	ID               uuid.UUID       `gorm:"column:id_prime;type:char(36);primaryKey" json:"id_prime"`
	ContractID       uuid.UUID       `gorm:"column:id_police;type:char(36);not null;index" json:"id_police"`
	Amount           decimal.Decimal `gorm:"column:montant;type:decimal(12,2);not null" json:"montant"`
	DueDate          datatypes.Date  `gorm:"column:date_echeance;not null;index" json:"date_echeance"`
	PaymentDate      *datatypes.Date `gorm:"column:date_paiement" json:"date_paiement"`
	PaymentMethod    *string         `gorm:"column:mode_paiement;size:50" json:"mode_paiement"`
	PaymentReference *string         `gorm:"column:reference_paiement;size:255" json:"reference_paiement"`
	Status           string          `gorm:"column:statut;size:50;not null;index" json:"statut"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Premium) TableName() string {
	return "primes_assurance"
}

// Vehicle represents vehicules table, keyed by plate number
type Vehicle struct {
	Plate      string     `gorm:"column:immatriculation;size:50;primaryKey" json:"immatriculation"`
	Brand      string     `gorm:"column:marque;size:100" json:"marque"`
	Model      string     `gorm:"column:modele;size:100" json:"modele"`
	Year       int        `gorm:"column:annee" json:"annee"`
	ContractID *uuid.UUID `gorm:"column:id_police;type:char(36);index" json:"id_police"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicules"
}

// Document represents documents table. Bytes live in object storage.
type Document struct {
	ID         uuid.UUID  `gorm:"column:id_document;type:char(36);primaryKey" json:"id_document"`
	FileName   string     `gorm:"column:nom_fichier;size:255;not null" json:"nom_fichier"`
	Path       string     `gorm:"column:chemin_fichier;size:255;not null" json:"chemin_fichier"`
	MimeType   string     `gorm:"column:type_fichier;size:100;not null" json:"type_fichier"`
	Size       int64      `gorm:"column:taille" json:"taille"`
	OwnerType  string     `gorm:"column:type_entite;size:20;not null;index:idx_document_owner" json:"type_entite"`
	OwnerID    uuid.UUID  `gorm:"column:id_entite;type:char(36);not null;index:idx_document_owner" json:"id_entite"`
	UploadedBy *uuid.UUID `gorm:"column:id_utilisateur;type:char(36)" json:"id_utilisateur"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Document) TableName() string {
	return "documents"
}

// BankTransaction represents transactions_bancaires table
type BankTransaction struct {
	ID             uuid.UUID       `gorm:"column:id_transaction;type:char(36);primaryKey" json:"id_transaction"`
	Date           datatypes.Date  `gorm:"column:date_transaction;not null" json:"date_transaction"`
	Amount         decimal.Decimal `gorm:"column:montant;type:decimal(12,2);not null" json:"montant"`
	Description    string          `gorm:"type:text" json:"description"`
	Reference      string          `gorm:"column:reference;size:255;uniqueIndex;not null" json:"reference"`
	Type           string          `gorm:"column:type;size:50;not null" json:"type"`
	ReconciledWith *uuid.UUID      `gorm:"column:rapprochement_id;type:char(36);index" json:"rapprochement_id"`
	ReconciledKind *string         `gorm:"column:type_rapprochement;size:50" json:"type_rapprochement"`
	ReconciledAt   *time.Time      `gorm:"column:date_rapprochement" json:"date_rapprochement"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BankTransaction) TableName() string {
	return "transactions_bancaires"
}

// ============================================================
// History
// ============================================================

// HistoryEvent represents historique_events table. Append only.
type HistoryEvent struct {
	ID          uuid.UUID         `gorm:"column:id_hist_event;type:char(36);primaryKey" json:"id_hist_event"`
	EventType   string            `gorm:"column:type_evenement;size:100;not null;index" json:"type_evenement"`
	Description string            `gorm:"type:text" json:"description"`
	Entity      string            `gorm:"column:entite_affectee;size:100;not null;index:idx_history_entity" json:"entite_affectee"`
	EntityID    string            `gorm:"column:id_entite_affectee;size:64;not null;index:idx_history_entity" json:"id_entite_affectee"`
	Before      datatypes.JSONMap `gorm:"column:valeurs_avant" json:"valeurs_avant"`
	After       datatypes.JSONMap `gorm:"column:valeurs_apres" json:"valeurs_apres"`
	UserID      *uuid.UUID        `gorm:"column:utilisateur_id;type:char(36);index" json:"utilisateur_id"`
	OccurredAt  time.Time         `gorm:"column:date_evenement;precision:6;not null;index" json:"date_evenement"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (HistoryEvent) TableName() string {
	return "historique_events"
}

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Role{},
		&User{},
		&RefreshToken{},
		&Company{},
		&InsuranceType{},
		&FolderState{},
		&Client{},
		&Contract{},
		&Folder{},
		&Archive{},
		&Claim{},
		&Indemnification{},
		&Premium{},
		&Vehicle{},
		&Document{},
		&BankTransaction{},
		&HistoryEvent{},
	)
}
