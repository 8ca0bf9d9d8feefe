package models

import (
	"time"

	"assurgest/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Auditable is implemented by every entity whose mutations are recorded in
// historique_events. Snapshot values are normalized to strings, bools, ints
// and nil so before/after maps compare by value. Timestamps are left out.
type Auditable interface {
	AuditEntity() string
	AuditKey() string
	Snapshot() map[string]any
}

const dateLayout = "2006-01-02"

// FormatDate renders a DATE column value
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(dateLayout)
}

// NewDate truncates t to its calendar day
func NewDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a YYYY-MM-DD value
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// DateBefore compares two DATE values by calendar day
func DateBefore(a, b datatypes.Date) bool {
	return FormatDate(a) < FormatDate(b)
}

func optDate(d *datatypes.Date) any {
	if d == nil {
		return nil
	}
	return FormatDate(*d)
}

func optUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func optString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func optDecimal(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.String()
}

func (c *Client) AuditEntity() string { return domain.EntityClient }
func (c *Client) AuditKey() string    { return c.ID.String() }

func (c *Client) Snapshot() map[string]any {
	return map[string]any{
		"id_client":      c.ID.String(),
		"nom":            c.LastName,
		"prenom":         c.FirstName,
		"email":          c.Email,
		"telephone":      c.Phone,
		"carte_identite": c.NationalID,
		"adresse":        c.Address,
	}
}

func (c *Contract) AuditEntity() string { return domain.EntityContract }
func (c *Contract) AuditKey() string    { return c.ID.String() }

func (c *Contract) Snapshot() map[string]any {
	return map[string]any{
		"id_police":         c.ID.String(),
		"numero_contrat":    c.Number,
		"date_debut":        FormatDate(c.StartDate),
		"date_fin":          FormatDate(c.EndDate),
		"montant_prime":     c.Premium.String(),
		"statut":            c.Status,
		"id_client":         c.ClientID.String(),
		"id_type_assurance": c.InsuranceTypeID.String(),
		"id_compagnie":      c.CompanyID.String(),
		"id_utilisateur":    optUUID(c.ManagerID),
	}
}

func (f *Folder) AuditEntity() string { return domain.EntityFolder }
func (f *Folder) AuditKey() string    { return f.ID.String() }

func (f *Folder) Snapshot() map[string]any {
	return map[string]any{
		"id_dossier":      f.ID.String(),
		"numero_dossier":  f.Number,
		"titre":           f.Title,
		"description":     f.Description,
		"date_creation":   FormatDate(f.CreatedOn),
		"id_police":       f.ContractID.String(),
		"id_etat_dossier": optUUID(f.StateID),
		"id_archive":      optUUID(f.ArchiveID),
	}
}

func (c *Claim) AuditEntity() string { return domain.EntityClaim }
func (c *Claim) AuditKey() string    { return c.ID.String() }

func (c *Claim) Snapshot() map[string]any {
	return map[string]any{
		"id_sinistre":      c.ID.String(),
		"numero_sinistre":  c.Number,
		"date_declaration": FormatDate(c.DeclarationDate),
		"date_incident":    FormatDate(c.IncidentDate),
		"description":      c.Description,
		"type_sinistre":    c.Type,
		"statut":           c.Status,
		"montant_estime":   optDecimal(c.EstimatedAmount),
		"montant_regle":    optDecimal(c.SettledAmount),
		"date_resolution":  optDate(c.ResolutionDate),
		"id_police":        c.ContractID.String(),
		"id_dossier":       optUUID(c.FolderID),
		"id_utilisateur":   optUUID(c.AssigneeID),
	}
}

func (i *Indemnification) AuditEntity() string { return domain.EntityIndemnification }
func (i *Indemnification) AuditKey() string    { return i.ID.String() }

func (i *Indemnification) Snapshot() map[string]any {
	return map[string]any{
		"id_indemnisation":          i.ID.String(),
		"id_sinistre":               i.ClaimID.String(),
		"montant":                   i.Amount.String(),
		"description_indemnisation": i.Description,
		"statut":                    i.Status,
		"date_paiement":             optDate(i.PaymentDate),
		"mode_paiement":             optString(i.PaymentMethod),
		"reference_paiement":        optString(i.PaymentReference),
	}
}

func (p *Premium) AuditEntity() string { return domain.EntityPremium }
func (p *Premium) AuditKey() string    { return p.ID.String() }

func (p *Premium) Snapshot() map[string]any {
	return map[string]any{
		"id_prime":           p.ID.String(),
		"id_police":          p.ContractID.String(),
		"montant":            p.Amount.String(),
		"date_echeance":      FormatDate(p.DueDate),
		"date_paiement":      optDate(p.PaymentDate),
		"mode_paiement":      optString(p.PaymentMethod),
		"reference_paiement": optString(p.PaymentReference),
		"statut":             p.Status,
	}
}

func (v *Vehicle) AuditEntity() string { return domain.EntityVehicle }
func (v *Vehicle) AuditKey() string    { return v.Plate }

func (v *Vehicle) Snapshot() map[string]any {
	return map[string]any{
		"immatriculation": v.Plate,
		"marque":          v.Brand,
		"modele":          v.Model,
		"annee":           v.Year,
		"id_police":       optUUID(v.ContractID),
	}
}

func (t *BankTransaction) AuditEntity() string { return domain.EntityBankTransaction }
func (t *BankTransaction) AuditKey() string    { return t.ID.String() }

func (t *BankTransaction) Snapshot() map[string]any {
	var reconciledAt any
	if t.ReconciledAt != nil {
		reconciledAt = t.ReconciledAt.UTC().Format(time.RFC3339)
	}
	return map[string]any{
		"id_transaction":     t.ID.String(),
		"date_transaction":   FormatDate(t.Date),
		"montant":            t.Amount.String(),
		"description":        t.Description,
		"reference":          t.Reference,
		"type":               t.Type,
		"rapprochement_id":   optUUID(t.ReconciledWith),
		"type_rapprochement": optString(t.ReconciledKind),
		"date_rapprochement": reconciledAt,
	}
}

func (d *Document) AuditEntity() string { return domain.EntityDocument }
func (d *Document) AuditKey() string    { return d.ID.String() }

func (d *Document) Snapshot() map[string]any {
	return map[string]any{
		"id_document":    d.ID.String(),
		"nom_fichier":    d.FileName,
		"chemin_fichier": d.Path,
		"type_fichier":   d.MimeType,
		"taille":         d.Size,
		"type_entite":    d.OwnerType,
		"id_entite":      d.OwnerID.String(),
	}
}
