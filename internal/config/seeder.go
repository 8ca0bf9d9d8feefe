package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var roleDescriptions = map[domain.Role]string{
	domain.RoleAdmin:   "Administrateur: gestion des comptes et de toutes les données",
	domain.RoleManager: "Gestionnaire: contrats, sinistres, indemnisations et rapprochement",
	domain.RoleAgent:   "Agent: saisie des clients, contrats et déclarations",
	domain.RoleClient:  "Client: aucun accès au back-office",
}

// Seeder handles database seeding
type Seeder struct {
	db   *gorm.DB
	seed SeedConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, seed SeedConfig) *Seeder {
	return &Seeder{db: db, seed: seed}
}

// Run executes all seeders. Every step is idempotent.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedRoles(); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	if err := SeedReferenceData(s.db); err != nil {
		return fmt.Errorf("seed reference data: %w", err)
	}
	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

func (s *Seeder) seedRoles() error {
	for _, name := range domain.Roles {
		var existing models.Role
		err := s.db.Where("nom_role = ?", string(name)).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		role := models.Role{ID: uuid.New(), Name: string(name), Description: roleDescriptions[name]}
		if err := s.db.Create(&role).Error; err != nil {
			return err
		}
		log.Printf("   Created role: %s", role.Name)
	}
	return nil
}

// seedAdminUser creates the bootstrap administrator once, from SEED_ADMIN_EMAIL
// and SEED_ADMIN_PASSWORD. Without a password nothing is created.
func (s *Seeder) seedAdminUser() error {
	if s.seed.AdminPassword == "" {
		return errors.New("SEED_ADMIN_PASSWORD not set")
	}

	var admin models.Role
	if err := s.db.Where("nom_role = ?", string(domain.RoleAdmin)).First(&admin).Error; err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("id_role = ?", admin.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := password.Validate(s.seed.AdminPassword); err != nil {
		return err
	}
	hashedPassword, err := password.Hash(s.seed.AdminPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:          uuid.New(),
		LastName:    "ADMINISTRATEUR",
		Email:       strings.ToLower(strings.TrimSpace(s.seed.AdminEmail)),
		Password:    hashedPassword,
		IsActive:    true,
		RequestedAt: &now,
		RoleID:      &admin.ID,
	}
	if err := s.db.Create(user).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", user.Email)
	return nil
}
