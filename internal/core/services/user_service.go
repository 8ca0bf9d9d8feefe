package services

import (
	"context"
	"strings"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/adapters/persistence/repositories"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/actor"
	"assurgest/internal/pkg/logger"
	"assurgest/internal/pkg/pagination"

	"github.com/google/uuid"
)

// UserService handles user and role management
type UserService struct {
	userRepo repositories.UserRepository
	roleRepo *repositories.RoleRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, roleRepo *repositories.RoleRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// UpdateUserByAdminInput represents update user input (for admin)
type UpdateUserByAdminInput struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_actif"`
}

// UpdateProfileInput represents update profile input (for self)
type UpdateProfileInput struct {
	LastName   *string `json:"nom"`
	FirstName  *string `json:"prenom"`
	Email      *string `json:"email"`
	Function   *string `json:"fonction"`
	Department *string `json:"direction"`
}

// RoleInput represents role input
type RoleInput struct {
	Name        string `json:"nom_role"`
	Description string `json:"description"`
}

// ListUsers lists all users with pagination
func (s *UserService) ListUsers(ctx context.Context, page pagination.Page) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*models.UserResponse, len(users))
	for i, user := range users {
		out[i] = user.ToResponse()
	}
	return out, total, nil
}

// GetUserByID gets a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateUserByAdmin assigns a role and activates or deactivates an account.
// An account cannot be active without a role, and admins cannot demote themselves.
func (s *UserService) UpdateUserByAdmin(ctx context.Context, id uuid.UUID, input *UpdateUserByAdminInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	self := actor.ID(ctx)
	if self != nil && *self == id && (input.Role != nil || input.IsActive != nil) {
		return nil, domain.Invalid("id_utilisateur", "cannot change your own role or status")
	}

	if input.Role != nil {
		role, err := s.roleRepo.GetByName(ctx, strings.TrimSpace(*input.Role))
		if err != nil {
			return nil, err
		}
		user.RoleID = &role.ID
		user.Role = role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if user.IsActive && user.RoleID == nil {
		return nil, domain.Invalid("role", "an active account needs a role")
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "user updated by admin", "id_utilisateur", user.ID, "role", user.RoleName(), "is_actif", user.IsActive)
	return user.ToResponse(), nil
}

// DeleteUser deletes a user other than the caller
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if self := actor.ID(ctx); self != nil && *self == id {
		return domain.Invalid("id_utilisateur", "cannot delete your own account")
	}
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// GetProfile gets own profile
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserResponse, error) {
	return s.GetUserByID(ctx, userID)
}

// UpdateProfile updates own profile
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != user.Email {
			if err := validateEmail(email); err != nil {
				return nil, err
			}
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err := ensureUnique(exists, err, domain.EntityUser, "email", email); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}
	if input.LastName != nil {
		lastName := strings.ToUpper(strings.TrimSpace(*input.LastName))
		if err := required("nom", lastName); err != nil {
			return nil, err
		}
		user.LastName = lastName
	}
	if input.FirstName != nil {
		user.FirstName = strings.ToUpper(strings.TrimSpace(*input.FirstName))
	}
	if input.Function != nil {
		user.Function = strings.TrimSpace(*input.Function)
	}
	if input.Department != nil {
		user.Department = strings.TrimSpace(*input.Department)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, duplicateAs(err, domain.EntityUser, "email", user.Email)
	}
	return user.ToResponse(), nil
}

// ListRoles lists roles
func (s *UserService) ListRoles(ctx context.Context) ([]*models.Role, error) {
	return s.roleRepo.ListAll(ctx)
}

// CreateRole creates a role with a unique name
func (s *UserService) CreateRole(ctx context.Context, input *RoleInput) (*models.Role, error) {
	name := strings.TrimSpace(input.Name)
	if err := required("nom_role", name); err != nil {
		return nil, err
	}
	exists, err := s.roleRepo.Exists(ctx, "nom_role", name)
	if err := ensureUnique(exists, err, domain.EntityRole, "nom_role", name); err != nil {
		return nil, err
	}
	role := &models.Role{ID: uuid.New(), Name: name, Description: strings.TrimSpace(input.Description)}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, duplicateAs(err, domain.EntityRole, "nom_role", name)
	}
	return role, nil
}

// UpdateRole renames or redescribes a role
func (s *UserService) UpdateRole(ctx context.Context, id uuid.UUID, input *RoleInput) (*models.Role, error) {
	name := strings.TrimSpace(input.Name)
	if err := required("nom_role", name); err != nil {
		return nil, err
	}
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	exists, err := s.roleRepo.ExistsOther(ctx, "nom_role", name, id)
	if err := ensureUnique(exists, err, domain.EntityRole, "nom_role", name); err != nil {
		return nil, err
	}
	role.Name = name
	role.Description = strings.TrimSpace(input.Description)
	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, duplicateAs(err, domain.EntityRole, "nom_role", name)
	}
	return role, nil
}

// DeleteRole deletes a role no user holds
func (s *UserService) DeleteRole(ctx context.Context, id uuid.UUID) error {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	used, err := s.roleRepo.InUse(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return domain.Invalid("id_role", "role %q is assigned to users", role.Name)
	}
	return s.roleRepo.Delete(ctx, role)
}
