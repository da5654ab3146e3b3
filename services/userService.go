package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Maheshkadam-Delxn/eye/models"
	"github.com/Maheshkadam-Delxn/eye/repositories"
	"github.com/Maheshkadam-Delxn/eye/utils"
)

// UserService covers admin-only staff provisioning and management.
type UserService struct {
	userRepo *repositories.UserRepository
}

func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UserPage is a paged user listing.
type UserPage struct {
	Users      []models.User `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// List returns staff accounts, excluding the calling admin.
func (s *UserService) List(ctx context.Context, callerID, search string, role models.Role, page, limit int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	// Only staff roles are listable as a filter.
	if role != "" && role != models.RoleDoctor && role != models.RoleReceptionist {
		role = ""
	}

	users, total, err := s.userRepo.List(ctx, repositories.UserListFilter{
		Search:    search,
		Role:      role,
		ExcludeID: callerID,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}
	return &UserPage{
		Users: users,
		Pagination: Pagination{
			Total: total,
			Pages: (total + int64(limit) - 1) / int64(limit),
			Page:  page,
			Limit: limit,
		},
	}, nil
}

// Create provisions a doctor or receptionist account.
func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.Role != models.RoleDoctor && user.Role != models.RoleReceptionist {
		return nil, invalidMsg("Invalid role. Must be either doctor or receptionist")
	}
	user.ID = uuid.New().String()
	user.IsActive = true
	if err := utils.ValidateNewUser(*user); err != nil {
		return nil, invalid(err)
	}

	if exists, err := s.userRepo.EmailExists(ctx, user.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, repositories.ErrEmailTaken
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UserUpdate carries the mutable account fields. Role is immutable after
// creation and deliberately absent.
type UserUpdate struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Specialization *string `json:"specialization"`
	Password       *string `json:"password"`
}

// Update mutates another user's account. Admins cannot update themselves
// through this path, and role changes are rejected upstream by omission.
func (s *UserService) Update(ctx context.Context, callerID, userID string, update UserUpdate) (*models.User, error) {
	if userID == "" {
		return nil, invalidMsg("User ID is required")
	}
	if userID == callerID {
		return nil, invalidMsg("Cannot update own account through this endpoint")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Email != nil && *update.Email != user.Email {
		if exists, err := s.userRepo.EmailExists(ctx, *update.Email); err != nil {
			return nil, err
		} else if exists {
			return nil, repositories.ErrEmailTaken
		}
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Specialization != nil {
		user.Specialization = *update.Specialization
	}
	if update.Password != nil && *update.Password != "" {
		hashed, err := utils.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetActive toggles another account's active flag.
func (s *UserService) SetActive(ctx context.Context, callerID, userID string, active bool) (*models.User, error) {
	if userID == "" {
		return nil, invalidMsg("User ID is required")
	}
	if userID == callerID {
		return nil, invalidMsg("Cannot deactivate own account")
	}
	return s.userRepo.SetActive(ctx, userID, active)
}
