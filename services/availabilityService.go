package services

import (
	"context"

	"github.com/Maheshkadam-Delxn/eye/models"
	"github.com/Maheshkadam-Delxn/eye/repositories"
	"github.com/Maheshkadam-Delxn/eye/utils"
)

// AvailabilityService manages a doctor's weekly template of open slots.
// It only ever operates on the calling doctor's own template; the route
// gate guarantees the caller holds the doctor role.
type AvailabilityService struct {
	userRepo *repositories.UserRepository
}

func NewAvailabilityService(userRepo *repositories.UserRepository) *AvailabilityService {
	return &AvailabilityService{userRepo: userRepo}
}

func (s *AvailabilityService) Get(ctx context.Context, doctorID string) (models.Availability, error) {
	return s.userRepo.GetAvailability(ctx, doctorID)
}

// Replace validates the template and swaps it wholesale. Replacing twice
// with the same template is idempotent.
func (s *AvailabilityService) Replace(ctx context.Context, doctorID string, template models.Availability) (models.Availability, error) {
	if err := utils.ValidateAvailability(template); err != nil {
		return nil, invalid(err)
	}
	return s.userRepo.ReplaceAvailability(ctx, doctorID, template)
}
