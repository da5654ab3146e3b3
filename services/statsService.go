package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Maheshkadam-Delxn/eye/cache"
	"github.com/Maheshkadam-Delxn/eye/models"
	"github.com/Maheshkadam-Delxn/eye/repositories"
)

const (
	statsCacheKey    = "admin_stats_cache"
	statsCacheExpiry = time.Minute
)

// Stats is the admin dashboard aggregate.
type Stats struct {
	Doctors           int64 `json:"doctors"`
	Receptionists     int64 `json:"receptionists"`
	Appointments      int64 `json:"appointments"`
	TodayAppointments int64 `json:"todayAppointments"`
}

type StatsService struct {
	userRepo        *repositories.UserRepository
	appointmentRepo *repositories.AppointmentRepository
	cache           *cache.Cache
}

func NewStatsService(userRepo *repositories.UserRepository, appointmentRepo *repositories.AppointmentRepository, c *cache.Cache) *StatsService {
	return &StatsService{userRepo: userRepo, appointmentRepo: appointmentRepo, cache: c}
}

// Get returns the dashboard counts, served from a short-lived cache.
func (s *StatsService) Get(ctx context.Context) (*Stats, error) {
	if cached, err := s.cache.Get(ctx, statsCacheKey); err == nil && cached != "" {
		var stats Stats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	doctors, err := s.userRepo.CountByRole(ctx, models.RoleDoctor)
	if err != nil {
		return nil, err
	}
	receptionists, err := s.userRepo.CountByRole(ctx, models.RoleReceptionist)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointmentRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	today, err := s.appointmentRepo.CountOnDate(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Doctors:           doctors,
		Receptionists:     receptionists,
		Appointments:      appointments,
		TodayAppointments: today,
	}

	if raw, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, statsCacheKey, raw, statsCacheExpiry); err != nil {
			log.Printf("Failed to cache admin stats: %v", err)
		}
	}
	return stats, nil
}
