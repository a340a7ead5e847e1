package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/portalbd/employee-portal-go/internal/domain/profile"
	"github.com/portalbd/employee-portal-go/internal/pkg/rowstore"
	"github.com/portalbd/employee-portal-go/internal/pkg/validator"
)

type ProfileServiceImpl struct {
	store rowstore.Store
	now   func() time.Time

	// Serializes scan-then-write against the Profiles partition; without it
	// two concurrent setups for the same user both append.
	mu sync.Mutex
}

func NewProfileService(store rowstore.Store) profile.ProfileService {
	return &ProfileServiceImpl{
		store: store,
		now:   time.Now,
	}
}

// Get implements profile.ProfileService.
func (s *ProfileServiceImpl) Get(ctx context.Context, userID string) (profile.Profile, error) {
	incomplete := profile.Profile{UserID: userID, Complete: false}

	rows, err := s.store.ScanRows(ctx, profile.Partition)
	if err != nil {
		if err == rowstore.ErrPartitionNotFound {
			return incomplete, nil
		}
		return profile.Profile{}, fmt.Errorf("failed to scan profiles: %w", err)
	}

	id := strings.TrimSpace(userID)
	for _, row := range rows {
		if strings.TrimSpace(row.Cell(profile.ColID)) == id {
			return fromRow(userID, row), nil
		}
	}
	return incomplete, nil
}

// Setup implements profile.ProfileService.
func (s *ProfileServiceImpl) Setup(ctx context.Context, userID string, req profile.SetupRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.EnsurePartition(ctx, profile.Partition, profile.PartitionHeader); err != nil {
		return fmt.Errorf("failed to ensure profiles partition: %w", err)
	}

	rows, err := s.store.ScanRows(ctx, profile.Partition)
	if err != nil {
		return fmt.Errorf("failed to scan profiles: %w", err)
	}

	row := toRow(userID, req, s.now())

	id := strings.TrimSpace(userID)
	for i, existing := range rows {
		if strings.TrimSpace(existing.Cell(profile.ColID)) == id {
			if err := s.store.UpdateRow(ctx, profile.Partition, i, row); err != nil {
				return fmt.Errorf("failed to update profile: %w", err)
			}
			slog.Info("Profile updated", "user_id", userID)
			return nil
		}
	}

	if err := s.store.AppendRow(ctx, profile.Partition, row); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	slog.Info("Profile created", "user_id", userID)
	return nil
}

// orDefault mirrors how profile cells have always been read: zero or
// unparseable means "use the default", so old rows with empty allowance
// cells keep working.
func orDefault(v float64, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func fromRow(userID string, row rowstore.Row) profile.Profile {
	p := profile.Profile{
		UserID:      userID,
		Name:        row.Cell(profile.ColName),
		Company:     row.Cell(profile.ColCompany),
		CardNo:      row.Cell(profile.ColCardNo),
		Section:     row.Cell(profile.ColSection),
		Designation: row.Cell(profile.ColDesignation),
		Grade:       row.Cell(profile.ColGrade),

		BasicSalary:    validator.ToNumber(row.Cell(profile.ColBasicSalary)),
		HouseRent:      validator.ToNumber(row.Cell(profile.ColHouseRent)),
		Medical:        orDefault(validator.ToNumber(row.Cell(profile.ColMedical)), profile.DefaultMedical),
		Transport:      orDefault(validator.ToNumber(row.Cell(profile.ColTransport)), profile.DefaultTransport),
		Food:           orDefault(validator.ToNumber(row.Cell(profile.ColFood)), profile.DefaultFood),
		OTRate:         validator.ToNumber(row.Cell(profile.ColOTRate)),
		PresentBonus:   validator.ToNumber(row.Cell(profile.ColPresentBonus)),
		NightAllowance: validator.ToNumber(row.Cell(profile.ColNightAllowance)),
		TiffinBill:     validator.ToNumber(row.Cell(profile.ColTiffinBill)),

		ProfileImage: row.Cell(profile.ColProfileImage),
		Complete:     true,
	}
	p.MedicalTransport = p.Medical + p.Transport + p.Food
	return p
}

func toRow(userID string, req profile.SetupRequest, now time.Time) rowstore.Row {
	return rowstore.Row{
		strings.TrimSpace(userID),
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Company),
		strings.TrimSpace(req.CardNo),
		strings.TrimSpace(req.Section),
		strings.TrimSpace(req.Designation),
		strings.TrimSpace(req.Grade),
		validator.FormatNumber(req.BasicSalary),
		validator.FormatNumber(req.HouseRent),
		validator.FormatNumber(orDefault(req.Medical, profile.DefaultMedical)),
		validator.FormatNumber(orDefault(req.Transport, profile.DefaultTransport)),
		validator.FormatNumber(orDefault(req.Food, profile.DefaultFood)),
		validator.FormatNumber(req.OTRate),
		validator.FormatNumber(req.PresentBonus),
		validator.FormatNumber(req.NightAllowance),
		validator.FormatNumber(req.TiffinBill),
		strings.TrimSpace(req.ProfileImage),
		now.Format(time.RFC3339),
	}
}
