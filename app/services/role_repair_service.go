package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shashiranjanraj/voucherhub/app/models"
	"github.com/shashiranjanraj/voucherhub/app/repositories"
	"github.com/shashiranjanraj/voucherhub/pkg/logger"
	"github.com/shashiranjanraj/voucherhub/pkg/metrics"
)

// Strategy decides which role a user needing repair receives.
type Strategy string

const (
	// StrategyEmail makes a user admin when the email mentions "admin".
	StrategyEmail Strategy = "email"
	// StrategyLegacy maps the previous, now invalid, role title.
	StrategyLegacy Strategy = "legacy"
)

var legacyAdminTitles = map[string]bool{
	"administrator": true,
	"superadmin":    true,
	"super_admin":   true,
	"owner":         true,
	"manager":       true,
	"staff":         true,
}

// ParseStrategy accepts "email" (also the empty default) or "legacy".
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyEmail:
		return StrategyEmail, nil
	case StrategyLegacy:
		return StrategyLegacy, nil
	}
	return "", fmt.Errorf("unknown role repair strategy %q (want email or legacy)", s)
}

// Resolve returns the role u should hold under strategy.
func (st Strategy) Resolve(u models.User) string {
	switch st {
	case StrategyLegacy:
		if legacyAdminTitles[strings.ToLower(strings.TrimSpace(u.Role))] {
			return models.RoleAdmin
		}
	default:
		if strings.Contains(strings.ToLower(u.Email), "admin") {
			return models.RoleAdmin
		}
	}
	return models.RoleCustomer
}

// RoleChange records one repaired user.
type RoleChange struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// RepairReport summarises one role repair run.
type RepairReport struct {
	Strategy Strategy     `json:"strategy"`
	Scanned  int          `json:"scanned"`
	Updated  int          `json:"updated"`
	Skipped  int          `json:"skipped"`
	Errored  int          `json:"errored"`
	Changes  []RoleChange `json:"changes"`
}

type RoleRepairService struct {
	users repositories.UserStore
}

func NewRoleRepairService(users repositories.UserStore) *RoleRepairService {
	return &RoleRepairService{users: users}
}

// Repair fixes every user whose role is missing or outside {customer,
// admin}. A failed update is counted and logged and the scan continues.
func (s *RoleRepairService) Repair(ctx context.Context, strategy Strategy) (RepairReport, error) {
	log := logger.WithCtx(ctx)
	start := time.Now()
	report := RepairReport{Strategy: strategy, Changes: []RoleChange{}}

	err := s.users.Each(ctx, func(u models.User) error {
		report.Scanned++
		if models.ValidRole(u.Role) {
			report.Skipped++
			return nil
		}

		role := strategy.Resolve(u)
		if err := s.users.SetRole(ctx, u.ID, role); err != nil {
			report.Errored++
			log.Error("role repair failed", "user_id", u.ID.Hex(), "email", u.Email, "error", err)
			return nil
		}

		report.Updated++
		report.Changes = append(report.Changes, RoleChange{
			UserID: u.ID.Hex(), Email: u.Email, From: u.Role, To: role,
		})
		return nil
	})
	metrics.RecordRepair("roles", report.Updated, report.Skipped, report.Errored, start)
	if err != nil {
		return report, fmt.Errorf("role repair: scan: %w", err)
	}

	log.Info("role repair finished", "strategy", strategy,
		"updated", report.Updated, "skipped", report.Skipped, "errored", report.Errored)
	return report, nil
}
