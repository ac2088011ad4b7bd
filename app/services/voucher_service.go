package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shashiranjanraj/voucherhub/app/repositories"
	"github.com/shashiranjanraj/voucherhub/pkg/logger"
	"github.com/shashiranjanraj/voucherhub/pkg/metrics"
	"github.com/shashiranjanraj/voucherhub/pkg/storage"
	"github.com/shashiranjanraj/voucherhub/pkg/vouchercode"
)

// BackfillReport summarises one backfill run.
type BackfillReport struct {
	DryRun     bool      `json:"dryRun"`
	Scanned    int       `json:"scanned"`
	Updated    int       `json:"updated"`
	Remaining  int64     `json:"remaining"`
	Codes      []string  `json:"codes"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// VerifyReport is the result of re-scanning every cart item code.
type VerifyReport struct {
	Total      int            `json:"total"`
	Missing    int            `json:"missing"`
	Duplicates map[string]int `json:"duplicates"`
	Malformed  []string       `json:"malformed"`
	CheckedAt  time.Time      `json:"checkedAt"`
}

// OK reports whether every record has a unique, well-formed code.
func (r VerifyReport) OK() bool {
	return r.Missing == 0 && len(r.Duplicates) == 0 && len(r.Malformed) == 0
}

// VoucherService runs the voucher code repair and verification passes.
type VoucherService struct {
	items repositories.CartItemStore
	gen   *vouchercode.Generator
	now   func() time.Time
}

func NewVoucherService(items repositories.CartItemStore, gen *vouchercode.Generator) *VoucherService {
	if gen == nil {
		gen = vouchercode.New()
	}
	return &VoucherService{items: items, gen: gen, now: time.Now}
}

// Backfill assigns a fresh code to every record missing one. Updates run in
// _id order and the first failure aborts the pass. With dryRun the codes are
// generated and reported but nothing is written.
func (s *VoucherService) Backfill(ctx context.Context, dryRun bool) (BackfillReport, error) {
	log := logger.WithCtx(ctx)
	report := BackfillReport{DryRun: dryRun, StartedAt: s.now().UTC(), Codes: []string{}}
	errored := 0
	defer func() {
		metrics.RecordRepair("backfill", report.Updated, 0, errored, report.StartedAt)
	}()

	missing, err := s.items.FindMissingCodes(ctx)
	if err != nil {
		return report, fmt.Errorf("backfill: scan: %w", err)
	}
	report.Scanned = len(missing)

	codes, err := s.gen.Generate(len(missing))
	if err != nil {
		return report, fmt.Errorf("backfill: generate: %w", err)
	}
	report.Codes = codes

	if !dryRun {
		for i, item := range missing {
			if err := s.items.SetVoucherCode(ctx, item.ID, codes[i]); err != nil {
				errored++
				report.FinishedAt = s.now().UTC()
				return report, fmt.Errorf("backfill: update %s: %w", item.ID.Hex(), err)
			}
			report.Updated++
		}
	}

	report.Remaining, err = s.items.CountMissingCodes(ctx)
	if err != nil {
		return report, fmt.Errorf("backfill: recount: %w", err)
	}
	report.FinishedAt = s.now().UTC()

	log.Info("voucher backfill finished",
		"dry_run", dryRun, "scanned", report.Scanned, "updated", report.Updated, "remaining", report.Remaining)
	return report, nil
}

// Verify re-reads every code and reports missing, duplicated and malformed
// values.
func (s *VoucherService) Verify(ctx context.Context) (VerifyReport, error) {
	codes, err := s.items.Codes(ctx)
	if err != nil {
		return VerifyReport{}, fmt.Errorf("verify: scan: %w", err)
	}

	report := VerifyReport{
		Total:      len(codes),
		Duplicates: map[string]int{},
		Malformed:  []string{},
		CheckedAt:  s.now().UTC(),
	}

	seen := make(map[string]int, len(codes))
	for _, code := range codes {
		if code == "" {
			report.Missing++
			continue
		}
		seen[code]++
		if seen[code] == 1 && !vouchercode.Valid(code) {
			report.Malformed = append(report.Malformed, code)
		}
	}
	for code, n := range seen {
		if n > 1 {
			report.Duplicates[code] = n
		}
	}
	sort.Strings(report.Malformed)

	logger.WithCtx(ctx).Info("voucher verify finished",
		"total", report.Total, "missing", report.Missing,
		"duplicates", len(report.Duplicates), "malformed", len(report.Malformed))
	return report, nil
}

// ExportReport writes report as indented JSON to reports/<kind>-<unix>.json
// on disk and returns the path.
func ExportReport(ctx context.Context, disk storage.Disk, kind string, at time.Time, report any) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s report: %w", kind, err)
	}

	path := fmt.Sprintf("reports/%s-%d.json", kind, at.Unix())
	if err := disk.Put(ctx, path, data); err != nil {
		return "", fmt.Errorf("write %s report: %w", kind, err)
	}
	return path, nil
}
