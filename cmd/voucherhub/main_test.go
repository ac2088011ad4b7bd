package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/voucherhub/app/repositories"
	"github.com/shashiranjanraj/voucherhub/pkg/logger"
	"github.com/shashiranjanraj/voucherhub/pkg/vouchercode"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVoucherGenerate(t *testing.T) {
	out, err := run(t, "voucher:generate", "5")
	require.NoError(t, err)

	lines := strings.Fields(out)
	require.Len(t, lines, 5)
	seen := map[string]bool{}
	for _, code := range lines {
		assert.True(t, vouchercode.Valid(code), code)
		assert.False(t, seen[code])
		seen[code] = true
	}

	out, err = run(t, "voucher:generate", "0")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "voucher:generate", "lots")
	assert.Error(t, err)
}

func TestRouteList(t *testing.T) {
	out, err := run(t, "route:list")
	require.NoError(t, err)

	for _, want := range []string{
		"/authentication/me", "/roles/list", "/roles/delete/{id}", "/dynafields/{id}", "/ai/chat", "/metrics",
	} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "roles.update")
}

func TestRepairRolesRejectsUnknownStrategy(t *testing.T) {
	t.Cleanup(func() { repairStrategy = "email" })
	_, err := run(t, "users:repair-roles", "--strategy", "coinflip")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coinflip")
}

func TestVoucherIndexConflictOnlyWarns(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.L
	logger.Use(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { logger.Use(prev) })

	warnVoucherIndex(nil)
	assert.Empty(t, buf.String())

	warnVoucherIndex(fmt.Errorf("ensure indexes on cartitemhistory: %w", repositories.ErrDuplicate))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "voucher:verify")
}
