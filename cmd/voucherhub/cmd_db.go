package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/voucherhub/app/repositories"
	"github.com/shashiranjanraj/voucherhub/config"
	"github.com/shashiranjanraj/voucherhub/database/seeders"
	"github.com/shashiranjanraj/voucherhub/pkg/database"
	"github.com/shashiranjanraj/voucherhub/pkg/logger"
)

// bootDB loads config, connects to MongoDB and ensures indexes. The returned
// release func must be deferred: it flushes the log sink and disconnects.
// voucherIndex also builds the voucher code index; read-only passes skip it.
func bootDB(ctx context.Context, voucherIndex bool) (repositories.Stores, func(), error) {
	if err := config.Load(); err != nil {
		return repositories.Stores{}, nil, err
	}
	if err := database.Connect(ctx); err != nil {
		return repositories.Stores{}, nil, err
	}

	var sink *logger.MongoHandler
	release := func() {
		if sink != nil {
			sink.Close()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Disconnect(shutdownCtx); err != nil {
			logger.Error("mongo disconnect failed", "error", err)
		}
	}

	if err := repositories.EnsureIndexes(ctx, database.DB); err != nil {
		release()
		return repositories.Stores{}, nil, err
	}
	if voucherIndex {
		warnVoucherIndex(repositories.EnsureVoucherIndex(ctx, database.DB))
	}

	if config.Bool("LOG_MONGO") {
		col := database.DB.Collection(database.Logs)
		if err := logger.EnsureLogIndex(ctx, col); err != nil {
			logger.Warn("log index not created", "error", err)
		}
		sink = logger.NewMongoHandler(col, slog.LevelInfo)
		logger.Attach(sink)
	}

	return repositories.NewMongoStores(database.DB), release, nil
}

// warnVoucherIndex logs a missing voucher code index without failing the
// command, so the repair passes still run against colliding data.
func warnVoucherIndex(err error) {
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrDuplicate):
		logger.Warn("voucher code index not built: duplicate codes present, run voucher:verify", "error", err)
	default:
		logger.Warn("voucher code index not built", "error", err)
	}
}

// voucherhub seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, release, err := bootDB(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer release()

		fmt.Println("Running seeders…")
		return seeders.RunAll(cmd.Context(), stores)
	},
}
