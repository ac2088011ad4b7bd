package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/voucherhub/app/routes"
	"github.com/shashiranjanraj/voucherhub/config"
	"github.com/shashiranjanraj/voucherhub/internal/kernel"
	"github.com/shashiranjanraj/voucherhub/internal/server"
	"github.com/shashiranjanraj/voucherhub/pkg/cache"
	"github.com/shashiranjanraj/voucherhub/pkg/database"
	"github.com/shashiranjanraj/voucherhub/pkg/llm"
	"github.com/shashiranjanraj/voucherhub/pkg/logger"
	"github.com/shashiranjanraj/voucherhub/pkg/mail"
	"github.com/shashiranjanraj/voucherhub/pkg/router"
)

// voucherhub serve: start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		stores, release, err := bootDB(ctx, true)
		if err != nil {
			return err
		}
		defer release()

		if err := cache.Connect(ctx); err != nil {
			logger.Warn("redis unavailable, caching disabled", "error", err)
		}
		defer cache.Close()

		var completer llm.Completer
		c, err := llm.New(ctx, llm.ConfigFromEnv())
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			logger.Warn("AI_API_KEY not set, /ai/chat disabled")
		case err != nil:
			return err
		default:
			completer = llm.Throttle(c, config.AIRatePerMinute())
		}

		k := kernel.NewHTTPKernel(kernel.Deps{
			Stores:    stores,
			Cache:     cache.Default(),
			Mailer:    mail.NewSender(),
			Completer: completer,
			Ping:      database.Ping,
		})
		defer k.Close()

		return server.Start(k.Handler())
	},
}

// voucherhub route:list prints every registered route.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()
		routes.RegisterAPI(r, kernel.Controllers(kernel.Deps{}, nil))

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No named routes registered.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
