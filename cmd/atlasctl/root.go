package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/atlasiq/atlasiq-gateway/internal/application/service"
	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/api"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/cache"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/config"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/db"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/logger"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/session"
	"github.com/spf13/cobra"
)

var (
	apiURL   string
	verbose  bool
	output   = outputTable
	rt       *runtime
	openFunc = openRuntime
)

// runtime is the wired client stack shared by every command
type runtime struct {
	auth      *service.AuthService
	macro     *service.MacroService
	dashboard *service.DashboardService
	session   *session.Session
	close     func() error
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "atlasctl",
	Short: "Terminal client for the AtlasIQ analytics API",
	Long: `atlasctl logs in to the AtlasIQ backend, keeps the session between runs
and prints macro indicators, the dashboard summary and company views.

Configuration is read from the environment (and an optional .env file):
  ATLAS_API_BASE_URL  backend base url
  TOKEN_STORE         badger (default) or redis`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := checkOutput(output); err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
		}

		rt, err = openFunc(cmd.Context(), cfg)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if rt == nil || rt.close == nil {
			return nil
		}
		return rt.close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base url (overrides ATLAS_API_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log backend calls to stderr")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json or yaml")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(macroCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(companyCmd)
}

func openRuntime(ctx context.Context, cfg *config.Config) (*runtime, error) {
	level := logger.WarnLevel
	if verbose {
		level = logger.DebugLevel
	}
	log := logger.NewJSONLogger(os.Stderr, level)

	store, closeStore, err := db.OpenTokenStore(ctx, cfg.TokenStore, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}

	sess := session.New(store, log)
	if err := sess.Load(ctx); err != nil {
		log.Warn("Stored credentials unavailable", map[string]interface{}{"error": err.Error()})
	}

	client := api.NewClient(cfg.API.BaseURL, sess, &http.Client{Timeout: cfg.API.Timeout}, log)
	return newRuntime(client, sess, cfg, log, closeStore), nil
}

// newRuntime wires services around a backend client
func newRuntime(client *api.Client, sess *session.Session, cfg *config.Config, log logger.Logger, closeFn func() error) *runtime {
	macro := service.NewMacroService(client, cache.NewSeriesCache(cfg.Cache.TTL), log).
		WithDefaults(entity.MacroQuery{
			Countries: cfg.DashboardCountries(),
			StartYear: cfg.Dashboard.StartYear,
			EndYear:   cfg.Dashboard.EndYear,
		})
	sess.OnReset(macro.ClearCache)

	return &runtime{
		auth:      service.NewAuthService(client, sess, log),
		macro:     macro,
		dashboard: service.NewDashboardService(client, macro, log),
		session:   sess,
		close:     closeFn,
	}
}
