// Package commands wires and registers the onepay CLI commands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/onepay-ir/onepay-client/booking"
	"github.com/onepay-ir/onepay-client/catalog"
	"github.com/onepay-ir/onepay-client/gateway"
	"github.com/onepay-ir/onepay-client/identity"
	"github.com/onepay-ir/onepay-client/internal/config"
	"github.com/onepay-ir/onepay-client/internal/logging"
	"github.com/onepay-ir/onepay-client/reservation"
	"github.com/onepay-ir/onepay-client/session"
)

// app holds the wired client services for the lifetime of one command.
type app struct {
	cfg      config.ClientConfig
	catalog  *catalog.Service
	booking  *booking.Service
	sessions *session.Manager
	reserve  *reservation.Orchestrator
}

var (
	apiBase string
	appCtx  *app
)

func Execute() error {
	root := &cobra.Command{
		Use:           "onepay",
		Short:         "Browse onepay residential projects and reserve units",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			logging.Setup(cfg.GetLogLevel())

			base := apiBase
			if base == "" {
				base = cfg.GetAPIBase()
			}
			api := gateway.New(base)

			store, err := session.NewFileStore(cfg.GetHomeDir())
			if err != nil {
				return err
			}
			sessions, err := session.NewManager(identity.New(api), store)
			if err != nil {
				return err
			}
			if err := sessions.Initialize(cmd.Context()); err != nil {
				return err
			}

			bookingSvc := booking.New(api)
			orchestrator, err := reservation.NewOrchestrator(
				sessions,
				bookingSvc,
				&consoleNavigator{},
				reservation.WithGateway(cfg.GetDefaultGateway()),
			)
			if err != nil {
				return err
			}

			appCtx = &app{
				cfg:      cfg,
				catalog:  catalog.New(api),
				booking:  bookingSvc,
				sessions: sessions,
				reserve:  orchestrator,
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&apiBase, "api", "", "platform API base URL (default from config)")

	root.AddCommand(
		loginCmd(),
		registerCmd(),
		logoutCmd(),
		whoamiCmd(),
		projectsCmd(),
		projectCmd(),
		reserveCmd(),
		requestsCmd(),
	)
	return root.Execute()
}
