package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/onepay-ir/onepay-client/catalog"
	"github.com/onepay-ir/onepay-client/reservation"
)

func reserveCmd() *cobra.Command {
	var note string
	var gatewayID string
	var projectID int64
	cmd := &cobra.Command{
		Use:   "reserve [unit-id]",
		Short: "Reserve a unit and open the payment gateway",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unitID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid unit id %q", args[0])
			}

			// Local guard against obviously doomed attempts; the server stays
			// the authority on reservability.
			if projectID != 0 {
				project, err := appCtx.catalog.Project(cmd.Context(), projectID)
				if err != nil {
					return err
				}
				for _, unit := range project.Units {
					if unit.ID == unitID && unit.Status != catalog.UnitAvailable {
						fmt.Println("این واحد در حال حاضر قابل رزرو نیست.")
						return nil
					}
				}
			}

			opts := []reservation.ReserveOption{reservation.WithNote(note)}
			if gatewayID != "" {
				opts = append(opts, reservation.WithPaymentGateway(gatewayID))
			}
			flow, err := appCtx.reserve.Reserve(cmd.Context(), unitID, opts...)
			if err != nil {
				return err
			}
			if flow.RedirectedToLogin {
				return nil
			}
			fmt.Printf("کد رهگیری: %s\n", flow.Request.TrackingCode)
			return nil
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "note for the purchase request")
	cmd.Flags().StringVar(&gatewayID, "gateway", "", "payment gateway id (default from config)")
	cmd.Flags().Int64Var(&projectID, "project", 0, "project id, for checking unit availability first")
	return cmd
}
