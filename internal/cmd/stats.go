package cmd

import (
	"context"

	"github.com/msm-logistics/shiptrack"
	"github.com/spf13/cobra"
)

func (f CommandFactory) CreateStatsCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count shipments per delivery status",
		Long:  `Count shipments per delivery status.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, err := restoreSession(f, flgs)
			if err != nil {
				return err
			}
			if !session.IsAuthenticated() {
				return errorLoginRequired("stats")
			}
			client, _, err := f.CreateShipTrackClient(ctx, flgs)
			if err != nil {
				return err
			}
			out, err := client.CountShipmentsByStatus(ctx, &shiptrack.CountShipmentsByStatusInput{})
			if err != nil {
				return err
			}
			printMessageWithData("Shipment status totals:\n", out)
			return nil
		},
	}
}

func init() {
	c := defaultCommandFactory.CreateStatsCommand(flgs)
	setDefaultFlags(c, flgs)
	root.AddCommand(c)
}
