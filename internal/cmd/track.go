package cmd

import (
	"context"

	"github.com/msm-logistics/shiptrack"
	"github.com/spf13/cobra"
)

func (f CommandFactory) CreateTrackCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "track",
		Short: "Track a shipment by its public tracking code",
		Long:  `Track a shipment by its public tracking code. No login is required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, _, err := f.CreateShipTrackClient(ctx, flgs)
			if err != nil {
				return err
			}
			tracker := shiptrack.NewTracker(client)
			shipment, err := tracker.Track(ctx, flgs.TrackingCode)
			if err != nil {
				return err
			}
			printShipment(shipment)
			return nil
		},
	}
}

func init() {
	c := defaultCommandFactory.CreateTrackCommand(flgs)
	setDefaultFlags(c, flgs)
	c.Flags().StringVar(&flgs.TrackingCodeIndexName, flagMap.TrackingCodeIndexName.Name, flagMap.TrackingCodeIndexName.Value, flagMap.TrackingCodeIndexName.Usage)
	c.Flags().StringVar(&flgs.TrackingCode, flagMap.TrackingCode.Name, flagMap.TrackingCode.Value, flagMap.TrackingCode.Usage)
	root.AddCommand(c)
}
