package cmd

import (
	"context"
	"fmt"

	"github.com/msm-logistics/shiptrack"
	"github.com/spf13/cobra"
)

func (f CommandFactory) CreateSeedCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample shipments: MSM-101, MSM-202 and MSM-303",
		Long:  `Insert sample shipments: MSM-101, MSM-202 and MSM-303.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, err := restoreSession(f, flgs)
			if err != nil {
				return err
			}
			if !session.IsAuthenticated() {
				return errorLoginRequired("seed")
			}
			client, _, err := f.CreateShipTrackClient(ctx, flgs)
			if err != nil {
				return err
			}
			admin := shiptrack.NewAdmin(client)
			fmt.Println("Create sample shipments with tracking IDs:")
			for _, d := range seedDrafts() {
				saved, saveErr := admin.Save(ctx, d, "")
				if saveErr != nil {
					printError(saveErr)
					continue
				}
				fmt.Printf("* %s (ID: %s)\n", saved.TrackingID, saved.ID)
			}
			return nil
		},
	}
}

func init() {
	c := defaultCommandFactory.CreateSeedCommand(flgs)
	setDefaultFlags(c, flgs)
	root.AddCommand(c)
}
