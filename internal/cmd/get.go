package cmd

import (
	"context"

	"github.com/msm-logistics/shiptrack"
	"github.com/spf13/cobra"
)

func (f CommandFactory) CreateGetCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Get a shipment record by ID",
		Long:  `Get a shipment record by ID.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, err := restoreSession(f, flgs)
			if err != nil {
				return err
			}
			if !session.IsAuthenticated() {
				return errorLoginRequired("get")
			}
			client, _, err := f.CreateShipTrackClient(ctx, flgs)
			if err != nil {
				return err
			}
			retrieved, err := client.GetShipment(ctx, &shiptrack.GetShipmentInput{
				ID: flgs.ID,
			})
			if err != nil {
				return err
			}
			if retrieved.Shipment == nil {
				return &shiptrack.IDNotFoundError{}
			}
			printMessageWithData("", GetResult{
				Shipment: retrieved.Shipment,
			})
			return nil
		},
	}
}

type GetResult struct {
	Shipment *shiptrack.Shipment `json:"shipment"`
}

func init() {
	c := defaultCommandFactory.CreateGetCommand(flgs)
	setDefaultFlags(c, flgs)
	c.Flags().StringVar(&flgs.ID, flagMap.ID.Name, flagMap.ID.Value, flagMap.ID.Usage)
	root.AddCommand(c)
}
