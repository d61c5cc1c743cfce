package cmd

import (
	"context"

	"github.com/msm-logistics/shiptrack"
	"github.com/spf13/cobra"
)

func (f CommandFactory) CreatePurgeCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "It will remove all shipment records from the table",
		Long:  `It will remove all shipment records from the table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, err := restoreSession(f, flgs)
			if err != nil {
				return err
			}
			if !session.IsAuthenticated() {
				return errorLoginRequired("purge")
			}
			client, _, err := f.CreateShipTrackClient(ctx, flgs)
			if err != nil {
				return err
			}
			out, err := client.ListShipments(ctx, &shiptrack.ListShipmentsInput{})
			if err != nil {
				return err
			}
			var result PurgeResult
			if len(out.Shipments) == 0 {
				printMessageWithData("", result)
				return nil
			}
			for _, s := range out.Shipments {
				_, delErr := client.DeleteShipment(ctx, &shiptrack.DeleteShipmentInput{
					ID: s.ID,
				})
				if delErr != nil {
					result.Failures = append(result.Failures, Failure{
						ID:    s.ID,
						Error: delErr,
					})
					continue
				}
				result.Successes = append(result.Successes, s.ID)
			}
			printMessageWithData("", result)
			return nil
		},
	}
}

type PurgeResult struct {
	Successes []string  `json:"successes"`
	Failures  []Failure `json:"failures"`
}

type Failure struct {
	ID    string
	Error error
}

func init() {
	c := defaultCommandFactory.CreatePurgeCommand(flgs)
	setDefaultFlags(c, flgs)
	root.AddCommand(c)
}
