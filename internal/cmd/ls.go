package cmd

import (
	"context"

	"github.com/msm-logistics/shiptrack"
	"github.com/spf13/cobra"
)

func (f CommandFactory) CreateLSCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List all shipments, newest created first",
		Long:  `List all shipments, newest created first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, err := restoreSession(f, flgs)
			if err != nil {
				return err
			}
			if !session.IsAuthenticated() {
				return errorLoginRequired("ls")
			}
			client, _, err := f.CreateShipTrackClient(ctx, flgs)
			if err != nil {
				return err
			}
			out, err := client.ListShipments(ctx, &shiptrack.ListShipmentsInput{})
			if err != nil {
				return err
			}
			var result LSResult
			for _, s := range out.Shipments {
				result.Rows = append(result.Rows, LSRow{
					ID:         s.ID,
					TrackingID: s.TrackingID,
					Status:     s.Status,
					Sender:     s.SenderName,
					Recipient:  s.RecipientName,
					CreatedAt:  s.CreatedAt,
				})
			}
			printMessageWithData("", result)
			return nil
		},
	}
}

type LSResult struct {
	Rows []LSRow `json:"shipments"`
}

type LSRow struct {
	ID         string           `json:"id"`
	TrackingID string           `json:"tracking_id"`
	Status     shiptrack.Status `json:"status"`
	Sender     string           `json:"sender"`
	Recipient  string           `json:"recipient"`
	CreatedAt  string           `json:"created_at"`
}

func init() {
	c := defaultCommandFactory.CreateLSCommand(flgs)
	setDefaultFlags(c, flgs)
	root.AddCommand(c)
}
