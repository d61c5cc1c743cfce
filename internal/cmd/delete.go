package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/msm-logistics/shiptrack"
	"github.com/spf13/cobra"
)

func (f CommandFactory) CreateDeleteCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete a shipment by ID",
		Long:  `Delete a shipment by ID. The delete is irreversible; a confirmation prompt is shown unless --force is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, err := restoreSession(f, flgs)
			if err != nil {
				return err
			}
			if !session.IsAuthenticated() {
				return errorLoginRequired("delete")
			}
			if !flgs.Force && !f.confirmDelete(flgs.ID) {
				fmt.Println("... delete aborted")
				return nil
			}
			client, _, err := f.CreateShipTrackClient(ctx, flgs)
			if err != nil {
				return err
			}
			_, err = client.DeleteShipment(ctx, &shiptrack.DeleteShipmentInput{
				ID: flgs.ID,
			})
			if err != nil {
				return err
			}
			return nil
		},
	}
}

func (f CommandFactory) confirmDelete(id string) bool {
	fmt.Printf("Are you sure you want to delete shipment %s? (y/N): ", id)
	scanner := bufio.NewScanner(f.stdin())
	if !scanner.Scan() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(scanner.Text()), "y")
}

func init() {
	c := defaultCommandFactory.CreateDeleteCommand(flgs)
	setDefaultFlags(c, flgs)
	c.Flags().StringVar(&flgs.ID, flagMap.ID.Name, flagMap.ID.Value, flagMap.ID.Usage)
	c.Flags().BoolVar(&flgs.Force, flagMap.Force.Name, flagMap.Force.Value, flagMap.Force.Usage)
	root.AddCommand(c)
}
