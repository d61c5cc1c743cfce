package cmd

import (
	"fmt"

	"github.com/msm-logistics/shiptrack"
	"github.com/spf13/cobra"
)

func (f CommandFactory) CreateLogoutCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the admin session and the persisted flag",
		Long:  `Clear the admin session and the persisted flag. Safe to run when already logged out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := f.OpenFlagStore(flgs)
			if err != nil {
				return err
			}
			session := shiptrack.NewSession(store, shiptrack.StaticCredentials{})
			session.Logout()
			fmt.Println("... logged out")
			return nil
		},
	}
}

func init() {
	c := defaultCommandFactory.CreateLogoutCommand(flgs)
	c.Flags().StringVar(&flgs.StateDir, flagMap.StateDir.Name, flagMap.StateDir.Value, flagMap.StateDir.Usage)
	root.AddCommand(c)
}
