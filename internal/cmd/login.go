package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/msm-logistics/shiptrack"
	"github.com/spf13/cobra"
)

func (f CommandFactory) CreateLoginCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate as the admin operator",
		Long:  `Authenticate as the admin operator. The session is persisted locally until logout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := f.OpenFlagStore(flgs)
			if err != nil {
				return err
			}
			session := shiptrack.NewSession(store, shiptrack.StaticCredentials{})
			if session.IsAuthenticated() {
				fmt.Println("... already logged in")
				return nil
			}
			scanner := bufio.NewScanner(f.stdin())
			username := promptLine(scanner, "Username: ")
			password := promptLine(scanner, "Password: ")
			if !session.Login(username, password) {
				return fmt.Errorf("invalid username or password")
			}
			fmt.Println("... login successful")
			return nil
		},
	}
}

func promptLine(scanner *bufio.Scanner, prompt string) string {
	fmt.Print(prompt)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func init() {
	c := defaultCommandFactory.CreateLoginCommand(flgs)
	c.Flags().StringVar(&flgs.StateDir, flagMap.StateDir.Name, flagMap.StateDir.Value, flagMap.StateDir.Usage)
	root.AddCommand(c)
}
