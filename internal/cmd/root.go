package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/msm-logistics/shiptrack"
	"github.com/msm-logistics/shiptrack/internal/flagstore"
	"github.com/spf13/cobra"
)

type CommandFactory struct {
	CreateShipTrackClient func(ctx context.Context, flags *Flags) (shiptrack.Client, aws.Config, error)
	OpenFlagStore         func(flags *Flags) (shiptrack.FlagStore, error)
	Stdin                 io.Reader
}

var defaultCommandFactory = CommandFactory{
	CreateShipTrackClient: createShipTrackClient,
	OpenFlagStore:         openFlagStore,
}

var root = defaultCommandFactory.CreateRootCommand(flgs)

func setDefaultFlags(c *cobra.Command, flgs *Flags) {
	c.Flags().StringVar(&flgs.TableName, flagMap.TableName.Name, flagMap.TableName.Value, flagMap.TableName.Usage)
	c.Flags().StringVar(&flgs.EndpointURL, flagMap.EndpointURL.Name, flagMap.EndpointURL.Value, flagMap.EndpointURL.Usage)
	c.Flags().StringVar(&flgs.StateDir, flagMap.StateDir.Name, flagMap.StateDir.Value, flagMap.StateDir.Usage)
}

func (f CommandFactory) CreateRootCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:     "shiptrack",
		Short:   "ShipTrack is a tool for tracking and managing shipment records hosted in Amazon DynamoDB",
		Long:    `ShipTrack is a tool for tracking and managing shipment records hosted in Amazon DynamoDB.`,
		Version: "",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer fmt.Printf("... Admin console is ending\n\n\n")

			fmt.Println("===========================================================")
			fmt.Println(">> Welcome to ShipTrack CLI! [ADMIN CONSOLE]")
			fmt.Println("===========================================================")
			fmt.Println("for help, enter one of the following: ? or h or help")
			fmt.Println("all commands in CLIs need to be typed in lowercase")
			fmt.Println("")

			ctx := context.Background()
			client, cfg, err := f.CreateShipTrackClient(ctx, flgs)
			if err != nil {
				return fmt.Errorf("... %v\n", err)
			}
			store, err := f.OpenFlagStore(flgs)
			if err != nil {
				return fmt.Errorf("... %v\n", err)
			}

			fmt.Println("... AWS session is properly established!")

			fmt.Printf("AWSRegion: %s\n", cfg.Region)
			fmt.Printf("TableName: %s\n", flgs.TableName)
			fmt.Printf("IndexName: %s\n", flgs.TrackingCodeIndexName)
			fmt.Printf("EndpointURL: %s\n", flgs.EndpointURL)
			fmt.Println("")

			session := shiptrack.NewSession(store, shiptrack.StaticCredentials{})
			if session.IsAuthenticated() {
				fmt.Println("... restored admin session from local state")
			}

			scanner := bufio.NewScanner(f.stdin())

			c := Interactive{
				Session: session,
				Admin:   shiptrack.NewAdmin(client),
				Tracker: shiptrack.NewTracker(client),
				Client:  client,
				Scanner: scanner,
			}

			for {
				if c.Session.IsAuthenticated() {
					fmt.Print("\nadmin >> Enter command: ")
				} else {
					fmt.Print("\nguest >> Enter command: ")
				}

				scanned := scanner.Scan()
				if !scanned {
					break
				}

				input := scanner.Text()
				if input == "" {
					continue
				}

				command, params := ParseInput(input)
				switch command {
				case "":
					continue
				case "quit", "q":
					return nil
				default:
					err := c.Run(context.Background(), command, params)
					if err != nil {
						printError(err)
					}
				}
			}
			return nil
		},
	}
}

func (f CommandFactory) stdin() io.Reader {
	if f.Stdin != nil {
		return f.Stdin
	}
	return os.Stdin
}

func createShipTrackClient(ctx context.Context, flags *Flags) (shiptrack.Client, aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to load aws config: %s", err)
	}
	client, err := shiptrack.NewFromConfig(cfg,
		shiptrack.WithTableName(flags.TableName),
		shiptrack.WithTrackingCodeIndexName(flags.TrackingCodeIndexName),
		shiptrack.WithAWSBaseEndpoint(flags.EndpointURL))
	if err != nil {
		return nil, cfg, fmt.Errorf("AWS session could not be established!: %v", err)
	}
	return client, cfg, nil
}

func openFlagStore(flags *Flags) (shiptrack.FlagStore, error) {
	dir := flags.StateDir
	if dir == "" {
		var err error
		dir, err = flagstore.DefaultDir("shiptrack")
		if err != nil {
			return nil, err
		}
	}
	return flagstore.New(dir)
}

func restoreSession(f CommandFactory, flags *Flags) (*shiptrack.Session, error) {
	store, err := f.OpenFlagStore(flags)
	if err != nil {
		return nil, err
	}
	return shiptrack.NewSession(store, shiptrack.StaticCredentials{}), nil
}

func ParseInput(input string) (command string, params []string) {
	input = strings.TrimSpace(input)
	arr := strings.Fields(input)

	if len(arr) == 0 {
		return "", nil
	}

	command = strings.ToLower(arr[0])

	if len(arr) > 1 {
		params = make([]string, len(arr)-1)
		for i := 1; i < len(arr); i++ {
			params[i-1] = strings.TrimSpace(arr[i])
		}
	}
	return command, params
}

func Execute() {
	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	setDefaultFlags(root, flgs)
	root.Flags().StringVar(&flgs.TrackingCodeIndexName, flagMap.TrackingCodeIndexName.Name, flagMap.TrackingCodeIndexName.Value, flagMap.TrackingCodeIndexName.Usage)
}
