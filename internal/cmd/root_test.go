package cmd_test

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/msm-logistics/shiptrack"
	"github.com/msm-logistics/shiptrack/internal/cmd"
	"github.com/msm-logistics/shiptrack/internal/mock"
	"github.com/msm-logistics/shiptrack/internal/test"
	"github.com/spf13/cobra"
)

func adminOpenFlagStore(flags *cmd.Flags) (shiptrack.FlagStore, error) {
	return &mock.FlagStore{Values: map[string]string{
		shiptrack.AuthFlagKey: "true",
	}}, nil
}

func guestOpenFlagStore(flags *cmd.Flags) (shiptrack.FlagStore, error) {
	return &mock.FlagStore{}, nil
}

func TestRunRootCommand(t *testing.T) {
	type testCase struct {
		name                  string
		createShipTrackClient func(ctx context.Context, flags *cmd.Flags) (shiptrack.Client, aws.Config, error)
		command               io.Reader
		wantErr               bool
	}
	tests := []testCase{
		{
			name: "should return error when create shiptrack client failed",
			createShipTrackClient: func(ctx context.Context, flags *cmd.Flags) (shiptrack.Client, aws.Config, error) {
				return nil, aws.Config{}, test.ErrorTest
			},
			wantErr: true,
		},
		{
			name: "should return nil when send quit command",
			createShipTrackClient: func(ctx context.Context, flags *cmd.Flags) (shiptrack.Client, aws.Config, error) {
				return mock.Client{}, aws.Config{}, nil
			},
			command: strings.NewReader("quit\n"),
		},
		{
			name: "should return nil when send whitespace",
			createShipTrackClient: func(ctx context.Context, flags *cmd.Flags) (shiptrack.Client, aws.Config, error) {
				return mock.Client{}, aws.Config{}, nil
			},
			command: strings.NewReader(" \n"),
		},
		{
			name: "should return nil when send empty string",
			createShipTrackClient: func(ctx context.Context, flags *cmd.Flags) (shiptrack.Client, aws.Config, error) {
				return mock.Client{}, aws.Config{}, nil
			},
			command: strings.NewReader("\n"),
		},
		{
			name: "should return nil when send unknown command",
			createShipTrackClient: func(ctx context.Context, flags *cmd.Flags) (shiptrack.Client, aws.Config, error) {
				return mock.Client{}, aws.Config{}, nil
			},
			command: strings.NewReader("foo\n"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := cmd.CommandFactory{
				CreateShipTrackClient: tt.createShipTrackClient,
				OpenFlagStore:         guestOpenFlagStore,
				Stdin:                 tt.command,
			}
			err := f.CreateRootCommand(&cmd.Flags{}).RunE(&cobra.Command{}, []string{})
			if tt.wantErr {
				if err == nil {
					t.Error("RunE() error should not nil")
				}
				return
			}
			if err != nil {
				t.Errorf("RunE() error = %v", err)
			}
		})
	}
}

func testRunAllCommand(t *testing.T, f cmd.CommandFactory, wantErr error) {
	type testCase struct {
		name string
		cmd  *cobra.Command
	}
	tests := []testCase{
		{
			name: "track command",
			cmd:  f.CreateTrackCommand(&cmd.Flags{TrackingCode: "MSM101"}),
		},
		{
			name: "ls command",
			cmd:  f.CreateLSCommand(&cmd.Flags{}),
		},
		{
			name: "get command",
			cmd:  f.CreateGetCommand(&cmd.Flags{ID: "A-101"}),
		},
		{
			name: "delete command",
			cmd:  f.CreateDeleteCommand(&cmd.Flags{ID: "A-101", Force: true}),
		},
		{
			name: "stats command",
			cmd:  f.CreateStatsCommand(&cmd.Flags{}),
		},
		{
			name: "purge command",
			cmd:  f.CreatePurgeCommand(&cmd.Flags{}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.RunE(&cobra.Command{}, []string{}); !errors.Is(err, wantErr) {
				t.Errorf("RunE() error = %v, wantErr %v", err, wantErr)
			}
		})
	}
}

func TestRunAllCommandShouldReturnCommandFactoryError(t *testing.T) {
	testRunAllCommand(t, cmd.CommandFactory{
		CreateShipTrackClient: func(ctx context.Context, flags *cmd.Flags) (shiptrack.Client, aws.Config, error) {
			return nil, aws.Config{}, test.ErrorTest
		},
		OpenFlagStore: adminOpenFlagStore,
	}, test.ErrorTest)
}

func TestRunAllCommandShouldReturnShipTrackClientError(t *testing.T) {
	testRunAllCommand(t, cmd.CommandFactory{
		CreateShipTrackClient: func(ctx context.Context, flags *cmd.Flags) (shiptrack.Client, aws.Config, error) {
			return mock.Client{}, aws.Config{}, nil
		},
		OpenFlagStore: adminOpenFlagStore,
	}, mock.ErrNotImplemented)
}

func TestRunAllCommandShouldShipTrackClientSucceed(t *testing.T) {
	testRunAllCommand(t, cmd.CommandFactory{
		CreateShipTrackClient: func(ctx context.Context, flags *cmd.Flags) (shiptrack.Client, aws.Config, error) {
			return mock.SuccessfulMockClient, aws.Config{}, nil
		},
		OpenFlagStore: adminOpenFlagStore,
	}, nil)
}

func TestRunAdminCommandShouldRequireLogin(t *testing.T) {
	f := cmd.CommandFactory{
		CreateShipTrackClient: func(ctx context.Context, flags *cmd.Flags) (shiptrack.Client, aws.Config, error) {
			return mock.SuccessfulMockClient, aws.Config{}, nil
		},
		OpenFlagStore: guestOpenFlagStore,
	}
	type testCase struct {
		name string
		cmd  *cobra.Command
	}
	tests := []testCase{
		{
			name: "ls command",
			cmd:  f.CreateLSCommand(&cmd.Flags{}),
		},
		{
			name: "get command",
			cmd:  f.CreateGetCommand(&cmd.Flags{ID: "A-101"}),
		},
		{
			name: "delete command",
			cmd:  f.CreateDeleteCommand(&cmd.Flags{ID: "A-101", Force: true}),
		},
		{
			name: "stats command",
			cmd:  f.CreateStatsCommand(&cmd.Flags{}),
		},
		{
			name: "seed command",
			cmd:  f.CreateSeedCommand(&cmd.Flags{}),
		},
		{
			name: "purge command",
			cmd:  f.CreatePurgeCommand(&cmd.Flags{}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.RunE(&cobra.Command{}, []string{}); err == nil {
				t.Error("RunE() should fail without an admin session")
			}
		})
	}
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		expectedCommand string
		expectedParams  []string
	}{
		{"Empty Input", "", "", nil},
		{"Single Command", "Command", "command", nil},
		{"Command with Parameters", "Command param1 param2", "command", []string{"param1", "param2"}},
		{"Extra Spaces", "  Command  param1  param2  ", "command", []string{"param1", "param2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			command, params := cmd.ParseInput(tt.input)
			if command != tt.expectedCommand {
				t.Errorf("ParseInput(%q) got command %q, want %q", tt.input, command, tt.expectedCommand)
			}
			if !reflect.DeepEqual(params, tt.expectedParams) {
				t.Errorf("ParseInput(%q) got params %v, want %v", tt.input, params, tt.expectedParams)
			}
		})
	}
}
