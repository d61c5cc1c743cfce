package cmd

import "github.com/msm-logistics/shiptrack"

var flgs = &Flags{}

type Flags struct {
	TableName             string
	TrackingCodeIndexName string
	EndpointURL           string
	StateDir              string

	ID           string
	TrackingCode string
	Force        bool
}

var flagMap = FlagMap{
	TableName: FlagSet[string]{
		Name:  "table-name",
		Usage: "The name of the table holding shipment records.",
		Value: shiptrack.DefaultTableName,
	},
	TrackingCodeIndexName: FlagSet[string]{
		Name:  "tracking-index-name",
		Usage: "The name of the tracking code index.",
		Value: shiptrack.DefaultTrackingCodeIndexName,
	},
	EndpointURL: FlagSet[string]{
		Name:  "endpoint-url",
		Usage: "Override command's default URL with the given URL.",
		Value: "",
	},
	StateDir: FlagSet[string]{
		Name:  "state-dir",
		Usage: "Directory holding the local session flag. Defaults to the per-user config dir.",
		Value: "",
	},
	ID: FlagSet[string]{
		Name:  "id",
		Usage: "Shipment record ID.",
		Value: "",
	},
	TrackingCode: FlagSet[string]{
		Name:  "tracking-id",
		Usage: "Public tracking code of the shipment.",
		Value: "",
	},
	Force: FlagSet[bool]{
		Name:  "force",
		Usage: "Skip the confirmation prompt.",
		Value: false,
	},
}

type FlagSet[T any] struct {
	Name  string
	Usage string
	Value T
}

type FlagMap struct {
	TableName             FlagSet[string]
	TrackingCodeIndexName FlagSet[string]
	EndpointURL           FlagSet[string]
	StateDir              FlagSet[string]
	ID                    FlagSet[string]
	TrackingCode          FlagSet[string]
	Force                 FlagSet[bool]
}
