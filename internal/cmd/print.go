package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/msm-logistics/shiptrack"
)

func printMessageWithData(message string, data any) {
	dump, err := marshalIndent(data)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("%s%s\n", message, dump)
}

func marshalIndent(v any) ([]byte, error) {
	dump, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return dump, nil
}

func printError(err any) {
	fmt.Printf("ERROR: %v\n", err)
}

var (
	statusGreen  = color.New(color.FgGreen).SprintFunc()
	statusBlue   = color.New(color.FgBlue).SprintFunc()
	statusYellow = color.New(color.FgYellow).SprintFunc()
	statusRed    = color.New(color.FgRed).SprintFunc()
)

// sprintStatus colors a status the way the dashboard badge does:
// green for delivered, blue in transit, yellow processing, red for
// on hold or missing, plain otherwise.
func sprintStatus(s shiptrack.Status) string {
	switch s {
	case shiptrack.StatusDelivered:
		return statusGreen(string(s))
	case shiptrack.StatusInTransit:
		return statusBlue(string(s))
	case shiptrack.StatusProcessing:
		return statusYellow(string(s))
	case shiptrack.StatusOnHold, shiptrack.StatusMissing:
		return statusRed(string(s))
	default:
		return string(s)
	}
}

func printShipment(s *shiptrack.Shipment) {
	fmt.Printf("Tracking ID:   %s\n", s.TrackingID)
	fmt.Printf("Status:        %s\n", sprintStatus(s.Status))
	fmt.Printf("Speed:         %s\n", s.ShippingSpeed)
	fmt.Printf("Created:       %s\n", s.CreatedAt)
	if s.EstimatedDelivery != nil {
		fmt.Printf("Est. delivery: %s\n", *s.EstimatedDelivery)
	}
	fmt.Printf("Sender:        %s, %s, %s (%s, %s)\n",
		s.SenderName, s.SenderEmail, s.SenderPhone, s.SenderCity, s.SenderCountry)
	fmt.Printf("Recipient:     %s, %s, %s (%s, %s)\n",
		s.RecipientName, s.RecipientEmail, s.RecipientPhone, s.RecipientCity, s.RecipientCountry)
	fmt.Printf("Package:       %s, %.2f kg, %d package(s)\n",
		s.PackageDescription, s.PackageWeight, s.PackageQuantity)
	if s.Notes != "" {
		fmt.Printf("Notes:         %s\n", s.Notes)
	}
}

func printShipmentRow(s *shiptrack.Shipment) {
	fmt.Printf("* %-16s %-20s %-20s %-20s %s\n",
		s.TrackingID, sprintStatus(s.Status), s.SenderName, s.RecipientName, s.ID)
}

func errorLoginRequired(command string) error {
	return fmt.Errorf("%s command requires admin login. Call `login` first", command)
}
