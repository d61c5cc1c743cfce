package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/msm-logistics/shiptrack"
)

type Interactive struct {
	Session *shiptrack.Session
	Admin   *shiptrack.Admin
	Tracker *shiptrack.Tracker
	Client  shiptrack.Client
	Scanner *bufio.Scanner
}

func (c *Interactive) Run(ctx context.Context, command string, params []string) error {
	switch command {
	case "h", "?", "help":
		return c.help(ctx, params)
	case "login":
		return c.login(ctx, params)
	case "logout":
		return c.logout(ctx, params)
	case "track":
		return c.track(ctx, params)
	case "ls":
		return c.ls(ctx, params)
	case "search":
		return c.search(ctx, params)
	case "show":
		return c.show(ctx, params)
	case "create":
		return c.create(ctx, params)
	case "edit":
		return c.edit(ctx, params)
	case "delete":
		return c.delete(ctx, params)
	case "stats":
		return c.stats(ctx, params)
	case "seed":
		return c.seed(ctx, params)
	case "purge":
		return c.purge(ctx, params)
	default:
		fmt.Println(" ... unrecognized command!")
		return nil
	}
}

func (c *Interactive) help(_ context.Context, _ []string) error {
	fmt.Println(`... this is Admin console HELP!
  > track <code>                                  [Public tracking lookup by exact tracking code; no login needed]
  > login                                         [Authenticate as the admin operator; persisted across restarts]
  > logout                                        [Clear the admin session and the persisted flag]
  > ls                                            [Reload and list all shipments, newest created first]
  > search <term>                                 [Filter the loaded list by tracking ID, sender, recipient or status]
  > show <id>                                     [Print one shipment record by ID]
  > create                                        [Create a new shipment via a field-by-field form]
  > edit <id>                                     [Edit an existing shipment; current values are the defaults]
  > delete <id>                                   [Delete a shipment by ID ... asks for confirmation first]
  > stats                                         [Count shipments per delivery status]
  > seed                                          [Insert a handful of sample shipments: MSM-101, MSM-202 and MSM-303]
  > purge                                         [It will remove all shipment records from the table]
  > quit | q                                      [Leave the console]`)
	return nil
}

func (c *Interactive) requireAdmin(command string) error {
	if !c.Session.IsAuthenticated() {
		return errorLoginRequired(command)
	}
	return nil
}

func (c *Interactive) login(_ context.Context, _ []string) error {
	if c.Session.IsAuthenticated() {
		fmt.Println("... already logged in")
		return nil
	}
	username := c.promptLine("Username: ")
	password := c.promptLine("Password: ")
	if !c.Session.Login(username, password) {
		fmt.Println("Invalid username or password.")
		return nil
	}
	fmt.Println("... login successful")
	return nil
}

func (c *Interactive) logout(_ context.Context, _ []string) error {
	c.Session.Logout()
	fmt.Println("... logged out")
	return nil
}

func (c *Interactive) track(ctx context.Context, params []string) error {
	code := strings.Join(params, " ")
	shipment, err := c.Tracker.Track(ctx, code)
	if err != nil {
		return err
	}
	printShipment(shipment)
	return nil
}

func (c *Interactive) ls(ctx context.Context, _ []string) error {
	if err := c.requireAdmin("ls"); err != nil {
		return err
	}
	if err := c.Admin.Refresh(ctx); err != nil {
		printError(err)
		fmt.Println("... showing previously loaded list")
	}
	c.printList(c.Admin.Shipments())
	return nil
}

func (c *Interactive) search(_ context.Context, params []string) error {
	if err := c.requireAdmin("search"); err != nil {
		return err
	}
	term := strings.Join(params, " ")
	c.printList(c.Admin.Search(term))
	return nil
}

func (c *Interactive) printList(shipments []*shiptrack.Shipment) {
	if len(shipments) == 0 {
		fmt.Println("No shipments found!")
		return
	}
	fmt.Printf("List of %d shipment(s):\n", len(shipments))
	for _, s := range shipments {
		printShipmentRow(s)
	}
}

func (c *Interactive) show(ctx context.Context, params []string) error {
	if err := c.requireAdmin("show"); err != nil {
		return err
	}
	if len(params) == 0 {
		return &shiptrack.IDNotProvidedError{}
	}
	out, err := c.Client.GetShipment(ctx, &shiptrack.GetShipmentInput{ID: params[0]})
	if err != nil {
		return err
	}
	if out.Shipment == nil {
		return &shiptrack.IDNotFoundError{}
	}
	printShipment(out.Shipment)
	return nil
}

func (c *Interactive) create(ctx context.Context, _ []string) error {
	if err := c.requireAdmin("create"); err != nil {
		return err
	}
	return c.editDraft(ctx, shiptrack.NewDraft(), "")
}

func (c *Interactive) edit(ctx context.Context, params []string) error {
	if err := c.requireAdmin("edit"); err != nil {
		return err
	}
	if len(params) == 0 {
		return &shiptrack.IDNotProvidedError{}
	}
	out, err := c.Client.GetShipment(ctx, &shiptrack.GetShipmentInput{ID: params[0]})
	if err != nil {
		return err
	}
	if out.Shipment == nil {
		return &shiptrack.IDNotFoundError{}
	}
	return c.editDraft(ctx, shiptrack.DraftOf(out.Shipment), out.Shipment.ID)
}

// editDraft is the Editing-Draft state: prompt, submit, and on any
// validation or store failure keep the typed values and let the
// operator retry or discard. Only a successful save or an explicit
// discard leaves the state.
func (c *Interactive) editDraft(ctx context.Context, d shiptrack.Draft, existingID string) error {
	for {
		d = c.promptDraft(d)
		if !c.confirm("Save shipment? (y/N): ") {
			fmt.Println("... draft discarded")
			return nil
		}
		saved, err := c.Admin.Save(ctx, d, existingID)
		if err == nil {
			fmt.Printf("... shipment saved, ID: %s\n", saved.ID)
			return nil
		}
		printError(err)
		if !c.confirm("Keep editing? (y/N): ") {
			fmt.Println("... draft discarded")
			return nil
		}
	}
}

func (c *Interactive) delete(ctx context.Context, params []string) error {
	if err := c.requireAdmin("delete"); err != nil {
		return err
	}
	if len(params) == 0 {
		return &shiptrack.IDNotProvidedError{}
	}
	id := params[0]
	if !c.confirm(fmt.Sprintf("Are you sure you want to delete shipment %s? (y/N): ", id)) {
		fmt.Println("... delete aborted")
		return nil
	}
	if err := c.Admin.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("... deleted shipment, ID: %s\n", id)
	return nil
}

func (c *Interactive) stats(ctx context.Context, _ []string) error {
	if err := c.requireAdmin("stats"); err != nil {
		return err
	}
	out, err := c.Client.CountShipmentsByStatus(ctx, &shiptrack.CountShipmentsByStatusInput{})
	if err != nil {
		return err
	}
	printMessageWithData("Shipment status totals:\n", out)
	return nil
}

func (c *Interactive) seed(ctx context.Context, _ []string) error {
	if err := c.requireAdmin("seed"); err != nil {
		return err
	}
	fmt.Println("Create sample shipments with tracking IDs:")
	for _, d := range seedDrafts() {
		saved, err := c.Admin.Save(ctx, d, "")
		if err != nil {
			printError(err)
			continue
		}
		fmt.Printf("* %s (ID: %s)\n", saved.TrackingID, saved.ID)
	}
	return nil
}

func (c *Interactive) purge(ctx context.Context, _ []string) error {
	if err := c.requireAdmin("purge"); err != nil {
		return err
	}
	if err := c.Admin.Refresh(ctx); err != nil {
		return err
	}
	shipments := c.Admin.Shipments()
	if len(shipments) == 0 {
		fmt.Println("Shipment table is empty ... nothing to remove!")
		return nil
	}
	if !c.confirm(fmt.Sprintf("Delete all %d shipment(s)? (y/N): ", len(shipments))) {
		fmt.Println("... purge aborted")
		return nil
	}
	fmt.Println("List of removed IDs:")
	for _, s := range shipments {
		_, err := c.Client.DeleteShipment(ctx, &shiptrack.DeleteShipmentInput{ID: s.ID})
		if err != nil {
			printError(err)
			continue
		}
		fmt.Printf("* ID: %s\n", s.ID)
	}
	return c.Admin.Refresh(ctx)
}

func (c *Interactive) promptLine(prompt string) string {
	fmt.Print(prompt)
	if !c.Scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(c.Scanner.Text())
}

func (c *Interactive) confirm(prompt string) bool {
	answer := c.promptLine(prompt)
	return strings.EqualFold(answer, "y")
}

// promptField keeps the current value when the operator just presses
// enter.
func (c *Interactive) promptField(label, current string) string {
	v := c.promptLine(fmt.Sprintf("%s [%s]: ", label, current))
	if v == "" {
		return current
	}
	return v
}

func (c *Interactive) promptDraft(d shiptrack.Draft) shiptrack.Draft {
	d.TrackingID = c.promptField("Tracking ID", d.TrackingID)
	d.Status = c.promptField(fmt.Sprintf("Status %v", shiptrack.Statuses()), d.Status)
	d.ShippingSpeed = c.promptField(fmt.Sprintf("Shipping speed %v", shiptrack.ShippingSpeeds()), d.ShippingSpeed)
	d.EstimatedDelivery = c.promptField("Estimated delivery (YYYY-MM-DD, empty for unset)", d.EstimatedDelivery)
	d.SenderName = c.promptField("Sender name", d.SenderName)
	d.SenderEmail = c.promptField("Sender email", d.SenderEmail)
	d.SenderPhone = c.promptField("Sender phone", d.SenderPhone)
	d.SenderAddress = c.promptField("Sender address", d.SenderAddress)
	d.SenderCity = c.promptField("Sender city", d.SenderCity)
	d.SenderCountry = c.promptField("Sender country", d.SenderCountry)
	d.RecipientName = c.promptField("Recipient name", d.RecipientName)
	d.RecipientEmail = c.promptField("Recipient email", d.RecipientEmail)
	d.RecipientPhone = c.promptField("Recipient phone", d.RecipientPhone)
	d.RecipientAddress = c.promptField("Recipient address", d.RecipientAddress)
	d.RecipientCity = c.promptField("Recipient city", d.RecipientCity)
	d.RecipientCountry = c.promptField("Recipient country", d.RecipientCountry)
	d.PackageDescription = c.promptField("Package description", d.PackageDescription)
	d.PackageWeight = c.promptField("Package weight (kg)", d.PackageWeight)
	d.PackageQuantity = c.promptField("Package quantity", d.PackageQuantity)
	d.Notes = c.promptField("Notes", d.Notes)
	return d
}

func seedDrafts() []shiptrack.Draft {
	base := []struct {
		code   string
		status shiptrack.Status
		speed  shiptrack.ShippingSpeed
	}{
		{"MSM-101", shiptrack.StatusProcessing, shiptrack.SpeedStandard},
		{"MSM-202", shiptrack.StatusInTransit, shiptrack.SpeedExpress},
		{"MSM-303", shiptrack.StatusDelivered, shiptrack.SpeedInternational},
	}
	drafts := make([]shiptrack.Draft, 0, len(base))
	for i, b := range base {
		d := shiptrack.NewDraft()
		d.TrackingID = b.code
		d.Status = string(b.status)
		d.ShippingSpeed = string(b.speed)
		d.SenderName = "Sample Sender"
		d.SenderEmail = "sender@example.com"
		d.SenderPhone = "+1 202 555 0100"
		d.SenderAddress = "1 Depot Way"
		d.SenderCity = "Springfield"
		d.SenderCountry = "USA"
		d.RecipientName = "Sample Recipient"
		d.RecipientEmail = "recipient@example.com"
		d.RecipientPhone = "+1 202 555 0199"
		d.RecipientAddress = "9 Harbor Rd"
		d.RecipientCity = "Portland"
		d.RecipientCountry = "USA"
		d.PackageDescription = fmt.Sprintf("Sample package %d", i+1)
		d.PackageWeight = "1.25"
		d.PackageQuantity = "1"
		drafts = append(drafts, d)
	}
	return drafts
}
