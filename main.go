package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/postmaster-io/postmaster-go/pkg/postmaster"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "postmaster",
	Short:   "Postmaster shipping API client - rates, shipments, tracking, validation",
	Version: version,
}

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Quote the cost to ship a package",
	RunE:  runRate,
}

var timesCmd = &cobra.Command{
	Use:   "times",
	Short: "Look up transit time between two zip codes",
	RunE:  runTimes,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a postal address",
	RunE:  runValidate,
}

var shipCmd = &cobra.Command{
	Use:   "ship",
	Short: "Create and manage shipments",
}

var shipCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new shipment",
	RunE:  runShipCreate,
}

var shipGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Retrieve a shipment by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runShipGet,
}

var shipTrackCmd = &cobra.Command{
	Use:   "track <id>",
	Short: "Track a shipment by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runShipTrack,
}

var shipVoidCmd = &cobra.Command{
	Use:   "void <id>",
	Short: "Cancel a shipment by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runShipVoid,
}

var shipListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shipments",
	RunE:  runShipList,
}

var trackCmd = &cobra.Command{
	Use:   "track <tracking-number>...",
	Short: "Track packages by carrier tracking number",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTrack,
}

var boxesCmd = &cobra.Command{
	Use:   "boxes",
	Short: "Create and list box definitions",
}

var boxesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Define a new box type",
	RunE:  runBoxesCreate,
}

var boxesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List box definitions",
	RunE:  runBoxesList,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Fetch a short-lived API token",
	RunE:  runToken,
}

var flags struct {
	carrier string
	fromZip string
	toZip   string
	weight  float64
	service string

	company string
	contact string
	line1   string
	line2   string
	line3   string
	city    string
	state   string
	zip     string
	country string

	to        string
	from      string
	packages  string
	reference string

	cursor string
	limit  int

	width  float64
	height float64
	length float64
	name   string

	useDelete bool
}

func init() {
	rateCmd.Flags().StringVar(&flags.carrier, "carrier", "", "carrier code (required)")
	rateCmd.Flags().StringVar(&flags.toZip, "to-zip", "", "destination zip (required)")
	rateCmd.Flags().Float64Var(&flags.weight, "weight", 0, "package weight (required)")
	rateCmd.Flags().StringVar(&flags.fromZip, "from-zip", "", "origin zip")
	rateCmd.Flags().StringVar(&flags.service, "service", "ground", "service level")

	timesCmd.Flags().StringVar(&flags.fromZip, "from-zip", "", "origin zip (required)")
	timesCmd.Flags().StringVar(&flags.toZip, "to-zip", "", "destination zip (required)")
	timesCmd.Flags().Float64Var(&flags.weight, "weight", 0, "package weight (required)")
	timesCmd.Flags().StringVar(&flags.carrier, "carrier", "", "carrier code")

	validateCmd.Flags().StringVar(&flags.company, "company", "", "company name")
	validateCmd.Flags().StringVar(&flags.contact, "contact", "", "contact name")
	validateCmd.Flags().StringVar(&flags.line1, "line1", "", "street line 1 (required)")
	validateCmd.Flags().StringVar(&flags.line2, "line2", "", "street line 2")
	validateCmd.Flags().StringVar(&flags.line3, "line3", "", "street line 3")
	validateCmd.Flags().StringVar(&flags.city, "city", "", "city (required)")
	validateCmd.Flags().StringVar(&flags.state, "state", "", "state (required)")
	validateCmd.Flags().StringVar(&flags.zip, "zip", "", "zip code (required)")
	validateCmd.Flags().StringVar(&flags.country, "country", "US", "country code")

	shipCreateCmd.Flags().StringVar(&flags.to, "to", "", "ship-to address as JSON (required)")
	shipCreateCmd.Flags().StringVar(&flags.packages, "packages", "", "packages as JSON (required)")
	shipCreateCmd.Flags().StringVar(&flags.service, "service", "ground", "service level")
	shipCreateCmd.Flags().StringVar(&flags.from, "from", "", "ship-from address as JSON")
	shipCreateCmd.Flags().StringVar(&flags.carrier, "carrier", "", "carrier code")
	shipCreateCmd.Flags().StringVar(&flags.reference, "reference", "", "caller reference")

	shipVoidCmd.Flags().BoolVar(&flags.useDelete, "delete", false, "use the DELETE form of the void endpoint")

	shipListCmd.Flags().StringVar(&flags.cursor, "cursor", "", "page cursor")
	shipListCmd.Flags().IntVar(&flags.limit, "limit", 0, "page size")

	boxesCreateCmd.Flags().Float64Var(&flags.width, "width", 0, "box width (required)")
	boxesCreateCmd.Flags().Float64Var(&flags.height, "height", 0, "box height (required)")
	boxesCreateCmd.Flags().Float64Var(&flags.length, "length", 0, "box length (required)")
	boxesCreateCmd.Flags().Float64Var(&flags.weight, "weight", 0, "maximum weight")
	boxesCreateCmd.Flags().StringVar(&flags.name, "name", "", "display name")

	boxesListCmd.Flags().StringVar(&flags.cursor, "cursor", "", "page cursor")
	boxesListCmd.Flags().IntVar(&flags.limit, "limit", 0, "page size")

	shipCmd.AddCommand(shipCreateCmd, shipGetCmd, shipTrackCmd, shipVoidCmd, shipListCmd)
	boxesCmd.AddCommand(boxesCreateCmd, boxesListCmd)
	rootCmd.AddCommand(rateCmd, timesCmd, validateCmd, shipCmd, trackCmd, boxesCmd, tokenCmd)
}

func runRate(cmd *cobra.Command, args []string) error {
	client, cleanup, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	raw, err := client.GetRate(cmd.Context(), postmaster.RateParams{
		Carrier: flags.carrier,
		ToZip:   flags.toZip,
		Weight:  flags.weight,
		FromZip: flags.fromZip,
		Service: flags.service,
	})
	if err != nil {
		return err
	}
	return printJSON(raw)
}

func runTimes(cmd *cobra.Command, args []string) error {
	client, cleanup, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	raw, err := client.GetTransitTime(cmd.Context(), postmaster.TransitParams{
		FromZip: flags.fromZip,
		ToZip:   flags.toZip,
		Weight:  flags.weight,
		Carrier: flags.carrier,
	})
	if err != nil {
		return err
	}
	return printJSON(raw)
}

func runValidate(cmd *cobra.Command, args []string) error {
	client, cleanup, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	addr := postmaster.NewAddress(postmaster.AddressParams{
		Company: flags.company,
		Contact: flags.contact,
		Line1:   flags.line1,
		Line2:   flags.line2,
		Line3:   flags.line3,
		City:    flags.city,
		State:   flags.state,
		ZipCode: flags.zip,
		Country: flags.country,
	})

	raw, err := client.ValidateAddress(cmd.Context(), addr)
	if err != nil {
		return err
	}
	return printJSON(raw)
}

func runShipCreate(cmd *cobra.Command, args []string) error {
	client, cleanup, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	var to map[string]any
	if err := json.Unmarshal([]byte(flags.to), &to); err != nil {
		return fmt.Errorf("parsing --to: %w", err)
	}
	var packages any
	if err := json.Unmarshal([]byte(flags.packages), &packages); err != nil {
		return fmt.Errorf("parsing --packages: %w", err)
	}
	var from map[string]any
	if flags.from != "" {
		if err := json.Unmarshal([]byte(flags.from), &from); err != nil {
			return fmt.Errorf("parsing --from: %w", err)
		}
	}

	shipment, err := client.CreateShipment(cmd.Context(), postmaster.CreateShipmentParams{
		To:        to,
		Packages:  packages,
		Service:   flags.service,
		From:      from,
		Carrier:   flags.carrier,
		Reference: flags.reference,
	})
	if err != nil {
		return err
	}
	return printJSON(shipment.Fields())
}

func runShipGet(cmd *cobra.Command, args []string) error {
	client, cleanup, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	shipment, err := client.RetrieveShipment(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(shipment.Fields())
}

func runShipTrack(cmd *cobra.Command, args []string) error {
	client, cleanup, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	tracking, err := client.TrackShipment(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(tracking.Fields())
}

func runShipVoid(cmd *cobra.Command, args []string) error {
	client, cleanup, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	if flags.useDelete {
		ok, err := client.VoidShipmentByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("void of shipment %s was not confirmed", args[0])
		}
		fmt.Println("OK")
		return nil
	}

	shipment, err := client.RetrieveShipment(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := shipment.Void(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("OK")
	return nil
}

func runShipList(cmd *cobra.Command, args []string) error {
	client, cleanup, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	page, err := client.ListShipments(cmd.Context(), postmaster.ListOptions{
		Cursor: flags.cursor,
		Limit:  flags.limit,
	})
	if err != nil {
		return err
	}
	return printJSON(page)
}

// runTrack fans out over the given tracking numbers concurrently and prints
// each result as it lands.
func runTrack(cmd *cobra.Command, args []string) error {
	client, cleanup, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(cmd.Context())

	for _, number := range args {
		number := number
		g.Go(func() error {
			tracking, err := client.TrackByReference(ctx, number)
			if err != nil {
				return fmt.Errorf("%s: %w", number, err)
			}
			mu.Lock()
			defer mu.Unlock()
			fmt.Printf("%s:\n", number)
			return printJSON(tracking.Fields())
		})
	}

	return g.Wait()
}

func runBoxesCreate(cmd *cobra.Command, args []string) error {
	client, cleanup, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	box, err := client.CreateBox(cmd.Context(), postmaster.BoxParams{
		Width:  flags.width,
		Height: flags.height,
		Length: flags.length,
		Weight: flags.weight,
		Name:   flags.name,
	})
	if err != nil {
		return err
	}
	return printJSON(box.Fields())
}

func runBoxesList(cmd *cobra.Command, args []string) error {
	client, cleanup, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	page, err := client.ListBoxes(cmd.Context(), postmaster.ListOptions{
		Cursor: flags.cursor,
		Limit:  flags.limit,
	})
	if err != nil {
		return err
	}
	return printJSON(page)
}

func runToken(cmd *cobra.Command, args []string) error {
	client, cleanup, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	raw, err := client.GetToken(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(raw)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
