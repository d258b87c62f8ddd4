package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"brefstats/lib/bref"
	"brefstats/lib/configutil"
	"brefstats/lib/playerstore"
	"brefstats/lib/serviceutil"
	"brefstats/lib/telemetry"
	"brefstats/services/resolver"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type Config struct {
	MongodbUrl     string `json:"mongodb_url"`
	BaseUrl        string `json:"base_url"`
	RequestDelayMs int    `json:"request_delay_ms"`
}

var (
	mongodbUrl *string
	verbose    *bool

	// set by newService when a store connects, so the run can
	// disconnect it on the way out
	openedStore *playerstore.Store
)

var rootCmd = &cobra.Command{
	Use:   "bref-cli",
	Short: "bref-cli fetches player bios and game logs from basketball-reference, optionally cached in MongoDB.",
}

func init() {
	mongodbUrl = rootCmd.PersistentFlags().String("mongodb-url", "", "MongoDB connection string, overrides config.json5. Empty runs live-only.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	closeStore(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// closeStore disconnects the store opened by newService, if any. Safe
// to call with no store open and safe to call twice.
func closeStore(ctx context.Context) {
	if openedStore == nil {
		return
	}
	if err := openedStore.Close(ctx); err != nil {
		slog.WarnContext(ctx, "failed to disconnect store", "err", err)
	}
	openedStore = nil
}

// newService wires the site client and, when a url is configured and
// reachable, the store. An unreachable store demotes the run to
// live-only instead of aborting.
func newService(ctx context.Context) resolver.Service {
	telemetry.InitSlog(*verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}
	if *mongodbUrl != "" {
		cfg.MongodbUrl = *mongodbUrl
	}

	site, err := bref.NewClient(bref.ClientOptions{
		BaseUrl:      cfg.BaseUrl,
		RequestDelay: time.Duration(cfg.RequestDelayMs) * time.Millisecond,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize site client", err)
	}

	var store resolver.Store
	if cfg.MongodbUrl != "" {
		mongoStore, err := playerstore.Open(ctx, cfg.MongodbUrl)
		if err != nil {
			slog.WarnContext(ctx, "store unavailable, running live-only", "err", err)
		} else {
			store = mongoStore
			openedStore = mongoStore
		}
	}

	return resolver.New(site, store)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

// prints every unresolved identity to stderr and exits non-zero so
// batch callers notice partial results
func exitIfUnresolved(unresolved []resolver.Unresolved) {
	if len(unresolved) == 0 {
		return
	}
	for _, u := range unresolved {
		fmt.Fprintf(os.Stderr, "unresolved %q: %v\n", u.Query, u.Err)
		if len(u.Candidates) > 0 {
			fmt.Fprintf(os.Stderr, "  did you mean: %s\n", strings.Join(u.Candidates, ", "))
		}
	}
	closeStore(context.Background())
	os.Exit(1)
}
