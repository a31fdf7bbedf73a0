package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// RunOptions are flag values. Zero values leave the environment setting in place.
type RunOptions struct {
	SourceKind   string
	Bucket       string
	Key          string
	Region       string
	Endpoint     string
	FetchTimeout time.Duration
	LogLevel     string

	DestDriver  string
	Destination string
	LoadTimeout time.Duration
	DryRun      bool

	SampleRows int
}

func NewRunCmd(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full extract, clean, transform and load pipeline",
		Long: `Run the full pipeline. The destination table is dropped and reloaded on
every run; it is not an incremental load.`,
		RunE: func(c *cobra.Command, args []string) error {
			return runPipeline(c.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.DestDriver, "dest-driver", "", "Destination driver: sqlite, sqlserver or mongodb (env ETL_DEST_DRIVER)")
	cmd.Flags().StringVarP(&opts.Destination, "dest", "d", "", "SQLite file path, SQL Server DSN or MongoDB URI (env ETL_DEST)")
	cmd.Flags().DurationVar(&opts.LoadTimeout, "load-timeout", 0, "Timeout for the destination write (env ETL_LOAD_TIMEOUT)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Extract, clean and transform without loading")

	return cmd
}

func NewInspectCmd(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Fetch and decode the source object and print its shape",
		RunE: func(c *cobra.Command, args []string) error {
			return runInspect(c.Context(), c.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.SampleRows, "rows", "n", 5, "Number of sample rows to print")

	return cmd
}
