// Package cli handles the command-line interface logic
// using the Cobra library.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "review-etl",
		Short: "review-etl - batch ETL for product review datasets",
		Long: `review-etl fetches a Parquet dataset of product reviews from object storage,
cleans and normalizes it, derives review_month and a normalized review_body,
and replaces the contents of the amazon_reviews table in the destination database.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	opts := &RunOptions{}
	rootCmd.PersistentFlags().StringVar(&opts.SourceKind, "source", "", "Source store: s3, gcs or file (env ETL_SOURCE_KIND)")
	rootCmd.PersistentFlags().StringVar(&opts.Bucket, "bucket", "", "Source bucket, or directory for the file source (env ETL_SOURCE_BUCKET)")
	rootCmd.PersistentFlags().StringVar(&opts.Key, "key", "", "Source object key (env ETL_SOURCE_KEY)")
	rootCmd.PersistentFlags().StringVar(&opts.Region, "region", "", "S3 region (env ETL_S3_REGION)")
	rootCmd.PersistentFlags().StringVar(&opts.Endpoint, "endpoint", "", "S3-compatible endpoint URL (env ETL_S3_ENDPOINT)")
	rootCmd.PersistentFlags().DurationVar(&opts.FetchTimeout, "fetch-timeout", 0, "Timeout for the source download (env ETL_FETCH_TIMEOUT)")
	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level (env ETL_LOG_LEVEL)")

	rootCmd.AddCommand(NewRunCmd(opts), NewInspectCmd(opts))

	return rootCmd
}
