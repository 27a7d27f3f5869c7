package main

import (
	"github.com/spf13/cobra"

	"notesponge-hq/mdsync/pkg/cli"
	"notesponge-hq/mdsync/pkg/config"
)

var exportFlags struct {
	dir    string
	output string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes once",
	Long: `Export every non-archived page as a Markdown file and every image attached
to one as a binary file.

Files with the same name in the export directory are overwritten. The export
stops at the first failure and leaves files written before it in place.

Examples:
  # Export into the directory named by sync_path
  mdsync export

  # Export into an explicit directory and print the run summary as JSON
  mdsync export --dir ./notes --output json`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFlags.dir, "dir", "d", "", "export directory (overrides sync_path and export.dir)")
	exportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "text", "output format (text, json, csv)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(exportFlags.output)
	if err != nil {
		return cli.NewCommandError("export", err)
	}

	a, err := newApp(config.GetConfig(), exportFlags.dir)
	if err != nil {
		return cli.NewCommandError("export", err)
	}
	defer a.Close()

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	result, err := a.service.Sync(ctx)
	if err != nil {
		return cli.NewCommandError("export", err)
	}

	return cli.WriteResult(cmd.OutOrStdout(), format, result)
}
