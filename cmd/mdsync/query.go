package main

import (
	"github.com/spf13/cobra"

	"notesponge-hq/mdsync/pkg/cli"
	"notesponge-hq/mdsync/pkg/config"
	"notesponge-hq/mdsync/pkg/notes/storage"
)

var queryFlags struct {
	params string
	mutate bool
	output string
}

var queryCmd = &cobra.Command{
	Use:   "query SQL",
	Short: "Run a statement against the notes database",
	Long: `Run one SQL statement with positional ? parameters.

Parameters are a JSON array. Strings, numbers, booleans, and null bind
directly; arrays and objects bind as their JSON text. Numbers bind as
floating point, which SQLite converts back to an integer in INTEGER columns.

Without --mutate the statement's rows print as records; with --mutate the
number of affected rows prints instead.

Values are read according to each column's declared type. Columns computed
by an expression, such as count(*), 1 + 1, or a CAST, have no declared type
and always print as null. Select table columns to see stored values.

Examples:
  mdsync query "SELECT id, title FROM pages WHERE archived_at IS NULL"
  mdsync query "SELECT * FROM pages WHERE id = ?" --params '[2]'
  mdsync query "UPDATE pages SET archived_at = ? WHERE id = ?" --params '["2026-10-15", 2]' --mutate`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVarP(&queryFlags.params, "params", "p", "", "JSON array of positional parameters")
	queryCmd.Flags().BoolVar(&queryFlags.mutate, "mutate", false, "run as a mutation and print the affected row count")
	queryCmd.Flags().StringVarP(&queryFlags.output, "output", "o", "json", "output format (text, json, csv)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(queryFlags.output)
	if err != nil {
		return cli.NewCommandError("query", err)
	}

	var params []any
	if queryFlags.params != "" {
		params, err = storage.ParseParams([]byte(queryFlags.params))
		if err != nil {
			return cli.NewCommandError("query", err)
		}
	}

	a, err := newApp(config.GetConfig(), "")
	if err != nil {
		return cli.NewCommandError("query", err)
	}
	defer a.Close()

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	if queryFlags.mutate {
		n, err := a.exec.Mutate(ctx, args[0], params)
		if err != nil {
			return cli.NewCommandError("query", err)
		}
		return cli.WriteRowsAffected(cmd.OutOrStdout(), format, n)
	}

	records, err := a.exec.Query(ctx, args[0], params)
	if err != nil {
		return cli.NewCommandError("query", err)
	}
	return cli.WriteRecords(cmd.OutOrStdout(), format, records)
}
