/*
Package cli provides command-line interface utilities for the mdsync command.

Output Formatting:

Query results and export summaries print as an aligned table, indented
JSON, or CSV:

	format, err := cli.ParseOutputFormat(flagValue)
	if err != nil {
		return err
	}
	if err := cli.WriteRecords(os.Stdout, format, records); err != nil {
		return err
	}

Blob values print as standard base64 in every format.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
