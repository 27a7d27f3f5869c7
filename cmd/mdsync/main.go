// mdsync exports NoteSponge notes to a directory of Markdown and image files.
//
// It reads the NoteSponge SQLite database, writes every non-archived page as
// a Markdown file and every image attached to one as a binary file, and can
// keep the export current as the database changes.
//
// Usage:
//
//	# Export once into the directory named by sync_path in settings.json
//	mdsync export
//
//	# Export once into an explicit directory
//	mdsync export --dir ~/notes
//
//	# Keep exporting on database changes and every 15 minutes, with metrics
//	mdsync watch --schedule "*/15 * * * *" --metrics-address 127.0.0.1:9464
//
//	# Run an ad-hoc statement against the database
//	mdsync query "SELECT id, title FROM pages WHERE id > ?" --params '[10]'
//
//	# Show version information
//	mdsync version
package main

func main() {
	Execute()
}
