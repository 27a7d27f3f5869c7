// Package export materializes NoteSponge pages and image attachments as
// files.
//
// # Filenames
//
// A page is written to its stored filename when the schema has a filename
// column and the row holds a value; otherwise to "{id}_{title}.md" with
// path separators and colons in the title replaced by underscores. Images
// are written to "{page_id}_{image_id}.{ext}", where ext is the stored
// file_extension or, failing that, the extension for the stored MIME type.
//
// # Failure Semantics
//
// An export stops at the first failure and reports the record it was
// processing. Files already written stay in place; a failed run can leave a
// partially populated directory. Rerunning overwrites files by name.
//
// # Triggers
//
// Service wraps an Exporter with the sync_path setting and is what the UI
// shell invokes. Scheduler runs it on a cron schedule and Watcher runs it
// after the database file changes.
package export
