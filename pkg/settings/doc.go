// Package settings reads the NoteSponge key-value settings store.
//
// The store is the JSON file the UI persists its preferences to. The export
// consumes a single key, sync_path, naming the directory pages and images
// are written to:
//
//	{
//	  "sync_path": "/home/me/notes"
//	}
//
// The environment variable MDSYNC_SYNC_PATH takes precedence over the file.
package settings
