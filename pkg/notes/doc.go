// Package notes holds the domain types and error taxonomy shared by the
// NoteSponge storage and export layers.
//
// # Architecture
//
// The storage boundary consists of four layers:
//
//  1. Value Model (package value) - portable representation of one SQL cell
//  2. Storage (package storage) - row marshaling, parameter binding, and the
//     query executor over an owned SQLite handle
//  3. Export (package export) - filename policy and the export orchestrator
//     that writes pages and images into a directory
//  4. Settings (package settings) - the key-value store holding sync_path
//
// # Export Flow
//
//	Sync Service → Settings (sync_path)
//	     ↓
//	Exporter → Executor → Row Marshaler → Value
//	     ↓
//	Filename Policy
//	     ↓
//	Filesystem (one .md per page, one binary file per image)
//
// # Errors
//
// Every failure surfaces as one of four typed errors so callers can branch
// with errors.As:
//
//   - ConfigurationError: sync_path missing or not a string
//   - IOError: directory or file creation and writes
//   - DatabaseError: connection, bind, and execution failures
//   - DecodeError: column type mismatches and invalid base64 payloads
//
// The export is fail-fast and non-atomic: the first error aborts the run and
// files written before it remain on disk.
package notes
