package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"notesponge-hq/mdsync/pkg/notes"
	"notesponge-hq/mdsync/pkg/notes/storage"
	"notesponge-hq/mdsync/pkg/notes/value"
)

const (
	pagesDDL = `CREATE TABLE pages (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		filename TEXT,
		markdown_text TEXT NOT NULL,
		archived_at TEXT
	)`

	legacyPagesDDL = `CREATE TABLE pages (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		markdown_text TEXT NOT NULL,
		archived_at TEXT
	)`

	imagesDDL = `CREATE TABLE image_attachments (
		id INTEGER PRIMARY KEY,
		page_id INTEGER REFERENCES pages(id),
		data TEXT NOT NULL,
		mime_type TEXT,
		file_extension TEXT
	)`

	legacyImagesDDL = `CREATE TABLE image_attachments (
		id INTEGER PRIMARY KEY,
		page_id INTEGER REFERENCES pages(id),
		data TEXT NOT NULL,
		mime_type TEXT
	)`

	blobImagesDDL = `CREATE TABLE image_attachments (
		id INTEGER PRIMARY KEY,
		page_id INTEGER REFERENCES pages(id),
		data BLOB NOT NULL,
		file_extension TEXT
	)`
)

// pngBytes is a PNG signature followed by bytes that exercise every base64
// padding case.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0xff, 0x10}

// newTestExecutor opens a database in a temporary directory with the given
// schema and seed statements.
func newTestExecutor(t *testing.T, stmts ...string) *storage.Executor {
	t.Helper()

	db, err := storage.Open(&storage.Config{
		Driver:       storage.DriverModernc,
		Path:         filepath.Join(t.TempDir(), "notesponge.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
		ForeignKeys:  true,
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	exec := storage.NewExecutor(db, nil)
	for _, stmt := range stmts {
		if _, err := exec.Mutate(context.Background(), stmt, nil); err != nil {
			t.Fatalf("Failed to run %q: %v", stmt, err)
		}
	}
	return exec
}

func mustExec(t *testing.T, exec *storage.Executor, query string, params ...any) {
	t.Helper()
	if _, err := exec.Mutate(context.Background(), query, params); err != nil {
		t.Fatalf("Failed to run %q: %v", query, err)
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return data
}

func TestExporter_Export_Empty(t *testing.T) {
	exec := newTestExecutor(t, pagesDDL, imagesDDL)
	dir := filepath.Join(t.TempDir(), "nested", "export")

	result, err := NewExporter(exec, nil).Export(context.Background(), dir)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("export directory not created: %v", err)
	}
	if names := listDir(t, dir); len(names) != 0 {
		t.Errorf("directory contains %v, want nothing", names)
	}
	if result.Pages != 0 || result.Images != 0 || len(result.Files) != 0 {
		t.Errorf("Result = %+v, want zero counts", result)
	}
	if result.RunID == "" {
		t.Error("Result.RunID is empty")
	}
}

func TestExporter_Export_ExistingDirectory(t *testing.T) {
	exec := newTestExecutor(t, pagesDDL, imagesDDL)
	dir := t.TempDir()

	if _, err := NewExporter(exec, nil).Export(context.Background(), dir); err != nil {
		t.Fatalf("first Export() error = %v", err)
	}
	if _, err := NewExporter(exec, nil).Export(context.Background(), dir); err != nil {
		t.Fatalf("second Export() error = %v", err)
	}
}

func TestExporter_Export_PagesAndImages(t *testing.T) {
	exec := newTestExecutor(t, pagesDDL, imagesDDL)
	mustExec(t, exec, "INSERT INTO pages (id, title, markdown_text) VALUES (?, ?, ?)", 1, "Groceries", "# Groceries\n- milk")
	mustExec(t, exec, "INSERT INTO pages (id, title, markdown_text) VALUES (?, ?, ?)", 2, "Groceries", "# Other list")
	mustExec(t, exec, "INSERT INTO pages (id, title, markdown_text, archived_at) VALUES (?, ?, ?, ?)", 3, "Old", "gone", "2024-01-01T00:00:00Z")
	mustExec(t, exec, "INSERT INTO image_attachments (id, page_id, data, mime_type) VALUES (?, ?, ?, ?)", 10, 1, value.EncodeBase64(pngBytes), "image/png")
	mustExec(t, exec, "INSERT INTO image_attachments (id, page_id, data, mime_type) VALUES (?, ?, ?, ?)", 11, 3, value.EncodeBase64([]byte("archived")), "image/png")

	dir := t.TempDir()
	result, err := NewExporter(exec, nil).Export(context.Background(), dir)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	want := []string{"1_10.png", "1_Groceries.md", "2_Groceries.md"}
	if got := listDir(t, dir); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("directory = %v, want %v", got, want)
	}
	if got := string(readFile(t, filepath.Join(dir, "1_Groceries.md"))); got != "# Groceries\n- milk" {
		t.Errorf("page 1 content = %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "1_10.png")); !bytes.Equal(got, pngBytes) {
		t.Errorf("image bytes = %x, want %x", got, pngBytes)
	}

	if result.Pages != 2 || result.Images != 1 {
		t.Errorf("Result pages=%d images=%d, want 2 and 1", result.Pages, result.Images)
	}
	wantFiles := []string{"1_Groceries.md", "2_Groceries.md", "1_10.png"}
	if strings.Join(result.Files, ",") != strings.Join(wantFiles, ",") {
		t.Errorf("Result.Files = %v, want %v", result.Files, wantFiles)
	}
}

func TestExporter_Export_StoredFilenameIsAuthoritative(t *testing.T) {
	exec := newTestExecutor(t, pagesDDL, imagesDDL)
	mustExec(t, exec, "INSERT INTO pages (id, title, filename, markdown_text) VALUES (?, ?, ?, ?)", 1, "a/b", "My Page.md", "stored")
	mustExec(t, exec, "INSERT INTO pages (id, title, filename, markdown_text) VALUES (?, ?, ?, ?)", 2, "a/b", nil, "derived")

	dir := t.TempDir()
	if _, err := NewExporter(exec, nil).Export(context.Background(), dir); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	want := []string{"2_a_b.md", "My Page.md"}
	if got := listDir(t, dir); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("directory = %v, want %v", got, want)
	}
}

func TestExporter_Export_LegacySchemaDerivesNames(t *testing.T) {
	exec := newTestExecutor(t, legacyPagesDDL, legacyImagesDDL)
	mustExec(t, exec, "INSERT INTO pages (id, title, markdown_text) VALUES (?, ?, ?)", 5, "x:y", "body")
	mustExec(t, exec, "INSERT INTO image_attachments (id, page_id, data, mime_type) VALUES (?, ?, ?, ?)", 6, 5, value.EncodeBase64([]byte{1}), "image/webp")

	dir := t.TempDir()
	if _, err := NewExporter(exec, nil).Export(context.Background(), dir); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	want := []string{"5_6.webp", "5_x_y.md"}
	if got := listDir(t, dir); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("directory = %v, want %v", got, want)
	}
}

func TestExporter_Export_FileExtensionColumn(t *testing.T) {
	exec := newTestExecutor(t, pagesDDL, imagesDDL)
	mustExec(t, exec, "INSERT INTO pages (id, title, markdown_text) VALUES (?, ?, ?)", 1, "p", "m")
	mustExec(t, exec, "INSERT INTO image_attachments (id, page_id, data, file_extension) VALUES (?, ?, ?, ?)", 2, 1, value.EncodeBase64(pngBytes), "png")
	mustExec(t, exec, "INSERT INTO image_attachments (id, page_id, data, mime_type, file_extension) VALUES (?, ?, ?, ?, ?)", 3, 1, value.EncodeBase64(pngBytes), "image/gif", nil)

	dir := t.TempDir()
	if _, err := NewExporter(exec, nil).Export(context.Background(), dir); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if got := readFile(t, filepath.Join(dir, "1_2.png")); !bytes.Equal(got, pngBytes) {
		t.Errorf("1_2.png bytes = %x, want %x", got, pngBytes)
	}
	if _, err := os.Stat(filepath.Join(dir, "1_3.gif")); err != nil {
		t.Errorf("1_3.gif not written: %v", err)
	}
}

func TestExporter_Export_BlobColumnHoldsBase64Text(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    []byte
		wantErr error
	}{
		{name: "base64 text", data: value.EncodeBase64(pngBytes), want: pngBytes},
		{name: "invalid base64", data: "not*base64", wantErr: notes.ErrInvalidBase64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := newTestExecutor(t, pagesDDL, blobImagesDDL)
			mustExec(t, exec, "INSERT INTO pages (id, title, markdown_text) VALUES (1, 'p', 'm')")
			mustExec(t, exec, "INSERT INTO image_attachments (id, page_id, data, file_extension) VALUES (?, ?, ?, ?)", 2, 1, tt.data, "png")

			dir := t.TempDir()
			_, err := NewExporter(exec, nil).Export(context.Background(), dir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Export() error = %v, want %v", err, tt.wantErr)
				}
				var decErr *notes.DecodeError
				if !errors.As(err, &decErr) || decErr.Record != "image 1_2" {
					t.Errorf("error = %v, want DecodeError for image 1_2", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if got := readFile(t, filepath.Join(dir, "1_2.png")); !bytes.Equal(got, tt.want) {
				t.Errorf("image bytes = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExporter_Export_Overwrites(t *testing.T) {
	exec := newTestExecutor(t, pagesDDL, imagesDDL)
	mustExec(t, exec, "INSERT INTO pages (id, title, markdown_text) VALUES (1, 'p', 'new content')")

	dir := t.TempDir()
	path := filepath.Join(dir, "1_p.md")
	if err := os.WriteFile(path, []byte("old content that is longer"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewExporter(exec, nil).Export(context.Background(), dir); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if got := string(readFile(t, path)); got != "new content" {
		t.Errorf("content = %q, want overwritten", got)
	}
}

func TestExporter_Export_FailFastIsNotAtomic(t *testing.T) {
	exec := newTestExecutor(t, pagesDDL, imagesDDL)
	mustExec(t, exec, "INSERT INTO pages (id, title, markdown_text) VALUES (1, 'first', 'one')")
	mustExec(t, exec, "INSERT INTO pages (id, title, markdown_text) VALUES (2, 'second', 'two')")
	mustExec(t, exec, "INSERT INTO pages (id, title, markdown_text) VALUES (3, 'third', 'three')")

	dir := t.TempDir()
	// A directory occupying page 2's filename makes its write fail.
	if err := os.Mkdir(filepath.Join(dir, "2_second.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := NewExporter(exec, nil).Export(context.Background(), dir)
	if err == nil {
		t.Fatal("Export() expected error")
	}
	if result != nil {
		t.Errorf("Export() returned result %+v alongside error", result)
	}

	var ioErr *notes.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("error = %T, want *notes.IOError", err)
	}
	if ioErr.Record != "page 2" {
		t.Errorf("Record = %q, want page 2", ioErr.Record)
	}
	if !strings.Contains(err.Error(), "page 2") {
		t.Errorf("error %q does not name page 2", err)
	}

	if got := string(readFile(t, filepath.Join(dir, "1_first.md"))); got != "one" {
		t.Errorf("page 1 content = %q, want it kept on disk", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "3_third.md")); !os.IsNotExist(err) {
		t.Errorf("page 3 written after failure: %v", err)
	}
}

func TestExporter_Export_InvalidBase64(t *testing.T) {
	exec := newTestExecutor(t, pagesDDL, imagesDDL)
	mustExec(t, exec, "INSERT INTO pages (id, title, markdown_text) VALUES (1, 'p', 'm')")
	mustExec(t, exec, "INSERT INTO image_attachments (id, page_id, data, mime_type) VALUES (4, 1, 'not base64!', 'image/png')")

	dir := t.TempDir()
	_, err := NewExporter(exec, nil).Export(context.Background(), dir)

	var decodeErr *notes.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Export() error = %v, want *notes.DecodeError", err)
	}
	if decodeErr.Record != "image 1_4" {
		t.Errorf("Record = %q, want image 1_4", decodeErr.Record)
	}
	if !errors.Is(err, notes.ErrInvalidBase64) {
		t.Errorf("error %v does not wrap ErrInvalidBase64", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "1_p.md")); err != nil {
		t.Errorf("page written before the failing image is missing: %v", err)
	}
}

func TestExporter_Export_RejectsNonLocalFilename(t *testing.T) {
	exec := newTestExecutor(t, pagesDDL, imagesDDL)
	mustExec(t, exec, "INSERT INTO pages (id, title, filename, markdown_text) VALUES (1, 'p', '../escape.md', 'm')")

	root := t.TempDir()
	dir := filepath.Join(root, "export")
	_, err := NewExporter(exec, nil).Export(context.Background(), dir)

	var ioErr *notes.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Export() error = %v, want *notes.IOError", err)
	}
	if _, err := os.Stat(filepath.Join(root, "escape.md")); !os.IsNotExist(err) {
		t.Error("file written outside the export directory")
	}
}

func TestExporter_Export_NullTitleWithoutFilename(t *testing.T) {
	exec := newTestExecutor(t,
		`CREATE TABLE pages (id INTEGER PRIMARY KEY, title TEXT, filename TEXT, markdown_text TEXT, archived_at TEXT)`,
		imagesDDL,
	)
	mustExec(t, exec, "INSERT INTO pages (id, title, filename, markdown_text) VALUES (1, NULL, 'named.md', 'ok')")
	mustExec(t, exec, "INSERT INTO pages (id, title, markdown_text) VALUES (2, NULL, 'no name')")

	dir := t.TempDir()
	_, err := NewExporter(exec, nil).Export(context.Background(), dir)

	var decodeErr *notes.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Export() error = %v, want *notes.DecodeError", err)
	}
	if decodeErr.Record != "page 2" || decodeErr.Column != "title" {
		t.Errorf("DecodeError record=%q column=%q, want page 2 and title", decodeErr.Record, decodeErr.Column)
	}
	if !errors.Is(err, notes.ErrMissingField) {
		t.Errorf("error %v does not wrap ErrMissingField", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "named.md")); err != nil {
		t.Errorf("named.md missing: %v", err)
	}
}

func TestExporter_Export_CreateDirFailure(t *testing.T) {
	exec := newTestExecutor(t, pagesDDL, imagesDDL)

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewExporter(exec, nil).Export(context.Background(), filepath.Join(file, "sub"))

	var ioErr *notes.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Export() error = %v, want *notes.IOError", err)
	}
	if ioErr.Operation != "create_dir" {
		t.Errorf("Operation = %q, want create_dir", ioErr.Operation)
	}
}

func TestExporter_Export_MissingTableIsDatabaseError(t *testing.T) {
	tests := []struct {
		name string
		ddl  []string
		want string
	}{
		{name: "no tables", want: "failed to fetch pages"},
		{name: "no image table", ddl: []string{pagesDDL}, want: "failed to fetch images"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := newTestExecutor(t, tt.ddl...)

			_, err := NewExporter(exec, nil).Export(context.Background(), t.TempDir())

			var dbErr *notes.DatabaseError
			if !errors.As(err, &dbErr) {
				t.Fatalf("Export() error = %v, want *notes.DatabaseError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Export() error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

type recordingExportObserver struct {
	results []*Result
	errs    []error
}

func (o *recordingExportObserver) ObserveExport(result *Result, err error) {
	o.results = append(o.results, result)
	o.errs = append(o.errs, err)
}

func TestExporter_Export_Observer(t *testing.T) {
	exec := newTestExecutor(t, pagesDDL, imagesDDL)
	mustExec(t, exec, "INSERT INTO pages (id, title, markdown_text) VALUES (1, 'a', 'm')")
	mustExec(t, exec, "INSERT INTO pages (id, title, markdown_text) VALUES (2, 'b', 'm')")

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "2_b.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	obs := &recordingExportObserver{}
	NewExporter(exec, obs).Export(context.Background(), dir)

	if len(obs.results) != 1 {
		t.Fatalf("observer called %d times, want 1", len(obs.results))
	}
	if obs.errs[0] == nil {
		t.Error("observer did not receive the failure")
	}
	if obs.results[0].Pages != 1 {
		t.Errorf("observed pages = %d, want the 1 written before the failure", obs.results[0].Pages)
	}
}

func TestPagesQuery(t *testing.T) {
	withFilename := pagesQuery([]string{"id", "title", "filename", "markdown_text", "archived_at"})
	if !strings.Contains(withFilename, "filename") {
		t.Errorf("query %q does not select filename", withFilename)
	}
	legacy := pagesQuery([]string{"id", "title", "markdown_text", "archived_at"})
	if strings.Contains(legacy, "filename") {
		t.Errorf("query %q selects a missing filename column", legacy)
	}
	if !strings.Contains(legacy, "markdown_text, archived_at FROM") {
		t.Errorf("query %q does not select archived_at", legacy)
	}
	if !strings.Contains(legacy, "archived_at IS NULL") {
		t.Errorf("query %q does not exclude archived pages", legacy)
	}
}

func TestImagesQuery(t *testing.T) {
	q := imagesQuery([]string{"id", "page_id", "data", "file_extension"})
	if strings.Contains(q, "mime_type") {
		t.Errorf("query %q selects a missing mime_type column", q)
	}
	if !strings.Contains(q, "i.file_extension") {
		t.Errorf("query %q does not select file_extension", q)
	}
}
