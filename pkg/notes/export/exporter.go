package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"notesponge-hq/mdsync/pkg/notes"
	"notesponge-hq/mdsync/pkg/notes/storage"
)

const (
	pagesTable  = "pages"
	imagesTable = "image_attachments"

	dirPerm  = 0o755
	filePerm = 0o644
)

// Executor is the subset of *storage.Executor the exporter uses.
type Executor interface {
	Mutate(ctx context.Context, query string, params []any) (int64, error)
	Query(ctx context.Context, query string, params []any) ([]storage.Record, error)
	TableColumns(ctx context.Context, table string) ([]string, error)
	Ping(ctx context.Context) error
}

// Observer receives the outcome of every export run. result holds whatever
// was written before a failure.
type Observer interface {
	ObserveExport(result *Result, err error)
}

// Result summarizes one export run.
type Result struct {
	RunID    string        `json:"run_id"`
	Dir      string        `json:"dir"`
	Pages    int           `json:"pages"`
	Images   int           `json:"images"`
	Files    []string      `json:"files"`
	Duration time.Duration `json:"duration"`
}

// Exporter writes non-archived pages and their images into a directory.
//
// Export is fail-fast and non-atomic: the first failure stops the run, and
// files written before it stay on disk.
type Exporter struct {
	exec     Executor
	observer Observer
	logger   *slog.Logger
}

// NewExporter creates an exporter over exec. observer may be nil.
func NewExporter(exec Executor, observer Observer) *Exporter {
	return &Exporter{
		exec:     exec,
		observer: observer,
		logger:   slog.Default().With("component", "notes.export"),
	}
}

// Export materializes every non-archived page as a markdown file and every
// image attached to a non-archived page as a binary file in dir. Existing
// files with the same names are overwritten.
func (e *Exporter) Export(ctx context.Context, dir string) (*Result, error) {
	result := &Result{
		RunID: uuid.New().String(),
		Dir:   dir,
		Files: []string{},
	}
	start := time.Now()
	logger := e.logger.With("run_id", result.RunID, "dir", dir)

	logger.Info("export started")

	err := e.run(ctx, dir, result, logger)
	result.Duration = time.Since(start)

	if e.observer != nil {
		e.observer.ObserveExport(result, err)
	}

	if err != nil {
		logger.Error("export failed",
			"pages", result.Pages,
			"images", result.Images,
			"duration", result.Duration,
			"error", err,
		)
		return nil, err
	}

	logger.Info("export completed",
		"pages", result.Pages,
		"images", result.Images,
		"duration", result.Duration,
	)
	return result, nil
}

func (e *Exporter) run(ctx context.Context, dir string, result *Result, logger *slog.Logger) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return notes.NewIOError("create_dir", dir, "", err)
	}

	if _, err := e.exec.Mutate(ctx, "PRAGMA foreign_keys = true", nil); err != nil {
		return err
	}
	if err := e.exec.Ping(ctx); err != nil {
		return err
	}

	pageCols, err := e.exec.TableColumns(ctx, pagesTable)
	if err != nil {
		return err
	}
	imageCols, err := e.exec.TableColumns(ctx, imagesTable)
	if err != nil {
		return err
	}

	pages, err := e.exec.Query(ctx, pagesQuery(pageCols), nil)
	if err != nil {
		return fmt.Errorf("failed to fetch pages: %w", err)
	}
	logger.Info("found pages to export", "count", len(pages))

	for _, rec := range pages {
		page, err := decodePage(rec)
		if err != nil {
			return err
		}
		if page.Archived() {
			logger.Warn("skipping archived page", "page_id", page.ID, "archived_at", *page.ArchivedAt)
			continue
		}
		name := PageFilename(page)
		if err := e.write(dir, name, notes.PageRecord(page.ID), "write_page", []byte(page.MarkdownText)); err != nil {
			return err
		}
		result.Pages++
		result.Files = append(result.Files, name)
		logger.Debug("wrote page", "page_id", page.ID, "file", name)
	}

	images, err := e.exec.Query(ctx, imagesQuery(imageCols), nil)
	if err != nil {
		return fmt.Errorf("failed to fetch images: %w", err)
	}
	logger.Info("found images to export", "count", len(images))

	for _, rec := range images {
		img, err := decodeImage(rec)
		if err != nil {
			return err
		}
		data, err := imagePayload(img)
		if err != nil {
			return err
		}
		name := ImageFilename(img)
		if err := e.write(dir, name, notes.ImageRecord(img.PageID, img.ID), "write_image", data); err != nil {
			return err
		}
		result.Images++
		result.Files = append(result.Files, name)
		logger.Debug("wrote image", "page_id", img.PageID, "image_id", img.ID, "file", name, "bytes", len(data))
	}

	return nil
}

func (e *Exporter) write(dir, name, record, operation string, data []byte) error {
	path, err := resolve(dir, name)
	if err != nil {
		return notes.NewIOError(operation, name, record, err)
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return notes.NewIOError(operation, path, record, err)
	}
	return nil
}

// pagesQuery selects non-archived pages, including the stored filename when
// the schema has one.
func pagesQuery(cols []string) string {
	fields := []string{"id", "title", "markdown_text", "archived_at"}
	if slices.Contains(cols, "filename") {
		fields = append(fields, "filename")
	}
	return fmt.Sprintf("SELECT %s FROM %s WHERE archived_at IS NULL ORDER BY id",
		strings.Join(fields, ", "), pagesTable)
}

// imagesQuery selects images of non-archived pages, including whichever of
// mime_type and file_extension the schema has.
func imagesQuery(cols []string) string {
	fields := []string{"i.id", "i.page_id", "i.data"}
	for _, optional := range []string{"mime_type", "file_extension"} {
		if slices.Contains(cols, optional) {
			fields = append(fields, "i."+optional)
		}
	}
	return fmt.Sprintf("SELECT %s FROM %s i JOIN %s p ON p.id = i.page_id WHERE p.archived_at IS NULL ORDER BY i.id",
		strings.Join(fields, ", "), imagesTable, pagesTable)
}
