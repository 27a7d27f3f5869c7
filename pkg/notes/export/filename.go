package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"notesponge-hq/mdsync/pkg/notes"
)

// DefaultImageExtension is used when an image's MIME type is not recognized.
const DefaultImageExtension = "bin"

var sanitizer = strings.NewReplacer("/", "_", `\`, "_", ":", "_")

// mimeExtensions maps image MIME types to file extensions.
var mimeExtensions = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/jpg":     "jpg",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

// Sanitize replaces path separators and colons with underscores. Every other
// character is kept, including ones some filesystems reject.
func Sanitize(s string) string {
	return sanitizer.Replace(s)
}

// DerivedPageFilename builds a page filename from its id and title. The id
// prefix keeps names unique across pages sharing a title.
func DerivedPageFilename(id int64, title string) string {
	return fmt.Sprintf("%d_%s.md", id, Sanitize(title))
}

// PageFilename returns the filename a page is written to. A stored filename is
// authoritative and used verbatim; otherwise the name is derived from the
// title.
func PageFilename(page *notes.Page) string {
	if page.Filename != "" {
		return page.Filename
	}
	return DerivedPageFilename(page.ID, page.Title)
}

// ExtensionForMIME returns the file extension for an image MIME type, or
// DefaultImageExtension when the type is not recognized.
func ExtensionForMIME(mime string) string {
	if ext, ok := mimeExtensions[strings.ToLower(strings.TrimSpace(mime))]; ok {
		return ext
	}
	return DefaultImageExtension
}

// ImageExtension returns a stored file extension when present, otherwise the
// extension for the image's MIME type.
func ImageExtension(img *notes.ImageAttachment) string {
	if ext := strings.TrimPrefix(strings.TrimSpace(img.FileExtension), "."); ext != "" {
		return ext
	}
	return ExtensionForMIME(img.MimeType)
}

// ImageFilename returns "{page_id}_{image_id}.{ext}" for an image.
func ImageFilename(img *notes.ImageAttachment) string {
	return fmt.Sprintf("%d_%d.%s", img.PageID, img.ID, ImageExtension(img))
}

// resolve joins name onto dir, rejecting names that would land outside dir.
func resolve(dir, name string) (string, error) {
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("filename %q is not a local path", name)
	}
	return filepath.Join(dir, name), nil
}
