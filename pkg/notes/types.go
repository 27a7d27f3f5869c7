package notes

// Page is a read-only view of one row of the pages table.
type Page struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`

	// Filename is the stored filename column. Empty when the schema has no
	// filename column or the row holds NULL.
	Filename string `json:"filename,omitempty"`

	MarkdownText string `json:"markdown_text"`

	// ArchivedAt is nil for pages included in an export.
	ArchivedAt *string `json:"archived_at,omitempty"`
}

// Archived reports whether the page is excluded from exports.
func (p *Page) Archived() bool {
	return p.ArchivedAt != nil
}

// ImageAttachment is a read-only view of one row of the image_attachments table.
type ImageAttachment struct {
	ID     int64 `json:"id"`
	PageID int64 `json:"page_id"`

	// Data is the stored standard base64 payload. NoteSponge writes base64
	// text even into a column declared BLOB.
	Data string `json:"-"`

	MimeType      string `json:"mime_type,omitempty"`
	FileExtension string `json:"file_extension,omitempty"`
}
