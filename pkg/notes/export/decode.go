package export

import (
	"fmt"

	"notesponge-hq/mdsync/pkg/notes"
	"notesponge-hq/mdsync/pkg/notes/storage"
	"notesponge-hq/mdsync/pkg/notes/value"
)

// decodePage reads a page row. Title may be NULL only when a stored filename
// makes it unnecessary.
func decodePage(rec storage.Record) (*notes.Page, error) {
	id, err := intField(rec, "page", "id")
	if err != nil {
		return nil, err
	}
	recordID := notes.PageRecord(id)

	page := &notes.Page{ID: id}

	if page.Filename, err = optionalTextField(rec, recordID, "filename"); err != nil {
		return nil, err
	}
	if page.MarkdownText, err = textField(rec, recordID, "markdown_text"); err != nil {
		return nil, err
	}
	if v, ok := rec.Get("archived_at"); ok && !v.IsNull() {
		archivedAt, isText := v.AsString()
		if !isText {
			archivedAt = v.String()
		}
		page.ArchivedAt = &archivedAt
	}

	if page.Filename != "" {
		page.Title, err = optionalTextField(rec, recordID, "title")
	} else {
		page.Title, err = textField(rec, recordID, "title")
	}
	if err != nil {
		return nil, err
	}

	return page, nil
}

// decodeImage reads an image attachment row. NoteSponge stores the payload as
// base64 text whether the column is declared TEXT or BLOB, so both kinds are
// kept as text and decoded at write time.
func decodeImage(rec storage.Record) (*notes.ImageAttachment, error) {
	id, err := intField(rec, "image", "id")
	if err != nil {
		return nil, err
	}
	pageID, err := intField(rec, fmt.Sprintf("image %d", id), "page_id")
	if err != nil {
		return nil, err
	}
	recordID := notes.ImageRecord(pageID, id)

	img := &notes.ImageAttachment{ID: id, PageID: pageID}

	data, ok := rec.Get("data")
	switch {
	case !ok || data.IsNull():
		return nil, notes.NewRecordDecodeError(recordID, "data", notes.ErrMissingField)
	case data.Kind() == value.KindText:
		s, _ := data.AsString()
		img.Data = s
	case data.Kind() == value.KindBlob:
		b, _ := data.AsBytes()
		img.Data = string(b)
	default:
		return nil, notes.NewRecordDecodeError(recordID, "data",
			fmt.Errorf("%w: %s payload", notes.ErrTypeMismatch, data.Kind()))
	}

	if img.MimeType, err = optionalTextField(rec, recordID, "mime_type"); err != nil {
		return nil, err
	}
	if img.FileExtension, err = optionalTextField(rec, recordID, "file_extension"); err != nil {
		return nil, err
	}

	return img, nil
}

// imagePayload decodes the stored base64 payload into the bytes to write.
func imagePayload(img *notes.ImageAttachment) ([]byte, error) {
	raw, err := value.DecodeBase64(img.Data)
	if err != nil {
		return nil, notes.NewRecordDecodeError(notes.ImageRecord(img.PageID, img.ID), "data",
			fmt.Errorf("%w: %v", notes.ErrInvalidBase64, err))
	}
	return raw, nil
}

func intField(rec storage.Record, recordID, name string) (int64, error) {
	v, ok := rec.Get(name)
	if !ok || v.IsNull() {
		return 0, notes.NewRecordDecodeError(recordID, name, notes.ErrMissingField)
	}
	n, ok := v.AsInt64()
	if !ok {
		return 0, notes.NewRecordDecodeError(recordID, name,
			fmt.Errorf("%w: want INTEGER, got %s", notes.ErrTypeMismatch, v.Kind()))
	}
	return n, nil
}

func textField(rec storage.Record, recordID, name string) (string, error) {
	v, ok := rec.Get(name)
	if !ok || v.IsNull() {
		return "", notes.NewRecordDecodeError(recordID, name, notes.ErrMissingField)
	}
	s, ok := v.AsString()
	if !ok {
		return "", notes.NewRecordDecodeError(recordID, name,
			fmt.Errorf("%w: want TEXT, got %s", notes.ErrTypeMismatch, v.Kind()))
	}
	return s, nil
}

// optionalTextField returns "" for absent and NULL columns.
func optionalTextField(rec storage.Record, recordID, name string) (string, error) {
	v, ok := rec.Get(name)
	if !ok || v.IsNull() {
		return "", nil
	}
	return textField(rec, recordID, name)
}
