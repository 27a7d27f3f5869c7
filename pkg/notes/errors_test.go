package notes

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestErrors_Messages(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "configuration",
			err:  NewConfigurationError("sync_path", ErrMissingSyncPath),
			want: "configuration error [key=sync_path]: no sync path configured",
		},
		{
			name: "io with record",
			err:  NewIOError("write_page", "/tmp/x/2_b.md", PageRecord(2), cause),
			want: "io error [operation=write_page, record=page 2, path=/tmp/x/2_b.md]: boom",
		},
		{
			name: "io without record",
			err:  NewIOError("create_dir", "/tmp/x", "", cause),
			want: "io error [operation=create_dir, path=/tmp/x]: boom",
		},
		{
			name: "database",
			err:  NewDatabaseError("query", "SELECT 1", cause),
			want: "database error [operation=query]: boom",
		},
		{
			name: "decode cell",
			err:  NewDecodeError(3, "title", ErrTypeMismatch),
			want: "decode error [row=3, column=title]: column type mismatch",
		},
		{
			name: "decode record",
			err:  NewRecordDecodeError(ImageRecord(1, 7), "data", ErrInvalidBase64),
			want: "decode error [record=image 1_7, column=data]: invalid base64 payload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrors_Unwrap(t *testing.T) {
	err := error(NewIOError("write_image", "a.png", ImageRecord(1, 2), fs.ErrPermission))

	if !errors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is(IOError, fs.ErrPermission) = false, want true")
	}

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatal("errors.As(*IOError) = false, want true")
	}
	if ioErr.Record != "image 1_2" {
		t.Errorf("Record = %q, want %q", ioErr.Record, "image 1_2")
	}

	wrapped := NewDatabaseError("execute", "UPDATE pages SET title = ?", NewDecodeError(0, "id", ErrTypeMismatch))
	if !errors.Is(wrapped, ErrTypeMismatch) {
		t.Error("errors.Is(DatabaseError, ErrTypeMismatch) = false, want true")
	}
	if !strings.Contains(wrapped.Error(), "column type mismatch") {
		t.Errorf("Error() = %q, want cause text", wrapped.Error())
	}
}

func TestPage_Archived(t *testing.T) {
	ts := "2025-01-01T00:00:00Z"

	if (&Page{ID: 1}).Archived() {
		t.Error("Archived() = true for nil ArchivedAt, want false")
	}
	if !(&Page{ID: 1, ArchivedAt: &ts}).Archived() {
		t.Error("Archived() = false for set ArchivedAt, want true")
	}
}
