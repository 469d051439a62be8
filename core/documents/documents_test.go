package documents

import (
	"strings"
	"testing"
)

func TestValidateAcceptsSupportedExtensions(t *testing.T) {
	for _, tc := range []struct {
		filename string
		mimeType string
	}{
		{filename: "book.pdf", mimeType: "application/pdf"},
		{filename: "Book.PDF", mimeType: "application/pdf"},
		{filename: "notes.txt", mimeType: "text/plain"},
		{filename: "NOTES.TXT", mimeType: "text/plain"},
	} {
		mimeType, err := Validate([]byte("content"), tc.filename)
		if err != nil {
			t.Fatalf("expected %q to validate, got %v", tc.filename, err)
		}
		if mimeType != tc.mimeType {
			t.Fatalf("expected MIME type %q for %q, got %q", tc.mimeType, tc.filename, mimeType)
		}
	}
}

func TestValidateRejectsUnsupportedExtensions(t *testing.T) {
	for _, filename := range []string{"image.png", "doc.docx", "book"} {
		if _, err := Validate([]byte("content"), filename); err == nil {
			t.Fatalf("expected %q to be rejected", filename)
		}
	}
}

func TestValidateRejectsOversizedFiles(t *testing.T) {
	content := make([]byte, MaxFileSize+1)
	_, err := Validate(content, "book.pdf")
	if err == nil {
		t.Fatal("expected an oversized file to be rejected")
	}
	if !strings.Contains(err.Error(), "10MB") {
		t.Fatalf("expected the limit in the error, got %q", err.Error())
	}
}

func TestValidateAcceptsFileAtLimit(t *testing.T) {
	content := make([]byte, MaxFileSize)
	if _, err := Validate(content, "book.pdf"); err != nil {
		t.Fatalf("expected a file at the size limit to validate, got %v", err)
	}
}
