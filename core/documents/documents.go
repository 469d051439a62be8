// Package documents uploads user documents to the Gemini File API and hands
// out references that generation requests can attach.
package documents

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"
)

// MaxFileSize is the largest document accepted for upload.
const MaxFileSize = 10 * 1024 * 1024

const (
	MIMETypePDF  = "application/pdf"
	MIMETypeText = "text/plain"
)

// Reference points at a document uploaded to the File API.
type Reference struct {
	// URI is the File API location generation requests attach.
	URI      string
	MIMEType string
	// Title is the original filename, used when introducing the document to
	// the assistant.
	Title string

	name string
}

// Validate checks a document against the upload constraints before any
// bytes leave the process.
func Validate(content []byte, filename string) (mimeType string, err error) {
	if len(content) > MaxFileSize {
		return "", fmt.Errorf("file too large, max size is %dMB", MaxFileSize/(1024*1024))
	}

	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".pdf"):
		return MIMETypePDF, nil
	case strings.HasSuffix(strings.ToLower(filename), ".txt"):
		return MIMETypeText, nil
	}
	return "", fmt.Errorf("only PDF and TXT files are supported")
}

// Processor uploads documents through a shared Gemini client.
type Processor struct {
	client *genai.Client
}

func NewProcessor(client *genai.Client) *Processor {
	return &Processor{client: client}
}

// Process validates and uploads a document, returning a reference that can
// be attached to generation requests.
func (p *Processor) Process(ctx context.Context, content []byte, filename string) (*Reference, error) {
	ctx, span := tracer.Start(ctx, "process document")
	defer span.End()
	span.SetAttributes(
		attribute.String("document.filename", filename),
		attribute.Int("document.size", len(content)),
	)

	mimeType, err := Validate(content, filename)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	file, err := p.client.Files.Upload(ctx, bytes.NewReader(content), &genai.UploadFileConfig{
		MIMEType:    mimeType,
		DisplayName: filename,
	})
	if err != nil {
		err = fmt.Errorf("failed to upload document: %w", err)
		span.RecordError(err)
		return nil, err
	}
	logger.InfoContext(ctx, "document uploaded", "filename", filename, "uri", file.URI)

	return &Reference{
		URI:      file.URI,
		MIMEType: mimeType,
		Title:    filename,
		name:     file.Name,
	}, nil
}

// Release deletes the uploaded document from the File API. Deletion failures
// are logged rather than propagated since uploaded files expire on their own.
func (p *Processor) Release(ctx context.Context, reference *Reference) {
	if reference == nil || reference.name == "" {
		return
	}

	ctx, span := tracer.Start(ctx, "release document")
	defer span.End()

	if _, err := p.client.Files.Delete(ctx, reference.name, nil); err != nil {
		span.RecordError(err)
		logger.WarnContext(ctx, "failed to delete uploaded document", "name", reference.name, "error", err)
	}
}
