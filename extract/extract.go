package extract

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Typed rejections for the upload boundary. Handlers map these onto 4xx
// responses; anything else is a processing failure.
var (
	ErrUnsupportedType = errors.New("unsupported file type: upload a PDF, DOCX, or PPTX file")
	ErrTooLarge        = errors.New("file too large: maximum size is 25MB")
)

// MaxFileSize is the upload ceiling.
const MaxFileSize = 25 << 20

// Recognized document kinds.
const (
	KindPDF  = "pdf"
	KindDOCX = "docx"
	KindPPTX = "pptx"
)

var mimeKinds = map[string]string{
	"application/pdf": KindPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   KindDOCX,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": KindPPTX,
}

// Result is the outcome of a text extraction.
type Result struct {
	Filename  string `json:"filename"`
	FileSize  int64  `json:"file_size"`
	Kind      string `json:"kind"`
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
	CharCount int    `json:"char_count"`
}

// Service is a stand-in for a real document extraction backend. It enforces
// the type and size limits of the boundary, then returns canned text per
// document kind after a simulated processing latency. Swapping in a real
// extractor (pdf parsing, OCR, a cloud service) only changes the internals.
type Service struct {
	delays map[string]time.Duration
}

func NewService() *Service {
	return &Service{
		delays: map[string]time.Duration{
			KindPDF:  time.Second,
			KindDOCX: 1200 * time.Millisecond,
			KindPPTX: 1500 * time.Millisecond,
		},
	}
}

// KindForContentType maps a MIME type to a document kind.
func KindForContentType(contentType string) (string, bool) {
	kind, ok := mimeKinds[contentType]
	return kind, ok
}

// Extract validates the upload and returns the extracted text, or a typed
// rejection. The call blocks for the simulated processing time but honors
// context cancellation.
func (s *Service) Extract(ctx context.Context, filename, contentType string, size int64) (*Result, error) {
	kind, ok := KindForContentType(contentType)
	if !ok {
		return nil, ErrUnsupportedType
	}
	if size > MaxFileSize {
		return nil, ErrTooLarge
	}

	select {
	case <-time.After(s.delays[kind]):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	text := cannedText[kind]
	return &Result{
		Filename:  filename,
		FileSize:  size,
		Kind:      kind,
		Text:      text,
		WordCount: len(strings.Fields(text)),
		CharCount: len(text),
	}, nil
}
