// Package extract turns uploaded résumé documents into plain text.
package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MIMEPlain = "text/plain"
	MIMEPDF   = "application/pdf"
	MIMEDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnsupported is wrapped by ExtractionError for document types that
// cannot be read.
var ErrUnsupported = errors.New("unsupported file type")

// Document is an uploaded file.
type Document struct {
	Name string
	MIME string
	Data []byte
}

// Extractor returns the plain text of a document.
type Extractor interface {
	Extract(doc Document) (string, error)
}

// ExtractionError reports a document that could not be read.
type ExtractionError struct {
	Name string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %q: %v", e.Name, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Documents extracts text from PDF, DOCX and plain text files.
type Documents struct{}

func New() *Documents {
	return &Documents{}
}

// Extract returns the document's text. PDF pages are joined with a newline
// and pages without text are skipped. A document with no text at all is
// not an error.
func (d *Documents) Extract(doc Document) (text string, err error) {
	// the pdf parser panics on some malformed object graphs
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Name: doc.Name, Err: fmt.Errorf("corrupt document: %v", r)}
		}
	}()

	mime := DetectMIME(doc.Name, doc.MIME, doc.Data)
	switch mime {
	case MIMEPlain:
		text = string(doc.Data)
	case MIMEPDF:
		text, err = extractPDFText(bytes.NewReader(doc.Data))
	case MIMEDocx:
		text, err = extractDocxText(doc.Data)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupported, mime)
	}
	if err != nil {
		return "", &ExtractionError{Name: doc.Name, Err: err}
	}
	return text, nil
}

// DetectMIME picks the document type from the declared content type, the
// file extension and finally the content itself.
func DetectMIME(name, declared string, data []byte) string {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	switch declared {
	case MIMEPlain, MIMEPDF, MIMEDocx:
		return declared
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MIMEPDF
	case ".docx":
		return MIMEDocx
	case ".txt", ".md":
		return MIMEPlain
	}

	sniffed := http.DetectContentType(data)
	if i := strings.Index(sniffed, ";"); i >= 0 {
		sniffed = sniffed[:i]
	}
	return sniffed
}

func extractPDFText(reader *bytes.Reader) (string, error) {
	pdfReader, err := pdf.NewReader(reader, reader.Size())
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var pages []string
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxPlainText(doc.Editable().GetContent())
}

// docxPlainText flattens WordprocessingML into text, one line per paragraph.
func docxPlainText(content string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	var (
		b      strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse docx body: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteString("\t")
			case "br", "cr":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}
