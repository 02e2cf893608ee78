package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/lexaudit/internal/model"
	"golang.org/x/net/html"
)

// ValidateText rejects input that cannot be contract text:
// invalid UTF-8, embedded NUL bytes (binary data) or oversized documents.
// Empty text is valid and simply scores poorly.
func ValidateText(text string, maxBytes int64) error {
	if maxBytes > 0 && int64(len(text)) > maxBytes {
		return fmt.Errorf("%w: text is %d bytes, limit is %d", model.ErrInvalidInput, len(text), maxBytes)
	}
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: text is not valid UTF-8", model.ErrInvalidInput)
	}
	if strings.IndexByte(text, 0) >= 0 {
		return fmt.Errorf("%w: text contains NUL bytes", model.ErrInvalidInput)
	}
	return nil
}

// LoadText reads an already-extracted document from disk.
// Plain text and Markdown are returned as-is; HTML is reduced to its visible text.
func LoadText(path string, maxBytes int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".text", ".md", ".html", ".htm":
	default:
		return "", fmt.Errorf("%w: %q (extract text first)", model.ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: document exceeds %d bytes", model.ErrInvalidInput, maxBytes)
	}

	if ext == ".html" || ext == ".htm" {
		return HTMLText(data)
	}
	return string(data), nil
}

// HTMLText extracts visible text from an HTML document, skipping scripts and styles.
// Block elements end with a newline so paragraphs stay apart.
func HTMLText(data []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && blockElements[n.Data] {
			buf.WriteString("\n")
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String()), nil
}

var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "li": true, "br": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true, "tr": true,
}
