// Package resume extracts plain text and skills from uploaded resumes.
package resume

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/career-mentor/internal/skills"
)

// Format is a supported resume file type.
type Format string

// Supported formats
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

// ErrUnsupportedFormat is returned for files that are not PDF, DOCX or plain text.
var ErrUnsupportedFormat = errors.New("unsupported resume format")

// DetectFormat picks a format from the file extension, falling back to content sniffing.
func DetectFormat(data []byte, fileName string) (Format, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt", ".text", ".md":
		return FormatText, nil
	}

	mime := http.DetectContentType(data)
	switch {
	case strings.HasPrefix(mime, "application/pdf"):
		return FormatPDF, nil
	case strings.HasPrefix(mime, "application/zip"):
		return FormatDOCX, nil
	case strings.HasPrefix(mime, "text/plain"):
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, fileName, mime)
}

// ExtractText returns the plain text of a resume.
func ExtractText(data []byte, fileName string) (string, error) {
	format, err := DetectFormat(data, fileName)
	if err != nil {
		return "", err
	}
	switch format {
	case FormatPDF:
		return extractPDFText(data)
	case FormatDOCX:
		return extractDocxText(data)
	default:
		return string(data), nil
	}
}

// ExtractSkills scans resume text for known skills. A nil keyword list uses
// skills.DefaultKeywords.
func ExtractSkills(text string, keywords []string) []string {
	return skills.ExtractFromText(text, keywords)
}

// SkillsFromReader reads a resume and extracts its skills.
func SkillsFromReader(r io.Reader, fileName string) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	text, err := ExtractText(data, fileName)
	if err != nil {
		return nil, err
	}
	return ExtractSkills(text, nil), nil
}

// SkillsFromFile reads the resume at path and extracts its skills.
func SkillsFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume: %w", err)
	}
	defer f.Close()
	return SkillsFromReader(f, filepath.Base(path))
}

func extractPDFText(data []byte) (string, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent()), nil
}

// stripDocxXML keeps the character data of a WordprocessingML body, one line per paragraph.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var sb strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && sb.Len() > 0 {
				sb.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
