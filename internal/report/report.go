// Package report reads and writes the JSON prediction report.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spboyer/lab1/internal/models"
)

// Write serializes doc to path as indented UTF-8 JSON. Non-ASCII text is
// written as-is and HTML characters are not escaped. The file is closed on
// every path.
func Write(path string, doc *models.ReportDocument) (err error) {
	if doc == nil {
		return errors.New("report document is nil")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing report file: %w", cerr)
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	return nil
}

// Read loads a report written by Write.
func Read(path string) (*models.ReportDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}

	return doc, nil
}

// Parse decodes a report from JSON bytes.
func Parse(data []byte) (*models.ReportDocument, error) {
	var doc models.ReportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
