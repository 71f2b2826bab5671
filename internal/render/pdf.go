// pdf.go
//
// A Go service for the easyform form-building API
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of easyform-api.
// easyform-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// easyform-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with easyform-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package render

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/localnerve/easyform-api/internal/models"
)

const (
	// ContentType of rendered documents
	ContentType = "application/pdf"

	// TimestampFormat is the fixed date-time format printed on documents
	TimestampFormat = "2006-01-02T15:04:05.000Z"

	// PlaceholderTitle is printed when the form does not resolve
	PlaceholderTitle = "Form Submission"

	margin     = 50.0
	lineHeight = 16.0
)

// Document is what gets rendered. Company and Form may be nil.
type Document struct {
	Submission *models.Submission
	Company    *models.Company
	Form       *models.Form
}

// Renderer lays out submission documents on A4 pages
type Renderer struct {
	// Compress enables stream compression. Tests turn it off to inspect text.
	Compress bool
}

// NewRenderer returns a renderer with compression enabled
func NewRenderer() *Renderer {
	return &Renderer{Compress: true}
}

// Build lays out doc in memory. Errors here happen before any byte is written.
func (r *Renderer) Build(doc Document) (*fpdf.Fpdf, error) {
	if doc.Submission == nil {
		return nil, fmt.Errorf("no submission to render")
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(r.Compress)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetCreator("easyform-api", true)
	pdf.SetTitle(FileName(doc.Submission.ID), true)
	pdf.SetCreationDate(doc.Submission.CreatedAt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	// Header
	var name, address string
	if doc.Company != nil {
		name = doc.Company.Name
		address = doc.Company.Address()
	}
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0x05, 0x2A, 0x74)
	pdf.CellFormat(0, 24, tr(name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, lineHeight, tr(address), "", 1, "L", false, 0, "")
	pdf.Ln(lineHeight)

	// Title block
	title := PlaceholderTitle
	if doc.Form != nil && doc.Form.Title != "" {
		title = doc.Form.Title
	}
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 22, tr(title), "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0x64, 0x64, 0x64)
	for _, line := range []string{
		"Form ID: " + doc.Submission.FormID,
		"Submission ID: " + doc.Submission.ID,
		"Date: " + FormatTimestamp(doc.Submission.CreatedAt),
	} {
		pdf.CellFormat(0, 14, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(lineHeight)

	// Answers
	pdf.SetFont("Helvetica", "BU", 14)
	pdf.CellFormat(0, 20, "Answers:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	for _, answer := range doc.Submission.Answers {
		line := AnswerLabel(answer) + ": " + FormatAnswerValue(answer)
		pdf.MultiCell(0, lineHeight, tr(line), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("layout failed: %w", err)
	}
	return pdf, nil
}

// Render builds doc and writes it to w
func (r *Renderer) Render(w io.Writer, doc Document) error {
	pdf, err := r.Build(doc)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

// FileName is the inline filename of a submission document
func FileName(submissionID string) string {
	return fmt.Sprintf("easyform-%s.pdf", submissionID)
}

// ContentDisposition is the Content-Disposition header of a submission document
func ContentDisposition(submissionID string) string {
	return fmt.Sprintf("inline; filename=%q", FileName(submissionID))
}

// FormatTimestamp renders t in UTC with millisecond precision
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// AnswerLabel falls back to the field id, then "Field"
func AnswerLabel(answer models.Answer) string {
	if answer.Label != "" {
		return answer.Label
	}
	if answer.FieldID != "" {
		return answer.FieldID
	}
	return "Field"
}

// FormatAnswerValue renders checkbox answers as Yes/No and everything else
// as text. A missing value renders empty.
func FormatAnswerValue(answer models.Answer) string {
	if answer.Type == "checkbox" {
		if truthy(answer.Value) {
			return "Yes"
		}
		return "No"
	}
	return valueString(answer.Value)
}

func valueString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return FormatTimestamp(v)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = valueString(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	case reflect.Map:
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(data)
	}
	return fmt.Sprint(value)
}

// truthy follows JSON truthiness: false, 0, "" and null are false
func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	}
	return true
}
