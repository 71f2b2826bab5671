// pdf_test.go
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

package render_test

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"github.com/localnerve/easyform-api/internal/models"
	"github.com/localnerve/easyform-api/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSubmission() *models.Submission {
	return &models.Submission{
		ID:        "sub123",
		CompanyID: "C1",
		FormID:    "form_intake",
		CreatedAt: time.Date(2026, 3, 4, 5, 6, 7, 8_000_000, time.UTC),
		Answers: models.JSONList[models.Answer]{
			{FieldID: "name", Label: "Full name", Type: "text", Value: "Jane Doe"},
			{FieldID: "agree", Label: "Agree", Type: "checkbox", Value: true},
			{FieldID: "notes", Type: "text", Value: nil},
		},
	}
}

func TestFormatAnswerValue(t *testing.T) {
	cases := []struct {
		answer models.Answer
		want   string
	}{
		{models.Answer{Type: "checkbox", Value: true}, "Yes"},
		{models.Answer{Type: "checkbox", Value: false}, "No"},
		{models.Answer{Type: "checkbox", Value: nil}, "No"},
		{models.Answer{Type: "checkbox", Value: "on"}, "Yes"},
		{models.Answer{Type: "checkbox", Value: 0.0}, "No"},
		{models.Answer{Type: "text", Value: nil}, ""},
		{models.Answer{Type: "text", Value: "hello"}, "hello"},
		{models.Answer{Type: "number", Value: 3.5}, "3.5"},
		{models.Answer{Type: "number", Value: 42.0}, "42"},
		{models.Answer{Type: "number", Value: int32(7)}, "7"},
		{models.Answer{Type: "select", Value: []interface{}{"a", "b"}}, "a,b"},
		{models.Answer{Type: "object", Value: map[string]interface{}{"k": "v"}}, `{"k":"v"}`},
		{models.Answer{Type: "bool", Value: false}, "false"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, render.FormatAnswerValue(c.answer), "%#v", c.answer)
	}
}

func TestAnswerLabel(t *testing.T) {
	assert.Equal(t, "Label", render.AnswerLabel(models.Answer{Label: "Label", FieldID: "id"}))
	assert.Equal(t, "id", render.AnswerLabel(models.Answer{FieldID: "id"}))
	assert.Equal(t, "Field", render.AnswerLabel(models.Answer{}))
}

func TestFileNameAndTimestamp(t *testing.T) {
	assert.Equal(t, "easyform-abc.pdf", render.FileName("abc"))
	assert.Equal(t, `inline; filename="easyform-abc.pdf"`, render.ContentDisposition("abc"))
	assert.Equal(t, "2026-03-04T05:06:07.008Z", render.FormatTimestamp(sampleSubmission().CreatedAt))
}

func TestRenderWritesAnswersInOrder(t *testing.T) {
	r := &render.Renderer{Compress: false}
	var buf bytes.Buffer

	err := r.Render(&buf, render.Document{
		Submission: sampleSubmission(),
		Company:    &models.Company{Name: "Acme", Metadata: models.JSONObject{"address": "1 Main St"}},
		Form:       &models.Form{Title: "Intake"},
	})
	require.NoError(t, err)

	out := buf.String()
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, out, "(Acme)")
	assert.Contains(t, out, "(1 Main St)")
	assert.Contains(t, out, "(Intake)")
	assert.Contains(t, out, "(Submission ID: sub123)")
	assert.Contains(t, out, "(Date: 2026-03-04T05:06:07.008Z)")

	first := bytes.Index(buf.Bytes(), []byte("(Full name: Jane Doe)"))
	second := bytes.Index(buf.Bytes(), []byte("(Agree: Yes)"))
	third := bytes.Index(buf.Bytes(), []byte("(notes:"))
	require.True(t, first > 0 && second > 0 && third > 0)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

var textObject = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\) ?Tj ET`)

func textObjects(t *testing.T, doc render.Document) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, (&render.Renderer{Compress: false}).Render(&buf, doc))

	var texts []string
	for _, m := range textObject.FindAllStringSubmatch(buf.String(), -1) {
		texts = append(texts, m[1])
	}
	return texts
}

func TestRenderWithoutCompanyOrForm(t *testing.T) {
	texts := textObjects(t, render.Document{Submission: sampleSubmission()})
	require.NotEmpty(t, texts)

	// Header cells are blank, so the title is the first text on the page
	assert.Equal(t, render.PlaceholderTitle, texts[0])
	assert.NotContains(t, texts, "Acme")
	assert.NotContains(t, texts, "1 Main St")

	withCompany := textObjects(t, render.Document{
		Submission: sampleSubmission(),
		Company:    &models.Company{Name: "Acme", Metadata: models.JSONObject{"address": "1 Main St"}},
	})
	assert.Equal(t, []string{"Acme", "1 Main St"}, withCompany[:2])
	assert.Equal(t, texts, withCompany[2:])
}

func TestBuildRequiresSubmission(t *testing.T) {
	_, err := render.NewRenderer().Build(render.Document{})
	assert.Error(t, err)
}
