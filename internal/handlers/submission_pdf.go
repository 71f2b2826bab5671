// submission_pdf.go
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

package handlers

import (
	"bufio"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/render"
	"github.com/localnerve/easyform-api/internal/services"
	"github.com/localnerve/easyform-api/internal/types"
	"go.uber.org/zap"
)

// SubmissionPDFHandler handles /api/submission-pdf
type SubmissionPDFHandler struct {
	Stores   *database.Provider
	Renderer *render.Renderer
	Log      *zap.Logger
}

// Routes returns the method table for the resource path
func (h *SubmissionPDFHandler) Routes() Methods {
	return Methods{
		fiber.MethodGet: h.Get,
	}
}

// Get handles GET /api/submission-pdf?id=
// @Summary Render a submission as PDF
// @Description Streams the submission with its company header and form title as an inline PDF.
// @Tags Submissions
// @Produce application/pdf
// @Param id query string true "Submission ID"
// @Success 200 {file} file
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /submission-pdf [get]
func (h *SubmissionPDFHandler) Get(c *fiber.Ctx) error {
	id, err := requireID(c)
	if err != nil {
		return err
	}

	var doc *services.SubmissionDocument
	err = h.Stores.WithStore(c.UserContext(), func(ctx context.Context, store database.Store) error {
		doc, err = services.LoadSubmissionDocument(ctx, store, id, h.Log)
		return err
	})
	if err != nil {
		return err
	}

	// Everything that can fail as JSON happens before the headers go out.
	pdf, err := h.Renderer.Build(render.Document{
		Submission: doc.Submission,
		Company:    doc.Company,
		Form:       doc.Form,
	})
	if err != nil {
		return &types.CustomError{
			Code:    fiber.StatusInternalServerError,
			Type:    types.CodePDF,
			Message: fmt.Sprintf("failed to render submission %s", id),
			Err:     err,
		}
	}

	log := h.Log
	if log == nil {
		log = zap.NewNop()
	}
	submissionID := doc.Submission.ID
	c.Set(fiber.HeaderContentType, render.ContentType)
	c.Set(fiber.HeaderContentDisposition, render.ContentDisposition(submissionID))
	c.Status(fiber.StatusOK)
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		if err := pdf.Output(w); err != nil {
			log.Error("pdf stream aborted", zap.String("submission_id", submissionID), zap.Error(err))
			return
		}
		if err := w.Flush(); err != nil {
			log.Warn("pdf stream flush failed", zap.String("submission_id", submissionID), zap.Error(err))
		}
	})
	return nil
}
