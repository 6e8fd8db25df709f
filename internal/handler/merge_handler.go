// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"quotation-merger/internal/domain"
)

// multipartMemory is the part of a form kept in memory before spilling to disk.
const multipartMemory = 32 << 20

// formFields lists the accepted multipart field names per role, preferred name first.
var formFields = map[domain.Role][]string{
	domain.RoleHeader:     {"header"},
	domain.RoleMain:       {"quotation", "main"},
	domain.RoleFooter:     {"footer"},
	domain.RoleBackground: {"background"},
}

// MergeHandler handles merge and overlay requests
type MergeHandler struct {
	mergeService domain.MergeService
	maxFileSize  int64
	logger       domain.Logger
}

// NewMergeHandler creates a new merge handler
func NewMergeHandler(mergeService domain.MergeService, maxFileSize int64, logger domain.Logger) *MergeHandler {
	return &MergeHandler{
		mergeService: mergeService,
		maxFileSize:  maxFileSize,
		logger:       logger,
	}
}

// Merge handles POST /merge with header, quotation, footer and background parts.
func (h *MergeHandler) Merge(w http.ResponseWriter, r *http.Request) {
	docs, ok := h.readForm(w, r)
	if !ok {
		return
	}

	out, err := h.mergeService.Merge(r.Context(), &domain.MergeRequest{
		Header:     docs[domain.RoleHeader],
		Main:       docs[domain.RoleMain],
		Footer:     docs[domain.RoleFooter],
		Background: docs[domain.RoleBackground],
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.writePDF(w, out)
}

// Overlay handles POST /overlay with quotation and background parts.
func (h *MergeHandler) Overlay(w http.ResponseWriter, r *http.Request) {
	docs, ok := h.readForm(w, r)
	if !ok {
		return
	}

	out, err := h.mergeService.Overlay(r.Context(), docs[domain.RoleMain], docs[domain.RoleBackground])
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.writePDF(w, out)
}

// Limits reports the upload bounds and canvas so clients can check before sending.
func (h *MergeHandler) Limits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"max_file_size": h.maxFileSize,
		"fields":        formFields,
		"canvas": map[string]float64{
			"width":  domain.CanvasWidth,
			"height": domain.CanvasHeight,
		},
	})
}

// readForm parses the multipart body into one InputDocument per supplied role.
// Parts are read up to one byte past the limit; the declared part size is kept
// for the size check.
func (h *MergeHandler) readForm(w http.ResponseWriter, r *http.Request) (map[domain.Role]*domain.InputDocument, bool) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return nil, false
	}
	defer r.MultipartForm.RemoveAll()

	docs := make(map[domain.Role]*domain.InputDocument, len(formFields))
	for role, names := range formFields {
		for _, name := range names {
			doc, err := h.readPart(r, role, name)
			if err != nil {
				h.logger.Error("Failed to read upload", err, "field", name)
				writeError(w, http.StatusBadRequest, "Could not read "+name+" upload")
				return nil, false
			}
			if doc != nil {
				docs[role] = doc
				break
			}
		}
	}
	return docs, true
}

func (h *MergeHandler) readPart(r *http.Request, role domain.Role, field string) (*domain.InputDocument, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	h.logger.Debug("Received upload", "role", role, "name", header.Filename, "size", header.Size)
	return &domain.InputDocument{
		Role:         role,
		Name:         header.Filename,
		Data:         data,
		DeclaredSize: header.Size,
	}, nil
}

func (h *MergeHandler) writePDF(w http.ResponseWriter, out *domain.OutputDocument) {
	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": out.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Data)))
	w.Header().Set("X-Page-Count", strconv.Itoa(out.PageCount))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.Data); err != nil {
		h.logger.Warn("Failed to write response", "error", err)
	}
}
