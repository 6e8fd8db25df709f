package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quotation-merger/internal/domain"
	apperrors "quotation-merger/pkg/errors"
)

// User-facing messages.
const (
	MessageMissingQuotation  = "Please upload at least the Quotation PDF."
	MessageMissingBackground = "Please upload a Background Template PDF."
	MessageMergeFailed       = "error while merging PDFs"
)

// MergeService validates uploads and runs the assembly pipeline.
type MergeService struct {
	assembler  domain.Assembler
	compositor domain.Compositor
	config     domain.Config
	logger     domain.Logger
}

// NewMergeService creates a new merge service instance
func NewMergeService(
	assembler domain.Assembler,
	compositor domain.Compositor,
	config domain.Config,
	logger domain.Logger,
) *MergeService {
	return &MergeService{
		assembler:  assembler,
		compositor: compositor,
		config:     config,
		logger:     logger,
	}
}

// Merge produces header ++ main ++ footer, with the main pages composited over
// the background when one is supplied. Presence and size checks run before
// any document is parsed.
func (s *MergeService) Merge(ctx context.Context, req *domain.MergeRequest) (*domain.OutputDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewInternalError("request cancelled", err)
	}
	if err := req.Validate(s.config.GetMaxFileSize()); err != nil {
		s.logger.Warn("Rejected merge request", "reason", err.Error())
		return nil, s.translate(err)
	}

	start := time.Now()
	s.logger.Info("Merging documents",
		"header_bytes", req.Header.Size(),
		"main_bytes", req.Main.Size(),
		"footer_bytes", req.Footer.Size(),
		"background_bytes", req.Background.Size(),
	)

	data, err := s.assembler.Merge(req.Header.Bytes(), req.Main.Bytes(), req.Footer.Bytes(), req.Background.Bytes())
	if err != nil {
		s.logger.Error("Merge failed", err)
		return nil, s.translate(err)
	}

	return s.finish(data, "merge", start)
}

// Overlay composites main over the first page of background without any header or footer.
func (s *MergeService) Overlay(ctx context.Context, main, background *domain.InputDocument) (*domain.OutputDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewInternalError("request cancelled", err)
	}
	if !main.Present() {
		return nil, s.translate(domain.NewMissingInputError(domain.RoleMain))
	}
	if !background.Present() {
		return nil, apperrors.NewValidationError(MessageMissingBackground, domain.NewMissingInputError(domain.RoleBackground))
	}
	limit := s.config.GetMaxFileSize()
	for _, d := range []*domain.InputDocument{main, background} {
		if err := d.Validate(limit); err != nil {
			s.logger.Warn("Rejected overlay request", "reason", err.Error())
			return nil, s.translate(err)
		}
	}

	start := time.Now()
	data, err := s.compositor.Overlay(main.Data, background.Data)
	if err != nil {
		s.logger.Error("Overlay failed", err)
		return nil, s.translate(err)
	}

	return s.finish(data, "overlay", start)
}

func (s *MergeService) finish(data []byte, op string, start time.Time) (*domain.OutputDocument, error) {
	pages, err := s.assembler.PageCount(data)
	if err != nil {
		s.logger.Error("Produced document is unreadable", err, "operation", op)
		return nil, apperrors.NewInternalError(MessageMergeFailed, err)
	}

	s.logger.Info("Document ready",
		"operation", op,
		"pages", pages,
		"bytes", len(data),
		"duration", time.Since(start).String(),
	)
	return domain.NewOutputDocument(data, pages, s.config.GetOutputFilename()), nil
}

// translate maps domain failures onto application errors carrying an HTTP status.
func (s *MergeService) translate(err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingRequiredInput):
		return apperrors.NewValidationError(MessageMissingQuotation, err)
	case errors.Is(err, domain.ErrOversizeInput):
		return apperrors.NewTooLargeError(oversizeMessage(s.config.GetMaxFileSize()), err)
	case errors.Is(err, domain.ErrDocumentParse), errors.Is(err, domain.ErrEmptyDocument):
		return apperrors.NewProcessingError(MessageMergeFailed, err)
	default:
		return apperrors.NewInternalError(MessageMergeFailed, err)
	}
}

func oversizeMessage(limit int64) string {
	const mib = 1 << 20
	if limit%mib == 0 {
		return fmt.Sprintf("One or more files exceed the %dMB size limit.", limit/mib)
	}
	return fmt.Sprintf("One or more files exceed the %d byte size limit.", limit)
}
