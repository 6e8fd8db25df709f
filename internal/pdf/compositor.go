package pdf

import (
	"bytes"
	"fmt"

	"quotation-merger/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// stampDescription centres a source page on the canvas, scaled to fit, fully opaque.
const stampDescription = "scalefactor:1 rel, rotation:0, opacity:1, position:c"

// Compositor places each page of a main document on an A4 canvas over a background template.
type Compositor struct{}

// NewCompositor creates a compositor.
func NewCompositor() *Compositor {
	return &Compositor{}
}

// Overlay returns a new document with one canvas page per main page. Each
// canvas page shows page 1 of background beneath the matching main page.
func (c *Compositor) Overlay(main, background []byte) ([]byte, error) {
	mainDoc, err := openDocument(domain.RoleMain, main)
	if err != nil {
		return nil, err
	}
	defer mainDoc.Close()

	bgDoc, err := openDocument(domain.RoleBackground, background)
	if err != nil {
		return nil, err
	}
	defer bgDoc.Close()

	if bgDoc.pageCount() == 0 {
		return nil, domain.NewEmptyDocumentError(domain.RoleBackground)
	}
	if mainDoc.pageCount() == 0 {
		return nil, domain.NewEmptyDocumentError(domain.RoleMain)
	}

	canvas, err := blankCanvas(mainDoc.pageCount())
	if err != nil {
		return nil, fmt.Errorf("create canvas: %w", err)
	}

	// Page 1 of the template under every canvas page.
	template, err := api.PDFWatermarkForReadSeeker(bgDoc.reader(), 1, stampDescription, false, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("prepare background template: %w", err)
	}
	if canvas, err = stamp(canvas, template); err != nil {
		return nil, fmt.Errorf("apply background template: %w", err)
	}

	// Main page i on canvas page i, above the template.
	pages, err := api.PDFMultiWatermarkForReadSeeker(mainDoc.reader(), 1, 1, stampDescription, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("prepare %s pages: %w", domain.RoleMain, err)
	}
	out, err := stamp(canvas, pages)
	if err != nil {
		return nil, fmt.Errorf("place %s pages on canvas: %w", domain.RoleMain, err)
	}
	return out, nil
}

// stamp applies wm to every page of data.
func stamp(data []byte, wm *model.Watermark) ([]byte, error) {
	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(data), &out, nil, wm, newConfiguration()); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// blankCanvas writes a document of n empty portrait pages of canvas size.
func blankCanvas(n int) ([]byte, error) {
	dim := canvasDim()
	ctx, err := pdfcpu.CreateContextWithXRefTable(newConfiguration(), dim)
	if err != nil {
		return nil, err
	}

	pagesRef, err := ctx.Pages()
	if err != nil {
		return nil, err
	}
	pagesDict, err := ctx.DereferenceDict(*pagesRef)
	if err != nil {
		return nil, err
	}

	mediaBox := types.RectForDim(dim.Width, dim.Height)
	kids := make(types.Array, 0, n)
	for i := 0; i < n; i++ {
		ref, err := ctx.EmptyPage(pagesRef, mediaBox)
		if err != nil {
			return nil, err
		}
		// the writer skips page objects not marked valid
		if err := ctx.SetValid(*ref); err != nil {
			return nil, err
		}
		kids = append(kids, *ref)
	}
	pagesDict.Update("Kids", kids)
	pagesDict.Update("Count", types.Integer(n))
	ctx.PageCount = n

	var out bytes.Buffer
	if err := api.WriteContext(ctx, &out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func canvasDim() *types.Dim {
	return &types.Dim{Width: domain.CanvasWidth, Height: domain.CanvasHeight}
}

// Overlay composites main over background with a default compositor.
func Overlay(main, background []byte) ([]byte, error) {
	return NewCompositor().Overlay(main, background)
}
