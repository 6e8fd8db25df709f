package pdf

import (
	"bytes"
	"fmt"
	"io"

	"quotation-merger/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Assembler concatenates header, main and footer pages, compositing the main
// document over a background template when one is given.
type Assembler struct {
	compositor domain.Compositor
}

// NewAssembler creates an assembler that delegates background compositing to compositor.
func NewAssembler(compositor domain.Compositor) *Assembler {
	return &Assembler{compositor: compositor}
}

// Merge builds header ++ main ++ footer. Nil optional inputs are skipped.
func (a *Assembler) Merge(header, main, footer, background []byte) ([]byte, error) {
	if len(main) == 0 {
		return nil, domain.NewMissingInputError(domain.RoleMain)
	}

	var parts []*document
	defer func() {
		for _, d := range parts {
			d.Close()
		}
	}()

	if header != nil {
		doc, err := openDocument(domain.RoleHeader, header)
		if err != nil {
			return nil, err
		}
		parts = append(parts, doc)
	}

	effective := main
	if background != nil {
		composited, err := a.compositor.Overlay(main, background)
		if err != nil {
			return nil, err
		}
		effective = composited
	}

	mainDoc, err := openDocument(domain.RoleMain, effective)
	if err != nil {
		return nil, err
	}
	parts = append(parts, mainDoc)
	if mainDoc.pageCount() == 0 {
		return nil, domain.NewEmptyDocumentError(domain.RoleMain)
	}

	if footer != nil {
		doc, err := openDocument(domain.RoleFooter, footer)
		if err != nil {
			return nil, err
		}
		parts = append(parts, doc)
	}

	return concat(parts)
}

// PageCount returns the number of pages in data.
func (a *Assembler) PageCount(data []byte) (int, error) {
	return PageCount(data)
}

// concat writes the pages of parts in order. Documents without pages add nothing.
func concat(parts []*document) ([]byte, error) {
	var (
		sources  []*document
		expected int
	)
	for _, d := range parts {
		if d.pageCount() == 0 {
			continue
		}
		sources = append(sources, d)
		expected += d.pageCount()
	}

	if len(sources) == 1 {
		return bytes.Clone(sources[0].raw), nil
	}

	rsc := make([]io.ReadSeeker, 0, len(sources))
	for _, d := range sources {
		rsc = append(rsc, d.reader())
	}

	var out bytes.Buffer
	if err := api.MergeRaw(rsc, &out, false, newConfiguration()); err != nil {
		return nil, fmt.Errorf("concatenate documents: %w", err)
	}

	got, err := PageCount(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("read merged document: %w", err)
	}
	if got != expected {
		return nil, fmt.Errorf("merged document has %d pages, expected %d", got, expected)
	}
	return out.Bytes(), nil
}

// Merge assembles the inputs with a default compositor.
func Merge(header, main, footer, background []byte) ([]byte, error) {
	return NewAssembler(NewCompositor()).Merge(header, main, footer, background)
}
