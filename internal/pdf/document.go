// Package pdf composites and concatenates PDF documents on top of pdfcpu.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"quotation-merger/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	errEmptyBuffer = errors.New("empty buffer")

	configDirOnce sync.Once
)

// newConfiguration returns a fresh pdfcpu configuration.
// pdfcpu mutates its configuration while processing, so calls never share one.
func newConfiguration() *model.Configuration {
	configDirOnce.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// document is a parsed PDF held for the duration of a single call.
type document struct {
	role domain.Role
	raw  []byte
	ctx  *model.Context
}

// openDocument parses raw. Parse failures are reported as domain.ErrDocumentParse for role.
func openDocument(role domain.Role, raw []byte) (doc *document, err error) {
	if len(raw) == 0 {
		return nil, domain.NewParseError(role, errEmptyBuffer)
	}

	// pdfcpu panics on some broken cross reference sections.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = domain.NewParseError(role, fmt.Errorf("%v", r))
		}
	}()

	ctx, err := api.ReadContext(bytes.NewReader(raw), newConfiguration())
	if err != nil {
		return nil, domain.NewParseError(role, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, domain.NewParseError(role, err)
	}
	if ctx.PageCount > 0 {
		if err := api.ValidateContext(ctx); err != nil {
			return nil, domain.NewParseError(role, err)
		}
	}

	return &document{role: role, raw: raw, ctx: ctx}, nil
}

func (d *document) pageCount() int {
	if d.ctx == nil {
		return 0
	}
	return d.ctx.PageCount
}

// reader returns a fresh reader over the original bytes.
func (d *document) reader() io.ReadSeeker {
	return bytes.NewReader(d.raw)
}

// Close drops the parsed cross reference table and the buffer reference.
func (d *document) Close() error {
	if d == nil {
		return nil
	}
	d.ctx = nil
	d.raw = nil
	return nil
}

// PageCount parses data and returns its number of pages.
func PageCount(data []byte) (int, error) {
	doc, err := openDocument("", data)
	if err != nil {
		return 0, err
	}
	defer doc.Close()
	return doc.pageCount(), nil
}
