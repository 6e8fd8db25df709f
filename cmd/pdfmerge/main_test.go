package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quotation-merger/internal/domain"
	"quotation-merger/internal/pdf"
	"quotation-merger/internal/pdf/pdftest"
	apperrors "quotation-merger/pkg/errors"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MAX_FILE_SIZE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("OUTPUT_FILENAME", "")
	return dir
}

func TestParseFlags(t *testing.T) {
	var stderr bytes.Buffer
	opts, err := parseFlags([]string{"pdfmerge", "-q", "q.pdf", "-H", "h.pdf", "--footer", "f.pdf", "-b", "bg.pdf", "-o", "out.pdf", "-v"}, &stderr)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if opts.quotation != "q.pdf" || opts.header != "h.pdf" || opts.footer != "f.pdf" || opts.background != "bg.pdf" || opts.output != "out.pdf" {
		t.Errorf("Unexpected options: %+v", opts)
	}
	if !opts.verbose {
		t.Error("Expected verbose to be set")
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"pdfmerge", "--nope"}},
		{"positional argument", []string{"pdfmerge", "-q", "q.pdf", "extra.pdf"}},
		{"missing value", []string{"pdfmerge", "--quotation"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			_, err := parseFlags(tt.args, &stderr)
			if !errors.Is(err, ErrUsage) {
				t.Fatalf("Expected ErrUsage, got %v", err)
			}
			if exitCodeFor(err) != ExitUsage {
				t.Errorf("Expected exit code %d, got %d", ExitUsage, exitCodeFor(err))
			}
		})
	}
}

func TestApplyJob_FlagsWin(t *testing.T) {
	opts := &options{quotation: "cli.pdf"}
	opts.applyJob(&Job{Quotation: "job.pdf", Header: "h.pdf", Output: "out.pdf"})

	if opts.quotation != "cli.pdf" {
		t.Errorf("Expected flag value to win, got %s", opts.quotation)
	}
	if opts.header != "h.pdf" || opts.output != "out.pdf" {
		t.Errorf("Expected job values to fill gaps, got %+v", opts)
	}
}

func TestLoadJob(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "job.yaml", []byte("quotation: quote.pdf\nbackground: /abs/bg.pdf\noutput: out/final.pdf\n"))

	job, err := loadJob(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if job.Quotation != filepath.Join(dir, "quote.pdf") {
		t.Errorf("Expected relative path resolved against job dir, got %s", job.Quotation)
	}
	if job.Background != "/abs/bg.pdf" {
		t.Errorf("Expected absolute path kept, got %s", job.Background)
	}
	if job.Header != "" {
		t.Errorf("Expected empty header, got %s", job.Header)
	}
}

func TestLoadJob_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("unknown key", func(t *testing.T) {
		path := writeFile(t, dir, "bad.yaml", []byte("quotation: q.pdf\nwatermark: w.pdf\n"))
		_, err := loadJob(path)
		if !errors.Is(err, ErrJobParse) {
			t.Fatalf("Expected ErrJobParse, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadJob(filepath.Join(dir, "absent.yaml"))
		if !errors.Is(err, ErrJobRead) || !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("Expected ErrJobRead wrapping ErrNotExist, got %v", err)
		}
		if exitCodeFor(err) != ExitIO {
			t.Errorf("Expected exit code %d, got %d", ExitIO, exitCodeFor(err))
		}
	})
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", fmt.Errorf("%w: bad", ErrUsage), ExitUsage},
		{"missing input", apperrors.NewValidationError("x", domain.NewMissingInputError(domain.RoleMain)), ExitUsage},
		{"oversize", domain.NewOversizeError(domain.RoleFooter, 11, 10), ExitUsage},
		{"read", fmt.Errorf("%w: x", ErrReadInput), ExitIO},
		{"not exist", fs.ErrNotExist, ExitIO},
		{"parse", apperrors.NewProcessingError("x", domain.NewParseError(domain.RoleHeader, errors.New("bad xref"))), ExitDocument},
		{"empty", domain.NewEmptyDocumentError(domain.RoleMain), ExitDocument},
		{"other", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRun_MergesAllRoles(t *testing.T) {
	dir := setupEnv(t)
	header := writeFile(t, dir, "header.pdf", pdftest.Build(1, 300, 400))
	quote := writeFile(t, dir, "quote.pdf", pdftest.Build(2, 595.28, 841.89))
	footer := writeFile(t, dir, "footer.pdf", pdftest.Build(1, 300, 400))
	bg := writeFile(t, dir, "bg.pdf", pdftest.Build(1, 595.28, 841.89))
	out := filepath.Join(dir, "out.pdf")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"pdfmerge", "-H", header, "-q", quote, "-f", footer, "-b", bg, "-o", out}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("Expected no error, got %v (stderr: %s)", err, stderr.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Expected output file, got %v", err)
	}
	n, err := pdf.PageCount(data)
	if err != nil {
		t.Fatalf("Expected readable output, got %v", err)
	}
	if n != 4 {
		t.Errorf("Expected 4 pages, got %d", n)
	}
	if !strings.Contains(stdout.String(), "(4 pages)") {
		t.Errorf("Expected page count on stdout, got %q", stdout.String())
	}
}

func TestRun_JobFile(t *testing.T) {
	dir := setupEnv(t)
	writeFile(t, dir, "quote.pdf", pdftest.Build(3, 595.28, 841.89))
	job := writeFile(t, dir, "job.yaml", []byte("quotation: quote.pdf\noutput: merged.pdf\n"))

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"pdfmerge", "--job", job}, &stdout, &stderr); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "merged.pdf"))
	if err != nil {
		t.Fatalf("Expected output next to job file, got %v", err)
	}
	if n, _ := pdf.PageCount(data); n != 3 {
		t.Errorf("Expected 3 pages, got %d", n)
	}
}

func TestRun_Failures(t *testing.T) {
	dir := setupEnv(t)
	valid := writeFile(t, dir, "valid.pdf", pdftest.Build(1, 595.28, 841.89))
	broken := writeFile(t, dir, "broken.pdf", []byte("this is not a pdf"))
	empty := writeFile(t, dir, "empty.pdf", nil)
	out := filepath.Join(dir, "out.pdf")

	tests := []struct {
		name string
		args []string
		env  map[string]string
		want int
	}{
		{"no quotation", []string{"pdfmerge", "-o", out}, nil, ExitUsage},
		{"empty quotation file", []string{"pdfmerge", "-q", empty, "-o", out}, nil, ExitUsage},
		{"missing file", []string{"pdfmerge", "-q", filepath.Join(dir, "absent.pdf"), "-o", out}, nil, ExitIO},
		{"input is a directory", []string{"pdfmerge", "-q", dir, "-o", out}, nil, ExitIO},
		{"broken header", []string{"pdfmerge", "-H", broken, "-q", valid, "-o", out}, nil, ExitDocument},
		{"broken quotation", []string{"pdfmerge", "-q", broken, "-o", out}, nil, ExitDocument},
		{"oversize", []string{"pdfmerge", "-q", valid, "-o", out}, map[string]string{"MAX_FILE_SIZE": "16"}, ExitUsage},
		{"unwritable output", []string{"pdfmerge", "-q", valid, "-o", filepath.Join(dir, "missing", "out.pdf")}, nil, ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args, &stdout, &stderr)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if got := exitCodeFor(err); got != tt.want {
				t.Errorf("Expected exit code %d, got %d (%v)", tt.want, got, err)
			}
		})
	}

	if _, err := os.Stat(out); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected no output file after failures, got %v", err)
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"pdfmerge", "--help"}, &stdout, &stderr); err != nil {
		t.Fatalf("Expected help to succeed, got %v", err)
	}
	if !strings.Contains(stderr.String(), "--quotation") {
		t.Errorf("Expected usage on stderr, got %q", stderr.String())
	}
}
