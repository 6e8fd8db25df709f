// Command pdfmerge assembles a header, a quotation and a footer into one PDF,
// optionally printing the quotation pages over a background template.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"quotation-merger/internal/config"
	"quotation-merger/internal/domain"
	"quotation-merger/internal/pdf"
	"quotation-merger/internal/service"
	"quotation-merger/pkg/logger"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdfmerge: %v\n", err)
	}
	os.Exit(exitCodeFor(err))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if opts.job != "" {
		job, err := loadJob(opts.job)
		if err != nil {
			return err
		}
		opts.applyJob(job)
	}
	if opts.quotation == "" {
		return fmt.Errorf("%w: --quotation is required", domain.ErrMissingRequiredInput)
	}

	// A missing .env is normal on the command line.
	_ = godotenv.Load()
	cfg := config.LoadAppConfig()

	level := cfg.GetLogLevel()
	if !opts.verbose {
		level = "warn"
	} else if level != "debug" {
		level = "info"
	}
	log := logger.New(level, stderr)

	undo, _ := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		log.Debug(fmt.Sprintf(format, args...))
	}))
	defer undo()

	if opts.output == "" {
		opts.output = cfg.GetOutputFilename()
	}

	limit := cfg.GetMaxFileSize()
	req := &domain.MergeRequest{}
	inputs := []struct {
		role domain.Role
		path string
		dst  **domain.InputDocument
	}{
		{domain.RoleHeader, opts.header, &req.Header},
		{domain.RoleMain, opts.quotation, &req.Main},
		{domain.RoleFooter, opts.footer, &req.Footer},
		{domain.RoleBackground, opts.background, &req.Background},
	}
	for _, in := range inputs {
		if in.path == "" {
			continue
		}
		doc, err := readInput(in.role, in.path, limit)
		if err != nil {
			return err
		}
		*in.dst = doc
	}

	compositor := pdf.NewCompositor()
	merger := service.NewMergeService(pdf.NewAssembler(compositor), compositor, cfg, log)

	out, err := merger.Merge(ctx, req)
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.output, out.Data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	fmt.Fprintf(stdout, "%s (%d pages)\n", opts.output, out.PageCount)
	return nil
}

// readInput loads path for role. Files larger than limit are rejected from stat alone.
func readInput(role domain.Role, path string, limit int64) (*domain.InputDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, role, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, role, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s: %s is a directory", ErrReadInput, role, path)
	}
	if info.Size() > limit {
		return nil, domain.NewOversizeError(role, info.Size(), limit)
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, role, err)
	}
	return &domain.InputDocument{
		Role:         role,
		Name:         path,
		Data:         data,
		DeclaredSize: info.Size(),
	}, nil
}
