package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

var ErrUsage = errors.New("usage error")

// options holds the command line, after any job file has been folded in.
type options struct {
	job        string
	header     string
	quotation  string
	footer     string
	background string
	output     string
	verbose    bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("pdfmerge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: pdfmerge --quotation quote.pdf [--header h.pdf] [--footer f.pdf] [--background bg.pdf] [-o out.pdf]")
		fmt.Fprintln(stderr, "       pdfmerge --job job.yaml")
		fs.PrintDefaults()
	}

	fs.StringVarP(&o.job, "job", "j", "", "YAML file naming the inputs and output")
	fs.StringVarP(&o.header, "header", "H", "", "header PDF, placed first")
	fs.StringVarP(&o.quotation, "quotation", "q", "", "quotation PDF (required)")
	fs.StringVarP(&o.footer, "footer", "f", "", "footer PDF, placed last")
	fs.StringVarP(&o.background, "background", "b", "", "background template; its first page goes under every quotation page")
	fs.StringVarP(&o.output, "output", "o", "", "output file (default final_with_background.pdf)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log progress to stderr")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", ErrUsage, fs.Args())
	}
	return o, nil
}

// applyJob fills options left empty on the command line from job.
func (o *options) applyJob(job *Job) {
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&o.header, job.Header)
	fill(&o.quotation, job.Quotation)
	fill(&o.footer, job.Footer)
	fill(&o.background, job.Background)
	fill(&o.output, job.Output)
}
