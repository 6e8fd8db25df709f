package domain

import "context"

// Compositor draws every page of a main document over the first page of a background template.
type Compositor interface {
	Overlay(main, background []byte) ([]byte, error)
}

// Assembler concatenates header, main and footer pages into one document.
// Nil slices mark absent optional inputs.
type Assembler interface {
	Merge(header, main, footer, background []byte) ([]byte, error)
	PageCount(data []byte) (int, error)
}

// MergeService is the use-case layer the transports talk to.
type MergeService interface {
	Merge(ctx context.Context, req *MergeRequest) (*OutputDocument, error)
	Overlay(ctx context.Context, main, background *InputDocument) (*OutputDocument, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetAllowedOrigins() []string
	GetOutputFilename() string
}
