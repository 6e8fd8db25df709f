package domain

// Role names the slot an input document fills in the final PDF.
type Role string

const (
	RoleHeader     Role = "header"
	RoleMain       Role = "main"
	RoleFooter     Role = "footer"
	RoleBackground Role = "background"
)

// Size limits and canvas geometry shared by every merge.
const (
	MaxInputSize int64 = 200 * 1024 * 1024

	CanvasWidth  = 595.28 // ISO A4, points
	CanvasHeight = 841.89

	OutputContentType = "application/pdf"
	OutputFilename    = "final_with_background.pdf"
)

// Roles returns every role in assembly order.
func Roles() []Role {
	return []Role{RoleHeader, RoleMain, RoleFooter, RoleBackground}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleHeader, RoleMain, RoleFooter, RoleBackground:
		return true
	default:
		return false
	}
}

// InputDocument is one uploaded buffer for a given role.
// DeclaredSize is the length announced by the sender, if any.
type InputDocument struct {
	Role         Role
	Name         string
	Data         []byte
	DeclaredSize int64
}

// Present reports whether the document carries any bytes.
func (d *InputDocument) Present() bool {
	return d != nil && len(d.Data) > 0
}

// Size returns the larger of the declared size and the buffer length.
func (d *InputDocument) Size() int64 {
	if d == nil {
		return 0
	}
	return max(d.DeclaredSize, int64(len(d.Data)))
}

// Validate checks the document against the byte limit. Absent documents pass.
func (d *InputDocument) Validate(limit int64) error {
	if d == nil {
		return nil
	}
	if size := d.Size(); size > limit {
		return NewOversizeError(d.Role, size, limit)
	}
	return nil
}

// Bytes returns the payload, or nil when the document is absent.
func (d *InputDocument) Bytes() []byte {
	if !d.Present() {
		return nil
	}
	return d.Data
}

// MergeRequest groups the four inputs of a merge.
type MergeRequest struct {
	Header     *InputDocument
	Main       *InputDocument
	Footer     *InputDocument
	Background *InputDocument
}

// Documents returns the supplied documents in assembly order, skipping absent ones.
func (r *MergeRequest) Documents() []*InputDocument {
	var docs []*InputDocument
	for _, d := range []*InputDocument{r.Header, r.Main, r.Footer, r.Background} {
		if d.Present() {
			docs = append(docs, d)
		}
	}
	return docs
}

// Validate runs the presence and size checks that must pass before any parsing.
func (r *MergeRequest) Validate(limit int64) error {
	if r == nil || !r.Main.Present() {
		return NewMissingInputError(RoleMain)
	}
	for _, d := range r.Documents() {
		if err := d.Validate(limit); err != nil {
			return err
		}
	}
	return nil
}

// OutputDocument is the finished PDF handed back to the caller.
type OutputDocument struct {
	Data        []byte
	PageCount   int
	ContentType string
	Filename    string
}

// NewOutputDocument wraps data with the fixed content type and the given filename.
func NewOutputDocument(data []byte, pageCount int, filename string) *OutputDocument {
	if filename == "" {
		filename = OutputFilename
	}
	return &OutputDocument{
		Data:        data,
		PageCount:   pageCount,
		ContentType: OutputContentType,
		Filename:    filename,
	}
}
