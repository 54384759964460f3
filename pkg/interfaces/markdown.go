package interfaces

// ParseOptions control Markdown→HTML conversion.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
	Sanitize   bool
}

// MarkdownParser renders Markdown source into HTML.
type MarkdownParser interface {
	Parse(markdown []byte) ([]byte, error)
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}
