package output

import (
	"bytes"
	"io"
)

// Writer handles output formatting.
type Writer struct {
	w io.Writer
	f Formatter
}

// NewWriter creates a new output writer.
func NewWriter(w io.Writer, f Formatter) *Writer {
	return &Writer{
		w: w,
		f: f,
	}
}

// Write formats v and writes it, ending with a newline.
func (w *Writer) Write(v any) error {
	data, err := w.f.Format(v)
	if err != nil {
		return err
	}
	if len(data) > 0 && !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	_, err = w.w.Write(data)
	return err
}

// WriteError writes an error response.
func (w *Writer) WriteError(code, message string, suggestions []string, context map[string]any) error {
	resp := ErrorResponse{
		Error: ErrorDetail{
			Code:        code,
			Message:     message,
			Suggestions: suggestions,
			Context:     context,
		},
	}
	return w.Write(resp)
}
