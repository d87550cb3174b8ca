package media

import "fmt"

// ExtractionError reports a failed metadata extraction for a single file.
// Any malformed tag aborts the whole extraction; callers decide whether to
// ingest the file without metadata or skip it.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("metadata extraction failed for %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ConversionError reports a failed decode or encode during a format
// conversion. Filesystem write failures are returned as plain wrapped I/O
// errors, not as ConversionError.
type ConversionError struct {
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed for %s: %v", e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }
