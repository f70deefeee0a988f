package images

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Source is an opened input stream with its detected format.
type Source struct {
	// Name as given on the command line ("-" denotes stdin).
	Name string
	// Format detected from the extension or the stream's magic bytes.
	Format Format

	r *bufio.Reader
	c io.Closer
}

// Sink is an opened output target with its resolved format.
type Sink struct {
	// Name as given on the command line ("-" denotes stdout).
	Name string
	// Format resolved from the extension, or inherited from the input.
	Format Format

	w io.Writer
	c io.Closer
}

// IsStdStream reports whether a CLI path argument addresses a standard
// stream: either "-" alone or the "-.ext" forced-format form.
func IsStdStream(name string) bool {
	return strings.HasPrefix(name, "-")
}

// OpenSource opens name for reading and determines its format. A
// leading dash selects stdin; "-.ext" forces the format. Files without
// a recognized extension are sniffed from their first four bytes
// without consuming them, so piped input works.
func OpenSource(name string) (*Source, error) {
	src := &Source{Name: name}
	if IsStdStream(name) {
		src.r = bufio.NewReader(os.Stdin)
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, errors.Wrapf(err, "could not open file %s for reading", name)
		}
		src.r = bufio.NewReader(f)
		src.c = f
	}

	if f, ok := FormatFromExtension(name); ok {
		src.Format = f
		return src, nil
	}
	peek, err := src.r.Peek(4)
	if err != nil {
		src.Close()
		return nil, errors.Wrapf(err, "could not read file %s", name)
	}
	f, err := SniffFormat(peek)
	if err != nil {
		src.Close()
		return nil, err
	}
	src.Format = f
	return src, nil
}

// OpenSink opens name for writing. A leading dash selects stdout. When
// the name carries no recognized extension the fallback format (the
// input's) is used.
func OpenSink(name string, fallback Format) (*Sink, error) {
	snk := &Sink{Name: name, Format: fallback}
	if f, ok := FormatFromExtension(name); ok {
		snk.Format = f
	}
	if snk.Format == FormatInvalid {
		return nil, errors.Errorf("could not determine output format for %s", name)
	}
	if IsStdStream(name) {
		snk.w = os.Stdout
		return snk, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open file %s for writing", name)
	}
	snk.w = f
	snk.c = f
	return snk, nil
}

// Decode decodes the source's stream with its detected format.
func (s *Source) Decode(desiredChannels int) (*Image, error) {
	return Decode(s.r, s.Format, desiredChannels)
}

// Close releases the underlying file, if any.
func (s *Source) Close() error {
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}

// Encode writes img to the sink in its resolved format.
func (s *Sink) Encode(img *Image) error {
	if err := Encode(s.w, img, s.Format); err != nil {
		return errors.Wrapf(err, "could not write image to %s", s.Name)
	}
	return nil
}

// Close flushes and releases the underlying file, if any.
func (s *Sink) Close() error {
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}
