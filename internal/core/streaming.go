package core

// streaming.go provides the readers an upload passes through before it
// reaches the CSV parser:
//
//   - countingReader: tracks raw bytes read, for logging
//   - BOM skipping:   drops a leading UTF-8 BOM (0xEF 0xBB 0xBF) from Windows exports
//   - utf8Sanitizer:  replaces invalid UTF-8 bytes with '?'
//
// Use wrapInput to apply all of them in the correct order.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// countingReader wraps an io.Reader and counts the bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// BytesRead returns the number of bytes read so far.
func (c *countingReader) BytesRead() int64 {
	return c.n
}

// skipBOM discards a leading UTF-8 byte order mark, if present.
func skipBOM(br *bufio.Reader) error {
	head, err := br.Peek(len(utf8BOM))
	if err != nil && err != io.EOF {
		return err
	}
	if bytes.Equal(head, utf8BOM) {
		_, err = br.Discard(len(utf8BOM))
		return err
	}
	return nil
}

// utf8Sanitizer decodes its source rune by rune and substitutes '?' for
// every byte that is not part of a valid UTF-8 sequence. A sequence split
// across reads of the source is decoded whole because bufio buffers it.
type utf8Sanitizer struct {
	src     *bufio.Reader
	pending []byte
}

func newUTF8Sanitizer(src *bufio.Reader) *utf8Sanitizer {
	return &utf8Sanitizer{src: src, pending: make([]byte, 0, utf8.UTFMax)}
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(s.pending) > 0 {
			c := copy(p[n:], s.pending)
			s.pending = s.pending[c:]
			n += c
			continue
		}

		r, size, err := s.src.ReadRune()
		if err != nil {
			if n > 0 && err == io.EOF {
				return n, nil
			}
			return n, err
		}
		if r == utf8.RuneError && size == 1 {
			r = '?'
		}

		if r < utf8.RuneSelf {
			p[n] = byte(r)
			n++
			continue
		}
		s.pending = utf8.AppendRune(s.pending[:0], r)
	}
	return n, nil
}

// wrapInput returns a reader that yields r without a BOM and with invalid
// UTF-8 replaced, plus the counter of raw bytes consumed from r.
func wrapInput(r io.Reader) (io.Reader, *countingReader, error) {
	counter := &countingReader{r: r}
	br := bufio.NewReader(counter)
	if err := skipBOM(br); err != nil {
		return nil, nil, err
	}
	return newUTF8Sanitizer(br), counter, nil
}
