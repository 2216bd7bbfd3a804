// SPDX-License-Identifier: MIT

// Package jsonl reads dispatch requests and writes dispatch responses as
// JSON lines: one object per line, blank lines ignored.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/katalvlaran/mlcompute/dispatch"
)

// maxLine bounds a single request line (a 1000×1000 matrix is ~10 MiB of JSON).
const maxLine = 64 << 20

// Reader decodes one dispatch.Request per non-blank line.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	return &Reader{sc: sc}
}

// Next returns the next request, or io.EOF when the input is exhausted.
// Decode errors carry the 1-based line number.
func (r *Reader) Next() (dispatch.Request, error) {
	for r.sc.Scan() {
		r.line++
		raw := bytes.TrimSpace(r.sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		var req dispatch.Request
		if err := json.Unmarshal(raw, &req); err != nil {
			return dispatch.Request{}, errors.Wrapf(err, "line %d", r.line)
		}
		return req, nil
	}
	if err := r.sc.Err(); err != nil {
		return dispatch.Request{}, errors.Wrapf(err, "reading line %d", r.line+1)
	}

	return dispatch.Request{}, io.EOF
}

// ReadAll drains r into a slice of requests.
func ReadAll(r io.Reader) ([]dispatch.Request, error) {
	var (
		rd  = NewReader(r)
		out []dispatch.Request
	)
	for {
		req, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, req)
	}
}

// Writer encodes one value per line.
type Writer struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewWriter returns a Writer over w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	bw := bufio.NewWriter(w)

	return &Writer{w: bw, enc: json.NewEncoder(bw)}
}

// Write encodes v followed by a newline.
func (w *Writer) Write(v any) error {
	return errors.Wrap(w.enc.Encode(v), "encoding json line")
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return errors.Wrap(w.w.Flush(), "flushing json lines")
}

// WriteAll encodes every response and flushes. On an encoding error the
// lines already encoded are still flushed.
func WriteAll(w io.Writer, resps []dispatch.Response) error {
	jw := NewWriter(w)
	for i := range resps {
		if err := jw.Write(resps[i]); err != nil {
			_ = jw.Flush()
			return errors.Wrapf(err, "response %d", i)
		}
	}

	return jw.Flush()
}
