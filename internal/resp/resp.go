// Package resp frames commands and replies in the RESP wire format. It is
// the only place wire bytes are produced or consumed; the engine deals in
// decoded argument lists and typed replies.
package resp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reefdb/reef/internal/engine"
)

var ErrProtocol = errors.New("protocol error")

// Wire headers are untrusted; sizes past these bounds are rejected before
// any allocation so a hostile header cannot panic the connection.
const (
	maxCommandArgs = 1024 * 1024
	maxBulkLen     = 512 << 20
)

// Reader decodes client commands, each an array of bulk strings.
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadCommand reads the next command as (verb, args). It returns io.EOF
// when the peer closes the connection cleanly.
func (r *Reader) ReadCommand() (string, []string, error) {
	prefix, err := r.r.ReadByte()
	if err != nil {
		return "", nil, err
	}
	if prefix != '*' {
		return "", nil, fmt.Errorf("%w: expected array, got %q", ErrProtocol, prefix)
	}
	count, err := r.readInt()
	if err != nil {
		return "", nil, err
	}
	if count < 1 {
		return "", nil, fmt.Errorf("%w: empty command array", ErrProtocol)
	}
	if count > maxCommandArgs {
		return "", nil, fmt.Errorf("%w: command array too long: %d", ErrProtocol, count)
	}

	parts := make([]string, count)
	for i := range parts {
		parts[i], err = r.readBulk()
		if err != nil {
			return "", nil, err
		}
	}
	return parts[0], parts[1:], nil
}

func (r *Reader) readBulk() (string, error) {
	prefix, err := r.r.ReadByte()
	if err != nil {
		return "", err
	}
	if prefix != '$' {
		return "", fmt.Errorf("%w: expected bulk string, got %q", ErrProtocol, prefix)
	}
	length, err := r.readInt()
	if err != nil {
		return "", err
	}
	if length < 0 {
		return "", fmt.Errorf("%w: negative bulk length", ErrProtocol)
	}
	if length > maxBulkLen {
		return "", fmt.Errorf("%w: bulk string too long: %d", ErrProtocol, length)
	}
	buf := make([]byte, length+2)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return "", err
	}
	if buf[length] != '\r' || buf[length+1] != '\n' {
		return "", fmt.Errorf("%w: bulk string missing terminator", ErrProtocol)
	}
	return string(buf[:length]), nil
}

func (r *Reader) readInt() (int, error) {
	line, err := r.r.ReadString('\n')
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
	if err != nil {
		return 0, fmt.Errorf("%w: bad length: %v", ErrProtocol, err)
	}
	return n, nil
}

// Writer encodes engine replies onto the wire.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) WriteReply(rep engine.Reply) error {
	if err := w.encode(rep); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *Writer) encode(rep engine.Reply) error {
	var err error
	switch rep.Kind {
	case engine.SimpleReply:
		_, err = fmt.Fprintf(w.w, "+%s\r\n", rep.Str)
	case engine.ErrorReply:
		_, err = fmt.Fprintf(w.w, "-%s\r\n", rep.Str)
	case engine.IntegerReply:
		_, err = fmt.Fprintf(w.w, ":%d\r\n", rep.N)
	case engine.BulkReply:
		_, err = fmt.Fprintf(w.w, "$%d\r\n%s\r\n", len(rep.Str), rep.Str)
	case engine.NilBulkReply:
		_, err = w.w.WriteString("$-1\r\n")
	case engine.ArrayReply:
		if _, err = fmt.Fprintf(w.w, "*%d\r\n", len(rep.Elems)); err != nil {
			return err
		}
		for _, elem := range rep.Elems {
			if err = w.encode(elem); err != nil {
				return err
			}
		}
	default:
		err = fmt.Errorf("unknown reply kind: %d", rep.Kind)
	}
	return err
}
