package listener

import (
	"bytes"
	"io"
)

// crlfConn normalizes line endings in both directions: peers may send "\r\n"
// or a bare "\r", and expect "\r\n" back.
type crlfConn struct {
	r io.Reader
	w io.Writer
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &crlfConn{r: rw, w: rw}
}

// withGreeting returns a connection whose input starts with line, as if the
// peer had typed it.
func withGreeting(rw io.ReadWriter, line string) io.ReadWriter {
	return &crlfConn{
		r: io.MultiReader(bytes.NewBufferString(line+"\n"), rw),
		w: rw,
	}
}

func (c *crlfConn) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		data := bytes.ReplaceAll(p[:n], []byte("\r\n"), []byte("\n"))
		data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
		n = copy(p, data)
	}
	return n, err
}

func (c *crlfConn) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	// Callers count the bytes they passed in, not the expanded ones.
	return len(p), nil
}
