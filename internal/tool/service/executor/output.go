package executor

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
)

// collector captures raw command output up to maxBytes.
// Bytes past the limit are drained and dropped so the child never blocks on a full pipe.
type collector struct {
	buffer    bytes.Buffer
	maxBytes  int64
	truncated bool
}

func newCollector(maxBytes int64) *collector {
	return &collector{maxBytes: maxBytes}
}

func (c *collector) Write(p []byte) (n int, err error) {
	if c.maxBytes <= 0 {
		return c.buffer.Write(p)
	}

	remainingSpace := c.maxBytes - int64(c.buffer.Len())
	if remainingSpace <= 0 {
		c.truncated = true
		return len(p), nil
	}

	toWrite := p
	if int64(len(toWrite)) > remainingSpace {
		toWrite = toWrite[:remainingSpace]
		c.truncated = true
	}

	written, err := c.buffer.Write(toWrite)
	if err != nil {
		return written, err
	}

	return len(p), nil
}

// String decodes the captured bytes as UTF-8, replacing invalid sequences with U+FFFD.
func (c *collector) String() string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(c.buffer.Bytes())
	if err != nil {
		// The replacing decoder does not fail on malformed input.
		return c.buffer.String()
	}
	return string(decoded)
}

func (c *collector) Truncated() bool {
	return c.truncated
}
