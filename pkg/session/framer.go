package session

import (
	"bytes"
	"strings"
)

// lineFramer accumulates stream bytes and yields complete newline-terminated
// units. A unit is only released once its newline has arrived, so a unit
// split across reads is reassembled.
type lineFramer struct {
	buf        []byte
	max        int
	discarding bool
}

func newLineFramer(max int) *lineFramer {
	return &lineFramer{max: max}
}

// Feed appends data and returns every complete, non-blank unit in order.
// dropped counts units discarded for exceeding the size limit.
func (f *lineFramer) Feed(data []byte) (units []string, dropped int) {
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			if f.discarding {
				return units, dropped
			}
			f.buf = append(f.buf, data...)
			if len(f.buf) > f.max {
				// Drop what we have and ignore the rest of this unit.
				f.buf = f.buf[:0]
				f.discarding = true
				dropped++
			}
			return units, dropped
		}

		chunk := data[:i]
		data = data[i+1:]

		if f.discarding {
			f.discarding = false
			continue
		}
		if len(f.buf)+len(chunk) > f.max {
			f.buf = f.buf[:0]
			dropped++
			continue
		}

		unit := string(append(f.buf, chunk...))
		f.buf = f.buf[:0]

		unit = strings.TrimRight(unit, "\r")
		if strings.TrimSpace(unit) == "" {
			continue
		}
		units = append(units, unit)
	}
	return units, dropped
}

// Pending returns the number of buffered bytes of an incomplete unit.
func (f *lineFramer) Pending() int {
	return len(f.buf)
}
