package listener

import "io"

// wireText adapts a network stream to the session layer's line contract:
// reads normalize CR LF, bare CR, and telnet's CR NUL down to LF; writes
// expand LF back to CR LF. The CR state carries across reads, so a CR LF
// pair split over two packets still collapses to a single newline.
type wireText struct {
	rw io.ReadWriter

	// pendingCR records that the previous read ended on a CR whose
	// follow-up byte (LF or NUL) has not been seen yet.
	pendingCR bool
}

func newWireText(rw io.ReadWriter) *wireText {
	return &wireText{rw: rw}
}

func (w *wireText) Read(p []byte) (int, error) {
	n, err := w.rw.Read(p)
	if n == 0 {
		return n, err
	}

	out := p[:0]
	for _, b := range p[:n] {
		if w.pendingCR {
			w.pendingCR = false
			if b == '\n' || b == 0 {
				continue
			}
		}
		if b == '\r' {
			w.pendingCR = true
			out = append(out, '\n')
			continue
		}
		out = append(out, b)
	}
	return len(out), err
}

func (w *wireText) Write(p []byte) (int, error) {
	expanded := make([]byte, 0, len(p)+len(p)/8)
	for _, b := range p {
		if b == '\n' {
			expanded = append(expanded, '\r')
		}
		expanded = append(expanded, b)
	}
	if _, err := w.rw.Write(expanded); err != nil {
		return 0, err
	}
	// Callers count the bytes they handed over, not the expansion.
	return len(p), nil
}
