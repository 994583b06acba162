package listener

import (
	"bytes"
	"io"
	"testing"
)

// chunkedStream replays scripted read chunks one per Read call, so tests
// control exactly where packet boundaries fall.
type chunkedStream struct {
	chunks [][]byte
	out    bytes.Buffer
}

func (s *chunkedStream) Read(p []byte) (int, error) {
	if len(s.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, s.chunks[0])
	s.chunks[0] = s.chunks[0][n:]
	if len(s.chunks[0]) == 0 {
		s.chunks = s.chunks[1:]
	}
	return n, nil
}

func (s *chunkedStream) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return string(data)
}

func TestWireTextReadNormalizesLineEndings(t *testing.T) {
	tests := map[string]struct {
		chunks [][]byte
		want   string
	}{
		"crlf": {
			chunks: [][]byte{[]byte("look\r\n")},
			want:   "look\n",
		},
		"bare cr": {
			chunks: [][]byte{[]byte("look\r")},
			want:   "look\n",
		},
		"cr nul from telnet": {
			chunks: [][]byte{[]byte("look\r\x00go east\r\x00")},
			want:   "look\ngo east\n",
		},
		"crlf split across reads": {
			chunks: [][]byte{[]byte("look\r"), []byte("\ngo east\r\n")},
			want:   "look\ngo east\n",
		},
		"plain lf passes through": {
			chunks: [][]byte{[]byte("look\ngo east\n")},
			want:   "look\ngo east\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := newWireText(&chunkedStream{chunks: tt.chunks})
			if got := readAll(t, w); got != tt.want {
				t.Errorf("read = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestWireTextWriteExpandsNewlines(t *testing.T) {
	stream := &chunkedStream{}
	w := newWireText(stream)

	n, err := w.Write([]byte("Farewell.\nCome again.\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len("Farewell.\nCome again.\n") {
		t.Errorf("n = %d, expected the pre-expansion length", n)
	}
	if got := stream.out.String(); got != "Farewell.\r\nCome again.\r\n" {
		t.Errorf("wire bytes = %q", got)
	}
}
