package source

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Mode names where a line stream comes from. It changes reporting only;
// both modes are opened as plain byte streams.
type Mode string

const (
	ModeSim    Mode = "sim"
	ModeSerial Mode = "serial"
)

func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeSim, "":
		return ModeSim, nil
	case ModeSerial:
		return ModeSerial, nil
	default:
		return "", fmt.Errorf("source: unknown mode %q", raw)
	}
}

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a line reader over path. "-" is stdin. Device nodes such as
// /dev/ttyUSB0 are read as-is; gzip simulation files are detected by magic
// number or .gz suffix.
func Open(path string, maxLine int) (*Reader, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %q: %w", path, err)
	}
	r := NewReader(rc, maxLine)
	r.closer = rc
	r.Name = path
	return r, nil
}

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := fh.Stat()
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	// Character devices cannot be peeked and rewound.
	if !st.Mode().IsRegular() {
		return fh, nil
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, err
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}
