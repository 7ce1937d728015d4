// Package fs reads post sources from disk or a stream and decodes them into
// UTF-8 text.
package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/encoding/unicode"
)

// MaxPostSize bounds how much of a source is read.
const MaxPostSize = 4 << 20

const (
	textDetectionSampleSize      = 4096
	nonPrintableThresholdPercent = 30
)

var (
	// ErrBinary reports a source that does not look like text.
	ErrBinary = errors.New("not a text file")
	// ErrTooLarge reports a source above MaxPostSize.
	ErrTooLarge = errors.New("post too large")
)

type unicodeEncoding int

const (
	encodingUnknown unicodeEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

var binaryExtensions = map[string]struct{}{
	".7z":   {},
	".avif": {},
	".bmp":  {},
	".gif":  {},
	".gz":   {},
	".ico":  {},
	".jpeg": {},
	".jpg":  {},
	".mp3":  {},
	".mp4":  {},
	".pdf":  {},
	".png":  {},
	".svg":  {},
	".tar":  {},
	".webm": {},
	".webp": {},
	".zip":  {},
}

// Load reads and decodes the post at path.
func Load(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open post: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Read(f, path)
}

// Read decodes a post from r. The name, if any, is used to reject obvious
// binary extensions before sniffing the content.
func Read(r io.Reader, name string) (string, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxPostSize+1))
	if err != nil {
		return "", fmt.Errorf("read post: %w", err)
	}
	if len(content) > MaxPostSize {
		return "", fmt.Errorf("%w: %s exceeds %s", ErrTooLarge, displayName(name), humanize.IBytes(MaxPostSize))
	}
	return Decode(name, content)
}

// Decode converts content into UTF-8 text, stripping a UTF-8 byte order mark
// and transcoding UTF-16 sources that carry one.
func Decode(name string, content []byte) (string, error) {
	if !IsText(name, content) {
		return "", fmt.Errorf("%w: %s", ErrBinary, displayName(name))
	}
	switch detectUnicodeEncoding(content) {
	case encodingUTF8BOM:
		return string(content[3:]), nil
	case encodingUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case encodingUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	default:
		return string(content), nil
	}
}

// IsText reports whether content looks like text.
func IsText(name string, content []byte) bool {
	if looksBinaryByExtension(name) {
		return false
	}
	if len(content) == 0 {
		return true
	}

	sample := content
	if len(sample) > textDetectionSampleSize {
		sample = sample[:textDetectionSampleSize]
	}
	if detectUnicodeEncoding(sample) != encodingUnknown {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	if utf8.Valid(sample) {
		return true
	}

	nonPrintable := 0
	for _, b := range sample {
		if !isCommonTextByte(b) {
			nonPrintable++
		}
	}
	return nonPrintable*100/len(sample) < nonPrintableThresholdPercent
}

func displayName(name string) string {
	if name == "" {
		return "input"
	}
	return name
}

func looksBinaryByExtension(name string) bool {
	if name == "" {
		return false
	}
	_, ok := binaryExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == '\t' || b == '\n' || b == '\r':
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	case b >= 0x80:
		return true
	default:
		return false
	}
}

func detectUnicodeEncoding(sample []byte) unicodeEncoding {
	switch {
	case bytes.HasPrefix(sample, []byte{0xEF, 0xBB, 0xBF}):
		return encodingUTF8BOM
	case bytes.HasPrefix(sample, []byte{0xFF, 0xFE}):
		return encodingUTF16LE
	case bytes.HasPrefix(sample, []byte{0xFE, 0xFF}):
		return encodingUTF16BE
	}
	return encodingUnknown
}

func decodeUTF16(content []byte, endian unicode.Endianness) (string, error) {
	out, err := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder().Bytes(content)
	if err != nil {
		return "", fmt.Errorf("decode utf-16: %w", err)
	}
	return string(out), nil
}
