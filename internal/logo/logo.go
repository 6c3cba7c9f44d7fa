// Package logo locates a token's logo asset and verifies that the binary
// signature agrees with the declared file extension.
package logo

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/finding"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/safety"
)

// Format is the closed set of accepted logo formats, derived from magic
// bytes rather than from the filename.
type Format string

const (
	FormatPNG     Format = "png"
	FormatJPG     Format = "jpg"
	FormatWebP    Format = "webp"
	FormatUnknown Format = ""
)

// Size limits in bytes. Crossing the soft limit is a warning, crossing the
// hard limit rejects the entry.
const (
	HardSizeLimit = 500 * 1024
	SoftSizeLimit = 100 * 1024
)

// sniffLen covers the longest signature (WebP: RIFF....WEBP).
const sniffLen = 12

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// extensions is the discovery priority order; extFormat is the single source
// of truth mapping extensions onto formats.
var extensions = []string{".png", ".jpg", ".jpeg", ".webp"}

var extFormat = map[string]Format{
	".png":  FormatPNG,
	".jpg":  FormatJPG,
	".jpeg": FormatJPG,
	".webp": FormatWebP,
}

// Sniff identifies the format of buf from its leading bytes.
func Sniff(buf []byte) Format {
	switch {
	case bytes.HasPrefix(buf, pngSignature):
		return FormatPNG
	case len(buf) >= 3 && buf[0] == 0xFF && buf[1] == 0xD8 && buf[2] == 0xFF:
		return FormatJPG
	case len(buf) >= 12 && bytes.Equal(buf[0:4], []byte("RIFF")) && bytes.Equal(buf[8:12], []byte("WEBP")):
		return FormatWebP
	}
	return FormatUnknown
}

// Info describes a discovered logo without judging it.
type Info struct {
	Exists bool
	Path   string
	Size   int64
	Format Format
}

// Stat reports on the logo for an address without producing findings.
func Stat(dir, addr string) Info {
	path, ext, ok := discover(dir, addr)
	if !ok {
		return Info{}
	}
	info := Info{Exists: true, Path: path, Format: extFormat[ext]}
	if st, err := os.Stat(path); err == nil {
		info.Size = st.Size()
	}
	if buf, err := readHeader(path); err == nil {
		info.Format = Sniff(buf)
	}
	return info
}

// Validate discovers and verifies the logo for a token. Extension probing
// follows a fixed priority order; the first existing file wins.
func Validate(dir, addr, symbol string) []finding.Finding {
	path, ext, ok := discover(dir, addr)
	if !ok {
		names := make([]string, len(extensions))
		for i, e := range extensions {
			names[i] = addr + e
		}
		return []finding.Finding{finding.Errorf(finding.KindMissingLogo, symbol,
			"no logo found, expected one of: %s", strings.Join(names, ", "))}
	}

	st, err := os.Stat(path)
	if err != nil {
		return []finding.Finding{finding.Errorf(finding.KindReadError, symbol, "stat logo %s: %v", path, err)}
	}
	if st.Size() > HardSizeLimit {
		return []finding.Finding{finding.Errorf(finding.KindTooLarge, symbol,
			"logo is %d bytes, hard limit is %d", st.Size(), HardSizeLimit)}
	}

	var out []finding.Finding
	if st.Size() > SoftSizeLimit {
		out = append(out, finding.Warnf(finding.KindTooLarge, symbol,
			"logo is %d bytes, consider staying under %d", st.Size(), SoftSizeLimit))
	}

	buf, err := readHeader(path)
	if err != nil {
		out = append(out, finding.Errorf(finding.KindReadError, symbol, "read logo %s: %v", path, err))
		return out
	}
	sniffed := Sniff(buf)
	if sniffed == FormatUnknown {
		out = append(out, finding.Errorf(finding.KindUnrecognizedFormat, symbol,
			"logo %s does not match any known image signature", path))
		return out
	}
	if declared := extFormat[ext]; sniffed != declared {
		out = append(out, finding.Errorf(finding.KindFormatMismatch, symbol,
			"logo %s declares %s but contains %s data", path, declared, strings.ToUpper(formatName(sniffed))))
	}
	return out
}

func formatName(f Format) string {
	if f == FormatJPG {
		return "jpeg"
	}
	return string(f)
}

func discover(dir, addr string) (path, ext string, ok bool) {
	for _, e := range extensions {
		candidate, err := safety.ResolveUnder(dir, addr+e)
		if err != nil {
			continue
		}
		if st, err := os.Stat(candidate); err == nil && st.Mode().IsRegular() {
			return candidate, e, true
		}
	}
	return "", "", false
}

func readHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("read header: %w", err)
	}
	return buf[:n], nil
}
