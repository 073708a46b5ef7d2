// Package swf reads the SWF container far enough to extract the ABC blocks
// carried by DoABC tags.
package swf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zlib"
	"github.com/ulikunitz/xz/lzma"

	"github.com/dhamidi/abcmeta/abc"
)

const (
	SignatureUncompressed = "FWS"
	SignatureZlib         = "CWS"
	SignatureLZMA         = "ZWS"

	headerSize = 8
)

type TagCode uint16

const (
	TagEnd          TagCode = 0
	TagDefineSprite TagCode = 39
	TagDoABC1       TagCode = 72
	TagDoABC        TagCode = 82
)

// FormatError reports a container that is not a readable SWF file.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("swf: %s: %v", e.Reason, e.Err)
	}
	return "swf: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// Rect is a frame rectangle in twips.
type Rect struct {
	XMin, XMax int32
	YMin, YMax int32
}

type File struct {
	Signature  string
	Version    uint8
	FileLength uint32
	FrameSize  Rect
	FrameRate  float64
	FrameCount uint16
	Tags       []Tag
}

type Tag struct {
	Code TagCode
	Data []byte
}

// DoABC is the payload of a DoABC or DoABC1 tag. DoABC1 tags carry no flags
// and no name.
type DoABC struct {
	Flags uint32
	Name  string
	Data  []byte
}

func DecodeFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open swf file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*File, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, &FormatError{Reason: "truncated header", Err: err}
	}

	f := &File{
		Signature:  string(header[:3]),
		Version:    header[3],
		FileLength: binary.LittleEndian.Uint32(header[4:]),
	}
	if f.FileLength < headerSize {
		return nil, &FormatError{Reason: fmt.Sprintf("file length %d shorter than header", f.FileLength)}
	}

	body, err := decompress(f, r)
	if err != nil {
		return nil, err
	}
	if err := f.decodeBody(body); err != nil {
		return nil, err
	}
	return f, nil
}

func decompress(f *File, r io.Reader) ([]byte, error) {
	size := int64(f.FileLength) - headerSize

	var src io.Reader
	switch f.Signature {
	case SignatureUncompressed:
		src = r
	case SignatureZlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, &FormatError{Reason: "zlib stream", Err: err}
		}
		defer zr.Close()
		src = zr
	case SignatureLZMA:
		lr, err := lzmaReader(r, size)
		if err != nil {
			return nil, err
		}
		src = lr
	default:
		return nil, &FormatError{Reason: fmt.Sprintf("unknown signature %q", f.Signature)}
	}

	body, err := io.ReadAll(io.LimitReader(src, size))
	if err != nil {
		return nil, &FormatError{Reason: "decompress body", Err: err}
	}
	if int64(len(body)) < size {
		return nil, &FormatError{Reason: fmt.Sprintf("body is %d bytes, header declares %d", len(body), size)}
	}
	return body, nil
}

// lzmaReader rewrites the SWF LZMA framing (compressed length, then five
// property bytes) into the classic .lzma header that carries the
// uncompressed size.
func lzmaReader(r io.Reader, size int64) (io.Reader, error) {
	var framing [9]byte
	if _, err := io.ReadFull(r, framing[:]); err != nil {
		return nil, &FormatError{Reason: "truncated lzma header", Err: err}
	}

	var header [13]byte
	copy(header[:5], framing[4:])
	binary.LittleEndian.PutUint64(header[5:], uint64(size))

	lr, err := lzma.NewReader(io.MultiReader(bytes.NewReader(header[:]), r))
	if err != nil {
		return nil, &FormatError{Reason: "lzma stream", Err: err}
	}
	return lr, nil
}

func (f *File) decodeBody(body []byte) error {
	if len(body) < 1 {
		return &FormatError{Reason: "missing frame rectangle"}
	}
	rect, n, err := readRect(body)
	if err != nil {
		return err
	}
	f.FrameSize = rect
	body = body[n:]

	if len(body) < 4 {
		return &FormatError{Reason: "truncated frame header"}
	}
	f.FrameRate = float64(binary.LittleEndian.Uint16(body)) / 256
	f.FrameCount = binary.LittleEndian.Uint16(body[2:])

	tags, err := readTags(body[4:])
	if err != nil {
		return err
	}
	f.Tags = tags
	return nil
}

func readTags(data []byte) ([]Tag, error) {
	var tags []Tag
	for len(data) > 0 {
		if len(data) < 2 {
			return nil, &FormatError{Reason: "truncated tag header"}
		}
		codeAndLength := binary.LittleEndian.Uint16(data)
		data = data[2:]

		code := TagCode(codeAndLength >> 6)
		length := uint32(codeAndLength & 0x3f)
		if length == 0x3f {
			if len(data) < 4 {
				return nil, &FormatError{Reason: "truncated long tag header"}
			}
			length = binary.LittleEndian.Uint32(data)
			data = data[4:]
		}
		if uint64(length) > uint64(len(data)) {
			return nil, &FormatError{Reason: fmt.Sprintf("tag %d declares %d bytes, %d left", code, length, len(data))}
		}

		if code == TagEnd {
			break
		}
		tags = append(tags, Tag{Code: code, Data: data[:length]})
		data = data[length:]
	}
	return tags, nil
}

// DoABCTags returns the payloads of all top-level DoABC and DoABC1 tags in
// file order.
func (f *File) DoABCTags() ([]DoABC, error) {
	var result []DoABC
	for _, tag := range f.Tags {
		switch tag.Code {
		case TagDoABC1:
			result = append(result, DoABC{Data: tag.Data})
		case TagDoABC:
			if len(tag.Data) < 4 {
				return nil, &FormatError{Reason: "truncated DoABC tag"}
			}
			d := DoABC{Flags: binary.LittleEndian.Uint32(tag.Data)}
			rest := tag.Data[4:]
			end := bytes.IndexByte(rest, 0)
			if end < 0 {
				return nil, &FormatError{Reason: "unterminated DoABC name"}
			}
			d.Name = string(rest[:end])
			d.Data = rest[end+1:]
			result = append(result, d)
		}
	}
	return result, nil
}

// ABC decodes every ABC block of the file in tag order.
func (f *File) ABC() ([]*abc.File, error) {
	tags, err := f.DoABCTags()
	if err != nil {
		return nil, err
	}
	files := make([]*abc.File, 0, len(tags))
	for i, tag := range tags {
		af, err := abc.ParseBytes(tag.Data)
		if err != nil {
			if tag.Name != "" {
				return nil, fmt.Errorf("failed to parse abc block %q: %w", tag.Name, err)
			}
			return nil, fmt.Errorf("failed to parse abc block %d: %w", i, err)
		}
		files = append(files, af)
	}
	return files, nil
}
