package swf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz/lzma"

	"github.com/dhamidi/abcmeta/abc/abctest"
)

func tag(code TagCode, data []byte) []byte {
	var buf bytes.Buffer
	if len(data) < 0x3f {
		binary.Write(&buf, binary.LittleEndian, uint16(code)<<6|uint16(len(data)))
	} else {
		binary.Write(&buf, binary.LittleEndian, uint16(code)<<6|0x3f)
		binary.Write(&buf, binary.LittleEndian, uint32(len(data)))
	}
	buf.Write(data)
	return buf.Bytes()
}

func doABC(name string, data []byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	buf.WriteString(name)
	buf.WriteByte(0)
	buf.Write(data)
	return tag(TagDoABC, buf.Bytes())
}

// movieBody is a 550x400 frame at 24fps with the given tags and an End tag.
func movieBody(tags ...[]byte) []byte {
	var buf bytes.Buffer
	// nbits=15: 5 + 4*15 = 65 bits, 9 bytes
	buf.Write([]byte{0x78, 0x00, 0x05, 0x5F, 0x00, 0x00, 0x0F, 0xA0, 0x00})
	binary.Write(&buf, binary.LittleEndian, uint16(24<<8))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	for _, t := range tags {
		buf.Write(t)
	}
	buf.Write(tag(TagEnd, nil))
	return buf.Bytes()
}

func header(sig string, bodyLen int) []byte {
	h := []byte(sig)
	h = append(h, 10)
	return binary.LittleEndian.AppendUint32(h, uint32(bodyLen+headerSize))
}

func sampleABC() []byte {
	b := abctest.New()
	b.Class("com.example::Main", "flash.display::Sprite")
	return b.Bytes()
}

func sampleBody() []byte {
	return movieBody(
		tag(69, []byte{0, 0, 0, 0}),
		doABC("frame1", sampleABC()),
		tag(TagDoABC1, sampleABC()),
	)
}

func checkMovie(t *testing.T, f *File) {
	t.Helper()
	assert.Equal(t, uint8(10), f.Version)
	assert.Equal(t, Rect{XMin: 0, XMax: 11000, YMin: 0, YMax: 8000}, f.FrameSize)
	assert.Equal(t, 24.0, f.FrameRate)
	assert.Equal(t, uint16(1), f.FrameCount)
	require.Len(t, f.Tags, 3)

	tags, err := f.DoABCTags()
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "frame1", tags[0].Name)
	assert.Equal(t, uint32(1), tags[0].Flags)
	assert.Equal(t, "", tags[1].Name)

	files, err := f.ABC()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Len(t, files[0].Instances, 1)
}

func TestDecodeUncompressed(t *testing.T) {
	body := sampleBody()
	data := append(header(SignatureUncompressed, len(body)), body...)

	f, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, SignatureUncompressed, f.Signature)
	checkMovie(t, f)
}

func TestDecodeZlib(t *testing.T) {
	body := sampleBody()
	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	_, err := zw.Write(body)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	data := append(header(SignatureZlib, len(body)), compressed.Bytes()...)
	f, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, SignatureZlib, f.Signature)
	checkMovie(t, f)
}

func TestDecodeLZMA(t *testing.T) {
	body := sampleBody()
	var classic bytes.Buffer
	lw, err := lzma.WriterConfig{SizeInHeader: true, Size: int64(len(body))}.NewWriter(&classic)
	require.NoError(t, err)
	_, err = lw.Write(body)
	require.NoError(t, err)
	require.NoError(t, lw.Close())

	// classic header: 5 property bytes, 8 size bytes
	props := classic.Bytes()[:5]
	stream := classic.Bytes()[13:]

	data := header(SignatureLZMA, len(body))
	data = binary.LittleEndian.AppendUint32(data, uint32(len(stream)))
	data = append(data, props...)
	data = append(data, stream...)

	f, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	checkMovie(t, f)
}

func TestDecodeLongTag(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 100)
	body := movieBody(tag(87, payload))
	data := append(header(SignatureUncompressed, len(body)), body...)

	f, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, f.Tags, 1)
	assert.Equal(t, TagCode(87), f.Tags[0].Code)
	assert.Equal(t, payload, f.Tags[0].Data)
}

func TestDecodeErrors(t *testing.T) {
	body := sampleBody()
	// frame header, then tag 87 declaring 10 bytes with only 2 present
	overrunBody := append(movieBody()[:13], 0xCA, 0x15, 1, 2)
	overrun := append(header(SignatureUncompressed, len(overrunBody)), overrunBody...)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"unknown signature", append(header("XWS", len(body)), body...)},
		{"short body", append(header(SignatureUncompressed, len(body)+10), body...)},
		{"bad zlib", append(header(SignatureZlib, len(body)), body...)},
		{"tag overruns body", overrun},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.data))
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("Decode() error = %v, want *FormatError", err)
			}
		})
	}
}

func TestReadRect(t *testing.T) {
	// nbits=2, fields -1, 1, 0, -2
	rect, n, err := readRect([]byte{0x16, 0x90})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, Rect{XMin: -1, XMax: 1, YMin: 0, YMax: -2}, rect)
}
