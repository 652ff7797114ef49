package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ErrUnknownFormat is returned for files no decoder recognizes.
var ErrUnknownFormat = errors.New("unknown image format")

type decodeFunc func(io.Reader) (image.Image, error)

var decoders = map[string]decodeFunc{
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".bmp":  bmp.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
}

// decodeFile picks the decoder from the file extension, or from the leading bytes when the
// extension is unknown. image.Decode is not used: the tga package registers an empty
// magic string that claims every file.
func decodeFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		dec, ok = sniff(data)
	}
	if !ok {
		return nil, ErrUnknownFormat
	}
	img, err := dec(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// sniff recognizes the formats that carry a signature. TGA has none and is only
// decoded by extension.
func sniff(data []byte) (decodeFunc, bool) {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return png.Decode, true
	case bytes.HasPrefix(data, []byte{0xff, 0xd8}):
		return jpeg.Decode, true
	case bytes.HasPrefix(data, []byte("BM")):
		return bmp.Decode, true
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return webp.Decode, true
	}
	return nil, false
}
