package download

import (
	"bytes"
	"errors"
)

// FileType describes an image format recognized by its signature
type FileType struct {
	MIMEType  string
	Magic     []byte // signature at offset 0
	Tag       []byte // optional second signature at TagOffset
	TagOffset int
}

// magicLen is the number of leading bytes needed to recognize every type
const magicLen = 12

var fileTypes = []FileType{
	{MIMEType: "image/png", Magic: []byte{0x89, 0x50, 0x4E, 0x47}}, // ‰PNG
	{MIMEType: "image/jpeg", Magic: []byte{0xFF, 0xD8, 0xFF}},      // ÿØÿ
	{MIMEType: "image/gif", Magic: []byte{0x47, 0x49, 0x46, 0x38}}, // GIF8
	{MIMEType: "image/bmp", Magic: []byte{0x42, 0x4D}},             // BM
	{MIMEType: "image/webp", Magic: []byte("RIFF"), Tag: []byte("WEBP"), TagOffset: 8},
}

var ErrUnknownFileType = errors.New("unknown file type")

// getFileTypeBySignature matches the leading bytes of a payload
func getFileTypeBySignature(data []byte) (FileType, error) {
	for _, ft := range fileTypes {
		if !bytes.HasPrefix(data, ft.Magic) {
			continue
		}
		if ft.Tag != nil {
			end := ft.TagOffset + len(ft.Tag)
			if len(data) < end || !bytes.Equal(data[ft.TagOffset:end], ft.Tag) {
				continue
			}
		}
		return ft, nil
	}
	return FileType{}, ErrUnknownFileType
}
