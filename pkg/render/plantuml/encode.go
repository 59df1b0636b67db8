package plantuml

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
)

// alphabet is the PlantUML variant of base64.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

var textEncoding = base64.NewEncoding(alphabet).WithPadding(base64.NoPadding)

// Encode compresses source the way PlantUML servers expect it in URLs:
// raw deflate, then base64 with the PlantUML alphabet. A trailing partial
// group is zero-padded to a full group of three bytes.
func Encode(source string) (string, error) {
	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := zw.Write([]byte(source)); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}

	data := buf.Bytes()
	if rem := len(data) % 3; rem != 0 {
		data = append(data, make([]byte, 3-rem)...)
	}
	return textEncoding.EncodeToString(data), nil
}

// Decode reverses Encode.
func Decode(encoded string) (string, error) {
	data, err := textEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	zr := flate.NewReader(bytes.NewReader(data))
	defer zr.Close()
	var out bytes.Buffer
	if _, err := out.ReadFrom(zr); err != nil {
		return "", err
	}
	return out.String(), nil
}
