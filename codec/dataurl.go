package codec

import (
	"encoding/base64"
	"strings"

	"github.com/g3n/gltfedit/gerr"
)

// dataURL describes a decoded data: URI, ported from the teacher's loader.go
// (field names kept, behavior unchanged: RFC 2397's
// data:[<mediatype>][;base64],<data>).
type dataURL struct {
	MediaType string
	Encoding  string
	Data      string
}

const dataURLPrefix = "data:"

var validDataURLMediaTypes = []string{
	"application/octet-stream", "image/png", "image/jpeg", "image/ktx2",
	"image/webp", "image/bmp",
}

// isDataURL reports whether uri is a data: URI rather than a file path.
func isDataURL(uri string) bool {
	return strings.HasPrefix(uri, dataURLPrefix)
}

// loadDataURL decodes the base64 payload of a data: URI.
func loadDataURL(uri string) ([]byte, error) {
	var du dataURL
	if err := parseDataURL(uri, &du); err != nil {
		return nil, err
	}

	found := false
	for _, mt := range validDataURLMediaTypes {
		if mt == du.MediaType {
			found = true
			break
		}
	}
	if !found {
		return nil, &gerr.UnresolvedResourceError{Resource: uri, Reason: "unsupported data URI media type: " + du.MediaType}
	}
	if du.Encoding != "base64" {
		return nil, &gerr.UnresolvedResourceError{Resource: uri, Reason: "unsupported data URI encoding: " + du.Encoding}
	}

	data, err := base64.StdEncoding.DecodeString(du.Data)
	if err != nil {
		return nil, &gerr.UnresolvedResourceError{Resource: uri, Reason: "invalid base64 payload: " + err.Error()}
	}
	return data, nil
}

// parseDataURL splits uri into its media type, encoding, and payload.
func parseDataURL(uri string, du *dataURL) error {
	if !isDataURL(uri) {
		return &gerr.UnresolvedResourceError{Resource: uri, Reason: "not a data URI"}
	}
	body := uri[len(dataURLPrefix):]
	parts := strings.SplitN(body, ",", 2)
	if len(parts) != 2 {
		return &gerr.UnresolvedResourceError{Resource: uri, Reason: "data URI missing ','"}
	}
	du.Data = parts[1]

	header := strings.Split(parts[0], ";")
	du.MediaType = header[0]
	if len(header) >= 2 {
		du.Encoding = header[1]
	}
	return nil
}
