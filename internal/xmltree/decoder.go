// Package xmltree decodes raw nmap XML into a generic tree of
// map[string]interface{}, []interface{} and string values.
//
// Attributes are keyed with an "@" prefix and element text under "#text".
// Repeated sibling elements become a []interface{}; a single child element
// is stored directly, without a list wrapper.
package xmltree

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/clbanning/mxj/v2"
	"golang.org/x/net/html/charset"
)

const AttrPrefix = "@"

// ErrEmptyInput is returned when there is nothing to decode.
var ErrEmptyInput = errors.New("scan input is empty")

func init() {
	mxj.SetAttrPrefix(AttrPrefix)
	// nmap writes UTF-8, but hand-edited or converted files show up as latin1
	mxj.XmlCharsetReader = charset.NewReaderLabel
}

// Decode parses raw XML into a generic tree. Values are never cast; every
// attribute and text node stays a string.
func Decode(raw []byte) (map[string]interface{}, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyInput
	}
	m, err := mxj.NewMapXml(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scan XML: %w", err)
	}
	return map[string]interface{}(m), nil
}

// DecodeReader reads all of r and decodes it.
func DecodeReader(r io.Reader) (map[string]interface{}, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read scan XML: %w", err)
	}
	return Decode(raw)
}
