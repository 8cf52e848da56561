package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// AttachedFile is a file picked by the user and held until the next submission.
// Data is a data URI: "data:<mime>;base64,<payload>".
type AttachedFile struct {
	Name     string
	MimeType string
	Data     string
}

// InlineFile is the part of an attachment sent to the chat endpoint.
type InlineFile struct {
	Data     string
	MimeType string
}

// NewAttachedFile reads raw file content into a data URI representation.
func NewAttachedFile(name, mimeType string, content []byte) *AttachedFile {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return &AttachedFile{
		Name:     name,
		MimeType: mimeType,
		Data:     "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(content),
	}
}

// Inline converts the attachment into the form expected by the chat client.
func (f *AttachedFile) Inline() *InlineFile {
	if f == nil {
		return nil
	}
	return &InlineFile{Data: f.Data, MimeType: f.MimeType}
}

// Payload returns the base64 payload without the data URI header.
// A value that carries no header is returned unchanged.
func (f *InlineFile) Payload() string {
	if i := strings.IndexByte(f.Data, ','); i >= 0 {
		return f.Data[i+1:]
	}
	return f.Data
}

// ParseDataURI splits a data URI into MIME type and decoded content.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	mimeType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("%w: only base64 payloads are supported", ErrInvalidDataURI)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return mimeType, data, nil
}
