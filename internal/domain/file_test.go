package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttachedFile(t *testing.T) {
	f := NewAttachedFile("invoice.pdf", "application/pdf", []byte("%PDF-1.4"))

	assert.Equal(t, "invoice.pdf", f.Name)
	assert.Equal(t, "application/pdf", f.MimeType)
	assert.Equal(t, "data:application/pdf;base64,JVBERi0xLjQ=", f.Data)
}

func TestNewAttachedFileDefaultsMimeType(t *testing.T) {
	f := NewAttachedFile("blob", "", []byte{1})
	assert.Equal(t, "application/octet-stream", f.MimeType)
}

func TestInlineFilePayload(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"data uri", "data:image/png;base64,iVBORw0KGgo=", "iVBORw0KGgo="},
		{"bare payload", "iVBORw0KGgo=", "iVBORw0KGgo="},
		{"empty payload", "data:text/plain;base64,", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &InlineFile{Data: tt.data, MimeType: "image/png"}
			assert.Equal(t, tt.want, f.Payload())
		})
	}
}

func TestAttachedFileInlineNil(t *testing.T) {
	var f *AttachedFile
	assert.Nil(t, f.Inline())
}

func TestParseDataURI(t *testing.T) {
	mimeType, data, err := ParseDataURI("data:text/plain;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mimeType)
	assert.Equal(t, []byte("hello"), data)

	for _, bad := range []string{"hello", "data:text/plain,hello", "data:text/plain;base64", "data:text/plain;base64,***"} {
		_, _, err := ParseDataURI(bad)
		assert.ErrorIs(t, err, ErrInvalidDataURI, bad)
	}
}
