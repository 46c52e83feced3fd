package detect

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-finmsg/pkg/model"
)

func TestDetect_XMLDeclaration(t *testing.T) {
	f, err := Detect([]byte(`<?xml version="1.0" encoding="UTF-8"?><Document/>`))
	require.NoError(t, err)
	assert.Equal(t, FormatMX, f)
}

func TestDetect_BareElement(t *testing.T) {
	f, err := Detect([]byte(`<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.008.001.08"/>`))
	require.NoError(t, err)
	assert.Equal(t, FormatMX, f)
}

func TestDetect_MTBlock(t *testing.T) {
	f, err := Detect([]byte("{1:F01SENDERBICAXXX0000000000}{2:I103RECVBICBXXXXN}{4:\n:20:REF\n-}"))
	require.NoError(t, err)
	assert.Equal(t, FormatMT, f)
}

func TestDetect_LeadingNoise(t *testing.T) {
	t.Run("whitespace before XML", func(t *testing.T) {
		f, err := Detect([]byte("\r\n\t  <?xml version=\"1.0\"?><Document/>"))
		require.NoError(t, err)
		assert.Equal(t, FormatMX, f)
	})

	t.Run("UTF-8 BOM before XML", func(t *testing.T) {
		f, err := Detect([]byte("\xef\xbb\xbf<Document/>"))
		require.NoError(t, err)
		assert.Equal(t, FormatMX, f)
	})

	t.Run("whitespace before MT", func(t *testing.T) {
		f, err := Detect([]byte("\n{1:F01BANKDEFFAXXX0000000000}"))
		require.NoError(t, err)
		assert.Equal(t, FormatMT, f)
	})
}

func TestDetect_Unknown(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t"},
		{"plain text", "hello world"},
		{"json", `{"message_id": "MSG-1"}`},
		{"brace but not block one", "{2:I103RECVBICBXXXXN}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Detect([]byte(tc.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrUnknownFormat))
			assert.Equal(t, FormatUnknown, f)
		})
	}
}

func TestDetect_BoundedPrefix(t *testing.T) {
	// A recognizable signature buried past the sniff window must not
	// be found.
	input := strings.Repeat("x", maxSniff+10) + "{1:F01BANKDEFFAXXX0000000000}"
	_, err := Detect([]byte(input))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnknownFormat))
}
