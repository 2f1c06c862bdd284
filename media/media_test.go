package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/mediaflow/types"
)

// buildForm 构建一个 multipart 表单并解析回 *multipart.Form
func buildForm(t *testing.T, files map[string][][2]string) *multipart.Form {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, entries := range files {
		for _, entry := range entries {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition",
				fmt.Sprintf(`form-data; name=%q; filename=%q`, field, entry[0]))
			h.Set("Content-Type", entry[1])
			part, err := w.CreatePart(h)
			require.NoError(t, err)
			_, err = part.Write([]byte(entry[0]))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form
}

func TestFromBase64_DataURLPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      string
		mimeType  string
		wantBytes string
		wantMime  string
	}{
		{
			name:      "data URL prefix stripped at first comma only",
			data:      "data:image/jpeg;base64,XXXX",
			mimeType:  "image/jpeg",
			wantBytes: "XXXX",
			wantMime:  "image/jpeg",
		},
		{
			name:      "bare base64 passed through verbatim",
			data:      "QUJD",
			mimeType:  "image/webp",
			wantBytes: "QUJD",
			wantMime:  "image/webp",
		},
		{
			name:      "missing mime type falls back to image/png",
			data:      "QUJD",
			mimeType:  "",
			wantBytes: "QUJD",
			wantMime:  "image/png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := FromBase64(tt.data, tt.mimeType, DefaultImageMimeType)
			assert.Equal(t, tt.wantBytes, enc.Bytes)
			assert.Equal(t, tt.wantMime, enc.MimeType)
		})
	}
}

func TestFromReader_EncodesAndFails(t *testing.T) {
	t.Parallel()

	t.Run("drains and encodes", func(t *testing.T) {
		enc, err := FromReader(bytes.NewReader([]byte("hello")), "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("hello")), enc.Bytes)
		assert.Equal(t, "image/jpeg", enc.MimeType)
	})

	t.Run("read failure propagates, no truncated result", func(t *testing.T) {
		enc, err := FromReader(&failingReader{}, "image/png")
		require.Error(t, err)
		assert.Nil(t, enc)
		assert.Equal(t, types.ErrUpstreamError, types.GetErrorCode(err))
	})
}

type failingReader struct{}

func (r *failingReader) Read(p []byte) (int, error) {
	copy(p, "part")
	return 4, errors.New("connection reset")
}

func TestResolveImageSlot_Precedence(t *testing.T) {
	t.Parallel()

	form := buildForm(t, map[string][][2]string{
		"imageFile": {{"file-bytes", "image/jpeg"}},
	})
	fh := form.File["imageFile"][0]

	t.Run("file wins over base64 text", func(t *testing.T) {
		enc, err := ResolveImageSlot(fh, "data:image/png;base64,IGNORED", "image/png")
		require.NoError(t, err)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("file-bytes")), enc.Bytes)
		// MIME 类型取自分部声明，而非用户字段
		assert.Equal(t, "image/jpeg", enc.MimeType)
	})

	t.Run("base64 text used when no file", func(t *testing.T) {
		enc, err := ResolveImageSlot(nil, "data:image/gif;base64,R0lG", "image/gif")
		require.NoError(t, err)
		assert.Equal(t, "R0lG", enc.Bytes)
		assert.Equal(t, "image/gif", enc.MimeType)
	})

	t.Run("no source yields nil", func(t *testing.T) {
		enc, err := ResolveImageSlot(nil, "", "")
		require.NoError(t, err)
		assert.Nil(t, enc)
	})
}

func TestFromFileHeaders_PreservesOrder(t *testing.T) {
	t.Parallel()

	const n = 8
	entries := make([][2]string, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, [2]string{fmt.Sprintf("ref-%d", i), "image/png"})
	}
	form := buildForm(t, map[string][][2]string{"referenceImageFiles": entries})

	encs, err := FromFileHeaders(form.File["referenceImageFiles"])
	require.NoError(t, err)
	require.Len(t, encs, n)

	for i, enc := range encs {
		want := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("ref-%d", i)))
		assert.Equal(t, want, enc.Bytes, "entry %d out of order", i)
	}
}

func TestFromFileHeaders_Empty(t *testing.T) {
	t.Parallel()

	encs, err := FromFileHeaders(nil)
	require.NoError(t, err)
	assert.Nil(t, encs)
}
