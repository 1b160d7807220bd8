package assistant

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macontroller/internal/models"
)

type failingAttachment struct {
	meta models.FileAttachment
}

func (f failingAttachment) Meta() models.FileAttachment { return f.meta }

func (f failingAttachment) ReadText(context.Context) (string, error) {
	return "", os.ErrPermission
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewFileAttachment_Metadata(t *testing.T) {
	path := writeFile(t, "notes.txt", "hello")

	a, err := NewFileAttachment(path)
	require.NoError(t, err)

	meta := a.Meta()
	assert.Equal(t, "notes.txt", meta.Name)
	assert.Equal(t, int64(5), meta.Size)
	assert.Contains(t, meta.Type, "text/plain")
}

func TestNewFileAttachment_Directory(t *testing.T) {
	_, err := NewFileAttachment(t.TempDir())
	assert.Error(t, err)
}

func TestDigestAttachments_TextFile(t *testing.T) {
	path := writeFile(t, "notes.md", "# Title\nhello")
	atts := NewAttachments([]string{path}, nil)

	got := DigestAttachments(context.Background(), atts)

	assert.Equal(t, "\n\n--- Content of notes.md ---\n# Title\nhello\n--- End of notes.md ---\n", got)
}

func TestDigestAttachments_ImageAndOther(t *testing.T) {
	atts := []Attachment{
		&InlineAttachment{Name: "photo.png", Type: "image/png", Content: make([]byte, 2048)},
		&InlineAttachment{Name: "data.bin", Type: "application/octet-stream", Content: []byte{1, 2, 3}},
	}

	got := DigestAttachments(context.Background(), atts)

	assert.Contains(t, got, "--- Image File: photo.png (2.0 KiB) ---\nImage file detected.")
	assert.Contains(t, got, "--- File: data.bin (application/octet-stream, 3 B) ---\nFile detected.")
}

func TestDigestAttachments_ReadFailureDoesNotAbort(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.txt")
	ok := writeFile(t, "ok.txt", "still here")
	atts := NewAttachments([]string{missing, ok}, nil)
	atts = append(atts, failingAttachment{meta: models.FileAttachment{Name: "locked.txt", Type: "text/plain"}})

	got := DigestAttachments(context.Background(), atts)

	assert.Contains(t, got, "--- Error processing gone.txt ---\nUnable to read file content.")
	assert.Contains(t, got, "--- Content of ok.txt ---\nstill here\n--- End of ok.txt ---")
	assert.Contains(t, got, "--- Error processing locked.txt ---")
}

func TestDigestAttachments_Empty(t *testing.T) {
	assert.Equal(t, "", DigestAttachments(context.Background(), nil))
}

func TestInlineAttachment_InfersType(t *testing.T) {
	a := &InlineAttachment{Name: "readme.md", Content: []byte("hi")}
	meta := a.Meta()
	assert.Equal(t, int64(2), meta.Size)
	assert.NotEmpty(t, meta.Type)
	assert.True(t, isTextLike(meta))
}
