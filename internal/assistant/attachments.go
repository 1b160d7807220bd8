package assistant

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/wailsapp/mimetype"

	"macontroller/internal/models"
)

const (
	fallbackMediaType = "application/octet-stream"
	readErrorBlock    = "\n\n--- Error processing %s ---\nUnable to read file content. Please ensure the file is accessible and try again.\n"
)

// Attachment is a file handed to the assistant alongside a message.
type Attachment interface {
	Meta() models.FileAttachment
	ReadText(ctx context.Context) (string, error)
}

// FileAttachment is a file on local disk.
type FileAttachment struct {
	Path    string
	meta    models.FileAttachment
	openErr error
}

func NewFileAttachment(path string) (*FileAttachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat attachment: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("attachment %s is a directory", path)
	}
	return &FileAttachment{
		Path: path,
		meta: models.FileAttachment{
			Name: filepath.Base(path),
			Size: info.Size(),
			Type: detectMediaType(path),
		},
	}, nil
}

// unreadableFileAttachment keeps a path that failed to open so the digest can
// report it instead of dropping it.
func unreadableFileAttachment(path string, err error) *FileAttachment {
	mediaType := mime.TypeByExtension(filepath.Ext(path))
	if mediaType == "" {
		mediaType = fallbackMediaType
	}
	return &FileAttachment{
		Path:    path,
		meta:    models.FileAttachment{Name: filepath.Base(path), Type: mediaType},
		openErr: err,
	}
}

func (a *FileAttachment) Meta() models.FileAttachment { return a.meta }

// Err reports why the file could not be opened, if it could not.
func (a *FileAttachment) Err() error { return a.openErr }

func (a *FileAttachment) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if a.openErr != nil {
		return "", a.openErr
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// InlineAttachment carries content uploaded by the frontend.
type InlineAttachment struct {
	Name    string
	Type    string
	Content []byte
}

func (a *InlineAttachment) Meta() models.FileAttachment {
	mediaType := a.Type
	if mediaType == "" {
		mediaType = mime.TypeByExtension(filepath.Ext(a.Name))
	}
	if mediaType == "" {
		mediaType = mimetype.Detect(a.Content).String()
	}
	return models.FileAttachment{Name: a.Name, Size: int64(len(a.Content)), Type: mediaType}
}

func (a *InlineAttachment) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(a.Content), nil
}

func detectMediaType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return fallbackMediaType
	}
	return m.String()
}

func isTextLike(meta models.FileAttachment) bool {
	return strings.HasPrefix(meta.Type, "text/") ||
		strings.HasSuffix(meta.Name, ".txt") ||
		strings.HasSuffix(meta.Name, ".md")
}

// DigestAttachments renders every attachment into one context block. A file
// that cannot be read gets an error block; the rest are still processed.
func DigestAttachments(ctx context.Context, attachments []Attachment) string {
	var b strings.Builder
	for _, a := range attachments {
		meta := a.Meta()
		size := humanize.IBytes(uint64(max(meta.Size, 0)))
		if f, ok := a.(interface{ Err() error }); ok && f.Err() != nil {
			fmt.Fprintf(&b, readErrorBlock, meta.Name)
			continue
		}
		switch {
		case isTextLike(meta):
			text, err := a.ReadText(ctx)
			if err != nil {
				fmt.Fprintf(&b, readErrorBlock, meta.Name)
				continue
			}
			fmt.Fprintf(&b, "\n\n--- Content of %s ---\n%s\n--- End of %s ---\n", meta.Name, text, meta.Name)
		case strings.HasPrefix(meta.Type, "image/"):
			fmt.Fprintf(&b, "\n\n--- Image File: %s (%s) ---\nImage file detected. I can analyze this image for content, text extraction, or visual elements.\n", meta.Name, size)
		default:
			fmt.Fprintf(&b, "\n\n--- File: %s (%s, %s) ---\nFile detected. I can help process this file based on its type and your specific requirements.\n", meta.Name, meta.Type, size)
		}
	}
	return b.String()
}

// NewAttachments builds attachments for the given paths and uploads. Paths
// that cannot be opened are kept and show up as read errors in the digest.
func NewAttachments(paths []string, uploads []models.UploadedFile) []Attachment {
	out := make([]Attachment, 0, len(paths)+len(uploads))
	for _, p := range paths {
		a, err := NewFileAttachment(p)
		if err != nil {
			out = append(out, unreadableFileAttachment(p, err))
			continue
		}
		out = append(out, a)
	}
	for _, u := range uploads {
		out = append(out, &InlineAttachment{Name: u.Name, Type: u.Type, Content: []byte(u.Content)})
	}
	return out
}
