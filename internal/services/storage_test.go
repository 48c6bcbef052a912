package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/placement-predictor/internal/models"
)

// fileHeader builds a real multipart header the way an HTTP upload would.
func fileHeader(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File[field][0]
}

func TestStorageService_SaveFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s := NewStorageService(dir)
	require.NoError(t, s.EnsureUploadDir())

	tests := []struct {
		name     string
		fileType string
		filename string
		wantErr  bool
	}{
		{"resume pdf", models.FileTypeResume, "cv.PDF", false},
		{"resume image rejected", models.FileTypeResume, "cv.png", true},
		{"certificate image", models.FileTypeCertificate, "aws.jpg", false},
		{"certificate docx rejected", models.FileTypeCertificate, "aws.docx", true},
		{"unknown type rejected", "avatar", "me.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh := fileHeader(t, tt.fileType, tt.filename, []byte("content"))

			name, path, err := s.SaveFile(fh, tt.fileType)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFileType)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(name, tt.fileType+"_"))
			assert.Equal(t, s.GetFilePath(name), path)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "content", string(data))

			require.NoError(t, s.DeleteFile(name))
			assert.NoFileExists(t, path)
		})
	}
}

func TestStorageService_GetFilePathStaysInUploadDir(t *testing.T) {
	s := NewStorageService("/srv/uploads")
	assert.Equal(t, "/srv/uploads/passwd", s.GetFilePath("../../etc/passwd"))
}

func TestStorageService_DeleteMissing(t *testing.T) {
	s := NewStorageService(t.TempDir())
	assert.Error(t, s.DeleteFile("nope.pdf"))
}
