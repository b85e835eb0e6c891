package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "upload/ab/file.txt", strings.NewReader("hello")))

	rc, err := store.Get(ctx, "upload/ab/file.txt")
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "hello", string(content))

	require.NoError(t, store.Delete(ctx, "upload/ab/file.txt"))
	require.NoError(t, store.Delete(ctx, "upload/ab/file.txt"))

	_, err = store.Get(ctx, "upload/ab/file.txt")
	assert.Error(t, err)
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	err = store.Save(ctx, "../escape.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = store.Get(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestGenerateThumbnail(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 800, 400))
	for x := 0; x < 800; x++ {
		src.Set(x, 10, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	thumb, err := NewImageProcessor().GenerateThumbnail(&buf, 200, 200)
	require.NoError(t, err)

	img, err := jpeg.Decode(thumb)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestGenerateThumbnailRejectsGarbage(t *testing.T) {
	_, err := NewImageProcessor().GenerateThumbnail(strings.NewReader("not an image"), 200, 200)
	assert.Error(t, err)
}
