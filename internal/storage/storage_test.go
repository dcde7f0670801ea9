package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	puts    map[string]string
	removed []string
	err     error
}

func (f *fakeObjects) put(bucket, objectPath string, data []byte, contentType string) error {
	if f.err != nil {
		return f.err
	}
	if f.puts == nil {
		f.puts = map[string]string{}
	}
	f.puts[bucket+"/"+objectPath] = contentType
	return nil
}

func (f *fakeObjects) remove(bucket, objectPath string) error {
	f.removed = append(f.removed, bucket+"/"+objectPath)
	return f.err
}

func newTestStore(objs objects) *Supabase {
	s := NewSupabase("https://proj.supabase.co/", "key", "media", nil)
	s.objects = objs
	return s
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestPut_ReturnsDirectURL(t *testing.T) {
	objs := &fakeObjects{}
	s := newTestStore(objs)

	ref, err := s.Put(context.Background(), "artist-1", "Vase.PNG", strings.NewReader(string(pngHeader)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref.Path, "artist-1/"))
	assert.True(t, strings.HasSuffix(ref.Path, ".png"))
	assert.Equal(t, "https://proj.supabase.co/storage/v1/object/public/media/"+ref.Path, ref.DirectURL)
	assert.Equal(t, "image/png", ref.ContentType)
	assert.Equal(t, int64(len(pngHeader)), ref.Size)
	assert.Equal(t, "image/png", objs.puts["media/"+ref.Path])
}

func TestPut_SniffedExtensionWhenNameHasNone(t *testing.T) {
	s := newTestStore(&fakeObjects{})

	ref, err := s.Put(context.Background(), "a", "banner", strings.NewReader(string(pngHeader)))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref.Path, ".png"), ref.Path)
}

func TestPut_Errors(t *testing.T) {
	s := newTestStore(&fakeObjects{})
	_, err := s.Put(context.Background(), "a", "x.png", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmpty)

	boom := errors.New("boom")
	s = newTestStore(&fakeObjects{err: boom})
	_, err = s.Put(context.Background(), "a", "x.png", strings.NewReader(string(pngHeader)))
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = newTestStore(&fakeObjects{}).Put(ctx, "a", "x.png", strings.NewReader(string(pngHeader)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelete(t *testing.T) {
	objs := &fakeObjects{}
	s := newTestStore(objs)
	require.NoError(t, s.Delete(context.Background(), "a/b.png"))
	assert.Equal(t, []string{"media/a/b.png"}, objs.removed)

	_, err := Disabled{}.Put(context.Background(), "a", "b", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrDisabled)
}
