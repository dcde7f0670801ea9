// Package storage keeps uploaded media in a Supabase storage bucket and hands back direct URLs.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"artisanhub/internal/domain"
	"artisanhub/internal/logging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
	"go.uber.org/zap"
)

// ErrDisabled is returned by the disabled store when no storage backend is configured.
var ErrDisabled = errors.New("blob storage is not configured")

// ErrEmpty is returned for zero-length uploads.
var ErrEmpty = errors.New("empty upload")

// BlobStore persists media and resolves direct URLs.
type BlobStore interface {
	Put(ctx context.Context, owner, filename string, r io.Reader) (*domain.MediaReference, error)
	Delete(ctx context.Context, objectPath string) error
}

// objects is the subset of the bucket API the store relies on.
type objects interface {
	put(bucket, objectPath string, data []byte, contentType string) error
	remove(bucket, objectPath string) error
}

type supabaseObjects struct {
	client *storage.Client
}

func (s supabaseObjects) put(bucket, objectPath string, data []byte, contentType string) error {
	upsert := false
	_, err := s.client.UploadFile(bucket, objectPath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	return err
}

func (s supabaseObjects) remove(bucket, objectPath string) error {
	_, err := s.client.RemoveFile(bucket, []string{objectPath})
	return err
}

// Supabase is a BlobStore backed by a Supabase storage bucket.
type Supabase struct {
	objects objects
	bucket  string
	baseURL string
	logger  *zap.Logger
}

// NewSupabase builds a store for bucket on the project at baseURL using a service key.
func NewSupabase(baseURL, key, bucket string, logger *zap.Logger) *Supabase {
	baseURL = strings.TrimRight(baseURL, "/")
	return &Supabase{
		objects: supabaseObjects{client: storage.NewClient(baseURL+"/storage/v1", key, nil)},
		bucket:  bucket,
		baseURL: baseURL,
		logger:  logging.OrNop(logger).Named("blob_store"),
	}
}

// Put stores the content under <owner>/<uuid><ext>. The content type is sniffed from the bytes.
func (s *Supabase) Put(ctx context.Context, owner, filename string, r io.Reader) (*domain.MediaReference, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mt := mimetype.Detect(data)
	objectPath := ObjectPath(owner, filename, mt.Extension())
	if err := s.objects.put(s.bucket, objectPath, data, mt.String()); err != nil {
		s.logger.Error("upload blob", zap.String("path", objectPath), zap.Error(err))
		return nil, fmt.Errorf("upload blob: %w", err)
	}
	s.logger.Info("stored blob", zap.String("path", objectPath), zap.String("content_type", mt.String()), zap.Int("size", len(data)))

	return &domain.MediaReference{
		Path:        objectPath,
		DirectURL:   s.PublicURL(objectPath),
		ContentType: mt.String(),
		Size:        int64(len(data)),
	}, nil
}

func (s *Supabase) Delete(ctx context.Context, objectPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.objects.remove(s.bucket, objectPath); err != nil {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

// PublicURL is the direct URL of an object in a public bucket.
func (s *Supabase) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath)
}

// ObjectPath names a new object. The filename extension wins over the sniffed one.
func ObjectPath(owner, filename, sniffedExt string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = sniffedExt
	}
	return fmt.Sprintf("%s/%s%s", owner, uuid.NewString(), ext)
}

// Disabled rejects every operation with ErrDisabled.
type Disabled struct{}

func (Disabled) Put(context.Context, string, string, io.Reader) (*domain.MediaReference, error) {
	return nil, ErrDisabled
}

func (Disabled) Delete(context.Context, string) error { return ErrDisabled }
