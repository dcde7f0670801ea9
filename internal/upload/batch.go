// Package upload turns local files into stored blob references.
//
// A Batch uploads its files concurrently; each file's outcome is tracked on its
// own and never aborts its siblings. Nothing is retried unless Retry is called.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"artisanhub/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoSuccessfulUploads = errors.New("upload: no file uploaded successfully")
	ErrRunning             = errors.New("upload: batch is already running")
	ErrNothingToRetry      = errors.New("upload: no failed files to retry")
)

// DefaultLimit bounds concurrent uploads per batch.
const DefaultLimit = 4

// Status moves pending -> uploading -> success or error. Retry moves an error
// back to uploading.
type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
)

// Uploader stores one blob. *client.Client satisfies it.
type Uploader interface {
	UploadBlob(ctx context.Context, filename, contentType string, r io.Reader) (*Reference, error)
}

// FileState is the presentation state of one file.
//
// Progress is a percentage that never decreases within one attempt and reaches
// 100 only on success. Retry starts a new attempt at 0, so observers must not
// assume it is monotonic across retries.
type FileState struct {
	File     File
	Status   Status
	Progress int
	Ref      *Reference
	Err      error
}

// Observer is called after every state change. It may run on any goroutine.
type Observer func(index int, st FileState)

type Option func(*Batch)

func WithLimit(n int) Option {
	return func(b *Batch) {
		if n > 0 {
			b.limit = n
		}
	}
}

func WithObserver(fn Observer) Option {
	return func(b *Batch) { b.observe = fn }
}

func WithLogger(logger *zap.Logger) Option {
	return func(b *Batch) { b.logger = logger }
}

type Batch struct {
	uploader Uploader
	limit    int
	observe  Observer
	logger   *zap.Logger

	mu      sync.Mutex
	states  []FileState
	running bool

	// serializes observer calls so they see states in order
	notifyMu sync.Mutex
}

func NewBatch(u Uploader, files []File, opts ...Option) *Batch {
	b := &Batch{uploader: u, limit: DefaultLimit}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = logging.OrNop(b.logger).Named("upload")
	b.states = make([]FileState, len(files))
	for i, f := range files {
		b.states[i] = FileState{File: f, Status: StatusPending}
	}
	return b
}

// Task is a running upload pass over some files of a batch.
type Task struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// Wait blocks until every file of the pass finished. It returns the context
// error when the pass was cancelled; per-file failures live on the batch.
func (t *Task) Wait() error {
	<-t.done
	return t.ctx.Err()
}

// Cancel aborts in-flight uploads and skips files not yet started.
func (t *Task) Cancel() { t.cancel() }

// Done is closed when the pass finished.
func (t *Task) Done() <-chan struct{} { return t.done }

// Start uploads every pending file.
func (b *Batch) Start(ctx context.Context) (*Task, error) {
	return b.run(ctx, StatusPending)
}

// Retry re-uploads only the files that failed.
func (b *Batch) Retry(ctx context.Context) (*Task, error) {
	return b.run(ctx, StatusError)
}

func (b *Batch) run(ctx context.Context, want Status) (*Task, error) {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return nil, ErrRunning
	}
	var idx []int
	for i, st := range b.states {
		if st.Status == want {
			idx = append(idx, i)
		}
	}
	if want == StatusError && len(idx) == 0 {
		b.mu.Unlock()
		return nil, ErrNothingToRetry
	}
	b.running = true
	b.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	t := &Task{ctx: ctx, cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		defer func() {
			b.mu.Lock()
			b.running = false
			b.mu.Unlock()
		}()

		var g errgroup.Group
		g.SetLimit(b.limit)
		for _, i := range idx {
			g.Go(func() error {
				b.uploadOne(ctx, i)
				return nil
			})
		}
		_ = g.Wait()
	}()
	return t, nil
}

func (b *Batch) uploadOne(ctx context.Context, i int) {
	if err := ctx.Err(); err != nil {
		b.update(i, func(st *FileState) {
			st.Status = StatusError
			st.Err = err
		})
		return
	}

	f := b.update(i, func(st *FileState) {
		st.Status = StatusUploading
		st.Progress = 0
		st.Ref = nil
		st.Err = nil
	}).File

	ref, err := b.transfer(ctx, i, f)
	if err != nil {
		b.logger.Warn("upload failed", zap.String("file", f.Name), zap.Error(err))
		b.update(i, func(st *FileState) {
			st.Status = StatusError
			st.Err = err
		})
		return
	}
	b.logger.Debug("uploaded", zap.String("file", f.Name), zap.String("url", ref.DirectURL))
	b.update(i, func(st *FileState) {
		st.Status = StatusSuccess
		st.Progress = 100
		st.Ref = ref
	})
}

func (b *Batch) transfer(ctx context.Context, i int, f File) (*Reference, error) {
	if f.Open == nil {
		return nil, fmt.Errorf("%s: no content", f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	body := newProgressReader(rc, f.Size, func(pct int) {
		b.update(i, func(st *FileState) {
			if pct > st.Progress {
				st.Progress = pct
			}
		})
	})
	ref, err := b.uploader.UploadBlob(ctx, f.Name, f.ContentType, body)
	if err != nil {
		return nil, err
	}
	return ref, nil
}

// update mutates state i and notifies the observer without holding mu.
func (b *Batch) update(i int, fn func(*FileState)) FileState {
	b.notifyMu.Lock()
	defer b.notifyMu.Unlock()

	b.mu.Lock()
	fn(&b.states[i])
	st := b.states[i]
	b.mu.Unlock()
	if b.observe != nil {
		b.observe(i, st)
	}
	return st
}

// States returns a snapshot of every file in input order.
func (b *Batch) States() []FileState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]FileState(nil), b.states...)
}

// Succeeded returns references of successful files in input order.
func (b *Batch) Succeeded() []Reference {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Reference
	for _, st := range b.states {
		if st.Status == StatusSuccess && st.Ref != nil {
			out = append(out, *st.Ref)
		}
	}
	return out
}

// Uploaded pairs a successful reference with the file it came from.
type Uploaded struct {
	File File
	Ref  Reference
}

// RequireAny returns the successful uploads, or ErrNoSuccessfulUploads.
func (b *Batch) RequireAny() ([]Uploaded, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Uploaded
	for _, st := range b.states {
		if st.Status == StatusSuccess && st.Ref != nil {
			out = append(out, Uploaded{File: st.File, Ref: *st.Ref})
		}
	}
	if len(out) == 0 {
		return nil, ErrNoSuccessfulUploads
	}
	return out, nil
}

// Counts tallies files per status.
func (b *Batch) Counts() map[Status]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[Status]int, 4)
	for _, st := range b.states {
		out[st.Status]++
	}
	return out
}
