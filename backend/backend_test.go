package backend

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/glyphfont/atlas"
)

type testBackend struct {
	name     string
	initErr  error
	upErr    error
	inited   bool
	closed   bool
	uploader atlas.TextureUploader
}

func (b *testBackend) Name() string { return b.name }
func (b *testBackend) Init() error  { b.inited = true; return b.initErr }
func (b *testBackend) Close()       { b.closed = true }

func (b *testBackend) NewUploader() (atlas.TextureUploader, error) {
	if !b.inited {
		return nil, ErrNotInitialized
	}
	if b.upErr != nil {
		return nil, b.upErr
	}
	return b.uploader, nil
}

// registerTest registers b under name and restores the previous
// registration when the test ends.
func registerTest(t *testing.T, name string, b *testBackend) {
	t.Helper()
	registryMu.Lock()
	prev, had := factories[name]
	registryMu.Unlock()

	Register(name, func() Backend { return b })
	t.Cleanup(func() {
		registryMu.Lock()
		defer registryMu.Unlock()
		if had {
			factories[name] = prev
		} else {
			delete(factories, name)
		}
	})
}

func newTestUploader() atlas.TextureUploader {
	return atlas.UploaderFunc(func(*image.RGBA) (atlas.Texture, error) {
		return nil, errors.New("unused")
	})
}

func TestOpen(t *testing.T) {
	tb := &testBackend{name: "test-open", uploader: newTestUploader()}
	registerTest(t, "test-open", tb)

	b, up, err := Open("test-open")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if b != tb || !tb.inited {
		t.Error("Open() did not return the initialized backend")
	}
	if up == nil {
		t.Error("Open() returned a nil uploader")
	}
}

func TestOpenErrors(t *testing.T) {
	boom := errors.New("boom")
	broken := &testBackend{name: "test-broken", initErr: boom}
	noUploader := &testBackend{name: "test-no-uploader", upErr: boom}
	registerTest(t, "test-broken", broken)
	registerTest(t, "test-no-uploader", noUploader)

	tests := []struct {
		name string
		want error
	}{
		{"nonexistent", ErrBackendNotAvailable},
		{"test-broken", boom},
		{"test-no-uploader", boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, up, err := Open(tt.name)
			if !errors.Is(err, tt.want) {
				t.Errorf("Open(%q) error = %v, want %v", tt.name, err, tt.want)
			}
			if b != nil || up != nil {
				t.Errorf("Open(%q) = %v, %v on error", tt.name, b, up)
			}
		})
	}
	if !noUploader.closed {
		t.Error("backend not closed after its uploader failed")
	}
}

func TestOpenDefaultPriority(t *testing.T) {
	sw := &testBackend{name: BackendSoftware, uploader: newTestUploader()}
	registerTest(t, BackendSoftware, sw)
	if b, _, err := Open(""); err != nil || b != sw {
		t.Fatalf("Open(\"\") = %v, %v, want software", b, err)
	}

	eb := &testBackend{name: BackendEbiten, uploader: newTestUploader()}
	registerTest(t, BackendEbiten, eb)
	if b, _, err := Open(""); err != nil || b != eb {
		t.Errorf("Open(\"\") = %v, %v, want ebiten to win over software", b, err)
	}
}

func TestNewUploaderRequiresInit(t *testing.T) {
	b := &testBackend{name: "cold"}
	if _, err := b.NewUploader(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("NewUploader() error = %v, want ErrNotInitialized", err)
	}
}
