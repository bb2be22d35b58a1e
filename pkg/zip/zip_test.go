package zip

import (
	stdzip "archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestArchive_RoundTrip(t *testing.T) {
	entries := []Entry{
		{Name: "photos/a.jpg", Data: []byte("first")},
		{Name: "photos/b.jpg", Data: []byte("second")},
	}

	data, err := Archive(entries)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}

	zr, err := stdzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("expected 2 files, got %d", len(zr.File))
	}
	for i, entry := range entries {
		f := zr.File[i]
		if f.Name != entry.Name {
			t.Fatalf("file %d: got name %q, want %q", i, f.Name, entry.Name)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		if !bytes.Equal(content, entry.Data) {
			t.Fatalf("content of %s: got %q, want %q", f.Name, content, entry.Data)
		}
	}
}

func TestArchive_Empty(t *testing.T) {
	data, err := Archive(nil)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if _, err := stdzip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
		t.Fatalf("empty archive should still open: %v", err)
	}
}
