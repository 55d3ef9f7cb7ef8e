package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func newTestClient(t *testing.T) *LocalStorageClient {
	t.Helper()
	client, err := NewLocalStorageClient(filepath.Join(t.TempDir(), "public", "images"))
	if err != nil {
		t.Fatalf("Failed to create LocalStorageClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNewLocalStorageClient(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "public", "images")

	client, err := NewLocalStorageClient(baseDir)
	if err != nil {
		t.Fatalf("Failed to create LocalStorageClient: %v", err)
	}
	defer client.Close()

	if client.BaseDir() != baseDir {
		t.Errorf("Expected base dir %s, got %s", baseDir, client.BaseDir())
	}
	if info, err := os.Stat(baseDir); err != nil || !info.IsDir() {
		t.Errorf("Expected base directory to be created, stat error: %v", err)
	}

	// Creating a second client on the same directory is idempotent
	if _, err := NewLocalStorageClient(baseDir); err != nil {
		t.Errorf("Expected second client on existing dir to succeed, got %v", err)
	}
}

func TestNewLocalStorageClient_EmptyDir(t *testing.T) {
	if _, err := NewLocalStorageClient(""); err == nil {
		t.Error("Expected error for empty base directory")
	}
}

func TestNewLocalStorageClient_PathIsFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(filePath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewLocalStorageClient(filepath.Join(filePath, "images")); err == nil {
		t.Error("Expected error when base directory cannot be created")
	}
}

func TestLocalStorageClient_StoreAndGetFile(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		fileName string
		data     []byte
	}{
		{name: "png data", fileName: "chart.png", data: []byte{0x89, 'P', 'N', 'G'}},
		{name: "html document", fileName: "page.html", data: []byte("<!DOCTYPE html><html></html>")},
		{name: "empty file", fileName: "empty.txt", data: []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := client.StoreFile(ctx, tt.fileName, tt.data); err != nil {
				t.Fatalf("StoreFile() error = %v", err)
			}

			got, err := client.GetFile(ctx, tt.fileName)
			if err != nil {
				t.Fatalf("GetFile() error = %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("GetFile() = %q, want %q", got, tt.data)
			}

			info, err := os.Stat(filepath.Join(client.BaseDir(), tt.fileName))
			if err != nil {
				t.Fatalf("Stored file missing on disk: %v", err)
			}
			if info.Mode().Perm() != 0644 {
				t.Errorf("Expected mode 0644, got %v", info.Mode().Perm())
			}
		})
	}
}

func TestLocalStorageClient_StoreFileOverwrites(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.StoreFile(ctx, "a.txt", []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := client.StoreFile(ctx, "a.txt", []byte("second")); err != nil {
		t.Fatal(err)
	}

	got, err := client.GetFile(ctx, "a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Errorf("Expected overwritten content, got %q", got)
	}
}

func TestLocalStorageClient_StoreFileCancelledContext(t *testing.T) {
	client := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := client.StoreFile(ctx, "late.png", []byte("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if exists, _ := client.FileExists(context.Background(), "late.png"); exists {
		t.Error("Expected no file after cancelled store")
	}
}

func TestLocalStorageClient_GetFileNotFound(t *testing.T) {
	client := newTestClient(t)

	_, err := client.GetFile(context.Background(), "missing.png")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLocalStorageClient_InvalidNames(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	for _, name := range []string{"", "../escape.png", "nested/file.png", `win\file.png`, ".."} {
		t.Run(fmt.Sprintf("name %q", name), func(t *testing.T) {
			if err := client.StoreFile(ctx, name, []byte("x")); !errors.Is(err, ErrInvalidName) {
				t.Errorf("StoreFile(%q) expected ErrInvalidName, got %v", name, err)
			}
			if _, err := client.GetFile(ctx, name); !errors.Is(err, ErrInvalidName) {
				t.Errorf("GetFile(%q) expected ErrInvalidName, got %v", name, err)
			}
			if _, err := client.FileExists(ctx, name); !errors.Is(err, ErrInvalidName) {
				t.Errorf("FileExists(%q) expected ErrInvalidName, got %v", name, err)
			}
			if err := client.DeleteFile(ctx, name); !errors.Is(err, ErrInvalidName) {
				t.Errorf("DeleteFile(%q) expected ErrInvalidName, got %v", name, err)
			}
		})
	}
}

func TestLocalStorageClient_FileExists(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.StoreFile(ctx, "present.html", []byte("<html></html>")); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(client.BaseDir(), "subdir"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		expected bool
	}{
		{"present.html", true},
		{"absent.html", false},
		{"subdir", false},
	}

	for _, tt := range tests {
		exists, err := client.FileExists(ctx, tt.name)
		if err != nil {
			t.Errorf("FileExists(%s) error = %v", tt.name, err)
		}
		if exists != tt.expected {
			t.Errorf("FileExists(%s) = %v, want %v", tt.name, exists, tt.expected)
		}
	}
}

func TestLocalStorageClient_ListFiles(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	for _, name := range []string{"b.png", "a.html", "c.png"} {
		if err := client.StoreFile(ctx, name, []byte(name)); err != nil {
			t.Fatal(err)
		}
	}
	// Leftovers of an interrupted write and directories are not listed
	if err := os.WriteFile(filepath.Join(client.BaseDir(), ".tmp-123"), []byte("partial"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(client.BaseDir(), "nested"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := client.ListFiles(ctx)
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}

	expected := []string{"a.html", "b.png", "c.png"}
	if len(files) != len(expected) {
		t.Fatalf("Expected %d files, got %d: %+v", len(expected), len(files), files)
	}
	for i, file := range files {
		if file.Name != expected[i] {
			t.Errorf("files[%d] = %s, want %s", i, file.Name, expected[i])
		}
		if file.Size != int64(len(expected[i])) {
			t.Errorf("files[%d].Size = %d, want %d", i, file.Size, len(expected[i]))
		}
		if file.ModTime.IsZero() {
			t.Errorf("files[%d] has zero ModTime", i)
		}
	}
}

func TestLocalStorageClient_DeleteFile(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.StoreFile(ctx, "gone.png", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := client.DeleteFile(ctx, "gone.png"); err != nil {
		t.Fatalf("DeleteFile() error = %v", err)
	}
	if exists, _ := client.FileExists(ctx, "gone.png"); exists {
		t.Error("Expected file to be deleted")
	}
	if err := client.DeleteFile(ctx, "gone.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestLocalStorageClient_ConcurrentStores(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("file-%02d.png", i)
			if err := client.StoreFile(ctx, name, []byte(name)); err != nil {
				t.Errorf("StoreFile(%s) error = %v", name, err)
			}
		}(i)
	}
	wg.Wait()

	files, err := client.ListFiles(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 20 {
		t.Errorf("Expected 20 files, got %d", len(files))
	}
}

func TestLocalStorageClient_Location(t *testing.T) {
	client := newTestClient(t)
	if client.Location() != "file://"+client.BaseDir() {
		t.Errorf("Unexpected location %s", client.Location())
	}
}
