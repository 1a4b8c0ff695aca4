package logutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a\nb\rc", `a\nb\nc`},
		{"tab\there", `tab\there`},
		{"bell\a", "bell?"},
		{"/home/me/Pictures/× shot.png", "/home/me/Pictures/× shot.png"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	long := strings.Repeat("x", 150)
	if got := Sanitize(long); len(got) != 103 || !strings.HasSuffix(got, "...") {
		t.Errorf("Sanitize(long) = %d chars", len(got))
	}
}

func TestRotatingWriterRotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	w, err := newRotatingWriter(path, 16)
	if err != nil {
		t.Fatalf("newRotatingWriter: %v", err)
	}
	defer w.Close()

	for _, line := range []string{"0123456789\n", "abcdefghij\n", "ABCDEFGHIJ\n"} {
		if _, err := w.Write([]byte(line)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	cur, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(cur) != "ABCDEFGHIJ\n" {
		t.Fatalf("current log = %q", cur)
	}
	first, err := os.ReadFile(archiveName(path, 1))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != "abcdefghij\n" {
		t.Fatalf("archive .1 = %q", first)
	}
	if _, err := os.Stat(archiveName(path, 2)); err != nil {
		t.Fatalf("archive .2 missing: %v", err)
	}
}

func TestRotateKeepsThreeArchives(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte{byte('0' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
		rotate(path)
	}
	if _, err := os.Stat(archiveName(path, 4)); !os.IsNotExist(err) {
		t.Fatalf("archive .4 should not exist: %v", err)
	}
	newest, _ := os.ReadFile(archiveName(path, 1))
	oldest, _ := os.ReadFile(archiveName(path, 3))
	if string(newest) != "4" || string(oldest) != "2" {
		t.Fatalf("archives = %q..%q, want 4..2", newest, oldest)
	}
}
