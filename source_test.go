// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package mdf_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/creachadair/mdf"
	"github.com/creachadair/mdf/ast"
	"github.com/google/go-cmp/cmp"
)

// readAll drains src and reports the characters delivered.
func readAll(t *testing.T, src *mdf.Source) string {
	t.Helper()
	var out []rune
	for {
		ch, err := src.ReadChar()
		if err == io.EOF {
			return string(out)
		} else if err != nil {
			t.Fatalf("ReadChar failed: %v", err)
		}
		out = append(out, ch)
	}
}

func TestSourceNewlines(t *testing.T) {
	tests := []struct {
		input string
		want  string
		lines int
	}{
		{"", "", 1},
		{"abc", "abc", 1},

		// CR, LF, and CRLF each deliver exactly one line feed.
		{"a\nb", "a\nb", 2},
		{"a\rb", "a\nb", 2},
		{"a\r\nb", "a\nb", 2},
		{"a\r\rb", "a\n\nb", 3},
		{"a\r\n\r\n", "a\n\n", 3},
		{"\r", "\n", 2},
	}

	for _, test := range tests {
		src := mdf.OpenString(test.input)
		if got := readAll(t, src); got != test.want {
			t.Errorf("Input %#q: got %#q, want %#q", test.input, got, test.want)
		}
		if src.Line() != test.lines {
			t.Errorf("Input %#q: line %d, want %d", test.input, src.Line(), test.lines)
		}
	}
}

func TestSourcePushback(t *testing.T) {
	src := mdf.OpenString("ab\ncd")

	ch, err := src.ReadChar()
	if ch != 'a' || err != nil {
		t.Fatalf("ReadChar: got %q, %v; want 'a', nil", ch, err)
	}
	src.UnreadChar(ch)
	if got := readAll(t, src); got != "ab\ncd" {
		t.Errorf("After pushback: got %#q, want %#q", got, "ab\ncd")
	}

	// Pushing back a line feed rewinds the line counter.
	src = mdf.OpenString("x\ny")
	for range 2 {
		if _, err := src.ReadChar(); err != nil {
			t.Fatalf("ReadChar failed: %v", err)
		}
	}
	if src.Line() != 2 {
		t.Errorf("Line: got %d, want 2", src.Line())
	}
	src.UnreadChar('\n')
	if src.Line() != 1 {
		t.Errorf("Line after pushback: got %d, want 1", src.Line())
	}
	if got := readAll(t, src); got != "\ny" {
		t.Errorf("After pushback: got %#q, want %#q", got, "\ny")
	}
}

func TestSourceLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.mdf")
	if err := os.WriteFile(path, []byte("Test 123\n"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	t.Run("Path", func(t *testing.T) {
		src, err := mdf.Open(path)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer src.Close()
		if src.Label() != path {
			t.Errorf("Label: got %q, want %q", src.Label(), path)
		}
		if got := readAll(t, src); got != "Test 123\n" {
			t.Errorf("Contents: got %#q", got)
		}
	})

	t.Run("File", func(t *testing.T) {
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer f.Close()

		src := mdf.OpenFile(f)
		if src.Label() != "<file>" {
			t.Errorf("Label: got %q, want %q", src.Label(), "<file>")
		}
		if err := src.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}

		// The source did not own f, so f must still be usable.
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			t.Errorf("Handle was closed by the source: %v", err)
		}
	})

	t.Run("String", func(t *testing.T) {
		src := mdf.OpenString("x")
		if src.Label() != "<string>" {
			t.Errorf("Label: got %q, want %q", src.Label(), "<string>")
		}
		if err := src.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		src, err := mdf.Open(filepath.Join(t.TempDir(), "nonesuch.mdf"))
		if err == nil {
			src.Close()
			t.Fatal("Open did not report an error")
		}
	})
}

func TestSourceFD(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.mdf")
	if err := os.WriteFile(path, []byte("Port 9001\n"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	src, err := mdf.OpenFD(int(f.Fd()))
	if err != nil {
		t.Fatalf("OpenFD failed: %v", err)
	}
	if src.Label() != "<file>" {
		t.Errorf("Label: got %q, want %q", src.Label(), "<file>")
	}

	root, err := ast.Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got, want := ast.Format(root), "Port 9001"; got != want {
		t.Errorf("Parse: got %#q, want %#q", got, want)
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	// The original descriptor was duplicated, so f must remain open.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Errorf("Original descriptor was closed: %v", err)
	}
	buf := make([]byte, 4)
	if _, err := io.ReadFull(f, buf); err != nil || string(buf) != "Port" {
		t.Errorf("Read from original: got %q, %v", buf, err)
	}
}

func TestSourceErrRetention(t *testing.T) {
	src := mdf.OpenString("A $ B ^")
	s := mdf.NewScanner(src)

	var first error
	for first == nil {
		first = s.Next()
	}
	want := `<string>:1: unexpected character '$' (ascii 36)`
	if diff := cmp.Diff(want, first.Error()); diff != "" {
		t.Fatalf("Error: (-want, +got)\n%s", diff)
	}
	if src.Err() != first {
		t.Errorf("Source error: got %v, want %v", src.Err(), first)
	}
}
