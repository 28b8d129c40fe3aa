package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/lison/lison"
	"github.com/disintegration/imaging"
)

var sample = filepath.Join("..", "..", "lison", "testdata", "shapes.lison")

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"image.lison"})
	if err != nil {
		t.Fatal(err)
	}
	exp := options{input: "image.lison", output: "image.lison.png", resolution: 72, scale: 1, charset: "utf-8"}
	if opts != exp {
		t.Fatalf("expected %+v, got %+v", exp, opts)
	}

	opts, err = parseFlags([]string{"-o", "out.jpg", "-r", "300", "-s", "0.5", "-charset", "latin1", "image.lison"})
	if err != nil {
		t.Fatal(err)
	}
	exp = options{input: "image.lison", output: "out.jpg", resolution: 300, scale: 0.5, charset: "latin1"}
	if opts != exp {
		t.Fatalf("expected %+v, got %+v", exp, opts)
	}

	opts, err = parseFlags([]string{"-"})
	if err != nil || opts.output != pipeName {
		t.Fatalf("expected stdout output, got %+v (%v)", opts, err)
	}

	for _, args := range [][]string{
		{},
		{"a.lison", "b.lison"},
		{"-r", "0", "a.lison"},
		{"-s", "-2", "a.lison"},
		{"-o", "out.svg", "a.lison"},
		{"-unknown", "a.lison"},
	} {
		if _, err := parseFlags(args); err == nil {
			t.Fatalf("expected an error for %v", args)
		}
	}
}

func TestRunPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "shapes.png")
	if err := run(options{input: sample, output: out, resolution: 192, scale: 1, charset: "utf-8"}); err != nil {
		t.Fatal(err)
	}
	img, err := imaging.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	// 200 x 100 units at 96 units per inch
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Fatalf("unexpected size %v", b)
	}
}

func TestRunPDF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "shapes.pdf")
	if err := run(options{input: sample, output: out, resolution: 72, scale: 1, charset: "utf-8"}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	invalid := filepath.Join(dir, "invalid.lison")
	if err := os.WriteFile(invalid, []byte(`{"width": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	err := run(options{input: invalid, output: filepath.Join(dir, "out.png"), resolution: 72, scale: 1, charset: "utf-8"})
	if err == nil || !strings.Contains(err.Error(), lison.BadImage.Error()) {
		t.Fatalf("expected a parse failure, got %v", err)
	}

	err = run(options{input: filepath.Join(dir, "missing.lison"), output: filepath.Join(dir, "out.png"), resolution: 72, scale: 1, charset: "utf-8"})
	if !os.IsNotExist(err) {
		t.Fatalf("expected a missing file, got %v", err)
	}

	err = run(options{input: sample, output: filepath.Join(dir, "out.png"), resolution: 72, scale: 1, charset: "no-such-charset"})
	if err == nil {
		t.Fatal("expected an invalid charset")
	}
}

func TestCharset(t *testing.T) {
	// "é" in ISO-8859-1, inside an ignored annotation
	content := []byte(`{"width": 1, "height": 1, "unit-per-inch": 1, "editor": "caf` + "\xe9" + `",
		"pens": [], "brushes": [], "shapes": []}`)
	input := filepath.Join(t.TempDir(), "latin1.lison")
	if err := os.WriteFile(input, content, 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := readImage(input, "latin1")
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 1 {
		t.Fatalf("unexpected image %v", img)
	}
}

func TestWriteInfo(t *testing.T) {
	img, err := readImage(filepath.Join("..", "..", "lison", "testdata", "nested.lison"), "utf-8")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := writeInfo(&buf, img, 144, 1); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, line := range []string{
		"canvas: 64 x 64 units, 72 units per inch",
		"device size: 128 x 128 pixels",
		"pens: 1, brushes: 1",
		"groups: 3 (max depth 3), curves: 2, regions: 2",
		"contours: 4, segments: 7",
		"extent: (4, 4) - (60, 61.5), 56 x 57.5 units",
	} {
		if !strings.Contains(got, line) {
			t.Fatalf("missing %q in\n%s", line, got)
		}
	}
}
