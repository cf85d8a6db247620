package tumbler

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/minio/blake2b-simd"
)

func TestGenerateRaw(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	if _, err := Generate(ctx, GenerateConfig{
		Engine: "chacha20",
		Seeded: true,
		Seed:   9,
		Count:  16,
		Format: "raw",
		Out:    &buf,
	}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if buf.Len() != 128 {
		t.Fatalf("expected 128 bytes, got %d", buf.Len())
	}

	eng, err := NewEngine(ctx, "chacha20", nil, true, 9)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	want := make([]byte, 0, 128)
	for i := 0; i < 16; i++ {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], eng.Next())
		want = append(want, b[:]...)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("raw stream mismatch:\n got %x\nwant %x", buf.Bytes(), want)
	}
}

func TestGenerateTextLines(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	if _, err := Generate(ctx, GenerateConfig{
		Engine: "xoshiro256pp",
		Seeded: true,
		Seed:   3,
		Count:  5,
		Format: "text",
		Out:    &buf,
	}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), buf.String())
	}

	eng, err := NewEngine(ctx, "xoshiro256pp", nil, true, 3)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	for i, line := range lines {
		got, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			t.Fatalf("line %d is not a decimal value: %q", i, line)
		}
		if want := eng.Next(); got != want {
			t.Fatalf("line %d: got %d, want %d", i, got, want)
		}
	}
}

func TestGenerateHexWraps(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	if _, err := Generate(ctx, GenerateConfig{
		Engine: "pcg32",
		Seeded: true,
		Seed:   1,
		Count:  20,
		Format: "hex",
		Out:    &buf,
	}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	wantLens := []int{128, 128, 64}
	if len(lines) != len(wantLens) {
		t.Fatalf("expected %d lines, got %d", len(wantLens), len(lines))
	}
	for i, line := range lines {
		if len(line) != wantLens[i] {
			t.Fatalf("line %d: expected %d hex chars, got %d", i, wantLens[i], len(line))
		}
	}
}

func TestGenerateDigest(t *testing.T) {
	ctx := context.Background()

	var text bytes.Buffer
	textDigest, err := Generate(ctx, GenerateConfig{
		Engine: "aesctr",
		Seeded: true,
		Seed:   3,
		Count:  10,
		Format: "text",
		Out:    &text,
		Digest: true,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if textDigest == "" {
		t.Fatal("expected a digest string")
	}

	var raw bytes.Buffer
	rawDigest, err := Generate(ctx, GenerateConfig{
		Engine: "aesctr",
		Seeded: true,
		Seed:   3,
		Count:  10,
		Format: "raw",
		Out:    &raw,
		Digest: true,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// The digest covers the value stream, not the formatted output.
	if textDigest != rawDigest {
		t.Fatalf("digest depends on format: %s vs %s", textDigest, rawDigest)
	}

	h, err := blake2b.New(&blake2b.Config{Size: 32})
	if err != nil {
		t.Fatalf("blake2b.New failed: %v", err)
	}
	h.Write(raw.Bytes())
	if want := fmt.Sprintf("%x", h.Sum(nil)); textDigest != want {
		t.Fatalf("digest mismatch: got %s, want %s", textDigest, want)
	}
}

func TestGenerateNoDigest(t *testing.T) {
	var buf bytes.Buffer
	digest, err := Generate(context.Background(), GenerateConfig{
		Seeded: true,
		Seed:   1,
		Count:  1,
		Out:    &buf,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if digest != "" {
		t.Fatalf("expected no digest, got %q", digest)
	}
}

func TestGenerateDefaultEngine(t *testing.T) {
	ctx := context.Background()
	var def, named bytes.Buffer
	if _, err := Generate(ctx, GenerateConfig{
		Seeded: true, Seed: 4, Count: 4, Out: &def,
	}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := Generate(ctx, GenerateConfig{
		Engine: DefaultEngine, Seeded: true, Seed: 4, Count: 4, Out: &named,
	}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !bytes.Equal(def.Bytes(), named.Bytes()) {
		t.Fatal("empty engine name should select the default engine")
	}
}

func TestGenerateValidation(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	if _, err := Generate(ctx, GenerateConfig{Count: 1}); err == nil {
		t.Fatal("expected error for nil output writer")
	}
	if _, err := Generate(ctx, GenerateConfig{Out: &buf}); err == nil {
		t.Fatal("expected error for zero count")
	}
	if _, err := Generate(ctx, GenerateConfig{
		Out: &buf, Count: 1, Format: "xml",
	}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, err := Generate(ctx, GenerateConfig{
		Out: &buf, Count: 1, Engine: "rot13", Seeded: true,
	}); err == nil {
		t.Fatal("expected error for unknown engine")
	}
}
