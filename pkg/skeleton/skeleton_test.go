package skeleton

import (
	"bytes"
	"testing"

	"github.com/glyphforge/glyphforge/pkg/raster"
)

// fromGrid builds a raster from a compact grid where '#' is ink and '.' is
// background.
func fromGrid(t *testing.T, rows []string) *raster.Raster {
	t.Helper()
	r, err := raster.New(len(rows[0]), len(rows))
	if err != nil {
		t.Fatalf("raster.New: %v", err)
	}
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				r.Set(x, y, raster.Ink)
			}
		}
	}
	return r
}

func TestThinAllBackground(t *testing.T) {
	r, _ := raster.New(8, 8)
	out := Thin(r)

	if out.InkCount() != 0 {
		t.Errorf("InkCount() = %d, want 0", out.InkCount())
	}
}

func TestThinDoesNotMutateInput(t *testing.T) {
	r := fromGrid(t, []string{
		".....",
		".###.",
		".###.",
		".###.",
		".....",
	})
	before := make([]uint8, len(r.Data()))
	copy(before, r.Data())

	Thin(r)

	if !bytes.Equal(before, r.Data()) {
		t.Error("Thin mutated its input raster")
	}
}

func TestThinIsolatedPixelSurvives(t *testing.T) {
	r := fromGrid(t, []string{
		"...",
		".#.",
		"...",
	})
	out := Thin(r)

	if !raster.IsInk(out.At(1, 1)) {
		t.Error("isolated ink pixel was removed")
	}
	if out.InkCount() != 1 {
		t.Errorf("InkCount() = %d, want 1", out.InkCount())
	}
}

func TestThinSolidBlockReduces(t *testing.T) {
	r := fromGrid(t, []string{
		".....",
		".###.",
		".###.",
		".###.",
		".....",
	})
	out := Thin(r)

	if out.InkCount() >= 9 {
		t.Errorf("InkCount() = %d, want < 9", out.InkCount())
	}
	if out.InkCount() < 1 {
		t.Error("thinning removed every ink pixel")
	}
	if !raster.IsInk(out.At(2, 2)) {
		t.Error("center pixel of solid block should survive")
	}
}

func TestThinLineIsFixedPoint(t *testing.T) {
	r := fromGrid(t, []string{
		".......",
		".#####.",
		".......",
	})
	out := Thin(r)

	if !bytes.Equal(out.Data(), r.Binarize().Data()) {
		t.Error("1-pixel-wide line should be a fixed point")
	}
}

func TestThinIdempotent(t *testing.T) {
	r := fromGrid(t, []string{
		".........",
		".#######.",
		".#######.",
		".#######.",
		".#######.",
		".........",
	})
	once := Thin(r)
	twice := Thin(once)

	if !bytes.Equal(once.Data(), twice.Data()) {
		t.Error("thinning a skeleton must be a no-op")
	}
}

func TestThinOutputStrictlyBinary(t *testing.T) {
	// Grayscale input: mid-dark samples classify as ink.
	r, _ := raster.New(6, 6)
	for y := 1; y < 5; y++ {
		for x := 1; x < 5; x++ {
			r.Set(x, y, 100)
		}
	}
	out := Thin(r)

	if !out.IsBinary() {
		t.Error("skeleton output must contain only 0 and 255 samples")
	}
}

func TestThinBorderUntouched(t *testing.T) {
	// Ink on the border ring is never scanned, so it survives unchanged.
	r := fromGrid(t, []string{
		"#####",
		"#...#",
		"#...#",
		"#####",
	})
	out := Thin(r)

	for x := 0; x < 5; x++ {
		if !raster.IsInk(out.At(x, 0)) || !raster.IsInk(out.At(x, 3)) {
			t.Fatal("border ink was modified")
		}
	}
}
