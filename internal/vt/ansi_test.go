package vt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRgbLuminanceBlackAndWhite(t *testing.T) {
	require.InDelta(t, 0.0, Rgb{0, 0, 0}.Luminance(), 1e-9)
	require.InDelta(t, 1.0, Rgb{255, 255, 255}.Luminance(), 1e-9)
}

func TestRgbContrastIsSymmetric(t *testing.T) {
	black, white := Rgb{0, 0, 0}, Rgb{255, 255, 255}
	require.InDelta(t, black.Contrast(white), white.Contrast(black), 1e-9)
	require.InDelta(t, 21.0, black.Contrast(white), 0.01)
}

func TestRgbContrastWithSelfIsOne(t *testing.T) {
	c := Rgb{120, 40, 200}
	require.InDelta(t, 1.0, c.Contrast(c), 1e-9)
}

func TestRgbAddSaturates(t *testing.T) {
	require.Equal(t, Rgb{255, 255, 10}, Rgb{200, 255, 5}.Add(Rgb{100, 10, 5}))
}

func TestRgbSubSaturates(t *testing.T) {
	require.Equal(t, Rgb{0, 5, 0}, Rgb{10, 15, 3}.Sub(Rgb{20, 10, 3}))
}

func TestRgbMulClamps(t *testing.T) {
	require.Equal(t, Rgb{255, 0, 100}, Rgb{200, 0, 50}.Mul(2.0))
}

func TestRgbString(t *testing.T) {
	require.Equal(t, "#ff8000", Rgb{255, 128, 0}.String())
}

func TestRgbFromStringAcceptsHashAndHexPrefix(t *testing.T) {
	c, ok := RgbFromString("#ff8000")
	require.True(t, ok)
	require.Equal(t, Rgb{255, 128, 0}, c)

	c, ok = RgbFromString("0xff8000")
	require.True(t, ok)
	require.Equal(t, Rgb{255, 128, 0}, c)
}

func TestRgbFromStringRejectsMalformedInput(t *testing.T) {
	for _, s := range []string{"", "ff8000", "#fff", "#gggggg", "#ff80000"} {
		_, ok := RgbFromString(s)
		require.False(t, ok, "expected %q to be rejected", s)
	}
}

func TestRgbBlendBoundaries(t *testing.T) {
	a, b := Rgb{0, 0, 0}, Rgb{255, 255, 255}
	require.Equal(t, a, a.Blend(b, 0))
	require.Equal(t, b, a.Blend(b, 1))
}

func TestRgbLerpIsBlendAlias(t *testing.T) {
	a, b := Rgb{10, 20, 30}, Rgb{210, 20, 30}
	require.Equal(t, a.Blend(b, 0.5), a.Lerp(b, 0.5))
}

func TestRgbDistanceZeroForIdenticalColors(t *testing.T) {
	c := Rgb{12, 34, 56}
	require.Zero(t, c.Distance(c))
}

func TestNamedColorToRgbTableValues(t *testing.T) {
	require.Equal(t, Rgb{0, 0, 0}, Black.ToRgb())
	require.Equal(t, Rgb{170, 0, 0}, Red.ToRgb())
	require.Equal(t, Rgb{255, 255, 255}, BrightWhite.ToRgb())
}

func TestIndexedColorBelowSixteenUsesNamedTable(t *testing.T) {
	require.Equal(t, Red.ToRgb(), NewIndexedColor(1).ToRgb())
}

// 216-color cube: index 16 is the cube's (0,0,0) corner, pure black.
func TestIndexedColorCubeOrigin(t *testing.T) {
	require.Equal(t, Rgb{0, 0, 0}, NewIndexedColor(16).ToRgb())
}

// index 231 is the cube's (5,5,5) corner, pure white by the palette table.
func TestIndexedColorCubeOppositeCorner(t *testing.T) {
	require.Equal(t, Rgb{255, 255, 255}, NewIndexedColor(231).ToRgb())
}

func TestIndexedColorGrayscaleRamp(t *testing.T) {
	require.Equal(t, Rgb{8, 8, 8}, NewIndexedColor(232).ToRgb())
	require.Equal(t, Rgb{238, 238, 238}, NewIndexedColor(255).ToRgb())
}

func TestColorToRgbDispatchesByType(t *testing.T) {
	require.Equal(t, Rgb{0, 0, 0}, DefaultColor.ToRgb())
	require.Equal(t, Red.ToRgb(), NewNamedColor(Red).ToRgb())
	require.Equal(t, Rgb{1, 2, 3}, NewRgbColor(1, 2, 3).ToRgb())
}

func TestAttrSetAddRemoveToggle(t *testing.T) {
	a := AttrNone.Add(AttrBold).Add(AttrItalic)
	require.True(t, a.Has(AttrBold))
	require.True(t, a.Has(AttrItalic))
	require.False(t, a.Has(AttrUnderline))

	a = a.Remove(AttrBold)
	require.False(t, a.Has(AttrBold))

	a = a.Toggle(AttrUnderline)
	require.True(t, a.Has(AttrUnderline))
	a = a.Toggle(AttrUnderline)
	require.False(t, a.Has(AttrUnderline))
}

func TestModeIsPrivate(t *testing.T) {
	require.False(t, ModeInsert.IsPrivate())
	require.True(t, ModeShowCursor.IsPrivate())
	require.True(t, ModeBracketedPaste.IsPrivate())
}
