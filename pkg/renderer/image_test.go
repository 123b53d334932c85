package renderer

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/df07/go-raytracer-bvh/pkg/core"
)

func TestImageData_WritePPM(t *testing.T) {
	img := NewImageData(2, 2)
	img.Set(0, 1, core.NewVec3(2, 0, 0))
	img.Set(1, 1, core.NewVec3(1, 1, 1))
	img.Set(0, 0, core.NewVec3(-1, 0, 4))
	img.Add(1, 0, core.NewVec3(0.1, 0.2, 0.3))
	img.Add(1, 0, core.NewVec3(0.1, 0.2, 0.3))

	var buf bytes.Buffer
	require.NoError(t, img.WritePPM(&buf, 2))

	// Top row first; channels are averaged, scaled by 255.999, rounded and clamped
	expected := "P3\n2 2\n255\n" +
		"255 0 0\n" +
		"128 128 128\n" +
		"0 0 255\n" +
		"26 51 77\n"
	require.Equal(t, expected, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestImageData_WritePPM_Error(t *testing.T) {
	img := NewImageData(1, 1)
	err := img.WritePPM(failingWriter{}, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk full")
}

func TestImageData_AddGet(t *testing.T) {
	img := NewImageData(3, 2)
	img.Add(2, 1, core.NewVec3(0.25, 0, 0))
	img.Add(2, 1, core.NewVec3(0.25, 1, 0))

	require.Equal(t, core.NewVec3(0.5, 1, 0), img.Get(2, 1))
	require.Equal(t, core.Vec3{}, img.Get(0, 0))
	require.Panics(t, func() { img.Get(3, 0) })
	require.Panics(t, func() { img.Set(0, -1, core.Vec3{}) })
}

func TestImageData_ToRGBA(t *testing.T) {
	img := NewImageData(1, 2)
	img.Set(0, 1, core.NewVec3(1, 0, 0)) // top
	img.Set(0, 0, core.NewVec3(0, 0, 1)) // bottom

	out := img.ToRGBA(1)
	require.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(0, 0))
	require.Equal(t, color.RGBA{B: 255, A: 255}, out.RGBAAt(0, 1))
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0, clamp(-3, 0, 255))
	require.Equal(t, 255, clamp(300, 0, 255))
	require.Equal(t, 17, clamp(17, 0, 255))
	require.Equal(t, 0.5, clamp(0.5, 0.0, 1.0))
}
