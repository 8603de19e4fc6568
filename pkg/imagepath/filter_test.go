package imagepath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"empty", nil, []string{}},
		{"mixed case", []string{"a.PNG", "b.txt", "c.psd"}, []string{"a.PNG", "c.psd"}},
		{"all supported", []string{"1.jpg", "2.jpeg", "3.png", "4.psd", "5.tiff", "6.tif"},
			[]string{"1.jpg", "2.jpeg", "3.png", "4.psd", "5.tiff", "6.tif"}},
		{"no extension", []string{"README", "png", ".png.bak"}, []string{}},
		{"order preserved", []string{"z.TIF", "x.gif", "a.JpG"}, []string{"z.TIF", "a.JpG"}},
		{"windows paths", []string{`C:\images\a.png`, `C:\images\b.bmp`}, []string{`C:\images\a.png`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(tt.in))
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := []string{"a.txt", "b.png"}
	_ = Filter(in)
	assert.Equal(t, []string{"a.txt", "b.png"}, in)
}

func TestLayerName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/home/u/pic.png", "pic.png"},
		{`C:\images\a.png`, "a.png"},
		{"pic.JPG", "pic.JPG"},
		{`D:\mixed/sep\photo.tiff`, "photo.tiff"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LayerName(tt.in), tt.in)
	}
}

func TestDialogPatterns(t *testing.T) {
	assert.Equal(t,
		[]string{"*.jpg", "*.jpeg", "*.png", "*.psd", "*.tiff", "*.tif"},
		DialogPatterns())
}

func TestExtensionsIsACopy(t *testing.T) {
	exts := Extensions()
	exts[0] = ".exe"
	assert.True(t, Supported("a.jpg"))
	assert.False(t, Supported("a.exe"))
}
