package pptx

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// fontKey identifies a rendered face. Typeface names are not part of the
// key: every run is drawn with the bundled Go fonts.
type fontKey struct {
	size   float64
	bold   bool
	italic bool
}

// faceCache parses the bundled fonts once and caches faces per size and style.
type faceCache struct {
	mu    sync.Mutex
	fonts [4]*opentype.Font // regular, bold, italic, bold italic
	faces map[fontKey]font.Face
}

var (
	sharedFaces     *faceCache
	sharedFacesOnce sync.Once
)

func defaultFaces() *faceCache {
	sharedFacesOnce.Do(func() {
		fc := &faceCache{faces: make(map[fontKey]font.Face)}
		for i, data := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF} {
			if f, err := opentype.Parse(data); err == nil {
				fc.fonts[i] = f
			}
		}
		sharedFaces = fc
	})
	return sharedFaces
}

// face returns a face for sizePx pixels, or basicfont when the bundled
// font cannot be used.
func (fc *faceCache) face(sizePx float64, bold, italic bool) font.Face {
	if sizePx < 1 {
		sizePx = 1
	}
	key := fontKey{size: sizePx, bold: bold, italic: italic}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if face, ok := fc.faces[key]; ok {
		return face
	}

	idx := 0
	if bold {
		idx |= 1
	}
	if italic {
		idx |= 2
	}
	f := fc.fonts[idx]
	if f == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	fc.faces[key] = face
	return face
}
