package pptx

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// RenderOptions configures slide-to-image rendering.
type RenderOptions struct {
	// Width is the output image width in pixels. Height follows the slide
	// aspect ratio. Default: 960.
	Width int
	// Format is the output image format (PNG or JPEG).
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// BackgroundColor overrides the slide background.
	BackgroundColor *color.RGBA
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Width:       960,
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
	}
}

// SlideToImage renders a single slide to an image. The preview covers
// fills, gradients, outlines, shadows, pictures, tables and text; rotation
// and dash patterns are not drawn.
func (p *Presentation) SlideToImage(slideIndex int, opts *RenderOptions) (image.Image, error) {
	if slideIndex < 0 || slideIndex >= len(p.slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", slideIndex, len(p.slides)-1)
	}
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	width := opts.Width
	if width <= 0 {
		width = 960
	}

	slide := p.slides[slideIndex]
	slideW := float64(p.layout.CX)
	slideH := float64(p.layout.CY)
	height := max(int(float64(width)*slideH/slideW), 1)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	r := &renderer{
		img:    img,
		scaleX: float64(width) / slideW,
		scaleY: float64(height) / slideH,
		faces:  defaultFaces(),
	}

	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	switch {
	case opts.BackgroundColor != nil:
		draw.Draw(img, img.Bounds(), &image.Uniform{*opts.BackgroundColor}, image.Point{}, draw.Src)
	case slide.background != nil:
		r.paintFill(img.Bounds(), slide.background, func(int, int) bool { return true })
	}

	for _, shape := range slide.shapes {
		r.renderShape(shape)
	}
	return img, nil
}

// SlidesToImages renders all slides to images.
func (p *Presentation) SlidesToImages(opts *RenderOptions) ([]image.Image, error) {
	images := make([]image.Image, len(p.slides))
	for i := range p.slides {
		img, err := p.SlideToImage(i, opts)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}
		images[i] = img
	}
	return images, nil
}

// SaveSlideAsImage renders a slide and saves it to a file.
func (p *Presentation) SaveSlideAsImage(slideIndex int, path string, opts *RenderOptions) error {
	img, err := p.SlideToImage(slideIndex, opts)
	if err != nil {
		return err
	}
	return saveImage(img, path, opts)
}

func saveImage(img image.Image, path string, opts *RenderOptions) error {
	if opts == nil {
		opts = DefaultRenderOptions()
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(f, img)
	}
}

// --- renderer ---

type renderer struct {
	img    *image.RGBA
	scaleX float64
	scaleY float64
	faces  *faceCache
}

// insideFunc reports whether a pixel belongs to a shape's geometry.
type insideFunc func(x, y int) bool

func (r *renderer) renderShape(shape Shape) {
	if shape.base().hidden {
		return
	}
	switch s := shape.(type) {
	case *PlaceholderShape:
		r.renderTextBox(&s.RichTextShape)
	case *RichTextShape:
		r.renderTextBox(s)
	case *DrawingShape:
		r.renderDrawing(s)
	case *AutoShape:
		r.renderAutoShape(s)
	case *LineShape:
		r.renderLine(s)
	case *TableShape:
		r.renderTable(s)
	case *GroupShape:
		for _, child := range s.shapes {
			r.renderShape(child)
		}
	}
}

func (r *renderer) emuToPixelX(emu int64) int { return int(math.Round(float64(emu) * r.scaleX)) }
func (r *renderer) emuToPixelY(emu int64) int { return int(math.Round(float64(emu) * r.scaleY)) }

func (r *renderer) pixelRect(b *BaseShape) image.Rectangle {
	x, y := r.emuToPixelX(b.offsetX), r.emuToPixelY(b.offsetY)
	return image.Rect(x, y, x+r.emuToPixelX(b.width), y+r.emuToPixelY(b.height))
}

func (r *renderer) strokeWidth(emu int64) int {
	return max(int(math.Round(float64(emu)*r.scaleX)), 1)
}

func toNRGBA(c Color) color.NRGBA {
	c = c.Resolve()
	return color.NRGBA{R: c.GetRed(), G: c.GetGreen(), B: c.GetBlue(), A: c.GetAlpha()}
}

// --- Geometry ---

func rectInside(rect image.Rectangle) insideFunc {
	return func(x, y int) bool { return image.Pt(x, y).In(rect) }
}

func ellipseInside(rect image.Rectangle) insideFunc {
	rx, ry := float64(rect.Dx())/2, float64(rect.Dy())/2
	cx, cy := float64(rect.Min.X)+rx, float64(rect.Min.Y)+ry
	return func(x, y int) bool {
		if rx <= 0 || ry <= 0 {
			return false
		}
		dx := (float64(x) + 0.5 - cx) / rx
		dy := (float64(y) + 0.5 - cy) / ry
		return dx*dx+dy*dy <= 1
	}
}

func roundRectInside(rect image.Rectangle, radius float64) insideFunc {
	radius = math.Min(radius, math.Min(float64(rect.Dx()), float64(rect.Dy()))/2)
	inner := [4]float64{
		float64(rect.Min.X) + radius, float64(rect.Min.Y) + radius,
		float64(rect.Max.X) - radius, float64(rect.Max.Y) - radius,
	}
	return func(x, y int) bool {
		if !image.Pt(x, y).In(rect) {
			return false
		}
		px, py := float64(x)+0.5, float64(y)+0.5
		qx := math.Max(inner[0], math.Min(px, inner[2]))
		qy := math.Max(inner[1], math.Min(py, inner[3]))
		return (px-qx)*(px-qx)+(py-qy)*(py-qy) <= radius*radius
	}
}

func (r *renderer) geometry(s *AutoShape, rect image.Rectangle) insideFunc {
	switch s.shapeType {
	case AutoShapeEllipse:
		return ellipseInside(rect)
	case AutoShapeRoundedRect:
		adj := 16667
		if v, ok := s.adjustValues["adj"]; ok {
			adj = v
		}
		short := math.Min(float64(rect.Dx()), float64(rect.Dy()))
		return roundRectInside(rect, short*float64(adj)/100000)
	}
	return rectInside(rect)
}

// strokeOf returns the pixels inside outer but outside inner.
func strokeOf(outer, inner insideFunc) insideFunc {
	return func(x, y int) bool { return outer(x, y) && !inner(x, y) }
}

// --- Painting ---

func (r *renderer) blend(x, y int, c color.NRGBA) {
	if !image.Pt(x, y).In(r.img.Rect) || c.A == 0 {
		return
	}
	dst := r.img.RGBAAt(x, y)
	a := uint32(c.A)
	inv := 255 - a
	dst.R = uint8((uint32(c.R)*a + uint32(dst.R)*inv) / 255)
	dst.G = uint8((uint32(c.G)*a + uint32(dst.G)*inv) / 255)
	dst.B = uint8((uint32(c.B)*a + uint32(dst.B)*inv) / 255)
	dst.A = uint8(a + uint32(dst.A)*inv/255)
	r.img.SetRGBA(x, y, dst)
}

func (r *renderer) paint(rect image.Rectangle, inside insideFunc, c color.NRGBA) {
	rect = rect.Intersect(r.img.Rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if inside(x, y) {
				r.blend(x, y, c)
			}
		}
	}
}

func (r *renderer) paintFill(rect image.Rectangle, f *Fill, inside insideFunc) {
	if f == nil {
		return
	}
	switch f.Type {
	case FillSolid:
		r.paint(rect, inside, toNRGBA(f.Color))
	case FillGradientLinear:
		r.paintGradient(rect, f, inside)
	}
}

func (r *renderer) paintGradient(rect image.Rectangle, f *Fill, inside insideFunc) {
	start, end := toNRGBA(f.Color), toNRGBA(f.EndColor)
	theta := float64(f.Rotation) * math.Pi / 180
	dx, dy := math.Cos(theta), math.Sin(theta)
	span := math.Abs(dx)*float64(rect.Dx()) + math.Abs(dy)*float64(rect.Dy())
	if span <= 0 {
		span = 1
	}
	// projection of the corner where the gradient starts
	origin := math.Min(0, dx*float64(rect.Dx())) + math.Min(0, dy*float64(rect.Dy()))

	clip := rect.Intersect(r.img.Rect)
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			if !inside(x, y) {
				continue
			}
			proj := dx*float64(x-rect.Min.X) + dy*float64(y-rect.Min.Y)
			t := math.Max(0, math.Min(1, (proj-origin)/span))
			r.blend(x, y, lerpColor(start, end, t))
		}
	}
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(p, q uint8) uint8 { return uint8(math.Round(float64(p) + (float64(q)-float64(p))*t)) }
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// paintShadow draws the shadow as an offset silhouette of the shape.
func (r *renderer) paintShadow(s *Shadow, rect image.Rectangle, shape func(image.Rectangle) insideFunc) {
	if s == nil || !s.Visible {
		return
	}
	theta := float64(s.Direction) * math.Pi / 180
	dist := Point(s.Distance)
	off := image.Pt(
		int(math.Round(float64(dist)*math.Cos(theta)*r.scaleX)),
		int(math.Round(float64(dist)*math.Sin(theta)*r.scaleY)),
	)
	shifted := rect.Add(off)
	r.paint(shifted, shape(shifted), toNRGBA(s.Color))
}

func (r *renderer) paintOutline(rect image.Rectangle, b *Border, shape func(image.Rectangle) insideFunc) {
	if !b.IsVisible() {
		return
	}
	pw := r.strokeWidth(b.Width)
	inner := rect.Inset(pw)
	r.paint(rect, strokeOf(shape(rect), shape(inner)), toNRGBA(b.Color))
}

// --- Shapes ---

func (r *renderer) renderTextBox(s *RichTextShape) {
	rect := r.pixelRect(&s.BaseShape)
	r.paintShadow(s.shadow, rect, rectInside)
	r.paintFill(rect, s.fill, rectInside(rect))
	r.paintOutline(rect, s.border, rectInside)
	r.drawParagraphs(s.paragraphs, rect.Inset(r.strokeWidth(Inch(0.1))), s.textAnchor)
}

func (r *renderer) renderAutoShape(s *AutoShape) {
	rect := r.pixelRect(&s.BaseShape)
	shape := func(rc image.Rectangle) insideFunc { return r.geometry(s, rc) }
	r.paintShadow(s.shadow, rect, shape)
	r.paintFill(rect, s.fill, shape(rect))
	r.paintOutline(rect, s.border, shape)
	anchor := s.textAnchor
	if anchor == TextAnchorNone {
		anchor = TextAnchorMiddle
	}
	r.drawParagraphs(s.paragraphs, rect.Inset(r.strokeWidth(Inch(0.1))), anchor)
}

func (r *renderer) renderDrawing(s *DrawingShape) {
	rect := r.pixelRect(&s.BaseShape)
	if len(s.data) == 0 {
		return
	}
	src, _, err := image.Decode(bytes.NewReader(s.data))
	if err != nil {
		r.paint(rect, strokeOf(rectInside(rect), rectInside(rect.Inset(1))), color.NRGBA{R: 200, G: 200, B: 200, A: 255})
		return
	}
	r.paintShadow(s.shadow, rect, rectInside)
	xdraw.ApproxBiLinear.Scale(r.img, rect, src, src.Bounds(), xdraw.Over, nil)
	r.paintOutline(rect, s.border, rectInside)
}

func (r *renderer) renderLine(s *LineShape) {
	x1, y1 := r.emuToPixelX(s.offsetX), r.emuToPixelY(s.offsetY)
	x2, y2 := r.emuToPixelX(s.offsetX+s.width), r.emuToPixelY(s.offsetY+s.height)
	if s.flipHorizontal {
		x1, x2 = x2, x1
	}
	if s.flipVertical {
		y1, y2 = y2, y1
	}
	if s.lineStyle == BorderNone {
		return
	}
	r.drawLine(x1, y1, x2, y2, r.strokeWidth(s.lineWidth), toNRGBA(s.lineColor))
}

var inheritedGridColor = color.NRGBA{R: 0xD0, G: 0xD0, B: 0xD0, A: 0xFF}

func (r *renderer) renderTable(s *TableShape) {
	if s.numRows == 0 || s.numCols == 0 {
		return
	}
	x0, y0 := r.emuToPixelX(s.offsetX), r.emuToPixelY(s.offsetY)

	colX := make([]int, s.numCols+1)
	var acc int64
	for j := 0; j < s.numCols; j++ {
		colX[j] = x0 + r.emuToPixelX(acc)
		acc += s.columnWidth(j)
	}
	colX[s.numCols] = x0 + r.emuToPixelX(acc)

	rowY := make([]int, s.numRows+1)
	acc = 0
	for i := 0; i < s.numRows; i++ {
		rowY[i] = y0 + r.emuToPixelY(acc)
		acc += s.rowHeight(i)
	}
	rowY[s.numRows] = y0 + r.emuToPixelY(acc)

	for i := 0; i < s.numRows; i++ {
		for j := 0; j < s.numCols; j++ {
			cell := s.rows[i][j]
			if cell.IsMergedContinuation() {
				continue
			}
			ci := min(i+max(cell.rowSpan, 1), s.numRows)
			cj := min(j+max(cell.colSpan, 1), s.numCols)
			rect := image.Rect(colX[j], rowY[i], colX[cj], rowY[ci])

			r.paintFill(rect, cell.fill, rectInside(rect))
			r.drawCellBorders(rect, cell.GetBorders())

			anchor := TextAnchorType(cell.anchor)
			r.drawParagraphs(cell.paragraphs, rect.Inset(r.strokeWidth(Inch(0.05))), anchor)
		}
	}
}

func (r *renderer) drawCellBorders(rect image.Rectangle, b *CellBorders) {
	edge := func(border *Border, x1, y1, x2, y2 int) {
		switch {
		case border.IsVisible():
			r.drawLine(x1, y1, x2, y2, r.strokeWidth(border.Width), toNRGBA(border.Color))
		case border == nil || border.Style == BorderInherit:
			r.drawLine(x1, y1, x2, y2, 1, inheritedGridColor)
		}
	}
	right, bottom := rect.Max.X-1, rect.Max.Y-1
	edge(b.Top, rect.Min.X, rect.Min.Y, right, rect.Min.Y)
	edge(b.Bottom, rect.Min.X, bottom, right, bottom)
	edge(b.Left, rect.Min.X, rect.Min.Y, rect.Min.X, bottom)
	edge(b.Right, right, rect.Min.Y, right, bottom)
}

// drawLine draws a Bresenham line, thickened to width pixels.
func (r *renderer) drawLine(x1, y1, x2, y2, width int, c color.NRGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	half := (width - 1) / 2
	err := dx - dy
	for {
		for o := -half; o < width-half; o++ {
			if dx >= dy {
				r.blend(x1, y1+o, c)
			} else {
				r.blend(x1+o, y1, c)
			}
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// --- Text rendering ---

func (r *renderer) getFace(f *Font) font.Face {
	if f == nil {
		f = NewFont()
	}
	sizePt := f.Size
	if sizePt <= 0 {
		sizePt = 10
	}
	return r.faces.face(sizePt*emuPerPoint*r.scaleY, f.Bold, f.Italic)
}

type textRun struct {
	text  string
	face  font.Face
	color color.NRGBA
}

type textLine struct {
	runs      []textRun
	width     int
	height    int
	alignment HorizontalAlignment
}

func buildTextLine(runs []textRun, align HorizontalAlignment) textLine {
	totalW, maxH := 0, 0
	for _, run := range runs {
		totalW += font.MeasureString(run.face, run.text).Ceil()
		maxH = max(maxH, run.face.Metrics().Height.Ceil())
	}
	if maxH <= 0 {
		maxH = 14
	}
	return textLine{runs: runs, width: totalW, height: maxH, alignment: align}
}

func (r *renderer) layoutParagraphs(paragraphs []*Paragraph, w int) []textLine {
	var lines []textLine
	for _, para := range paragraphs {
		align := HorizontalLeft
		if para.alignment != nil && para.alignment.Horizontal != "" {
			align = para.alignment.Horizontal
		}
		var runs []textRun
		for _, elem := range para.elements {
			switch e := elem.(type) {
			case *TextRun:
				f := e.GetFont()
				runs = append(runs, textRun{text: e.text, face: r.getFace(f), color: toNRGBA(f.Color)})
			case *BreakElement:
				lines = append(lines, buildTextLine(runs, align))
				runs = nil
			}
		}
		lines = append(lines, buildTextLine(runs, align))
	}

	var wrapped []textLine
	for _, line := range lines {
		if line.width <= w || w <= 0 || len(line.runs) == 0 {
			wrapped = append(wrapped, line)
			continue
		}
		wrapped = append(wrapped, wrapRunLine(line, w)...)
	}
	return wrapped
}

func (r *renderer) drawParagraphs(paragraphs []*Paragraph, rect image.Rectangle, anchor TextAnchorType) {
	if strings.TrimSpace(paragraphsText(paragraphs)) == "" {
		return
	}
	lines := r.layoutParagraphs(paragraphs, rect.Dx())
	total := 0
	for _, line := range lines {
		total += line.height
	}

	curY := rect.Min.Y
	switch anchor {
	case TextAnchorMiddle:
		curY += (rect.Dy() - total) / 2
	case TextAnchorBottom:
		curY += rect.Dy() - total
	}

	for _, line := range lines {
		curY += line.height
		drawX := rect.Min.X
		switch line.alignment {
		case HorizontalCenter:
			drawX += (rect.Dx() - line.width) / 2
		case HorizontalRight:
			drawX += rect.Dx() - line.width
		}
		for _, run := range line.runs {
			d := &font.Drawer{
				Dst:  r.img,
				Src:  &image.Uniform{run.color},
				Face: run.face,
				Dot:  fixed.P(drawX, curY-line.height/4),
			}
			d.DrawString(run.text)
			drawX += font.MeasureString(run.face, run.text).Ceil()
		}
	}
}

// wrapRunLine wraps a textLine into lines that fit within maxWidth.
func wrapRunLine(line textLine, maxWidth int) []textLine {
	type styledWord struct {
		word  string
		face  font.Face
		color color.NRGBA
	}

	var words []styledWord
	for _, run := range line.runs {
		for i, w := range strings.Fields(run.text) {
			if i > 0 {
				w = " " + w
			}
			words = append(words, styledWord{word: w, face: run.face, color: run.color})
		}
	}
	if len(words) == 0 {
		return []textLine{line}
	}

	var result []textLine
	var cur []textRun
	curWidth := 0
	for _, sw := range words {
		ww := font.MeasureString(sw.face, sw.word).Ceil()
		if curWidth+ww > maxWidth && curWidth > 0 {
			result = append(result, buildTextLine(cur, line.alignment))
			cur = nil
			curWidth = 0
			sw.word = strings.TrimLeft(sw.word, " ")
			ww = font.MeasureString(sw.face, sw.word).Ceil()
		}
		cur = append(cur, textRun{text: sw.word, face: sw.face, color: sw.color})
		curWidth += ww
	}
	if len(cur) > 0 {
		result = append(result, buildTextLine(cur, line.alignment))
	}
	return result
}
