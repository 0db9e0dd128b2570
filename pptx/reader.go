package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"
)

// PPTXReader reads PPTX files.
type PPTXReader struct{}

// maxZipEntrySize is the maximum allowed size for a single file extracted from a ZIP.
const maxZipEntrySize = 50 << 20 // 50 MB

// maxZipTotalSize is the cumulative limit for all extracted content from a single ZIP.
const maxZipTotalSize = 200 << 20 // 200 MB

// maxZipEntries is the maximum number of files allowed in a ZIP archive.
const maxZipEntries = 10000

// Read reads a presentation from a file path.
func (r *PPTXReader) Read(filePath string) (*Presentation, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	return r.ReadFromReader(f, info.Size())
}

// ReadFromReader reads a presentation from an io.ReaderAt.
func (r *PPTXReader) ReadFromReader(reader io.ReaderAt, size int64) (*Presentation, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid reader size: %d", size)
	}
	if size > int64(maxZipTotalSize) {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed (%d bytes)", size, maxZipTotalSize)
	}

	zr, err := zip.NewReader(reader, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	if len(zr.File) > maxZipEntries {
		return nil, fmt.Errorf("zip archive contains too many entries (%d > %d)", len(zr.File), maxZipEntries)
	}
	src := newZipSource(zr)

	pres := &Presentation{
		properties: NewDocumentProperties(),
		slides:     make([]*Slide, 0),
		layout:     NewDocumentLayout(),
	}

	// missing property parts are acceptable
	r.readCoreProperties(src, pres)
	r.readAppProperties(src, pres)

	slideRels, err := r.readPresentation(src, pres)
	if err != nil {
		return nil, err
	}
	presRels, err := readRelationships(src, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}

	for _, relID := range slideRels {
		rel, ok := presRels[relID]
		if !ok {
			continue
		}
		target := resolvePartPath("ppt", rel.Target)
		slide, err := r.readSlide(src, target)
		if err != nil {
			return nil, fmt.Errorf("failed to read slide %s: %w", target, err)
		}
		pres.slides = append(pres.slides, slide)
	}
	if len(pres.slides) == 0 {
		return nil, fmt.Errorf("presentation contains no slides")
	}
	return pres, nil
}

// zipSource indexes an archive and enforces the extraction limits.
type zipSource struct {
	files map[string]*zip.File
	total int64
}

func newZipSource(zr *zip.Reader) *zipSource {
	m := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		m[f.Name] = f
	}
	return &zipSource{files: m}
}

func (z *zipSource) read(name string) ([]byte, error) {
	f, ok := z.files[name]
	if !ok {
		return nil, fmt.Errorf("file not found in zip: %s", name)
	}
	if f.UncompressedSize64 > maxZipEntrySize {
		return nil, fmt.Errorf("file %s exceeds maximum allowed size (%d bytes)", name, maxZipEntrySize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s in zip: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, int64(maxZipEntrySize)+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from zip: %w", name, err)
	}
	if int64(len(data)) > int64(maxZipEntrySize) {
		return nil, fmt.Errorf("file %s actual size exceeds maximum allowed size", name)
	}
	z.total += int64(len(data))
	if z.total > maxZipTotalSize {
		return nil, fmt.Errorf("extracted content exceeds maximum allowed size (%d bytes)", maxZipTotalSize)
	}
	return data, nil
}

// resolvePartPath resolves a relationship target against the directory of
// the part that owns the relationship.
func resolvePartPath(dir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(dir, target)
}

// relsPathFor returns the relationships part of a part, e.g.
// ppt/slides/_rels/slide1.xml.rels for ppt/slides/slide1.xml.
func relsPathFor(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

// --- Relationship reading ---

type xmlRelForRead struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type xmlRelsForRead struct {
	XMLName       xml.Name        `xml:"Relationships"`
	Relationships []xmlRelForRead `xml:"Relationship"`
}

// readRelationships returns the relationships keyed by id. A missing part
// yields an empty map.
func readRelationships(src *zipSource, part string) (map[string]xmlRelForRead, error) {
	out := make(map[string]xmlRelForRead)
	data, err := src.read(part)
	if err != nil {
		return out, nil
	}
	var rels xmlRelsForRead
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships %s: %w", part, err)
	}
	for _, rel := range rels.Relationships {
		out[rel.ID] = rel
	}
	return out, nil
}

// --- presentation.xml ---

type xmlPresentationForRead struct {
	SldSz *struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"sldSz"`
	SldIDs []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

// readPresentation reads the slide size and returns the slide relationship
// ids in presentation order.
func (r *PPTXReader) readPresentation(src *zipSource, pres *Presentation) ([]string, error) {
	data, err := src.read("ppt/presentation.xml")
	if err != nil {
		return nil, err
	}
	var doc xmlPresentationForRead
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse presentation.xml: %w", err)
	}
	if doc.SldSz != nil && doc.SldSz.CX > 0 && doc.SldSz.CY > 0 {
		pres.layout = &DocumentLayout{
			CX:   doc.SldSz.CX,
			CY:   doc.SldSz.CY,
			Name: layoutName(doc.SldSz.CX, doc.SldSz.CY),
		}
	}
	ids := make([]string, 0, len(doc.SldIDs))
	for _, s := range doc.SldIDs {
		ids = append(ids, s.RID)
	}
	return ids, nil
}

// --- Document properties ---

type xmlCorePropsForRead struct {
	Creator        string `xml:"creator"`
	LastModifiedBy string `xml:"lastModifiedBy"`
	Title          string `xml:"title"`
	Subject        string `xml:"subject"`
	Description    string `xml:"description"`
	Keywords       string `xml:"keywords"`
	Created        string `xml:"created"`
	Modified       string `xml:"modified"`
}

func (r *PPTXReader) readCoreProperties(src *zipSource, pres *Presentation) {
	data, err := src.read("docProps/core.xml")
	if err != nil {
		return
	}
	var core xmlCorePropsForRead
	if err := xml.Unmarshal(data, &core); err != nil {
		return
	}
	props := pres.properties
	props.Creator = core.Creator
	props.LastModifiedBy = core.LastModifiedBy
	props.Title = core.Title
	props.Subject = core.Subject
	props.Description = core.Description
	props.Keywords = core.Keywords
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(core.Created)); err == nil {
		props.Created = t
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(core.Modified)); err == nil {
		props.Modified = t
	}
}

func (r *PPTXReader) readAppProperties(src *zipSource, pres *Presentation) {
	data, err := src.read("docProps/app.xml")
	if err != nil {
		return
	}
	var app struct {
		Company string `xml:"Company"`
	}
	if err := xml.Unmarshal(data, &app); err == nil {
		pres.properties.Company = app.Company
	}
}
