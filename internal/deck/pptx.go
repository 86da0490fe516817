package deck

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	apperrors "icsreport/internal/errors"
)

// Presentation assembles a .pptx package slide by slide. A zero-value
// base produces a self-contained blank widescreen deck; a template base
// keeps the template's masters, layouts and theme and replaces only the
// slides.
type Presentation struct {
	slides []slidePart
	images [][]byte
	tmpl   map[string][]byte
}

type slidePart struct {
	xml    string
	images []int
}

// New returns an empty widescreen presentation with built-in theme,
// master and blank layout.
func New() *Presentation {
	return &Presentation{}
}

// OpenTemplate loads an existing .pptx and strips its slides, keeping
// everything else as the base package for the new deck.
func OpenTemplate(path string) (*Presentation, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrTypeConfig, fmt.Sprintf("open template %s", path), err)
	}
	defer r.Close()

	parts := make(map[string][]byte, len(r.File))
	for _, f := range r.File {
		name := f.Name
		if strings.HasPrefix(name, "ppt/slides/") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, apperrors.New(apperrors.ErrTypeConfig, fmt.Sprintf("read template part %s", name), err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, apperrors.New(apperrors.ErrTypeConfig, fmt.Sprintf("read template part %s", name), err)
		}
		parts[name] = data
	}
	if _, ok := parts["ppt/presentation.xml"]; !ok {
		return nil, apperrors.New(apperrors.ErrTypeConfig, fmt.Sprintf("template %s has no presentation part", path), nil)
	}
	return &Presentation{tmpl: parts}, nil
}

// AddImage registers PNG bytes as a media part and returns its index
// for use with AddSlide.
func (p *Presentation) AddImage(png []byte) int {
	p.images = append(p.images, png)
	return len(p.images) - 1
}

// AddSlide appends a slide. The slide XML may reference rId1 for its
// layout and rId2+i for the i-th image index passed here.
func (p *Presentation) AddSlide(slideXML string, images ...int) {
	p.slides = append(p.slides, slidePart{xml: slideXML, images: images})
}

// SlideCount reports the number of slides added so far.
func (p *Presentation) SlideCount() int {
	return len(p.slides)
}

// Save writes the assembled package to path.
func (p *Presentation) Save(path string) error {
	if len(p.slides) == 0 {
		return apperrors.New(apperrors.ErrTypeValidation, "presentation has no slides", nil)
	}
	out, err := os.Create(path)
	if err != nil {
		return apperrors.New(apperrors.ErrTypeStorage, fmt.Sprintf("create %s", path), err)
	}
	zw := zip.NewWriter(out)

	writeErr := p.writeParts(zw)
	if err := zw.Close(); err != nil && writeErr == nil {
		writeErr = apperrors.New(apperrors.ErrTypeStorage, "finalize package", err)
	}
	if err := out.Close(); err != nil && writeErr == nil {
		writeErr = apperrors.New(apperrors.ErrTypeStorage, fmt.Sprintf("close %s", path), err)
	}
	if writeErr != nil {
		os.Remove(path)
		return writeErr
	}
	return nil
}

func (p *Presentation) writeParts(zw *zip.Writer) error {
	parts := p.assemble()
	// Content types first, then deterministic order for the rest.
	order := make([]string, 0, len(parts))
	for name := range parts {
		if name != "[Content_Types].xml" {
			order = append(order, name)
		}
	}
	sort.Strings(order)
	order = append([]string{"[Content_Types].xml"}, order...)

	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			return apperrors.New(apperrors.ErrTypeStorage, fmt.Sprintf("create part %s", name), err)
		}
		if _, err := w.Write(parts[name]); err != nil {
			return apperrors.New(apperrors.ErrTypeStorage, fmt.Sprintf("write part %s", name), err)
		}
	}
	return nil
}

func (p *Presentation) assemble() map[string][]byte {
	if p.tmpl != nil {
		return p.assembleFromTemplate()
	}
	return p.assembleBlank()
}

func (p *Presentation) assembleBlank() map[string][]byte {
	parts := map[string][]byte{
		"_rels/.rels":                            []byte(rootRelsXML),
		"ppt/slideMasters/slideMaster1.xml":      []byte(slideMasterXML),
		"ppt/slideMasters/_rels/slideMaster1.xml.rels": []byte(slideMasterRelsXML),
		"ppt/slideLayouts/slideLayout1.xml":      []byte(slideLayoutXML),
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels": []byte(slideLayoutRelsXML),
		"ppt/theme/theme1.xml":                   []byte(themeXML),
	}

	var types strings.Builder
	types.WriteString(xmlHeader)
	types.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	types.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	types.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	types.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	types.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	types.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	types.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	types.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)

	var presRels strings.Builder
	presRels.WriteString(xmlHeader)
	presRels.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	presRels.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)

	var sldIDs strings.Builder
	for i := range p.slides {
		n := i + 1
		rid := fmt.Sprintf("rId%d", n+1)
		types.WriteString(fmt.Sprintf(`<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, n))
		presRels.WriteString(fmt.Sprintf(`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, rid, n))
		sldIDs.WriteString(fmt.Sprintf(`<p:sldId id="%d" r:id="%s"/>`, 255+n, rid))
	}
	types.WriteString(`</Types>`)
	presRels.WriteString(`</Relationships>`)
	parts["[Content_Types].xml"] = []byte(types.String())
	parts["ppt/_rels/presentation.xml.rels"] = []byte(presRels.String())

	pres := xmlHeader +
		`<p:presentation xmlns:a="` + nsDrawing + `" xmlns:r="` + nsRel + `" xmlns:p="` + nsMain + `">` +
		`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>` +
		`<p:sldIdLst>` + sldIDs.String() + `</p:sldIdLst>` +
		fmt.Sprintf(`<p:sldSz cx="%d" cy="%d"/>`, slideWidthEMU, slideHeightEMU) +
		`<p:notesSz cx="6858000" cy="9144000"/>` +
		`</p:presentation>`
	parts["ppt/presentation.xml"] = []byte(pres)

	p.addSlideParts(parts, "../slideLayouts/slideLayout1.xml")
	return parts
}

func (p *Presentation) assembleFromTemplate() map[string][]byte {
	parts := make(map[string][]byte, len(p.tmpl)+2*len(p.slides))
	for name, data := range p.tmpl {
		parts[name] = data
	}

	// Drop slide overrides from the content types, keep everything else.
	ct := string(parts["[Content_Types].xml"])
	ct = stripElements(ct, `<Override PartName="/ppt/slides/`)
	if !strings.Contains(ct, `Extension="png"`) {
		ct = strings.Replace(ct, "</Types>",
			`<Default Extension="png" ContentType="image/png"/></Types>`, 1)
	}
	var ovr strings.Builder
	for i := range p.slides {
		ovr.WriteString(fmt.Sprintf(`<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i+1))
	}
	ct = strings.Replace(ct, "</Types>", ovr.String()+"</Types>", 1)
	parts["[Content_Types].xml"] = []byte(ct)

	// Rebuild the presentation rels: preserve non-slide relationships
	// with their original IDs so r:id references inside the body stay
	// valid, then append fresh slide relationships.
	kept, maxID := filterRels(parts["ppt/_rels/presentation.xml.rels"])
	var presRels strings.Builder
	presRels.WriteString(xmlHeader)
	presRels.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range kept {
		presRels.WriteString(fmt.Sprintf(`<Relationship Id="%s" Type="%s" Target="%s"/>`,
			escapeXML(r.ID), escapeXML(r.Type), escapeXML(r.Target)))
	}
	var sldIDs strings.Builder
	for i := range p.slides {
		rid := fmt.Sprintf("rId%d", maxID+i+1)
		presRels.WriteString(fmt.Sprintf(`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, rid, i+1))
		sldIDs.WriteString(fmt.Sprintf(`<p:sldId id="%d" r:id="%s"/>`, 256+i, rid))
	}
	presRels.WriteString(`</Relationships>`)
	parts["ppt/_rels/presentation.xml.rels"] = []byte(presRels.String())

	parts["ppt/presentation.xml"] = replaceSlideIDList(parts["ppt/presentation.xml"], sldIDs.String())

	p.addSlideParts(parts, templateLayoutTarget(parts))
	return parts
}

func (p *Presentation) addSlideParts(parts map[string][]byte, layoutTarget string) {
	for i, s := range p.slides {
		n := i + 1
		parts[fmt.Sprintf("ppt/slides/slide%d.xml", n)] = []byte(s.xml)

		var rels strings.Builder
		rels.WriteString(xmlHeader)
		rels.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
		rels.WriteString(fmt.Sprintf(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="%s"/>`, layoutTarget))
		for j, imgIdx := range s.images {
			name := fmt.Sprintf("chart%d.png", imgIdx+1)
			parts["ppt/media/"+name] = p.images[imgIdx]
			rels.WriteString(fmt.Sprintf(`<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/%s"/>`, j+2, name))
		}
		rels.WriteString(`</Relationships>`)
		parts[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n)] = []byte(rels.String())
	}
}

// templateLayoutTarget picks the first layout part present in the
// template so new slides attach to a real layout.
func templateLayoutTarget(parts map[string][]byte) string {
	for i := 1; i <= 64; i++ {
		name := fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i)
		if _, ok := parts[name]; ok {
			return "../slideLayouts/" + filepath.Base(name)
		}
	}
	return "../slideLayouts/slideLayout1.xml"
}

type relationshipList struct {
	XMLName xml.Name       `xml:"Relationships"`
	Rels    []relationship `xml:"Relationship"`
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// filterRels drops slide relationships and reports the highest numeric
// rId among the survivors.
func filterRels(data []byte) ([]relationship, int) {
	var list relationshipList
	if err := xml.Unmarshal(data, &list); err != nil {
		return nil, 0
	}
	var kept []relationship
	maxID := 0
	for _, r := range list.Rels {
		if strings.HasSuffix(r.Type, "/slide") {
			continue
		}
		kept = append(kept, r)
		if n, err := strconv.Atoi(strings.TrimPrefix(r.ID, "rId")); err == nil && n > maxID {
			maxID = n
		}
	}
	return kept, maxID
}

// replaceSlideIDList swaps the template's slide id list for ours,
// inserting one after the master list when the template had none.
func replaceSlideIDList(pres []byte, sldIDs string) []byte {
	s := string(pres)
	list := `<p:sldIdLst>` + sldIDs + `</p:sldIdLst>`
	if start := strings.Index(s, "<p:sldIdLst"); start >= 0 {
		end := strings.Index(s[start:], "</p:sldIdLst>")
		if end >= 0 {
			return []byte(s[:start] + list + s[start+end+len("</p:sldIdLst>"):])
		}
		if selfEnd := strings.Index(s[start:], "/>"); selfEnd >= 0 {
			return []byte(s[:start] + list + s[start+selfEnd+2:])
		}
	}
	if idx := strings.Index(s, "</p:sldMasterIdLst>"); idx >= 0 {
		at := idx + len("</p:sldMasterIdLst>")
		return []byte(s[:at] + list + s[at:])
	}
	return []byte(strings.Replace(s, "<p:sldSz", list+"<p:sldSz", 1))
}

// stripElements removes every self-closing element starting with the
// given prefix.
func stripElements(s, prefix string) string {
	for {
		start := strings.Index(s, prefix)
		if start < 0 {
			return s
		}
		end := strings.Index(s[start:], "/>")
		if end < 0 {
			return s
		}
		s = s[:start] + s[start+end+2:]
	}
}

func escapeXML(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
