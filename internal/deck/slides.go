package deck

import (
	"fmt"
	"strings"

	"icsreport/internal/format"
	"icsreport/pkg/contracts/domain"
)

const (
	fillNavy     = "1B365D"
	fillZebra    = "FAFAFA"
	fillTotal    = "F0F0F0"
	colorBody    = "333333"
	colorMuted   = "666666"
	colorWhite   = "FFFFFF"
	colorDivider = "4A90D9"
)

func emu(inches float64) int {
	return int(inches * emuPerInch)
}

func slideShell(shapes string) string {
	return xmlHeader +
		`<p:sld xmlns:a="` + nsDrawing + `" xmlns:r="` + nsRel + `" xmlns:p="` + nsMain + `">` +
		`<p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		shapes +
		`</p:spTree></p:cSld>` +
		`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>` +
		`</p:sld>`
}

type textOpts struct {
	size  int // hundredths of a point
	bold  bool
	ital  bool
	color string
	align string // "l", "ctr", "r"
}

func textbox(id int, x, y, w, h int, text string, o textOpts) string {
	var rpr strings.Builder
	rpr.WriteString(fmt.Sprintf(`<a:rPr lang="en-US" sz="%d"`, o.size))
	if o.bold {
		rpr.WriteString(` b="1"`)
	}
	if o.ital {
		rpr.WriteString(` i="1"`)
	}
	rpr.WriteString(`><a:solidFill><a:srgbClr val="` + o.color + `"/></a:solidFill></a:rPr>`)

	align := ""
	if o.align != "" {
		align = `<a:pPr algn="` + o.align + `"/>`
	}
	return fmt.Sprintf(
		`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`+
			`<p:txBody><a:bodyPr wrap="square"><a:normAutofit/></a:bodyPr>`+
			`<a:p>%s<a:r>%s<a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`,
		id, id, x, y, w, h, align, rpr.String(), escapeXML(text))
}

// accentBar draws a thin filled rectangle used under headings.
func accentBar(id int, x, y, w, h int, color string) string {
	return fmt.Sprintf(
		`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Bar %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`+
			`<a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:ln><a:noFill/></a:ln></p:spPr>`+
			`<p:txBody><a:bodyPr/><a:p/></p:txBody></p:sp>`,
		id, id, x, y, w, h, color)
}

// titleSlideXML builds the opening slide: deck title, client subtitle
// and a generated-on line.
func titleSlideXML(title, subtitle, dateLine string) string {
	var shapes strings.Builder
	shapes.WriteString(textbox(2, emu(1.0), emu(2.6), emu(11.33), emu(1.0), title,
		textOpts{size: 3600, bold: true, color: fillNavy, align: "ctr"}))
	shapes.WriteString(accentBar(3, emu(5.17), emu(3.7), emu(3.0), emu(0.05), colorDivider))
	if subtitle != "" {
		shapes.WriteString(textbox(4, emu(1.0), emu(4.0), emu(11.33), emu(0.6), subtitle,
			textOpts{size: 2000, color: colorMuted, align: "ctr"}))
	}
	if dateLine != "" {
		shapes.WriteString(textbox(5, emu(1.0), emu(4.7), emu(11.33), emu(0.5), dateLine,
			textOpts{size: 1400, color: colorMuted, align: "ctr"}))
	}
	return slideShell(shapes.String())
}

// sectionSlideXML builds a divider slide announcing a section.
func sectionSlideXML(label string) string {
	var shapes strings.Builder
	shapes.WriteString(textbox(2, emu(1.0), emu(3.0), emu(11.33), emu(0.9), label,
		textOpts{size: 2800, bold: true, color: fillNavy, align: "ctr"}))
	shapes.WriteString(accentBar(3, emu(5.67), emu(4.0), emu(2.0), emu(0.05), colorDivider))
	return slideShell(shapes.String())
}

// tableSlideXML builds a table slide from an already paginated view.
// Cell text follows the slide rendering path, total rows carry the
// shaded bold treatment. totalRows is the source row count before
// pagination and drives the truncation note.
func tableSlideXML(title string, view domain.Table, totalRows int) string {
	var shapes strings.Builder
	shapes.WriteString(textbox(2, emu(0.5), emu(0.3), emu(12.33), emu(0.6), title,
		textOpts{size: 2200, bold: true, color: fillNavy, align: "l"}))

	tblX, tblY := emu(0.5), emu(1.15)
	tblW := emu(12.33)
	headerH := emu(0.35)
	rowH := emu(0.27)

	cols := len(view.Columns)
	if cols == 0 {
		return slideShell(shapes.String())
	}
	colW := tblW / cols

	var tbl strings.Builder
	tbl.WriteString(`<a:tbl><a:tblPr firstRow="1" bandRow="0"/><a:tblGrid>`)
	for i := 0; i < cols; i++ {
		tbl.WriteString(fmt.Sprintf(`<a:gridCol w="%d"/>`, colW))
	}
	tbl.WriteString(`</a:tblGrid>`)

	tbl.WriteString(fmt.Sprintf(`<a:tr h="%d">`, headerH))
	for _, col := range view.Columns {
		tbl.WriteString(tableCell(col, true, false, fillNavy, colorWhite))
	}
	tbl.WriteString(`</a:tr>`)

	for i, row := range view.Rows {
		total := format.IsTotalRow(row)
		fill := ""
		if total {
			fill = fillTotal
		} else if i%2 == 1 {
			fill = fillZebra
		}
		tbl.WriteString(fmt.Sprintf(`<a:tr h="%d">`, rowH))
		for c := range view.Columns {
			text := ""
			if c < len(row) {
				text = format.CellText(view.Columns[c], row[c], format.TargetSlide)
			}
			tbl.WriteString(tableCell(text, total, true, fill, colorBody))
		}
		tbl.WriteString(`</a:tr>`)
	}
	tbl.WriteString(`</a:tbl>`)

	tblH := headerH + rowH*len(view.Rows)
	shapes.WriteString(fmt.Sprintf(
		`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="3" name="Table 3"/>`+
			`<p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>`+
			`<p:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></p:xfrm>`+
			`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">%s</a:graphicData></a:graphic>`+
			`</p:graphicFrame>`,
		tblX, tblY, tblW, tblH, tbl.String()))

	if totalRows > len(view.Rows) {
		note := fmt.Sprintf("Showing first %d of %d rows. See the workbook for the complete data.",
			len(view.Rows), totalRows)
		shapes.WriteString(textbox(4, emu(0.5), emu(7.0), emu(12.33), emu(0.35), note,
			textOpts{size: 1000, ital: true, color: colorMuted, align: "l"}))
	}
	return slideShell(shapes.String())
}

func tableCell(text string, bold, body bool, fill, color string) string {
	size := 1100
	if body {
		size = 1000
	}
	b := ""
	if bold {
		b = ` b="1"`
	}
	fillXML := ""
	if fill != "" {
		fillXML = `<a:solidFill><a:srgbClr val="` + fill + `"/></a:solidFill>`
	}
	return fmt.Sprintf(
		`<a:tc><a:txBody><a:bodyPr/>`+
			`<a:p><a:r><a:rPr lang="en-US" sz="%d"%s><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:rPr><a:t>%s</a:t></a:r></a:p>`+
			`</a:txBody><a:tcPr marL="45720" marR="45720" marT="18288" marB="18288">%s</a:tcPr></a:tc>`,
		size, b, color, escapeXML(text), fillXML)
}

// pictureSlideXML builds a chart slide: heading plus one image scaled
// to fit the content area while keeping its aspect ratio. imgW and
// imgH are the source pixel dimensions.
func pictureSlideXML(title string, imgW, imgH int) string {
	var shapes strings.Builder
	shapes.WriteString(textbox(2, emu(0.5), emu(0.3), emu(12.33), emu(0.6), title,
		textOpts{size: 2200, bold: true, color: fillNavy, align: "l"}))

	areaX, areaY := emu(0.75), emu(1.1)
	areaW, areaH := emu(11.83), emu(6.1)
	w, h := areaW, areaH
	if imgW > 0 && imgH > 0 {
		scaleW := float64(areaW) / float64(imgW)
		scaleH := float64(areaH) / float64(imgH)
		scale := scaleW
		if scaleH < scale {
			scale = scaleH
		}
		w = int(float64(imgW) * scale)
		h = int(float64(imgH) * scale)
	}
	x := areaX + (areaW-w)/2
	y := areaY + (areaH-h)/2

	shapes.WriteString(fmt.Sprintf(
		`<p:pic><p:nvPicPr><p:cNvPr id="3" name="Chart 3"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
			`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		x, y, w, h))
	return slideShell(shapes.String())
}
