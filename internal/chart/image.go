package chart

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/jafarshop/sizecharts/internal/domain"
	"github.com/jafarshop/sizecharts/internal/extract"
)

// PNGRenderer draws size charts onto a 2D canvas and encodes them as PNG.
type PNGRenderer struct{}

// NewPNGRenderer creates the canvas-backed renderer
func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{}
}

const (
	cellHeight   = 120.0
	headerHeight = 140.0
	canvasPad    = 60.0
	titleSpace   = 180.0
	minImgWidth  = 1800.0
)

// Render lays the chart out as a table image: brand logo line, title with
// underline, header row, size column in the header background, alternating
// data rows, detail bullets pulled from the description, outer border.
func (r *PNGRenderer) Render(c *domain.SizeChart, product domain.Product, style StyleConfig) ([]byte, error) {
	if c == nil || c.IsEmpty() {
		return nil, fmt.Errorf("empty size chart")
	}

	table := BuildTable(c)

	maxHeaderLen := 0
	for _, h := range table.Headers {
		if len(h) > maxHeaderLen {
			maxHeaderLen = len(h)
		}
	}
	cellWidth := clamp(float64(maxHeaderLen)*12, 320, 400)

	tableWidth := float64(len(table.Headers)) * cellWidth
	tableHeight := headerHeight + float64(len(table.Rows))*cellHeight

	description := extract.Flatten(product.DescriptionHTML)
	details := extractDetails(description)

	detailsSpace := 520.0
	switch {
	case len(description) > 5000:
		detailsSpace = 800
	case len(description) > 2000:
		detailsSpace = 650
	}

	imgWidth := tableWidth + canvasPad*2
	if imgWidth < minImgWidth {
		imgWidth = minImgWidth
	}
	imgHeight := tableHeight + canvasPad*2 + titleSpace + detailsSpace

	dc := gg.NewContext(int(imgWidth), int(imgHeight))
	dc.SetHexColor("#FFFFFF")
	dc.Clear()

	const logoAreaHeight = 120.0
	logoY := 30.0
	r.drawLogo(dc, style, imgWidth, logoY)

	// Title with brand underline
	if err := setFace(dc, style.TitleFontSize, true); err != nil {
		return nil, fmt.Errorf("load title font: %w", err)
	}
	title := "SIZE CHART"
	titleW, _ := dc.MeasureString(title)
	titleX := canvasPad + 30
	titleY := logoAreaHeight + 30 + style.TitleFontSize
	dc.SetHexColor(style.MainColor)
	dc.DrawString(title, titleX, titleY)
	dc.DrawRectangle(titleX, titleY+20, titleW, style.TitleUnderlineHeight)
	dc.Fill()

	startX := (imgWidth - tableWidth) / 2
	startY := logoAreaHeight + 150

	// Header row
	for i, header := range table.Headers {
		x := startX + float64(i)*cellWidth
		r.drawCell(dc, x, startY, cellWidth, headerHeight, style.HeaderBg, style, style.HeaderBorderWidth)
		if err := fitText(dc, header, style.HeaderFontSize, cellWidth-40); err != nil {
			return nil, err
		}
		dc.SetHexColor(style.TextColor)
		dc.DrawStringAnchored(header, x+cellWidth/2, startY+headerHeight/2, 0.5, 0.35)
	}

	// Data rows: size column keeps the header background, other cells alternate
	for rowIdx, row := range table.Rows {
		for colIdx, cell := range row {
			x := startX + float64(colIdx)*cellWidth
			y := startY + headerHeight + float64(rowIdx)*cellHeight

			fill := "#FFFFFF"
			if colIdx == 0 {
				fill = style.HeaderBg
			} else if rowIdx%2 == 1 {
				fill = style.AlternateRowColor
			}
			r.drawCell(dc, x, y, cellWidth, cellHeight, fill, style, style.TableBorderWidth)

			if err := fitText(dc, cell, style.CellFontSize, cellWidth-20); err != nil {
				return nil, err
			}
			dc.SetHexColor(style.TextColor)
			dc.DrawStringAnchored(cell, x+cellWidth/2, y+cellHeight/2, 0.5, 0.35)
		}
	}

	// Detail bullets under the table
	notesY := startY + headerHeight + float64(len(table.Rows))*cellHeight + 50
	maxDetails := 8
	if len(description) > 3000 {
		maxDetails = 12
	}
	if len(details) > maxDetails {
		details = details[:maxDetails]
	}
	for i, d := range details {
		yPos := notesY + float64(i)*60

		bulletX := canvasPad + 30
		dc.SetHexColor(style.BulletColor)
		dc.DrawCircle(bulletX+8, yPos+20, 8)
		dc.Fill()

		if err := setFace(dc, style.BulletFontSize, true); err != nil {
			return nil, err
		}
		labelX := bulletX + 30
		dc.SetHexColor(style.TextColor)
		dc.DrawString(d.Label, labelX, yPos+30)
		labelW, _ := dc.MeasureString(d.Label)

		if err := setFace(dc, style.DetailFontSize, false); err != nil {
			return nil, err
		}
		content := d.Content
		maxContentLen := 35
		if len(description) > 3000 {
			maxContentLen = 50
		}
		if len(content) > maxContentLen {
			content = content[:maxContentLen] + "..."
		}
		dc.DrawString(content, labelX+labelW+20, yPos+30)
	}

	// Outer brand border
	dc.SetHexColor(style.BorderColor)
	dc.SetLineWidth(style.OuterBorderWidth)
	dc.DrawRectangle(
		style.OuterBorderWidth/2,
		style.OuterBorderWidth/2,
		imgWidth-style.OuterBorderWidth,
		imgHeight-style.OuterBorderWidth,
	)
	dc.Stroke()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLogo draws the image logo if configured, otherwise the brand name as a
// text logo. No logo at all is fine: the area stays blank.
func (r *PNGRenderer) drawLogo(dc *gg.Context, style StyleConfig, imgWidth, logoY float64) {
	if style.LogoPath != "" {
		if img, err := gg.LoadImage(style.LogoPath); err == nil {
			const maxLogoWidth, maxLogoHeight = 812.0, 271.0
			w := float64(img.Bounds().Dx())
			h := float64(img.Bounds().Dy())
			ratio := minf(maxLogoWidth/w, maxLogoHeight/h)
			dc.Push()
			dc.Translate((imgWidth-w*ratio)/2, logoY)
			dc.Scale(ratio, ratio)
			dc.DrawImage(img, 0, 0)
			dc.Pop()
			return
		}
	}
	if style.BrandName == "" {
		return
	}
	if err := setFace(dc, 48, true); err != nil {
		return
	}
	dc.SetHexColor(style.MainColor)
	dc.DrawStringAnchored(strings.ToUpper(style.BrandName), imgWidth/2, logoY+48, 0.5, 0)
}

func (r *PNGRenderer) drawCell(dc *gg.Context, x, y, w, h float64, fill string, style StyleConfig, borderWidth float64) {
	dc.SetHexColor(fill)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()
	dc.SetHexColor(style.BorderColor)
	dc.SetLineWidth(borderWidth)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()
}

// fitText sets a bold face, shrinking the size until the string fits maxWidth
func fitText(dc *gg.Context, s string, size, maxWidth float64) error {
	for size > 16 {
		if err := setFace(dc, size, true); err != nil {
			return err
		}
		if w, _ := dc.MeasureString(s); w <= maxWidth {
			return nil
		}
		size -= 2
	}
	return setFace(dc, size, true)
}

func setFace(dc *gg.Context, size float64, bold bool) error {
	ttf := goregular.TTF
	if bold {
		ttf = gobold.TTF
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return fmt.Errorf("build font face: %w", err)
	}
	dc.SetFontFace(face)
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
