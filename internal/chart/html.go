package chart

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/jafarshop/sizecharts/internal/domain"
)

// htmlTableTemplate renders the same rectangular table as the image backend,
// used by the preview API so merchants can inspect extraction results
// without a PNG round trip.
var htmlTableTemplate = template.Must(template.New("sizechart").Funcs(template.FuncMap{
	"oddRow": func(i int) bool { return i%2 == 1 },
}).Parse(`<table class="size-chart" style="border-collapse:collapse;border:2px solid {{.Style.BorderColor}}">
  <thead>
    <tr>
      {{- range .Table.Headers}}
      <th style="background:{{$.Style.HeaderBg}};color:{{$.Style.TextColor}};padding:8px 16px;border:1px solid {{$.Style.BorderColor}}">{{.}}</th>
      {{- end}}
    </tr>
  </thead>
  <tbody>
    {{- range $i, $row := .Table.Rows}}
    <tr{{if oddRow $i}} style="background:{{$.Style.AlternateRowColor}}"{{end}}>
      {{- range $j, $cell := $row}}
      {{- if eq $j 0}}
      <th style="background:{{$.Style.HeaderBg}};padding:8px 16px;border:1px solid {{$.Style.BorderColor}}">{{$cell}}</th>
      {{- else}}
      <td style="padding:8px 16px;border:1px solid {{$.Style.BorderColor}};text-align:center">{{$cell}}</td>
      {{- end}}
      {{- end}}
    </tr>
    {{- end}}
  </tbody>
</table>`))

// HTMLRenderer produces an HTML table instead of a raster image
type HTMLRenderer struct{}

// NewHTMLRenderer creates the HTML table renderer
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render writes the chart as a styled HTML table
func (r *HTMLRenderer) Render(c *domain.SizeChart, product domain.Product, style StyleConfig) ([]byte, error) {
	if c == nil || c.IsEmpty() {
		return nil, fmt.Errorf("empty size chart")
	}
	var buf bytes.Buffer
	data := struct {
		Table Table
		Style StyleConfig
	}{Table: BuildTable(c), Style: style}
	if err := htmlTableTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render html table: %w", err)
	}
	return buf.Bytes(), nil
}
