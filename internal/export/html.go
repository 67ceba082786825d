package export

import (
	"fmt"
	"html/template"
	"io"
)

var page = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; font-size: 12px; margin: 24px; }
h1 { font-size: 18px; margin-bottom: 4px; }
.meta { color: #666; margin-bottom: 16px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 4px 6px; text-align: left; }
th { background: #f2f2f2; }
td.num, th.num { text-align: right; }
tfoot td { font-weight: bold; background: #fafafa; }
.empty { text-align: center; color: #888; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">Generated {{.GeneratedAt}} &middot; {{.Count}} record(s)</div>
<table>
<thead><tr>{{range .Header}}<th{{if .Num}} class="num"{{end}}>{{.Text}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td{{if .Num}} class="num"{{end}}>{{.Text}}</td>{{end}}</tr>
{{- else}}
<tr><td class="empty" colspan="{{len .Header}}">No records found</td></tr>
{{- end}}
</tbody>
{{- if .HasTotals}}
<tfoot><tr>{{range .Totals}}<td{{if .Num}} class="num"{{end}}>{{.Text}}</td>{{end}}</tr></tfoot>
{{- end}}
</table>
</body>
</html>
`))

type htmlCell struct {
	Text string
	Num  bool
}

type htmlPage struct {
	Title       string
	GeneratedAt string
	Count       int
	Header      []htmlCell
	Rows        [][]htmlCell
	Totals      []htmlCell
	HasTotals   bool
}

// WriteHTML writes a printable page with a totals row for money columns
func WriteHTML(w io.Writer, t Table) error {
	p := htmlPage{
		Title:       t.Title,
		GeneratedAt: t.GeneratedAt.Format("2006-01-02 15:04"),
		Count:       len(t.Rows),
		Header:      make([]htmlCell, len(t.Columns)),
		Rows:        make([][]htmlCell, 0, len(t.Rows)),
	}
	for i, c := range t.Columns {
		p.Header[i] = htmlCell{Text: c.Title, Num: c.Kind == Money}
	}
	for _, row := range t.Rows {
		cells := make([]htmlCell, len(t.Columns))
		for i, c := range t.Columns {
			if i < len(row) {
				cells[i] = htmlCell{Text: pretty(c.Kind, row[i]), Num: c.Kind == Money}
			}
		}
		p.Rows = append(p.Rows, cells)
	}

	sums := t.totals()
	p.Totals = make([]htmlCell, len(t.Columns))
	for i, sum := range sums {
		if sum != nil {
			p.Totals[i] = htmlCell{Text: FormatMoney(*sum), Num: true}
			p.HasTotals = true
		}
	}
	if p.HasTotals && len(p.Totals) > 0 && sums[0] == nil {
		p.Totals[0].Text = "Total"
	}
	if code, _ := t.currency(); p.HasTotals && code != "" {
		for i, c := range t.Columns {
			if c.Kind == Currency && i > 0 {
				p.Totals[i].Text = code
			}
		}
	}

	if err := page.Execute(w, p); err != nil {
		return fmt.Errorf("failed to render html export: %w", err)
	}
	return nil
}
