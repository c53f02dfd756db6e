package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/de-tools/boutique-reports/pkg/models/domain"
)

type TableConfig struct {
	MaxColumnWidth int
	MinColumnWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MaxColumnWidth: 40,
		MinColumnWidth: 6,
	}
}

// Reporter prints reports as fixed-width text tables.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const reportTemplate = `
{{.Title}}{{if .Period}} ({{.Period.FechaInicio}} a {{.Period.FechaFin}}){{end}}
{{if .Summary}}{{.Summary}}
{{end}}
{{separator}}
{{formatRow .Columns}}
{{separator}}
{{range .Rows}}{{formatRow .}}
{{else}}{{empty}}
{{end}}{{separator}}
{{range .Details}}{{.Name}}: {{.Value}}
{{end}}`

func (c *Reporter) Handle(report *domain.Report) error {
	widths := c.columnWidths(report)

	funcMap := template.FuncMap{
		"formatRow": func(cells []string) string {
			parts := make([]string, len(widths))
			for i, w := range widths {
				var cell string
				if i < len(cells) {
					cell = truncate(cells[i], w)
				}
				parts[i] = cell + strings.Repeat(" ", w-utf8.RuneCountInString(cell))
			}
			return "| " + strings.Join(parts, " | ") + " |"
		},
		"separator": func() string {
			parts := make([]string, len(widths))
			for i, w := range widths {
				parts[i] = strings.Repeat("-", w+2)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
		"empty": func() string {
			return "(sin resultados)"
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

func (c *Reporter) columnWidths(report *domain.Report) []int {
	widths := make([]int, len(report.Columns))
	for i, col := range report.Columns {
		widths[i] = max(c.config.MinColumnWidth, utf8.RuneCountInString(col))
	}
	for _, row := range report.Rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
			}
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], c.config.MaxColumnWidth)
	}
	return widths
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}

// JSONReporter writes payloads as indented JSON.
type JSONReporter struct {
	writer io.Writer
}

func NewJSONReporter(writer io.Writer) *JSONReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &JSONReporter{writer: writer}
}

func (j *JSONReporter) Handle(payload any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
