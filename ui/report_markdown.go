package ui

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gocmmi/app"
)

// renderReportMarkdown writes the diagnosis report as a markdown document
func renderReportMarkdown(d *app.Diagnosis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Informe de evaluación — %s\n\n", d.ProjectName)
	fmt.Fprintf(&b, "**Diagnóstico general:** %d%%\n\n", d.Overall.OverallPercent)
	if d.Overall.Level2Verified {
		b.WriteString("**Nivel 2:** verificado\n\n")
	} else {
		b.WriteString("**Nivel 2:** no verificado\n\n")
	}

	b.WriteString("## Resultados por KPA\n\n")
	b.WriteString("| KPA | Porcentaje | Superada |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, entry := range d.Report.PerKPA {
		score := d.KPAScores[entry.KPA]
		passed := "no"
		if score.Passed {
			passed = "sí"
		}
		fmt.Fprintf(&b, "| %s | %d%% | %s |\n", entry.KPA, entry.Percent, passed)
	}
	b.WriteString("\n")

	if len(d.Report.ReachLevel2Hints) > 0 {
		b.WriteString("## Cómo alcanzar el Nivel 2\n\n")
		for _, hint := range d.Report.ReachLevel2Hints {
			fmt.Fprintf(&b, "### %s\n\n", hint.KPA)
			for _, action := range hint.Actions {
				fmt.Fprintf(&b, "- %s\n", action)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## Conclusión\n\n")
	b.WriteString(d.Report.Conclusion)
	b.WriteString("\n")

	return b.String()
}

// renderReportHTML converts the markdown report into a standalone HTML page
func renderReportHTML(d *app.Diagnosis) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "Informe de evaluación",
	})
	return markdown.ToHTML([]byte(renderReportMarkdown(d)), p, renderer)
}

func (a *App) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	diagnosis, err := a.assessments.Report(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(renderReportHTML(diagnosis)); err != nil {
		a.logger.Error("failed to stream report HTML: %v", err)
	}
}
