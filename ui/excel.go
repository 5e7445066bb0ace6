package ui

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"gocmmi/app"
	"gocmmi/internal/errors"
)

const (
	sheetSummary = "Resumen"
	sheetKPAs    = "KPAs"
)

// BuildReportWorkbook renders a diagnosis as a two-sheet Excel workbook:
// a summary sheet with the overall verdict and a per-KPA sheet with scores
// and recommendations.
func BuildReportWorkbook(d *app.Diagnosis) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}

	summary := [][]interface{}{
		{"Proyecto", d.ProjectName},
		{"Estado", d.Status},
		{"Diagnóstico general (%)", d.Overall.OverallPercent},
		{"Nivel 2 verificado", d.Overall.Level2Verified},
		{"Conclusión", d.Overall.Conclusion},
	}
	for i, row := range summary {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(sheetKPAs); err != nil {
		return nil, err
	}
	header := []interface{}{"KPA", "Porcentaje", "Superada", "Recomendaciones"}
	if err := f.SetSheetRow(sheetKPAs, "A1", &header); err != nil {
		return nil, err
	}
	for i, entry := range d.Report.PerKPA {
		score := d.KPAScores[entry.KPA]
		row := []interface{}{
			entry.KPA,
			entry.Percent,
			score.Passed,
			strings.Join(entry.Recommendations, "; "),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetKPAs, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func (a *App) handleReportExport(w http.ResponseWriter, r *http.Request) {
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

	workbook, err := BuildReportWorkbook(diagnosis)
	if err != nil {
		respondError(w, errors.Wrap(err, "failed to build report workbook"))
		return
	}
	defer workbook.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="informe-%s.xlsx"`, diagnosis.ID))
	if err := workbook.Write(w); err != nil {
		a.logger.Error("failed to stream workbook: %v", err)
	}
}
