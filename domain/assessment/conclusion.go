package assessment

import (
	"fmt"
	"sort"
	"strings"
)

// ConclusionInsufficientData is returned when there is not enough scored
// data to produce a verdict.
const ConclusionInsufficientData = "No hay suficientes datos para generar una conclusión."

// Conclusion-side threshold defaults, as integer percents. These mirror the
// aggregator's 0.8/0.7 fractions but live in percent units because the
// conclusion compares against already-rounded percentages.
const (
	defaultConclusionKPAThreshold    = 80
	defaultConclusionGlobalThreshold = 70
)

// BuildConclusion renders a score result as a single human-readable verdict
// sentence. It degrades to ConclusionInsufficientData instead of failing when
// the result is missing or incomplete.
func BuildConclusion(result *ScoreResult) string {
	if result == nil || result.KPAScores == nil {
		return ConclusionInsufficientData
	}

	thresholdKPA := result.Thresholds.KPA
	if thresholdKPA == 0 {
		thresholdKPA = defaultConclusionKPAThreshold
	}
	thresholdGlobal := result.Thresholds.Global
	if thresholdGlobal == 0 {
		thresholdGlobal = defaultConclusionGlobalThreshold
	}

	if result.Level2Verified {
		return fmt.Sprintf(
			"Conclusión: ✅ El proyecto cumple el Nivel 2. Todas las áreas clave superan el %d%% y el puntaje global es %d%%.",
			thresholdKPA, result.OverallPercent,
		)
	}

	var reasons []string
	if result.OverallPercent < thresholdGlobal {
		reasons = append(reasons, fmt.Sprintf(
			"el puntaje global (%d%%) está por debajo del mínimo requerido (%d%%)",
			result.OverallPercent, thresholdGlobal,
		))
	}
	if weak := weakKPAs(result, thresholdKPA); len(weak) > 0 {
		reasons = append(reasons, fmt.Sprintf(
			"las siguientes áreas no alcanzan el %d%%: %s",
			thresholdKPA, strings.Join(weak, ", "),
		))
	}
	// Rounding can leave every displayed percent at the threshold while the
	// underlying ratios still fall short.
	if len(reasons) == 0 {
		reasons = append(reasons, "los puntajes quedan justo por debajo de los umbrales requeridos")
	}

	return fmt.Sprintf("Conclusión: ❌ Aún no se cumple el Nivel 2 porque %s.", strings.Join(reasons, " y "))
}

// weakKPAs lists the KPAs under the threshold in catalog order, falling back
// to sorted names when the result carries no order.
func weakKPAs(result *ScoreResult, thresholdKPA int) []string {
	order := result.KPAOrder
	if len(order) == 0 {
		order = make([]string, 0, len(result.KPAScores))
		for kpa := range result.KPAScores {
			order = append(order, kpa)
		}
		sort.Strings(order)
	}

	var weak []string
	for _, kpa := range order {
		score, ok := result.KPAScores[kpa]
		if ok && score.Percent < thresholdKPA {
			weak = append(weak, kpa)
		}
	}
	return weak
}
