package audit

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/tildaslashalef/webaudit/internal/utils"
)

// PrintReport renders a full console report for one audit record: header,
// category scores, individual metrics, and the detected tech stack.
func PrintReport(record *ResultRecord) {
	utils.PrintDivider()
	utils.PrintHeading(fmt.Sprintf("Audit Report: %s", record.URL))
	utils.PrintKeyValue("Strategy", strings.ToUpper(string(record.Strategy)))
	utils.PrintKeyValue("Timestamp", record.Timestamp)
	if record.FinalURL != record.URL {
		utils.PrintKeyValue("Final URL", record.FinalURL)
	}
	utils.PrintDivider()

	printScores(record.Scores)
	printMetrics(record.Metrics)
	printTechStack(record.TechStack)
}

// PrintCombinedReport renders both strategy reports in fixed mobile then
// desktop order.
func PrintCombinedReport(combined *CombinedResult) {
	if combined.Mobile != nil {
		PrintReport(combined.Mobile)
		fmt.Println()
	}
	if combined.Desktop != nil {
		PrintReport(combined.Desktop)
	}
}

func printScores(scores Scores) {
	utils.PrintSubHeading("Scores")

	rows := [][]string{
		scoreRow("Performance", scores.Performance),
		scoreRow("Accessibility", scores.Accessibility),
		scoreRow("Best Practices", scores.BestPractices),
		scoreRow("SEO", scores.SEO),
	}
	utils.PrintTable([]string{"Category", "Score", ""}, rows)
}

func scoreRow(label string, score float64) []string {
	return []string{
		label,
		fmt.Sprintf("%5.1f / 100", score),
		ScoreIndicator(score).Symbol(),
	}
}

func printMetrics(metrics map[string]Metric) {
	rows := [][]string{}
	for _, id := range MetricIDs {
		metric, ok := metrics[id]
		if !ok || metric.DisplayValue == nil {
			continue
		}
		symbol := ""
		if metric.Score != nil {
			// Sub-scores arrive as 0-1 fractions
			symbol = ScoreIndicator(*metric.Score * 100).Symbol()
		}
		rows = append(rows, []string{utils.Titleize(id), *metric.DisplayValue, symbol})
	}

	if len(rows) == 0 {
		return
	}

	utils.PrintSubHeading("Metrics")
	utils.PrintTable([]string{"Metric", "Value", ""}, rows)
}

func printTechStack(tech TechStack) {
	utils.PrintSubHeading("Detected Technologies")

	if len(tech.Frameworks) == 0 && len(tech.Libraries) == 0 {
		fmt.Println(color.HiBlackString("No major frameworks or libraries detected"))
	}
	if len(tech.Frameworks) > 0 {
		utils.PrintKeyValue("Frameworks", strings.Join(tech.Frameworks, ", "))
	}
	if len(tech.Libraries) > 0 {
		utils.PrintKeyValue("Libraries", strings.Join(tech.Libraries, ", "))
	}
	if tech.Server != nil {
		utils.PrintKeyValue("Server Response Time", fmt.Sprintf("%v ms", tech.Server))
	}
	if tech.CMS != nil {
		utils.PrintKeyValue("CMS", *tech.CMS)
	}
}
