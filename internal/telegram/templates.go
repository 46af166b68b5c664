package telegram

import (
	"fmt"
	"strings"

	"lotto-bot/internal/database"
	"lotto-bot/internal/predictor"
	"lotto-bot/internal/stats"
)

// formatPredictionBundleMessage 格式化预测结果集合消息，latestDraw可为nil
func (b *Bot) formatPredictionBundleMessage(bundle *predictor.PredictionBundle, latestDraw *database.DrawRecord) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("🔮 *Predictions — %s*\n\n", bundle.Category))
	if latestDraw != nil {
		builder.WriteString(fmt.Sprintf("Latest draw: `%s` — `%s`\n", latestDraw.DrawDateString,
			database.FormatNumbers(database.SortedCopy(latestDraw.WinningNumbers))))
	}
	builder.WriteString(fmt.Sprintf("Analyzed draws: `%d`\n\n", bundle.AnalyzedCount))

	for _, result := range bundle.Results {
		marker := "▫️"
		if result.Method == predictor.MethodHybrid {
			marker = "⭐"
		}
		builder.WriteString(fmt.Sprintf("%s *%s*\n", marker, methodLabel(result.Method)))
		builder.WriteString(fmt.Sprintf("   Numbers: `%s`\n", database.FormatNumbers(result.Numbers)))
		builder.WriteString(fmt.Sprintf("   Confidence: %s\n", confidenceLabel(result.Confidence)))
		builder.WriteString(fmt.Sprintf("   %s\n\n", result.Explanation))
	}

	builder.WriteString("💡 *Tips*: Predictions are for reference only, please be rational")

	return builder.String()
}

// formatStatisticsMessage 格式化统计报告消息
func (b *Bot) formatStatisticsMessage(report *stats.StatisticsReport) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("📊 *Statistics — %s*\n\n", report.Category))

	if report.AnalyzedCount == 0 {
		builder.WriteString("No draw data recorded for this category yet.")
		return builder.String()
	}

	builder.WriteString(fmt.Sprintf("Analyzed draws: `%d`\n\n", report.AnalyzedCount))

	builder.WriteString("🔥 *Hottest numbers*\n")
	builder.WriteString(formatNumberCounts(report.TopWinning))
	builder.WriteString("\n❄️ *Coldest numbers*\n")
	builder.WriteString(formatNumberCounts(report.BottomWinning))

	if len(report.TopMachine) > 0 {
		builder.WriteString("\n⚙️ *Hottest machine numbers*\n")
		builder.WriteString(formatNumberCounts(report.TopMachine))
	}

	if len(report.TopPairs) > 0 {
		builder.WriteString("\n👥 *Most frequent pairs*\n")
		for _, pair := range report.TopPairs {
			builder.WriteString(fmt.Sprintf("   `%s` × %d\n", pair.Pair, pair.Count))
		}
	}

	builder.WriteString("\n⚖️ *Odd/Even per draw*\n")
	builder.WriteString(fmt.Sprintf("   Average odds: `%.2f`  evens: `%.2f`\n", report.OddEven.AverageOdds, report.OddEven.AverageEvens))

	builder.WriteString("\n➕ *Sum of winning numbers*\n")
	builder.WriteString(fmt.Sprintf("   Average: `%.2f`", report.Sum.AverageSum))
	if report.Sum.MinSum != nil && report.Sum.MaxSum != nil {
		builder.WriteString(fmt.Sprintf("  min: `%d`  max: `%d`", *report.Sum.MinSum, *report.Sum.MaxSum))
	}
	builder.WriteString("\n")

	return builder.String()
}

// formatRegularityMessage 格式化单号码规律报告消息
func (b *Bot) formatRegularityMessage(report *stats.RegularityReport) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("🔍 *Number %d — %s*\n\n", report.TargetNumber, report.Category))

	if report.OccurrenceCount == 0 {
		builder.WriteString(fmt.Sprintf("Number %d has not been observed in any recorded draw of this category.", report.TargetNumber))
		return builder.String()
	}

	builder.WriteString(fmt.Sprintf("Appeared in `%d` draws\n\n", report.OccurrenceCount))

	builder.WriteString("👥 *Most frequent companions*\n")
	builder.WriteString(formatNumberCounts(report.TopCoOccurring))

	builder.WriteString("\n⏭️ *Most frequent in the following draw*\n")
	builder.WriteString(formatNumberCounts(report.TopNextDraw))

	return builder.String()
}

// formatDrawHistoryMessage 格式化历史开奖消息
func (b *Bot) formatDrawHistoryMessage(category string, records []database.DrawRecord) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("📊 *Recent Draws — %s*\n\n", category))

	if len(records) == 0 {
		builder.WriteString("No draw records")
		return builder.String()
	}

	// 从最老的开始显示到最新的
	displayCount := len(records)
	if displayCount > 10 {
		displayCount = 10
	}

	for i := displayCount - 1; i >= 0; i-- {
		record := records[i]
		builder.WriteString(fmt.Sprintf("`%s`\n", record.DrawDateString))
		builder.WriteString(fmt.Sprintf("   Winning: `%s`\n", database.FormatNumbers(database.SortedCopy(record.WinningNumbers))))
		if len(record.MachineNumbers) > 0 {
			builder.WriteString(fmt.Sprintf("   Machine: `%s`\n", database.FormatNumbers(database.SortedCopy(record.MachineNumbers))))
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

// formatNewPredictionBroadcast 格式化新预测广播消息
func (b *Bot) formatNewPredictionBroadcast(bundle *predictor.PredictionBundle, latestDraw *database.DrawRecord) string {
	var builder strings.Builder

	builder.WriteString("🚨 *New Prediction Push*\n\n")

	if latestDraw != nil {
		builder.WriteString("📊 *Latest Result*\n")
		builder.WriteString(fmt.Sprintf("Category: `%s`\n", latestDraw.Category))
		builder.WriteString(fmt.Sprintf("Date: `%s`\n", latestDraw.DrawDateString))
		builder.WriteString(fmt.Sprintf("Winning: `%s`\n\n", database.FormatNumbers(database.SortedCopy(latestDraw.WinningNumbers))))
	}

	recommended := bundle.Recommended
	builder.WriteString("🔮 *Recommended Numbers*\n")
	builder.WriteString(fmt.Sprintf("Numbers: `%s`\n", database.FormatNumbers(recommended.Numbers)))
	builder.WriteString(fmt.Sprintf("Confidence: %s\n", confidenceLabel(recommended.Confidence)))

	builder.WriteString(fmt.Sprintf("\n💡 Send /predict %s for all methods", bundle.Category))

	return builder.String()
}

// formatNumberCounts 格式化号码榜单
func formatNumberCounts(entries []stats.NumberCount) string {
	if len(entries) == 0 {
		return "   (none)\n"
	}

	var builder strings.Builder
	for _, entry := range entries {
		builder.WriteString(fmt.Sprintf("   `%d` × %d\n", entry.Number, entry.Count))
	}
	return builder.String()
}

// methodLabel 预测方法的显示名称
func methodLabel(method string) string {
	switch method {
	case predictor.MethodHybrid:
		return "Hybrid (recommended)"
	case predictor.MethodFrequency:
		return "Frequency"
	case predictor.MethodDelay:
		return "Delay"
	case predictor.MethodAssociation:
		return "Association"
	case predictor.MethodDistribution:
		return "Distribution"
	default:
		return method
	}
}

// confidenceLabel 置信度的显示名称
func confidenceLabel(confidence predictor.Confidence) string {
	switch confidence {
	case predictor.High:
		return "🟢 High"
	case predictor.Medium:
		return "🟡 Medium"
	case predictor.Low:
		return "🟠 Low"
	default:
		return "🔴 Very Low"
	}
}
