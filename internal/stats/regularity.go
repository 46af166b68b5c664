package stats

import (
	"sort"

	"lotto-bot/internal/database"
)

// RegularityReport 单一目标号码的共现与后续开出分析报告
type RegularityReport struct {
	Category        string         `json:"category"`
	TargetNumber    int            `json:"target_number"`
	OccurrenceCount int            `json:"occurrence_count"`
	CoOccurrence    FrequencyTable `json:"co_occurrence"`
	NextDraw        FrequencyTable `json:"next_draw"`
	TopCoOccurring  []NumberCount  `json:"top_co_occurring"`
	TopNextDraw     []NumberCount  `json:"top_next_draw"`
}

// AnalyzeRegularity 按日期升序扫描单一类别的历史数据，统计目标号码的
// 同期共现号码以及紧随其后一期的开出号码
func AnalyzeRegularity(records []database.DrawRecord, targetNumber int, category string) *RegularityReport {
	report := &RegularityReport{
		Category:     category,
		TargetNumber: targetNumber,
		CoOccurrence: make(FrequencyTable),
		NextDraw:     make(FrequencyTable),
	}

	// 稳定排序：日期相同保持原有顺序
	sorted := make([]database.DrawRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DrawDateString < sorted[j].DrawDateString
	})

	for i, record := range sorted {
		if !containsNumber(record.WinningNumbers, targetNumber) {
			continue
		}

		report.OccurrenceCount++

		for _, num := range record.WinningNumbers {
			if num != targetNumber {
				report.CoOccurrence.Increment(num)
			}
		}

		// 只统计紧随其后的一期
		if i+1 < len(sorted) {
			for _, num := range sorted[i+1].WinningNumbers {
				report.NextDraw.Increment(num)
			}
		}
	}

	report.TopCoOccurring = report.CoOccurrence.Top(topNumbers)
	report.TopNextDraw = report.NextDraw.Top(topNumbers)

	return report
}

// containsNumber 判断号码是否在集合中
func containsNumber(nums []int, target int) bool {
	for _, num := range nums {
		if num == target {
			return true
		}
	}
	return false
}
