package stats

import (
	"math"

	"lotto-bot/internal/database"
)

// 报告中提取的榜单长度
const (
	topNumbers = 5
	topPairs   = 10
)

// OddEvenStats 单双分布统计
type OddEvenStats struct {
	AverageOdds  float64     `json:"average_odds"`
	AverageEvens float64     `json:"average_evens"`
	Histogram    map[int]int `json:"histogram"` // 每期单数个数(0..5)到期数
}

// SumStats 和值分布统计
type SumStats struct {
	AverageSum float64     `json:"average_sum"`
	MinSum     *int        `json:"min_sum"` // 无数据时为nil
	MaxSum     *int        `json:"max_sum"`
	Histogram  map[int]int `json:"histogram"` // 和值到期数
}

// StatisticsReport 单一类别的描述性统计报告
type StatisticsReport struct {
	Category         string         `json:"category"`
	AnalyzedCount    int            `json:"analyzed_count"`
	WinningFrequency FrequencyTable `json:"winning_frequency"`
	MachineFrequency FrequencyTable `json:"machine_frequency"`
	TopWinning       []NumberCount  `json:"top_winning"`
	BottomWinning    []NumberCount  `json:"bottom_winning"`
	TopMachine       []NumberCount  `json:"top_machine"`
	BottomMachine    []NumberCount  `json:"bottom_machine"`
	PairFrequency    *PairTable     `json:"-"`
	TopPairs         []PairCount    `json:"top_pairs"`
	OddEven          OddEvenStats   `json:"odd_even"`
	Sum              SumStats       `json:"sum"`
}

// ComputeStatistics 计算单一类别全部历史数据的描述性统计，无随机性
func ComputeStatistics(records []database.DrawRecord, category string) *StatisticsReport {
	report := &StatisticsReport{
		Category:         category,
		AnalyzedCount:    len(records),
		WinningFrequency: make(FrequencyTable),
		MachineFrequency: make(FrequencyTable),
		PairFrequency:    NewPairTable(),
		OddEven:          OddEvenStats{Histogram: make(map[int]int)},
		Sum:              SumStats{Histogram: make(map[int]int)},
	}

	totalOdds := 0
	totalSum := 0

	for _, record := range records {
		nums := record.WinningNumbers

		for _, num := range nums {
			report.WinningFrequency.Increment(num)
		}
		for _, num := range record.MachineNumbers {
			report.MachineFrequency.Increment(num)
		}

		// 每期10个无序号码对
		for i := 0; i < len(nums); i++ {
			for j := i + 1; j < len(nums); j++ {
				report.PairFrequency.Increment(nums[i], nums[j])
			}
		}

		odds := database.CountOdd(nums)
		totalOdds += odds
		report.OddEven.Histogram[odds]++

		sum := database.CalculateSum(nums)
		totalSum += sum
		report.Sum.Histogram[sum]++
		if report.Sum.MinSum == nil || sum < *report.Sum.MinSum {
			minSum := sum
			report.Sum.MinSum = &minSum
		}
		if report.Sum.MaxSum == nil || sum > *report.Sum.MaxSum {
			maxSum := sum
			report.Sum.MaxSum = &maxSum
		}
	}

	if report.AnalyzedCount > 0 {
		count := float64(report.AnalyzedCount)
		report.OddEven.AverageOdds = round2(float64(totalOdds) / count)
		report.OddEven.AverageEvens = round2(float64(report.AnalyzedCount*database.DrawSize-totalOdds) / count)
		report.Sum.AverageSum = round2(float64(totalSum) / count)
	}

	report.TopWinning = report.WinningFrequency.Top(topNumbers)
	report.BottomWinning = report.WinningFrequency.Bottom(topNumbers)
	report.TopMachine = report.MachineFrequency.Top(topNumbers)
	report.BottomMachine = report.MachineFrequency.Bottom(topNumbers)
	report.TopPairs = report.PairFrequency.Top(topPairs)

	return report
}

// round2 四舍五入到2位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
