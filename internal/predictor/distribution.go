package predictor

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"lotto-bot/internal/database"
)

// 号码域按宽度10划分的区段数（[1,10] ... [81,90]）
const rangeCount = 9
const rangeWidth = 10

// DistributionAnalyzer 区段分布分析器：按各十位区段的热度抽取号码
type DistributionAnalyzer struct {
	rng *rand.Rand
}

// NewDistributionAnalyzer 创建区段分布分析器
func NewDistributionAnalyzer(rng *rand.Rand) *DistributionAnalyzer {
	return &DistributionAnalyzer{rng: rng}
}

// Name 方法标识
func (a *DistributionAnalyzer) Name() string {
	return MethodDistribution
}

// Analyze 统计各区段的每期平均出现数，按热度从区段内随机组池抽取
func (a *DistributionAnalyzer) Analyze(records []database.DrawRecord, count int) *PredictionResult {
	if len(records) == 0 {
		return &PredictionResult{
			Method:      MethodDistribution,
			Numbers:     sortAscending(UniqueRandomNumbers(a.rng, count, database.MinNumber, database.MaxNumber, nil)),
			Explanation: "No historical data available, numbers were drawn at random",
			Confidence:  VeryLow,
		}
	}

	var counts [rangeCount]int
	for _, record := range records {
		for _, num := range record.WinningNumbers {
			counts[(num-1)/rangeWidth]++
		}
	}

	analyzed := len(records)

	type rangeAverage struct {
		index   int
		average float64
	}
	averages := make([]rangeAverage, rangeCount)
	for i := 0; i < rangeCount; i++ {
		averages[i] = rangeAverage{index: i, average: float64(counts[i]) / float64(analyzed)}
	}
	sort.Slice(averages, func(i, j int) bool {
		if averages[i].average != averages[j].average {
			return averages[i].average > averages[j].average
		}
		return averages[i].index < averages[j].index
	})

	// 按热度顺序在各区段内随机取号组成候选池，总抽取数上限3×count
	maxDraws := 3 * count
	draws := 0
	var pool []int
	for _, ra := range averages {
		if draws >= maxDraws {
			break
		}
		take := int(math.Round(ra.average * float64(count) / 5.0))
		if take < 1 {
			take = 1
		}
		low := ra.index*rangeWidth + 1
		for i := 0; i < take && draws < maxDraws; i++ {
			pool = append(pool, low+a.rng.Intn(rangeWidth))
			draws++
		}
	}

	numbers := samplePool(a.rng, pool, count)
	numbers = fillToCount(a.rng, numbers, count)

	// 该启发式的置信度刻意按半量样本评估
	return &PredictionResult{
		Method:      MethodDistribution,
		Numbers:     sortAscending(numbers),
		Explanation: fmt.Sprintf("Sampled by decade-range popularity across %d draws", analyzed),
		Confidence:  ConfidenceForSampleSize(analyzed / 2),
	}
}
