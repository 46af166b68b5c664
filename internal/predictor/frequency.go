package predictor

import (
	"fmt"
	"math/rand"

	"lotto-bot/internal/database"
)

// FrequencyAnalyzer 频率分析器：偏好历史出现次数多的号码
type FrequencyAnalyzer struct {
	rng *rand.Rand
}

// NewFrequencyAnalyzer 创建频率分析器
func NewFrequencyAnalyzer(rng *rand.Rand) *FrequencyAnalyzer {
	return &FrequencyAnalyzer{rng: rng}
}

// Name 方法标识
func (a *FrequencyAnalyzer) Name() string {
	return MethodFrequency
}

// Analyze 统计各号码出现次数，从高频候选池中随机抽取预测号码
func (a *FrequencyAnalyzer) Analyze(records []database.DrawRecord, count int) *PredictionResult {
	confidence := ConfidenceForSampleSize(len(records))

	if len(records) == 0 {
		return &PredictionResult{
			Method:      MethodFrequency,
			Numbers:     sortAscending(UniqueRandomNumbers(a.rng, count, database.MinNumber, database.MaxNumber, nil)),
			Explanation: "No historical data available, numbers were drawn at random",
			Confidence:  confidence,
		}
	}

	counts := make(map[int]int)
	for _, record := range records {
		for _, num := range record.WinningNumbers {
			counts[num]++
		}
	}

	ranked := rankByCount(counts)

	var numbers []int
	if len(ranked) < count {
		// 出现过的号码不足，随机补足
		for _, entry := range ranked {
			numbers = append(numbers, entry.number)
		}
		numbers = fillToCount(a.rng, numbers, count)
	} else {
		poolSize := 2 * count
		if poolSize < 10 {
			poolSize = 10
		}
		if poolSize > len(ranked) {
			poolSize = len(ranked)
		}

		pool := make([]int, 0, poolSize)
		for _, entry := range ranked[:poolSize] {
			pool = append(pool, entry.number)
		}

		numbers = samplePool(a.rng, pool, count)
		numbers = fillToCount(a.rng, numbers, count)
	}

	return &PredictionResult{
		Method:      MethodFrequency,
		Numbers:     sortAscending(numbers),
		Explanation: fmt.Sprintf("Sampled from the most frequent numbers across %d draws", len(records)),
		Confidence:  confidence,
	}
}
