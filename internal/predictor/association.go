package predictor

import (
	"fmt"
	"math/rand"
	"sort"

	"lotto-bot/internal/database"
)

// 关联分析需要的最少期数
const minAssociationRecords = 5

// AssociationAnalyzer 关联分析器：偏好经常成对开出的号码
type AssociationAnalyzer struct {
	rng *rand.Rand
}

// NewAssociationAnalyzer 创建关联分析器
func NewAssociationAnalyzer(rng *rand.Rand) *AssociationAnalyzer {
	return &AssociationAnalyzer{rng: rng}
}

// Name 方法标识
func (a *AssociationAnalyzer) Name() string {
	return MethodAssociation
}

// Analyze 枚举每期中奖号码的无序号码对，从高频号码对的成员中抽取预测号码
func (a *AssociationAnalyzer) Analyze(records []database.DrawRecord, count int) *PredictionResult {
	if len(records) < minAssociationRecords {
		return &PredictionResult{
			Method:      MethodAssociation,
			Numbers:     sortAscending(UniqueRandomNumbers(a.rng, count, database.MinNumber, database.MaxNumber, nil)),
			Explanation: fmt.Sprintf("Insufficient data for pair analysis (%d of %d draws), numbers were drawn at random", len(records), minAssociationRecords),
			Confidence:  VeryLow,
		}
	}

	type pair struct {
		low, high int
	}
	pairCounts := make(map[pair]int)
	for _, record := range records {
		nums := record.WinningNumbers
		for i := 0; i < len(nums); i++ {
			for j := i + 1; j < len(nums); j++ {
				p := pair{low: nums[i], high: nums[j]}
				if p.low > p.high {
					p.low, p.high = p.high, p.low
				}
				pairCounts[p]++
			}
		}
	}

	type pairCount struct {
		p     pair
		count int
	}
	ranked := make([]pairCount, 0, len(pairCounts))
	for p, c := range pairCounts {
		ranked = append(ranked, pairCount{p: p, count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		if ranked[i].p.low != ranked[j].p.low {
			return ranked[i].p.low < ranked[j].p.low
		}
		return ranked[i].p.high < ranked[j].p.high
	})

	topSize := 2 * count
	if topSize < 15 {
		topSize = 15
	}
	if topSize > len(ranked) {
		topSize = len(ranked)
	}

	// 高频号码对成员的并集作为候选池
	var pool []int
	for _, entry := range ranked[:topSize] {
		pool = append(pool, entry.p.low, entry.p.high)
	}

	numbers := samplePool(a.rng, pool, count)
	numbers = fillToCount(a.rng, numbers, count)

	return &PredictionResult{
		Method:      MethodAssociation,
		Numbers:     sortAscending(numbers),
		Explanation: fmt.Sprintf("Sampled from members of the most frequent number pairs across %d draws", len(records)),
		Confidence:  ConfidenceForSampleSize(len(records)),
	}
}
