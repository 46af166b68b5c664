package predictor

import (
	"math/rand"
	"sort"
)

// baseWeight 各方法的基础合成权重
func baseWeight(method string) float64 {
	switch method {
	case MethodFrequency, MethodDelay:
		return 1.2
	case MethodAssociation:
		return 1.1
	default:
		return 1.0
	}
}

// Combine 按置信度加权合成各启发式的结果，analyzedCount为该类别的总期数
func Combine(rng *rand.Rand, inputs []*PredictionResult, count, analyzedCount int) *PredictionResult {
	scores := make(map[int]float64)
	proposers := make(map[int]int)
	allVeryLow := true

	for _, input := range inputs {
		weight := input.Confidence.Weight() * baseWeight(input.Method)
		for _, num := range input.Numbers {
			scores[num] += weight
			proposers[num]++
		}
		if input.Confidence != VeryLow {
			allVeryLow = false
		}
	}

	type numberScore struct {
		number int
		score  float64
	}
	ranked := make([]numberScore, 0, len(scores))
	for num, score := range scores {
		ranked = append(ranked, numberScore{number: num, score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].number < ranked[j].number
	})

	numbers := make([]int, 0, count)
	for i := 0; i < count && i < len(ranked); i++ {
		numbers = append(numbers, ranked[i].number)
	}
	numbers = fillToCount(rng, numbers, count)

	return &PredictionResult{
		Method:      MethodHybrid,
		Numbers:     sortAscending(numbers),
		Explanation: "Combines frequency, delay, association and distribution methods weighted by confidence",
		Confidence:  combinedConfidence(numbers, proposers, len(inputs), allVeryLow, analyzedCount),
	}
}

// combinedConfidence 合成结果的置信度：样本量阶梯 + 启发式一致性加成
func combinedConfidence(selected []int, proposers map[int]int, inputCount int, allVeryLow bool, analyzedCount int) Confidence {
	if inputCount == 0 || allVeryLow {
		return VeryLow
	}

	confidence := ConfidenceForSampleSize(analyzedCount)

	total := 0
	for _, num := range selected {
		total += proposers[num]
	}
	agreement := float64(total) / float64(len(selected))

	// 平均≥3个启发式同时提名则无条件升一级；平均≥2仅在Medium以下升级
	promoted := confidence.Promote()
	if agreement >= 3 {
		confidence = promoted
	} else if agreement >= 2 && promoted <= Medium {
		confidence = promoted
	}

	return confidence
}
