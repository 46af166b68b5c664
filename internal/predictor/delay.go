package predictor

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"lotto-bot/internal/database"
)

// DelaySentinel 从未出现过的号码的越界遗漏值，大于任何真实遗漏
const DelaySentinel = 100 * database.MaxNumber

// DelayAnalyzer 遗漏分析器：偏好最久未开出的号码
type DelayAnalyzer struct {
	rng *rand.Rand
	now func() time.Time
}

// NewDelayAnalyzer 创建遗漏分析器，now为参考时钟
func NewDelayAnalyzer(rng *rand.Rand, now func() time.Time) *DelayAnalyzer {
	if now == nil {
		now = time.Now
	}
	return &DelayAnalyzer{rng: rng, now: now}
}

// Name 方法标识
func (a *DelayAnalyzer) Name() string {
	return MethodDelay
}

// Analyze 计算各号码距最近一次开出的天数，选取遗漏最久的号码
func (a *DelayAnalyzer) Analyze(records []database.DrawRecord, count int) *PredictionResult {
	if len(records) == 0 {
		return &PredictionResult{
			Method:      MethodDelay,
			Numbers:     sortAscending(UniqueRandomNumbers(a.rng, count, database.MinNumber, database.MaxNumber, nil)),
			Explanation: "No historical data available, numbers were drawn at random",
			Confidence:  VeryLow,
		}
	}

	// 按ISO日期字符串取最大值确定每个号码最近一次开出的日期
	lastSeen := make(map[int]string)
	for _, record := range records {
		for _, num := range record.WinningNumbers {
			if record.DrawDateString > lastSeen[num] {
				lastSeen[num] = record.DrawDateString
			}
		}
	}

	reference := a.now()

	type numberDelay struct {
		number int
		delay  int
	}
	delays := make([]numberDelay, 0, database.MaxNumber)
	for num := database.MinNumber; num <= database.MaxNumber; num++ {
		delay := DelaySentinel
		if dateStr, ok := lastSeen[num]; ok {
			if seenAt, err := time.Parse("2006-01-02", dateStr); err == nil {
				delay = int(reference.Sub(seenAt).Hours() / 24)
			}
		}
		delays = append(delays, numberDelay{number: num, delay: delay})
	}

	sort.Slice(delays, func(i, j int) bool {
		if delays[i].delay != delays[j].delay {
			return delays[i].delay > delays[j].delay
		}
		return delays[i].number < delays[j].number
	})

	numbers := make([]int, 0, count)
	for i := 0; i < count && i < len(delays); i++ {
		numbers = append(numbers, delays[i].number)
	}
	// 统一走补足流程，保证恰好count个互异号码
	numbers = fillToCount(a.rng, numbers, count)

	return &PredictionResult{
		Method:      MethodDelay,
		Numbers:     sortAscending(numbers),
		Explanation: fmt.Sprintf("Selected the most overdue numbers across %d draws", len(records)),
		Confidence:  ConfidenceForSampleSize(len(records)),
	}
}
