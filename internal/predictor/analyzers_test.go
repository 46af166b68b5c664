package predictor

import (
	"fmt"
	"testing"
	"time"

	"lotto-bot/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeRecords 生成count期历史数据，每期中奖号码相同
func makeRecords(count int, winning []int) []database.DrawRecord {
	records := make([]database.DrawRecord, count)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		date := base.AddDate(0, 0, i)
		records[i] = database.DrawRecord{
			Category:       "Monday Special",
			DrawDate:       date,
			DrawDateString: date.Format("2006-01-02"),
			WinningNumbers: winning,
		}
	}
	return records
}

func TestFrequencyAnalyzerNoData(t *testing.T) {
	analyzer := NewFrequencyAnalyzer(newTestRand())

	result := analyzer.Analyze(nil, database.DrawSize)

	assert.Equal(t, MethodFrequency, result.Method)
	assert.Equal(t, VeryLow, result.Confidence)
	assert.Equal(t, "No historical data available, numbers were drawn at random", result.Explanation)
	assertValidNumbers(t, result.Numbers, database.DrawSize)
}

func TestFrequencyAnalyzerPrefersFrequentNumbers(t *testing.T) {
	analyzer := NewFrequencyAnalyzer(newTestRand())

	// 历史上只开出过1-5，候选池只能是这5个号码
	records := makeRecords(12, []int{1, 2, 3, 4, 5})
	result := analyzer.Analyze(records, database.DrawSize)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, result.Numbers)
	assert.Equal(t, Low, result.Confidence)
}

func TestFrequencyAnalyzerConfidenceFollowsSampleSize(t *testing.T) {
	analyzer := NewFrequencyAnalyzer(newTestRand())

	result := analyzer.Analyze(makeRecords(200, []int{10, 20, 30, 40, 50}), database.DrawSize)
	assert.Equal(t, High, result.Confidence)

	result = analyzer.Analyze(makeRecords(60, []int{10, 20, 30, 40, 50}), database.DrawSize)
	assert.Equal(t, Medium, result.Confidence)
}

func TestDelayAnalyzerNoData(t *testing.T) {
	analyzer := NewDelayAnalyzer(newTestRand(), nil)

	result := analyzer.Analyze(nil, database.DrawSize)

	assert.Equal(t, MethodDelay, result.Method)
	assert.Equal(t, VeryLow, result.Confidence)
	assertValidNumbers(t, result.Numbers, database.DrawSize)
}

func TestDelayAnalyzerPicksNeverSeenNumbersFirst(t *testing.T) {
	now := func() time.Time {
		return time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	}
	analyzer := NewDelayAnalyzer(newTestRand(), now)

	// 1-5刚开出过，其余85个号码从未开出（遗漏为越界值），
	// 遗漏并列时按号码升序取前5
	records := makeRecords(1, []int{1, 2, 3, 4, 5})
	result := analyzer.Analyze(records, database.DrawSize)

	assert.Equal(t, []int{6, 7, 8, 9, 10}, result.Numbers)
	assert.Equal(t, VeryLow, result.Confidence)
}

func TestDelayAnalyzerPrefersOverdueNumbers(t *testing.T) {
	now := func() time.Time {
		return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	}
	analyzer := NewDelayAnalyzer(newTestRand(), now)

	// 每期覆盖不同号码段，最早开出且之后再未开出的号码遗漏最大
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var records []database.DrawRecord
	for i := 0; i < 18; i++ {
		date := base.AddDate(0, 0, i*7)
		low := i*5 + 1
		records = append(records, database.DrawRecord{
			Category:       "Midweek",
			DrawDate:       date,
			DrawDateString: date.Format("2006-01-02"),
			WinningNumbers: []int{low, low + 1, low + 2, low + 3, low + 4},
		})
	}

	result := analyzer.Analyze(records, database.DrawSize)
	assertValidNumbers(t, result.Numbers, database.DrawSize)
	assert.Equal(t, Low, result.Confidence)
}

func TestAssociationAnalyzerInsufficientData(t *testing.T) {
	analyzer := NewAssociationAnalyzer(newTestRand())

	result := analyzer.Analyze(makeRecords(4, []int{1, 2, 3, 4, 5}), database.DrawSize)

	assert.Equal(t, MethodAssociation, result.Method)
	assert.Equal(t, VeryLow, result.Confidence)
	assert.Equal(t, fmt.Sprintf("Insufficient data for pair analysis (4 of %d draws), numbers were drawn at random", minAssociationRecords), result.Explanation)
	assertValidNumbers(t, result.Numbers, database.DrawSize)
}

func TestAssociationAnalyzerPrefersPairMembers(t *testing.T) {
	analyzer := NewAssociationAnalyzer(newTestRand())

	// 所有号码对都由1-5组成，候选池只能是这5个号码
	records := makeRecords(12, []int{1, 2, 3, 4, 5})
	result := analyzer.Analyze(records, database.DrawSize)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, result.Numbers)
	assert.Equal(t, Low, result.Confidence)
}

func TestDistributionAnalyzerNoData(t *testing.T) {
	analyzer := NewDistributionAnalyzer(newTestRand())

	result := analyzer.Analyze(nil, database.DrawSize)

	assert.Equal(t, MethodDistribution, result.Method)
	assert.Equal(t, VeryLow, result.Confidence)
	assertValidNumbers(t, result.Numbers, database.DrawSize)
}

func TestDistributionAnalyzerHalvesConfidence(t *testing.T) {
	analyzer := NewDistributionAnalyzer(newTestRand())

	// 区段分布为启发式，置信度按半量样本评估：60期只能给Low
	result := analyzer.Analyze(makeRecords(60, []int{1, 12, 23, 34, 45}), database.DrawSize)

	assert.Equal(t, Low, result.Confidence)
	assertValidNumbers(t, result.Numbers, database.DrawSize)
}

func TestDistributionAnalyzerProducesValidNumbers(t *testing.T) {
	analyzer := NewDistributionAnalyzer(newTestRand())

	records := makeRecords(30, []int{3, 17, 42, 68, 89})
	result := analyzer.Analyze(records, database.DrawSize)

	require.Equal(t, MethodDistribution, result.Method)
	assertValidNumbers(t, result.Numbers, database.DrawSize)
}
