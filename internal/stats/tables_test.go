package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyTableTopIncludesTies(t *testing.T) {
	table := FrequencyTable{1: 3, 2: 3, 3: 2, 4: 2, 5: 1}

	// 第3名处次数为2，2和4并列入围后截断到3个
	top := table.Top(3)
	require.Len(t, top, 3)
	assert.Equal(t, NumberCount{Number: 1, Count: 3}, top[0])
	assert.Equal(t, NumberCount{Number: 2, Count: 3}, top[1])
	assert.Equal(t, NumberCount{Number: 3, Count: 2}, top[2])
}

func TestFrequencyTableBottom(t *testing.T) {
	table := FrequencyTable{1: 3, 2: 3, 3: 2, 4: 2, 5: 1}

	bottom := table.Bottom(2)
	require.Len(t, bottom, 2)
	assert.Equal(t, NumberCount{Number: 5, Count: 1}, bottom[0])
	assert.Equal(t, NumberCount{Number: 3, Count: 2}, bottom[1])
}

func TestFrequencyTableTopEdgeCases(t *testing.T) {
	assert.Nil(t, FrequencyTable{}.Top(5))
	assert.Nil(t, FrequencyTable{1: 1}.Top(0))

	// limit大于条目数时返回全部
	table := FrequencyTable{7: 2, 8: 1}
	top := table.Top(5)
	require.Len(t, top, 2)
	assert.Equal(t, 7, top[0].Number)
}

func TestFrequencyTableIncrement(t *testing.T) {
	table := make(FrequencyTable)
	table.Increment(42)
	table.Increment(42)
	table.Increment(7)

	assert.Equal(t, 2, table[42])
	assert.Equal(t, 1, table[7])
}

func TestPairKey(t *testing.T) {
	// 小号在前的规范键
	assert.Equal(t, "5-12", PairKey(5, 12))
	assert.Equal(t, "5-12", PairKey(12, 5))
}

func TestPairTableIncrementAndCount(t *testing.T) {
	table := NewPairTable()
	table.Increment(12, 5)
	table.Increment(5, 12)
	table.Increment(40, 67)

	assert.Equal(t, 2, table.Count(5, 12))
	assert.Equal(t, 2, table.Count(12, 5))
	assert.Equal(t, 1, table.Count(67, 40))
	assert.Equal(t, 0, table.Count(1, 2))
	assert.Equal(t, 2, table.Len())
}

func TestPairTableTopTiesByFirstSeen(t *testing.T) {
	table := NewPairTable()
	table.Increment(3, 4) // 先出现
	table.Increment(1, 2)
	table.Increment(1, 2)
	table.Increment(5, 6)

	top := table.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, PairCount{Pair: "1-2", Count: 2}, top[0])
	// 并列时按首次出现顺序，3-4先于5-6
	assert.Equal(t, PairCount{Pair: "3-4", Count: 1}, top[1])
}

func TestPairTableTopEmpty(t *testing.T) {
	assert.Nil(t, NewPairTable().Top(10))
}
