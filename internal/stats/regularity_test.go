package stats

import (
	"testing"

	"lotto-bot/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeRegularityTargetNeverDrawn(t *testing.T) {
	records := []database.DrawRecord{
		makeDraw("2024-01-01", []int{10, 20, 30, 40, 50}, nil),
		makeDraw("2024-01-08", []int{11, 21, 31, 41, 51}, nil),
	}

	report := AnalyzeRegularity(records, 7, "Monday Special")

	assert.Equal(t, 7, report.TargetNumber)
	assert.Equal(t, 0, report.OccurrenceCount)
	assert.Empty(t, report.CoOccurrence)
	assert.Empty(t, report.NextDraw)
	assert.Nil(t, report.TopCoOccurring)
	assert.Nil(t, report.TopNextDraw)
}

func TestAnalyzeRegularityCoOccurrenceAndNextDraw(t *testing.T) {
	records := []database.DrawRecord{
		makeDraw("2024-01-01", []int{1, 2, 3, 4, 5}, nil),
		makeDraw("2024-01-02", []int{1, 10, 20, 30, 40}, nil),
		makeDraw("2024-01-03", []int{50, 60, 70, 80, 90}, nil),
	}

	report := AnalyzeRegularity(records, 1, "Monday Special")

	assert.Equal(t, 2, report.OccurrenceCount)

	// 共现统计不含目标号码本身
	assert.Equal(t, 0, report.CoOccurrence[1])
	for _, num := range []int{2, 3, 4, 5, 10, 20, 30, 40} {
		assert.Equal(t, 1, report.CoOccurrence[num], "co-occurrence of %d", num)
	}

	// 后续开出只统计紧随其后的一期：第一期之后的第二期（含目标号码本身），
	// 第二期之后的第三期
	assert.Equal(t, 1, report.NextDraw[1])
	for _, num := range []int{10, 20, 30, 40, 50, 60, 70, 80, 90} {
		assert.Equal(t, 1, report.NextDraw[num], "next-draw count of %d", num)
	}
	// 从不越过一期（第三期不计入第一期的后续）
	assert.Equal(t, 0, report.NextDraw[2])
	assert.Equal(t, 10, len(report.NextDraw))
}

func TestAnalyzeRegularitySortsByDate(t *testing.T) {
	// 输入乱序，按日期升序后末期的目标号码没有后续一期
	records := []database.DrawRecord{
		makeDraw("2024-01-03", []int{1, 60, 70, 80, 90}, nil),
		makeDraw("2024-01-01", []int{1, 2, 3, 4, 5}, nil),
		makeDraw("2024-01-02", []int{10, 20, 30, 40, 50}, nil),
	}

	report := AnalyzeRegularity(records, 1, "Monday Special")

	require.Equal(t, 2, report.OccurrenceCount)
	// 第一期之后是第二期
	for _, num := range []int{10, 20, 30, 40, 50} {
		assert.Equal(t, 1, report.NextDraw[num])
	}
	// 末期为最后一期，没有后续可统计
	assert.Equal(t, 0, report.NextDraw[60])
}

func TestAnalyzeRegularityTopLists(t *testing.T) {
	records := []database.DrawRecord{
		makeDraw("2024-01-01", []int{1, 7, 8, 9, 10}, nil),
		makeDraw("2024-01-02", []int{1, 7, 20, 30, 40}, nil),
		makeDraw("2024-01-03", []int{1, 7, 50, 60, 70}, nil),
	}

	report := AnalyzeRegularity(records, 1, "Monday Special")

	assert.Equal(t, 3, report.OccurrenceCount)
	require.NotEmpty(t, report.TopCoOccurring)
	assert.Equal(t, NumberCount{Number: 7, Count: 3}, report.TopCoOccurring[0])
}
