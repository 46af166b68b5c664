package stats

import (
	"fmt"
	"sort"
)

// FrequencyTable 号码到出现次数的映射
type FrequencyTable map[int]int

// Increment 累加号码出现次数
func (t FrequencyTable) Increment(num int) {
	t[num]++
}

// NumberCount 号码及其出现次数
type NumberCount struct {
	Number int `json:"number"`
	Count  int `json:"count"`
}

// Top 提取出现次数最多的号码：取第limit名处的次数为界，
// 先纳入全部不低于该界的号码，再截断到limit个
func (t FrequencyTable) Top(limit int) []NumberCount {
	return t.extract(limit, false)
}

// Bottom 提取出现次数最少的号码，边界并列处理与Top一致
func (t FrequencyTable) Bottom(limit int) []NumberCount {
	return t.extract(limit, true)
}

func (t FrequencyTable) extract(limit int, ascending bool) []NumberCount {
	if len(t) == 0 || limit <= 0 {
		return nil
	}

	entries := make([]NumberCount, 0, len(t))
	for num, count := range t {
		entries = append(entries, NumberCount{Number: num, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			if ascending {
				return entries[i].Count < entries[j].Count
			}
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Number < entries[j].Number
	})

	cutoffIndex := limit - 1
	if cutoffIndex >= len(entries) {
		cutoffIndex = len(entries) - 1
	}
	cutoff := entries[cutoffIndex].Count

	var selected []NumberCount
	for _, entry := range entries {
		if (ascending && entry.Count <= cutoff) || (!ascending && entry.Count >= cutoff) {
			selected = append(selected, entry)
		}
	}

	if len(selected) > limit {
		selected = selected[:limit]
	}
	return selected
}

// PairTable 无序号码对到出现次数的映射，保留首次出现顺序用于并列时排序
type PairTable struct {
	counts map[string]int
	order  []string
}

// NewPairTable 创建号码对频次表
func NewPairTable() *PairTable {
	return &PairTable{counts: make(map[string]int)}
}

// PairKey 号码对的规范键（小号在前）
func PairKey(a, b int) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d-%d", a, b)
}

// Increment 累加号码对出现次数
func (t *PairTable) Increment(a, b int) {
	key := PairKey(a, b)
	if _, exists := t.counts[key]; !exists {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// Count 获取号码对的出现次数
func (t *PairTable) Count(a, b int) int {
	return t.counts[PairKey(a, b)]
}

// Len 不同号码对的数量
func (t *PairTable) Len() int {
	return len(t.counts)
}

// PairCount 号码对及其出现次数
type PairCount struct {
	Pair  string `json:"pair"`
	Count int    `json:"count"`
}

// Top 提取出现次数最多的limit个号码对，并列时按首次出现顺序
func (t *PairTable) Top(limit int) []PairCount {
	if t.Len() == 0 || limit <= 0 {
		return nil
	}

	firstSeen := make(map[string]int, len(t.order))
	for i, key := range t.order {
		firstSeen[key] = i
	}

	entries := make([]PairCount, 0, len(t.counts))
	for key, count := range t.counts {
		entries = append(entries, PairCount{Pair: key, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Pair] < firstSeen[entries[j].Pair]
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
