package predictor

import (
	"math/rand"
	"sort"
	"sync"

	"lotto-bot/internal/database"
)

// lockedSource 串行化底层随机源，多协程同时预测时共享同一个引擎随机源
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

// UniqueRandomNumbers 生成count个互异随机号码，范围[min,max]，排除excluding中的号码
func UniqueRandomNumbers(rng *rand.Rand, count, min, max int, excluding []int) []int {
	exclude := make(map[int]bool, len(excluding))
	for _, num := range excluding {
		exclude[num] = true
	}

	var available []int
	for num := min; num <= max; num++ {
		if !exclude[num] {
			available = append(available, num)
		}
	}

	rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	if count > len(available) {
		count = len(available)
	}
	result := make([]int, count)
	copy(result, available[:count])
	return result
}

// samplePool 从候选池中无放回地抽取count个互异号码，池不足时返回全部
func samplePool(rng *rand.Rand, pool []int, count int) []int {
	seen := make(map[int]bool, len(pool))
	var distinct []int
	for _, num := range pool {
		if !seen[num] {
			seen[num] = true
			distinct = append(distinct, num)
		}
	}

	rng.Shuffle(len(distinct), func(i, j int) {
		distinct[i], distinct[j] = distinct[j], distinct[i]
	})

	if count > len(distinct) {
		count = len(distinct)
	}
	return distinct[:count]
}

// fillToCount 用全号码域的随机号码补足到count个互异号码
func fillToCount(rng *rand.Rand, nums []int, count int) []int {
	if len(nums) >= count {
		return nums[:count]
	}
	fill := UniqueRandomNumbers(rng, count-len(nums), database.MinNumber, database.MaxNumber, nums)
	return append(nums, fill...)
}

// numberCount 号码及其出现次数
type numberCount struct {
	number int
	count  int
}

// rankByCount 按次数降序排列，次数相同时按号码升序
func rankByCount(counts map[int]int) []numberCount {
	ranked := make([]numberCount, 0, len(counts))
	for num, count := range counts {
		ranked = append(ranked, numberCount{number: num, count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].number < ranked[j].number
	})
	return ranked
}

// sortAscending 升序排序（原地）并返回
func sortAscending(nums []int) []int {
	sort.Ints(nums)
	return nums
}
