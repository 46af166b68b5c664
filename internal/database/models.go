package database

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// 5/90 玩法的号码域
const (
	MinNumber = 1
	MaxNumber = 90
	DrawSize  = 5
)

// DrawRecord 单期开奖数据模型
type DrawRecord struct {
	ID             int64     `json:"id" db:"id"`
	Category       string    `json:"category" db:"category"`
	DrawDate       time.Time `json:"draw_date" db:"draw_date"`
	DrawDateString string    `json:"draw_date_string" db:"draw_date_string"` // ISO日期字符串，如 2024-01-08
	WinningNumbers []int     `json:"winning_numbers"`
	MachineNumbers []int     `json:"machine_numbers"` // 可选的机选号码，缺失时为空
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Prediction 预测记录模型
type Prediction struct {
	ID           int64     `json:"id" db:"id"`
	BundleID     string    `json:"bundle_id" db:"bundle_id"`
	Category     string    `json:"category" db:"category"`
	Method       string    `json:"method" db:"method"`
	PredictedNum string    `json:"predicted_num" db:"predicted_num"`
	Confidence   string    `json:"confidence" db:"confidence"`
	Explanation  string    `json:"explanation" db:"explanation"`
	PredictedAt  time.Time `json:"predicted_at" db:"predicted_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// APIResponse 开奖API响应模型
type APIResponse struct {
	Data    []APIDrawData `json:"data"`
	Message string        `json:"message"`
}

// APIDrawData API返回的单期开奖数据
type APIDrawData struct {
	Category   string `json:"category"`
	DrawDate   string `json:"draw_date"`
	WinningNum string `json:"winning_num"`
	MachineNum string `json:"machine_num"`
}

// ParseNumbers 解析号码字符串（如 "12-34-56-78-90"）
func ParseNumbers(numStr string) ([]int, error) {
	trimmed := strings.TrimSpace(numStr)
	if trimmed == "" {
		return nil, nil
	}

	parts := strings.Split(trimmed, "-")
	var nums []int
	for _, part := range parts {
		num, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("failed to parse number: %s", part)
		}
		nums = append(nums, num)
	}

	return nums, nil
}

// FormatNumbers 格式化号码为字符串
func FormatNumbers(nums []int) string {
	if len(nums) == 0 {
		return ""
	}

	parts := make([]string, len(nums))
	for i, num := range nums {
		parts[i] = strconv.Itoa(num)
	}
	return strings.Join(parts, "-")
}

// NormalizeMachineNumbers 归一化机选号码：全零表示缺失，折叠为空
func NormalizeMachineNumbers(nums []int) []int {
	if len(nums) == 0 {
		return nil
	}

	allZero := true
	for _, num := range nums {
		if num != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return nil
	}

	return nums
}

// ValidateWinningNumbers 验证中奖号码：恰好5个互异号码，范围[1,90]
func ValidateWinningNumbers(nums []int) error {
	if len(nums) != DrawSize {
		return fmt.Errorf("winning numbers should have %d parts, got %d", DrawSize, len(nums))
	}
	return validateDistinctInRange(nums)
}

// ValidateMachineNumbers 验证机选号码：0个或5个互异号码，范围[1,90]
func ValidateMachineNumbers(nums []int) error {
	if len(nums) == 0 {
		return nil
	}
	if len(nums) != DrawSize {
		return fmt.Errorf("machine numbers should have 0 or %d parts, got %d", DrawSize, len(nums))
	}
	return validateDistinctInRange(nums)
}

// validateDistinctInRange 验证号码互异且在号码域内
func validateDistinctInRange(nums []int) error {
	seen := make(map[int]bool, len(nums))
	for _, num := range nums {
		if num < MinNumber || num > MaxNumber {
			return fmt.Errorf("number out of range (%d-%d): %d", MinNumber, MaxNumber, num)
		}
		if seen[num] {
			return fmt.Errorf("duplicate number: %d", num)
		}
		seen[num] = true
	}
	return nil
}

// SortedCopy 返回升序排序的号码副本
func SortedCopy(nums []int) []int {
	sorted := make([]int, len(nums))
	copy(sorted, nums)
	sort.Ints(sorted)
	return sorted
}

// CalculateSum 计算号码和值
func CalculateSum(nums []int) int {
	sum := 0
	for _, num := range nums {
		sum += num
	}
	return sum
}

// CountOdd 统计单数号码个数
func CountOdd(nums []int) int {
	count := 0
	for _, num := range nums {
		if num%2 == 1 {
			count++
		}
	}
	return count
}
