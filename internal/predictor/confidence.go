package predictor

// Confidence 预测置信度等级（有序）
type Confidence int

const (
	VeryLow Confidence = iota
	Low
	Medium
	High
)

// String 置信度标签
func (c Confidence) String() string {
	switch c {
	case VeryLow:
		return "very_low"
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// Weight 置信度对应的合成权重
func (c Confidence) Weight() float64 {
	switch c {
	case VeryLow:
		return 0.5
	case Low:
		return 1.0
	case Medium:
		return 1.5
	case High:
		return 2.0
	default:
		return 0.5
	}
}

// Promote 提升一个置信度等级，High封顶
func (c Confidence) Promote() Confidence {
	if c < High {
		return c + 1
	}
	return High
}

// ConfidenceForSampleSize 根据样本量确定置信度
func ConfidenceForSampleSize(analyzedCount int) Confidence {
	switch {
	case analyzedCount < 10:
		return VeryLow
	case analyzedCount < 50:
		return Low
	case analyzedCount < 200:
		return Medium
	default:
		return High
	}
}
