package predictor

// 预测方法标识
const (
	MethodHybrid       = "hybrid"
	MethodFrequency    = "frequency"
	MethodDelay        = "delay"
	MethodAssociation  = "association"
	MethodDistribution = "distribution"
)

// PredictionResult 单个启发式的预测结果
type PredictionResult struct {
	Method      string     `json:"method"`
	Numbers     []int      `json:"numbers"` // 升序排列的5个互异号码
	Explanation string     `json:"explanation"`
	Confidence  Confidence `json:"confidence"`
}

// PredictionBundle 一次预测调用产出的结果集合
type PredictionBundle struct {
	ID            string              `json:"id"` // 批次ID，用于日志关联
	Category      string              `json:"category"`
	Results       []*PredictionResult `json:"results"` // hybrid在前，其余按方法名字母序
	Recommended   *PredictionResult   `json:"recommended"`
	AnalyzedCount int                 `json:"analyzed_count"`
}
