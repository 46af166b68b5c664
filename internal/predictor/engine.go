package predictor

import (
	"math/rand"
	"sort"
	"time"

	"lotto-bot/internal/database"
	"lotto-bot/internal/logger"

	"github.com/google/uuid"
)

// Analyzer 单一预测启发式接口
type Analyzer interface {
	// Name 方法标识
	Name() string

	// Analyze 对单一类别的历史数据生成预测结果
	Analyze(records []database.DrawRecord, count int) *PredictionResult
}

// Engine 预测引擎：运行全部启发式并合成推荐结果
type Engine struct {
	rng       *rand.Rand
	analyzers []Analyzer
}

// NewEngine 创建使用系统随机源的预测引擎
func NewEngine() *Engine {
	return NewEngineWithSource(rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

// NewEngineWithSource 创建注入随机源与参考时钟的预测引擎（测试用固定源）。
// math/rand.Rand本身不支持并发，注入的源在这里加锁后才分发给各启发式，
// 保证同一个引擎的Predict可以被多个协程同时调用。
func NewEngineWithSource(rng *rand.Rand, now func() time.Time) *Engine {
	rng = rand.New(&lockedSource{src: rng})
	engine := &Engine{rng: rng}
	engine.analyzers = []Analyzer{
		NewFrequencyAnalyzer(rng),
		NewDelayAnalyzer(rng, now),
		NewAssociationAnalyzer(rng),
		NewDistributionAnalyzer(rng),
	}
	return engine
}

// RegisterAnalyzer 注册额外的启发式
func (e *Engine) RegisterAnalyzer(analyzer Analyzer) {
	e.analyzers = append(e.analyzers, analyzer)
}

// Analyzers 获取已注册的启发式列表
func (e *Engine) Analyzers() []Analyzer {
	return e.analyzers
}

// Predict 对已按类别过滤的历史数据运行全部启发式并合成预测结果集合
func (e *Engine) Predict(records []database.DrawRecord, category string) *PredictionBundle {
	count := database.DrawSize

	results := make([]*PredictionResult, 0, len(e.analyzers))
	for _, analyzer := range e.analyzers {
		results = append(results, analyzer.Analyze(records, count))
	}

	recommended := Combine(e.rng, results, count, len(records))

	all := make([]*PredictionResult, 0, len(results)+1)
	all = append(all, recommended)
	all = append(all, results...)

	bundle := &PredictionBundle{
		ID:            uuid.NewString(),
		Category:      category,
		Results:       orderResults(all),
		Recommended:   recommended,
		AnalyzedCount: len(records),
	}

	logger.Debugf("Prediction bundle %s generated for %s: %s (%s, %d draws analyzed)",
		bundle.ID, category, database.FormatNumbers(recommended.Numbers),
		recommended.Confidence, bundle.AnalyzedCount)

	return bundle
}

// orderResults 结果排序：hybrid在前，其余按方法名字母序，重名只保留首个
func orderResults(results []*PredictionResult) []*PredictionResult {
	seen := make(map[string]bool, len(results))
	deduped := make([]*PredictionResult, 0, len(results))
	for _, result := range results {
		if seen[result.Method] {
			continue
		}
		seen[result.Method] = true
		deduped = append(deduped, result)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		if deduped[i].Method == MethodHybrid {
			return deduped[j].Method != MethodHybrid
		}
		if deduped[j].Method == MethodHybrid {
			return false
		}
		return deduped[i].Method < deduped[j].Method
	})

	return deduped
}
