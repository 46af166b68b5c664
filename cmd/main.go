package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"lotto-bot/internal/api"
	"lotto-bot/internal/cache"
	"lotto-bot/internal/config"
	"lotto-bot/internal/database"
	"lotto-bot/internal/logger"
	"lotto-bot/internal/predictor"
	"lotto-bot/internal/telegram"

	"github.com/robfig/cron/v3"
)

// 过期预测记录的保留天数
const predictionRetentionDays = 30

// App 应用程序主结构
type App struct {
	config       *config.Config
	mysql        *database.MySQLDB
	cacheManager *cache.CacheManager
	apiClient    *api.Client
	engine       *predictor.Engine
	telegramBot  *telegram.Bot
	scheduler    *cron.Cron

	// 控制通道
	stopChannel chan bool
	wg          sync.WaitGroup

	// 错误状态跟踪（避免重复日志）
	lastAPIError string
	lastDBError  string
}

// NewApp 创建应用程序实例
func NewApp(configPath string) (*App, error) {
	// 加载配置
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %v", err)
	}

	// 初始化日志
	logger.InitLogger(cfg.App.LogLevel)
	fmt.Println("🚀 启动5/90彩票分析机器人...")

	// 初始化数据库
	mysql, err := database.NewMySQLDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}
	fmt.Println("✅ 数据库连接成功")
	fmt.Println("✅ 数据库表结构初始化完成")

	// 初始化缓存管理器
	cacheManager, err := cache.NewCacheManager(mysql, cfg.App.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache manager: %v", err)
	}
	fmt.Println("✅ 缓存系统初始化完成")

	// 初始化API客户端
	apiClient := api.NewClient(&cfg.API)

	// 初始化预测引擎
	engine := predictor.NewEngine()

	// 初始化Telegram机器人
	telegramBot, err := telegram.NewBot(&cfg.Telegram, cacheManager, engine, cfg.Lottery.Categories)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %v", err)
	}
	fmt.Println("✅ Telegram机器人连接成功")

	app := &App{
		config:       cfg,
		mysql:        mysql,
		cacheManager: cacheManager,
		apiClient:    apiClient,
		engine:       engine,
		telegramBot:  telegramBot,
		scheduler:    cron.New(),
		stopChannel:  make(chan bool),
	}

	fmt.Println("🎯 应用程序初始化完成")
	return app, nil
}

// Start 启动应用程序
func (a *App) Start() error {
	fmt.Println("🔄 启动所有服务...")

	// 初始化历史数据
	if err := a.initializeHistoricalData(); err != nil {
		logger.Warnf("Failed to initialize historical data: %v", err)
	}

	// 启动Telegram机器人
	a.telegramBot.Start()

	// 启动数据监控协程
	a.wg.Add(1)
	go a.dataMonitorLoop()

	// 定时清理过期预测记录
	if _, err := a.scheduler.AddFunc(a.config.App.CleanupSpec, a.cleanupOldPredictions); err != nil {
		return fmt.Errorf("failed to schedule cleanup job: %v", err)
	}
	a.scheduler.Start()

	fmt.Println("✅ 所有服务启动完成")
	fmt.Printf("📡 开始监控 %d 个开奖类别...\n", len(a.config.Lottery.Categories))
	fmt.Printf("⏰ 轮询间隔: %v\n", a.config.App.PollingInterval)
	fmt.Println("🔔 机器人仅在私聊中提供服务")
	fmt.Println("💡 按 Ctrl+C 停止程序")
	fmt.Println("")
	return nil
}

// Stop 停止应用程序
func (a *App) Stop() error {
	fmt.Println("🛑 正在停止应用程序...")

	// 发送停止信号
	close(a.stopChannel)

	// 停止定时任务
	a.scheduler.Stop()

	// 停止Telegram机器人
	a.telegramBot.Stop()

	// 等待所有协程结束
	a.wg.Wait()

	// 关闭缓存管理器
	if err := a.cacheManager.Close(); err != nil {
		logger.Errorf("Failed to close cache manager: %v", err)
	}

	// 关闭数据库连接
	if err := a.mysql.Close(); err != nil {
		logger.Errorf("Failed to close database: %v", err)
	}

	fmt.Println("✅ 应用程序已安全停止")
	return nil
}

// initializeHistoricalData 初始化各类别的历史开奖数据
func (a *App) initializeHistoricalData() error {
	fmt.Println("📚 初始化历史开奖数据...")

	if existing, err := a.mysql.GetCategories(); err == nil && len(existing) > 0 {
		fmt.Printf("📂 数据库中已有 %d 个类别的开奖数据\n", len(existing))
	}

	for _, category := range a.config.Lottery.Categories {
		historicalData, err := a.apiClient.GetHistoricalDraws(category, a.config.Lottery.HistoryLimit)
		if err != nil {
			logger.Warnf("Failed to get historical draws for %s: %v", category, err)
			continue
		}

		savedCount := 0
		for i := range historicalData {
			record := historicalData[i]
			isNew, err := a.mysql.CheckNewDraw(record.Category, record.DrawDateString)
			if err != nil || !isNew {
				continue
			}
			if err := a.mysql.SaveDrawRecord(&record); err != nil {
				logger.Warnf("Failed to save historical draw %s %s: %v", record.Category, record.DrawDateString, err)
				continue
			}
			savedCount++
		}

		if savedCount > 0 {
			fmt.Printf("✅ %s: 初始化了 %d 条历史数据\n", category, savedCount)
		} else {
			fmt.Printf("✅ %s: 历史数据已存在，无需初始化\n", category)
		}
	}

	return nil
}

// dataMonitorLoop 数据监控循环
func (a *App) dataMonitorLoop() {
	defer a.wg.Done()

	ticker := time.NewTicker(a.config.App.PollingInterval)
	defer ticker.Stop()

	consecutiveErrors := 0

	for {
		select {
		case <-ticker.C:
			failed := false
			for _, category := range a.config.Lottery.Categories {
				if err := a.processDataUpdate(category); err != nil {
					failed = true
				}
			}

			if failed {
				consecutiveErrors++
				// 只在第一次错误和每30次错误时显示（减少刷屏）
				if consecutiveErrors == 1 {
					fmt.Println("⚠️  数据获取失败，开始重试...")
				} else if consecutiveErrors%30 == 0 {
					fmt.Printf("❌ 连续失败 %d 次，仍在重试...\n", consecutiveErrors)
				}
			} else if consecutiveErrors > 0 {
				fmt.Printf("✅ 数据连接已恢复（失败了 %d 次）\n", consecutiveErrors)
				consecutiveErrors = 0
			}
		case <-a.stopChannel:
			return
		}
	}
}

// processDataUpdate 处理单个类别的数据更新
func (a *App) processDataUpdate(category string) error {
	// 获取最新数据
	latestDraw, err := a.apiClient.FetchLatestDraw(category)
	if err != nil {
		// 只在首次出错或错误类型变化时记录
		if a.lastAPIError != err.Error() {
			logger.Errorf("API fetch failed for %s: %v", category, err)
			a.lastAPIError = err.Error()
		}
		return fmt.Errorf("failed to fetch latest draw: %v", err)
	}
	a.lastAPIError = ""

	// 检查是否是新数据
	isNew, err := a.mysql.CheckNewDraw(latestDraw.Category, latestDraw.DrawDateString)
	if err != nil {
		if a.lastDBError != err.Error() {
			logger.Errorf("Database check failed: %v", err)
			a.lastDBError = err.Error()
		}
		return fmt.Errorf("failed to check new draw: %v", err)
	}
	a.lastDBError = ""

	if !isNew {
		// 不是新数据，跳过处理
		return nil
	}

	fmt.Printf("🎯 发现新开奖: %s %s - %s\n",
		latestDraw.Category, latestDraw.DrawDateString, database.FormatNumbers(latestDraw.WinningNumbers))

	// 保存新数据到数据库
	if err := a.mysql.SaveDrawRecord(latestDraw); err != nil {
		return fmt.Errorf("failed to save draw record: %v", err)
	}

	// 更新缓存
	if err := a.cacheManager.OnNewDrawRecord(latestDraw); err != nil {
		logger.Warnf("Failed to update cache for new draw: %v", err)
	}

	// 生成新预测
	if err := a.generateNewPrediction(category, latestDraw); err != nil {
		logger.Errorf("Failed to generate new prediction: %v", err)
		return err
	}

	fmt.Printf("✅ 新数据处理完成: %s %s\n", latestDraw.Category, latestDraw.DrawDateString)
	return nil
}

// generateNewPrediction 生成并保存新预测
func (a *App) generateNewPrediction(category string, latestDraw *database.DrawRecord) error {
	records, err := a.cacheManager.GetCategoryDraws(category)
	if err != nil {
		return fmt.Errorf("failed to get draws for prediction: %v", err)
	}

	bundle := a.engine.Predict(records, category)

	// 每个方法的结果各保存一行，同批次共享bundle ID
	predictedAt := time.Now()
	for _, result := range bundle.Results {
		prediction := &database.Prediction{
			BundleID:     bundle.ID,
			Category:     bundle.Category,
			Method:       result.Method,
			PredictedNum: database.FormatNumbers(result.Numbers),
			Confidence:   result.Confidence.String(),
			Explanation:  result.Explanation,
			PredictedAt:  predictedAt,
		}
		if err := a.mysql.SavePrediction(prediction); err != nil {
			return fmt.Errorf("failed to save prediction: %v", err)
		}
	}

	// 更新缓存
	if err := a.cacheManager.OnPredictionGenerated(category); err != nil {
		logger.Warnf("Failed to update cache for new prediction: %v", err)
	}

	// 广播新预测（如果有订阅用户）
	if err := a.telegramBot.BroadcastNewPrediction(bundle, latestDraw); err != nil {
		logger.Warnf("Failed to broadcast new prediction: %v", err)
	}

	fmt.Printf("🔮 生成预测: %s -> %s (%s)\n",
		category, database.FormatNumbers(bundle.Recommended.Numbers), bundle.Recommended.Confidence)

	return nil
}

// cleanupOldPredictions 清理过期预测记录
func (a *App) cleanupOldPredictions() {
	cleaned, err := a.mysql.CleanOldPredictions(predictionRetentionDays)
	if err != nil {
		fmt.Printf("❌ 数据清理失败: %v\n", err)
		return
	}
	if cleaned > 0 {
		fmt.Printf("🧹 定期数据清理完成，删除 %d 条过期预测\n", cleaned)
	}
}

// HealthCheck 健康检查
func (a *App) HealthCheck() map[string]interface{} {
	health := map[string]interface{}{
		"timestamp": time.Now(),
		"status":    "ok",
		"services":  map[string]interface{}{},
	}

	services := health["services"].(map[string]interface{})

	// 检查API健康状态
	if len(a.config.Lottery.Categories) > 0 {
		if err := a.apiClient.HealthCheck(a.config.Lottery.Categories[0]); err != nil {
			services["api"] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
			health["status"] = "degraded"
		} else {
			services["api"] = map[string]interface{}{
				"status": "ok",
			}
		}
	}

	// 检查缓存状态
	services["cache"] = map[string]interface{}{
		"status": "ok",
		"stats":  a.cacheManager.GetStats(),
	}

	// 检查Telegram Bot状态
	services["telegram"] = map[string]interface{}{
		"status": "ok",
		"info":   a.telegramBot.GetBotInfo(),
	}

	return health
}

func main() {
	// 配置文件路径
	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// 创建应用程序实例
	app, err := NewApp(configPath)
	if err != nil {
		fmt.Printf("❌ 应用初始化失败: %v\n", err)
		os.Exit(1)
	}

	// 启动应用程序
	if err := app.Start(); err != nil {
		fmt.Printf("❌ 应用启动失败: %v\n", err)
		os.Exit(1)
	}

	// 设置信号处理
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 等待停止信号
	<-sigChan

	// 优雅关闭
	if err := app.Stop(); err != nil {
		fmt.Printf("❌ 关闭时出错: %v\n", err)
		os.Exit(1)
	}
}
