package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"lotto-bot/internal/cache"
	"lotto-bot/internal/config"
	"lotto-bot/internal/database"
	"lotto-bot/internal/logger"
	"lotto-bot/internal/predictor"
	"lotto-bot/internal/stats"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot Telegram机器人
type Bot struct {
	api           *tgbotapi.BotAPI
	cacheManager  *cache.CacheManager
	engine        *predictor.Engine
	categories    []string
	updateChannel tgbotapi.UpdatesChannel
	stopChannel   chan bool
}

// NewBot 创建新的Telegram机器人
func NewBot(cfg *config.Telegram, cacheManager *cache.CacheManager, engine *predictor.Engine, categories []string) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %v", err)
	}

	bot.Debug = false
	logger.Infof("Telegram bot authorized on account: %s", bot.Self.UserName)

	// 配置更新
	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(cfg.Timeout.Seconds())

	updates := bot.GetUpdatesChan(u)

	return &Bot{
		api:           bot,
		cacheManager:  cacheManager,
		engine:        engine,
		categories:    categories,
		updateChannel: updates,
		stopChannel:   make(chan bool),
	}, nil
}

// Start 启动机器人
func (b *Bot) Start() {
	logger.Info("Starting Telegram bot...")

	go b.handleUpdates()
	logger.Info("Telegram bot started successfully")
}

// Stop 停止机器人
func (b *Bot) Stop() {
	logger.Info("Stopping Telegram bot...")
	b.stopChannel <- true
	b.api.StopReceivingUpdates()
	logger.Info("Telegram bot stopped")
}

// handleUpdates 处理更新
func (b *Bot) handleUpdates() {
	for {
		select {
		case update := <-b.updateChannel:
			if update.Message != nil {
				// 只处理私聊消息，忽略群组消息
				if update.Message.Chat.IsPrivate() {
					go b.handleMessage(update.Message)
				}
			}
		case <-b.stopChannel:
			return
		}
	}
}

// handleMessage 处理消息
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	if !message.Chat.IsPrivate() {
		return
	}

	if message.IsCommand() {
		b.handleCommand(message)
	} else {
		b.sendMessage(message.Chat.ID, "Please use commands, type /help for help.")
	}
}

// handleCommand 处理命令
func (b *Bot) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	args := strings.TrimSpace(message.CommandArguments())
	chatID := message.Chat.ID

	logger.WithField("user", chatID).Debugf("Received private command: %s %q", command, args)

	switch command {
	case "start":
		b.handleStartCommand(chatID)
	case "help":
		b.handleHelpCommand(chatID)
	case "predict":
		b.handlePredictCommand(chatID, args)
	case "stats":
		b.handleStatsCommand(chatID, args)
	case "number":
		b.handleNumberCommand(chatID, args)
	case "history":
		b.handleHistoryCommand(chatID, args)
	default:
		b.sendMessage(chatID, "Unknown command. Type /help to view available commands.")
	}
}

// handleStartCommand 处理开始命令
func (b *Bot) handleStartCommand(chatID int64) {
	welcomeText := `🎮 Welcome to the 5/90 Lotto Analysis Bot!

🤖 I analyze historical draw results and provide:
• 🔮 Number predictions from multiple methods
• 📊 Frequency, pair and sum statistics
• 🔍 Per-number regularity reports
• 📈 Recent draw history

📝 Available commands:
/predict <category> - Generate predictions
/stats <category> - View draw statistics
/number <category> <n> - Analyze one number
/history <category> - Recent draw results
/help - Help information

⚠️ Note: This bot only provides services in private chats
🔔 New predictions are pushed automatically after each draw!`

	b.sendMessage(chatID, welcomeText)
}

// handleHelpCommand 处理帮助命令
func (b *Bot) handleHelpCommand(chatID int64) {
	var builder strings.Builder

	builder.WriteString(`📖 Command Help:

/predict <category> - Run all prediction methods and the hybrid recommendation
/stats <category> - Frequency, pair, odd/even and sum statistics
/number <category> <n> - Co-occurrence and next-draw profile of number n
/history <category> - Recent 10 draw results
/help - Show this help information

💡 Available categories:
`)
	for _, category := range b.categories {
		builder.WriteString(fmt.Sprintf("• %s\n", category))
	}
	builder.WriteString("\n📞 Predictions are for reference only, please be rational.")

	b.sendMessage(chatID, builder.String())
}

// handlePredictCommand 处理预测命令
func (b *Bot) handlePredictCommand(chatID int64, args string) {
	category, ok := b.resolveCategory(args)
	if !ok {
		b.sendUnknownCategory(chatID, args)
		return
	}

	records, err := b.cacheManager.GetCategoryDraws(category)
	if err != nil {
		b.sendMessage(chatID, "❌ Failed to load draw data, please try again later.")
		logger.Errorf("Failed to get draws for prediction: %v", err)
		return
	}

	// 最新一期作为预测消息的上下文，没有数据时省略
	latestDraw, err := b.cacheManager.GetLatestDraw(category)
	if err != nil {
		latestDraw = nil
	}

	bundle := b.engine.Predict(records, category)
	b.sendMessage(chatID, b.formatPredictionBundleMessage(bundle, latestDraw))
}

// handleStatsCommand 处理统计命令
func (b *Bot) handleStatsCommand(chatID int64, args string) {
	category, ok := b.resolveCategory(args)
	if !ok {
		b.sendUnknownCategory(chatID, args)
		return
	}

	records, err := b.cacheManager.GetCategoryDraws(category)
	if err != nil {
		b.sendMessage(chatID, "❌ Failed to load draw data, please try again later.")
		logger.Errorf("Failed to get draws for statistics: %v", err)
		return
	}

	report := stats.ComputeStatistics(records, category)
	b.sendMessage(chatID, b.formatStatisticsMessage(report))
}

// handleNumberCommand 处理单号码规律命令
func (b *Bot) handleNumberCommand(chatID int64, args string) {
	// 最后一个词是目标号码，其余部分是类别名
	fields := strings.Fields(args)
	if len(fields) < 2 {
		b.sendMessage(chatID, "Usage: /number <category> <n>, e.g. /number Midweek 42")
		return
	}

	target, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil || target < database.MinNumber || target > database.MaxNumber {
		b.sendMessage(chatID, fmt.Sprintf("Please provide a number between %d and %d.", database.MinNumber, database.MaxNumber))
		return
	}

	categoryArg := strings.Join(fields[:len(fields)-1], " ")
	category, ok := b.resolveCategory(categoryArg)
	if !ok {
		b.sendUnknownCategory(chatID, categoryArg)
		return
	}

	records, err := b.cacheManager.GetCategoryDraws(category)
	if err != nil {
		b.sendMessage(chatID, "❌ Failed to load draw data, please try again later.")
		logger.Errorf("Failed to get draws for regularity: %v", err)
		return
	}

	report := stats.AnalyzeRegularity(records, target, category)
	b.sendMessage(chatID, b.formatRegularityMessage(report))
}

// handleHistoryCommand 处理历史命令
func (b *Bot) handleHistoryCommand(chatID int64, args string) {
	category, ok := b.resolveCategory(args)
	if !ok {
		b.sendUnknownCategory(chatID, args)
		return
	}

	records, err := b.cacheManager.GetRecentDraws(category, 10)
	if err != nil {
		b.sendMessage(chatID, "❌ Failed to get history records, please try again later.")
		logger.Errorf("Failed to get draw history: %v", err)
		return
	}

	b.sendMessage(chatID, b.formatDrawHistoryMessage(category, records))
}

// resolveCategory 解析类别参数，空参数时使用第一个配置类别
func (b *Bot) resolveCategory(arg string) (string, bool) {
	trimmed := strings.TrimSpace(arg)
	if trimmed == "" {
		if len(b.categories) == 0 {
			return "", false
		}
		return b.categories[0], true
	}

	for _, category := range b.categories {
		if strings.EqualFold(category, trimmed) {
			return category, true
		}
	}
	return "", false
}

// sendUnknownCategory 发送未知类别提示
func (b *Bot) sendUnknownCategory(chatID int64, arg string) {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Unknown category: %q\n\nAvailable categories:\n", arg))
	for _, category := range b.categories {
		builder.WriteString(fmt.Sprintf("• %s\n", category))
	}
	b.sendMessage(chatID, builder.String())
}

// sendMessage 发送消息（仅发送给私聊）
func (b *Bot) sendMessage(chatID int64, text string) {
	// 正数ID表示用户，负数ID表示群组
	if chatID < 0 {
		logger.Debugf("Skipping message to group chat %d", chatID)
		return
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := b.api.Send(msg)
	if err != nil {
		logger.Errorf("Failed to send message to user %d: %v", chatID, err)
	}
}

// BroadcastNewPrediction 广播新预测结果（仅发送给私聊用户）
func (b *Bot) BroadcastNewPrediction(bundle *predictor.PredictionBundle, latestDraw *database.DrawRecord) error {
	message := b.formatNewPredictionBroadcast(bundle, latestDraw)

	subscribedUsers := b.getSubscribedUsers()
	for _, userID := range subscribedUsers {
		if userID > 0 {
			b.sendMessage(userID, message)
		}
	}

	logger.Infof("Broadcasted new prediction for %s to %d private users", bundle.Category, len(subscribedUsers))
	return nil
}

// getSubscribedUsers 获取订阅的私聊用户列表
func (b *Bot) getSubscribedUsers() []int64 {
	// 这里应该从数据库获取已订阅的私聊用户ID列表
	// 目前返回空列表，实际使用时需要实现用户订阅功能
	return []int64{}
}

// GetBotInfo 获取机器人信息
func (b *Bot) GetBotInfo() map[string]interface{} {
	return map[string]interface{}{
		"username":   b.api.Self.UserName,
		"id":         b.api.Self.ID,
		"first_name": b.api.Self.FirstName,
		"is_bot":     b.api.Self.IsBot,
	}
}
