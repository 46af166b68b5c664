package cache

import (
	"fmt"
	"time"

	"lotto-bot/internal/database"
	"lotto-bot/internal/logger"
)

// CacheManager 内存+MySQL两级缓存管理器，按开奖类别划分缓存键
type CacheManager struct {
	memory     *MemoryCache
	mysql      *database.MySQLDB
	defaultTTL time.Duration
}

// NewCacheManager 创建新的缓存管理器
func NewCacheManager(mysql *database.MySQLDB, defaultTTL time.Duration) (*CacheManager, error) {
	manager := &CacheManager{
		memory:     NewMemoryCache(1000),
		mysql:      mysql,
		defaultTTL: defaultTTL,
	}

	logger.Info("Cache manager initialized with Memory + MySQL")
	return manager, nil
}

// Close 关闭缓存管理器
func (cm *CacheManager) Close() error {
	logger.Info("Cache manager closed")
	return nil
}

// OnNewDrawRecord 新开奖数据事件：失效该类别的相关缓存
func (cm *CacheManager) OnNewDrawRecord(record *database.DrawRecord) error {
	logger.Infof("Processing cache update for new draw: %s %s", record.Category, record.DrawDateString)

	cm.memory.DeletePattern(fmt.Sprintf("draws:%s:*", record.Category))
	cm.memory.DeletePattern(fmt.Sprintf("predictions:%s:*", record.Category))

	cm.memory.Set(fmt.Sprintf("draws:%s:latest", record.Category), record, cm.defaultTTL)
	return nil
}

// OnPredictionGenerated 预测生成事件：失效该类别的预测缓存
func (cm *CacheManager) OnPredictionGenerated(category string) error {
	cm.memory.DeletePattern(fmt.Sprintf("predictions:%s:*", category))
	logger.Debugf("Cache invalidated for new prediction: %s", category)
	return nil
}

// GetCategoryDraws 获取指定类别的全部开奖数据（日期升序）
func (cm *CacheManager) GetCategoryDraws(category string) ([]database.DrawRecord, error) {
	cacheKey := fmt.Sprintf("draws:%s:all", category)

	var records []database.DrawRecord
	if err := cm.memory.Get(cacheKey, &records); err == nil {
		return records, nil
	}

	records, err := cm.mysql.GetAllDrawsByCategory(category)
	if err != nil {
		return nil, fmt.Errorf("failed to get draws from database: %v", err)
	}

	cm.memory.Set(cacheKey, records, cm.defaultTTL)
	return records, nil
}

// GetLatestDraw 获取指定类别最新一期开奖数据
func (cm *CacheManager) GetLatestDraw(category string) (*database.DrawRecord, error) {
	cacheKey := fmt.Sprintf("draws:%s:latest", category)

	var record database.DrawRecord
	if err := cm.memory.Get(cacheKey, &record); err == nil {
		return &record, nil
	}

	records, err := cm.mysql.GetDrawsByCategory(category, 1)
	if err != nil || len(records) == 0 {
		return nil, fmt.Errorf("no draw data found for category: %s", category)
	}

	record = records[0]
	cm.memory.Set(cacheKey, record, cm.defaultTTL)
	return &record, nil
}

// GetRecentDraws 获取指定类别最近limit期开奖数据（日期降序）
func (cm *CacheManager) GetRecentDraws(category string, limit int) ([]database.DrawRecord, error) {
	cacheKey := fmt.Sprintf("draws:%s:recent:%d", category, limit)

	var records []database.DrawRecord
	if err := cm.memory.Get(cacheKey, &records); err == nil {
		return records, nil
	}

	records, err := cm.mysql.GetDrawsByCategory(category, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent draws from database: %v", err)
	}

	cm.memory.Set(cacheKey, records, cm.defaultTTL)
	return records, nil
}

// GetLatestPredictions 获取指定类别最新的预测记录
func (cm *CacheManager) GetLatestPredictions(category string, limit int) ([]database.Prediction, error) {
	cacheKey := fmt.Sprintf("predictions:%s:latest:%d", category, limit)

	var predictions []database.Prediction
	if err := cm.memory.Get(cacheKey, &predictions); err == nil {
		return predictions, nil
	}

	predictions, err := cm.mysql.GetLatestPredictions(category, limit)
	if err != nil {
		return nil, err
	}

	cm.memory.Set(cacheKey, predictions, cm.defaultTTL)
	return predictions, nil
}

// GetStats 获取缓存统计信息
func (cm *CacheManager) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"memory_cache": cm.memory.Stats(),
		"cache_layers": 2, // Memory + MySQL
	}
}
