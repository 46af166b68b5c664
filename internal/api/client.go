package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"lotto-bot/internal/config"
	"lotto-bot/internal/database"
	"lotto-bot/internal/logger"
)

// Client 开奖结果API客户端
type Client struct {
	httpClient *http.Client
	baseURL    string
	retryCount int
	retryDelay time.Duration
}

// NewClient 创建新的API客户端
func NewClient(cfg *config.API) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:    cfg.URL,
		retryCount: cfg.RetryCount,
		retryDelay: cfg.RetryDelay,
	}
}

// FetchDrawData 获取指定类别的开奖数据
func (c *Client) FetchDrawData(category string, limit int) (*database.APIResponse, error) {
	requestURL := fmt.Sprintf("%s?category=%s&limit=%d", c.baseURL, url.QueryEscape(category), limit)

	var lastErr error
	for attempt := 0; attempt <= c.retryCount; attempt++ {
		if attempt > 0 {
			logger.Warnf("API request retry attempt %d/%d", attempt, c.retryCount)
			time.Sleep(c.retryDelay * time.Duration(attempt)) // 指数退避
		}

		resp, err := c.makeRequest(requestURL)
		if err != nil {
			lastErr = err
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("failed to fetch draw data after %d attempts: %v", c.retryCount, lastErr)
}

// makeRequest 执行HTTP请求
func (c *Client) makeRequest(requestURL string) (*database.APIResponse, error) {
	logger.Debugf("Making API request to: %s", requestURL)

	resp, err := c.httpClient.Get(requestURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request failed with status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	var apiResponse database.APIResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %v", err)
	}

	if apiResponse.Message != "success" {
		return nil, fmt.Errorf("API returned error message: %s", apiResponse.Message)
	}

	if len(apiResponse.Data) > 0 {
		logger.Debugf("API request successful, got %d records", len(apiResponse.Data))
	}
	return &apiResponse, nil
}

// ConvertAPIDataToDrawRecord 转换并验证API数据为内部数据模型。
// 核心引擎假定输入已验证，号码合法性在这一层把关。
func (c *Client) ConvertAPIDataToDrawRecord(apiData database.APIDrawData) (*database.DrawRecord, error) {
	drawDate, err := time.Parse("2006-01-02", apiData.DrawDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse draw date: %v", err)
	}

	winning, err := database.ParseNumbers(apiData.WinningNum)
	if err != nil {
		return nil, fmt.Errorf("failed to parse winning numbers: %v", err)
	}
	if err := database.ValidateWinningNumbers(winning); err != nil {
		return nil, fmt.Errorf("invalid winning numbers: %v", err)
	}

	machine, err := database.ParseNumbers(apiData.MachineNum)
	if err != nil {
		return nil, fmt.Errorf("failed to parse machine numbers: %v", err)
	}
	// 全零表示缺失，先归一化再验证
	machine = database.NormalizeMachineNumbers(machine)
	if err := database.ValidateMachineNumbers(machine); err != nil {
		return nil, fmt.Errorf("invalid machine numbers: %v", err)
	}

	return &database.DrawRecord{
		Category:       apiData.Category,
		DrawDate:       drawDate,
		DrawDateString: apiData.DrawDate,
		WinningNumbers: winning,
		MachineNumbers: machine,
	}, nil
}

// FetchLatestDraw 获取并验证指定类别最新一期开奖数据
func (c *Client) FetchLatestDraw(category string) (*database.DrawRecord, error) {
	apiResponse, err := c.FetchDrawData(category, 1)
	if err != nil {
		return nil, err
	}

	if len(apiResponse.Data) == 0 {
		return nil, fmt.Errorf("no data returned from API for category: %s", category)
	}

	record, err := c.ConvertAPIDataToDrawRecord(apiResponse.Data[0])
	if err != nil {
		return nil, err
	}

	logger.Debugf("Latest draw validated: %s %s %s",
		record.Category, record.DrawDateString, database.FormatNumbers(record.WinningNumbers))

	return record, nil
}

// GetHistoricalDraws 获取指定类别的历史开奖数据
func (c *Client) GetHistoricalDraws(category string, limit int) ([]database.DrawRecord, error) {
	apiResponse, err := c.FetchDrawData(category, limit)
	if err != nil {
		return nil, err
	}

	var records []database.DrawRecord
	for _, apiData := range apiResponse.Data {
		record, err := c.ConvertAPIDataToDrawRecord(apiData)
		if err != nil {
			logger.Warnf("Failed to convert API data: %v", err)
			continue
		}
		records = append(records, *record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid data could be converted for category: %s", category)
	}

	logger.Infof("Retrieved %d historical draws for %s", len(records), category)
	return records, nil
}

// HealthCheck 检查API健康状态
func (c *Client) HealthCheck(category string) error {
	_, err := c.FetchDrawData(category, 1)
	if err != nil {
		return fmt.Errorf("API health check failed: %v", err)
	}

	logger.Debug("API health check passed")
	return nil
}

// GetAPIStats 获取API客户端配置信息
func (c *Client) GetAPIStats() map[string]interface{} {
	return map[string]interface{}{
		"base_url":    c.baseURL,
		"timeout":     c.httpClient.Timeout,
		"retry_count": c.retryCount,
		"retry_delay": c.retryDelay,
	}
}
