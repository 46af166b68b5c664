package database

import (
	"database/sql"
	"fmt"

	"lotto-bot/internal/config"
	"lotto-bot/internal/logger"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDB MySQL数据库客户端
type MySQLDB struct {
	db *sql.DB
}

// NewMySQLDB 创建新的MySQL数据库连接
func NewMySQLDB(cfg *config.Database) (*MySQLDB, error) {
	db, err := sql.Open("mysql", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	// 设置连接池参数
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// 测试连接
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	mysqlDB := &MySQLDB{db: db}

	// 自动创建表结构
	if err := mysqlDB.createTablesIfNotExists(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %v", err)
	}

	return mysqlDB, nil
}

// Close 关闭数据库连接
func (m *MySQLDB) Close() error {
	return m.db.Close()
}

// SaveDrawRecord 保存开奖数据（同一类别+日期只保留一条逻辑记录）
func (m *MySQLDB) SaveDrawRecord(record *DrawRecord) error {
	query := `INSERT INTO draw_records (category, draw_date, draw_date_string, winning_num, machine_num)
			  VALUES (?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			  draw_date_string = VALUES(draw_date_string),
			  winning_num = VALUES(winning_num),
			  machine_num = VALUES(machine_num),
			  updated_at = CURRENT_TIMESTAMP`

	_, err := m.db.Exec(query, record.Category, record.DrawDate, record.DrawDateString,
		FormatNumbers(record.WinningNumbers), FormatNumbers(record.MachineNumbers))
	if err != nil {
		return fmt.Errorf("failed to save draw record: %v", err)
	}

	logger.Debugf("Saved draw record: %s %s", record.Category, record.DrawDateString)
	return nil
}

// GetDrawsByCategory 获取指定类别的开奖数据，按日期降序
func (m *MySQLDB) GetDrawsByCategory(category string, limit int) ([]DrawRecord, error) {
	query := `SELECT id, category, draw_date, draw_date_string, winning_num, machine_num, created_at, updated_at
			  FROM draw_records
			  WHERE category = ?
			  ORDER BY draw_date DESC
			  LIMIT ?`

	rows, err := m.db.Query(query, category, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query draws by category: %v", err)
	}
	defer rows.Close()

	return scanDrawRecords(rows)
}

// GetAllDrawsByCategory 获取指定类别的全部开奖数据，按日期升序
func (m *MySQLDB) GetAllDrawsByCategory(category string) ([]DrawRecord, error) {
	query := `SELECT id, category, draw_date, draw_date_string, winning_num, machine_num, created_at, updated_at
			  FROM draw_records
			  WHERE category = ?
			  ORDER BY draw_date ASC`

	rows, err := m.db.Query(query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query all draws by category: %v", err)
	}
	defer rows.Close()

	return scanDrawRecords(rows)
}

// GetCategories 获取已有开奖数据的类别列表
func (m *MySQLDB) GetCategories() ([]string, error) {
	rows, err := m.db.Query(`SELECT DISTINCT category FROM draw_records ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %v", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %v", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// CheckNewDraw 检查指定类别+日期是否是新开奖
func (m *MySQLDB) CheckNewDraw(category, drawDateString string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM draw_records WHERE category = ? AND draw_date_string = ?"
	err := m.db.QueryRow(query, category, drawDateString).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check new draw: %v", err)
	}

	return count == 0, nil
}

// SavePrediction 保存预测记录
func (m *MySQLDB) SavePrediction(prediction *Prediction) error {
	query := `INSERT INTO predictions (bundle_id, category, method, predicted_num, confidence, explanation, predicted_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := m.db.Exec(query, prediction.BundleID, prediction.Category, prediction.Method,
		prediction.PredictedNum, prediction.Confidence, prediction.Explanation, prediction.PredictedAt)
	if err != nil {
		return fmt.Errorf("failed to save prediction: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %v", err)
	}

	prediction.ID = id
	logger.Debugf("Saved prediction for %s (%s)", prediction.Category, prediction.Method)
	return nil
}

// GetLatestPredictions 获取指定类别最新的预测记录
func (m *MySQLDB) GetLatestPredictions(category string, limit int) ([]Prediction, error) {
	query := `SELECT id, bundle_id, category, method, predicted_num, confidence, explanation, predicted_at, created_at
			  FROM predictions
			  WHERE category = ?
			  ORDER BY predicted_at DESC, id DESC
			  LIMIT ?`

	rows, err := m.db.Query(query, category, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest predictions: %v", err)
	}
	defer rows.Close()

	var predictions []Prediction
	for rows.Next() {
		var prediction Prediction
		err := rows.Scan(&prediction.ID, &prediction.BundleID, &prediction.Category,
			&prediction.Method, &prediction.PredictedNum, &prediction.Confidence,
			&prediction.Explanation, &prediction.PredictedAt, &prediction.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %v", err)
		}
		predictions = append(predictions, prediction)
	}

	return predictions, rows.Err()
}

// CleanOldPredictions 清理过期的预测记录
func (m *MySQLDB) CleanOldPredictions(retentionDays int) (int, error) {
	result, err := m.db.Exec(
		"DELETE FROM predictions WHERE predicted_at < DATE_SUB(NOW(), INTERVAL ? DAY)", retentionDays)
	if err != nil {
		return 0, fmt.Errorf("failed to clean predictions: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %v", err)
	}

	return int(rowsAffected), nil
}

// scanDrawRecords 扫描开奖数据结果集
func scanDrawRecords(rows *sql.Rows) ([]DrawRecord, error) {
	var records []DrawRecord
	for rows.Next() {
		var record DrawRecord
		var winningNum, machineNum string
		err := rows.Scan(&record.ID, &record.Category, &record.DrawDate, &record.DrawDateString,
			&winningNum, &machineNum, &record.CreatedAt, &record.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draw record: %v", err)
		}

		record.WinningNumbers, err = ParseNumbers(winningNum)
		if err != nil {
			return nil, fmt.Errorf("failed to parse winning numbers: %v", err)
		}

		machine, err := ParseNumbers(machineNum)
		if err != nil {
			return nil, fmt.Errorf("failed to parse machine numbers: %v", err)
		}
		record.MachineNumbers = NormalizeMachineNumbers(machine)

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading draw record rows: %v", err)
	}

	return records, nil
}

// createTablesIfNotExists 自动创建表结构
func (m *MySQLDB) createTablesIfNotExists() error {
	var tableCount int
	err := m.db.QueryRow("SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = 'draw_records'").Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("failed to check table existence: %v", err)
	}

	if tableCount == 0 {
		// 创建开奖数据表
		createDrawRecordsTable := `CREATE TABLE draw_records (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			category VARCHAR(50) NOT NULL COMMENT '开奖类别',
			draw_date DATETIME NOT NULL COMMENT '开奖日期',
			draw_date_string VARCHAR(20) NOT NULL COMMENT 'ISO日期字符串',
			winning_num VARCHAR(30) NOT NULL COMMENT '中奖号码',
			machine_num VARCHAR(30) NOT NULL DEFAULT '' COMMENT '机选号码',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP COMMENT '记录创建时间',
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP COMMENT '记录更新时间',
			UNIQUE KEY uk_category_date (category, draw_date_string),
			INDEX idx_category (category),
			INDEX idx_draw_date (draw_date)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci COMMENT='开奖数据表'`

		if _, err := m.db.Exec(createDrawRecordsTable); err != nil {
			return fmt.Errorf("failed to create draw_records table: %v", err)
		}
	}

	// 检查预测表
	err = m.db.QueryRow("SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = 'predictions'").Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("failed to check predictions table existence: %v", err)
	}

	if tableCount == 0 {
		// 创建预测记录表
		createPredictionsTable := `CREATE TABLE predictions (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			bundle_id VARCHAR(36) NOT NULL COMMENT '预测批次ID',
			category VARCHAR(50) NOT NULL COMMENT '开奖类别',
			method VARCHAR(30) NOT NULL COMMENT '预测方法',
			predicted_num VARCHAR(30) NOT NULL COMMENT '预测号码',
			confidence VARCHAR(20) NOT NULL COMMENT '置信度',
			explanation VARCHAR(255) NOT NULL DEFAULT '' COMMENT '预测说明',
			predicted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP COMMENT '预测时间',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP COMMENT '记录创建时间',
			INDEX idx_bundle_id (bundle_id),
			INDEX idx_category (category),
			INDEX idx_predicted_at (predicted_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci COMMENT='预测记录表'`

		if _, err := m.db.Exec(createPredictionsTable); err != nil {
			return fmt.Errorf("failed to create predictions table: %v", err)
		}
	}

	return nil
}
