package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"lotto-bot/internal/config"
	"lotto-bot/internal/database"
	"lotto-bot/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

// newTestClient 创建指向测试服务器的客户端
func newTestClient(serverURL string) *Client {
	return NewClient(&config.API{
		URL:        serverURL,
		Timeout:    2 * time.Second,
		RetryCount: 2,
		RetryDelay: time.Millisecond,
	})
}

func TestConvertAPIDataToDrawRecord(t *testing.T) {
	client := newTestClient("http://localhost")

	record, err := client.ConvertAPIDataToDrawRecord(database.APIDrawData{
		Category:   "Monday Special",
		DrawDate:   "2024-01-08",
		WinningNum: "5-12-40-67-88",
		MachineNum: "1-2-3-4-90",
	})

	require.NoError(t, err)
	assert.Equal(t, "Monday Special", record.Category)
	assert.Equal(t, "2024-01-08", record.DrawDateString)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), record.DrawDate)
	assert.Equal(t, []int{5, 12, 40, 67, 88}, record.WinningNumbers)
	assert.Equal(t, []int{1, 2, 3, 4, 90}, record.MachineNumbers)
}

func TestConvertAPIDataMissingMachineNumbers(t *testing.T) {
	client := newTestClient("http://localhost")

	// 全零机选号码折叠为缺失
	record, err := client.ConvertAPIDataToDrawRecord(database.APIDrawData{
		Category:   "Midweek",
		DrawDate:   "2024-01-10",
		WinningNum: "1-2-3-4-5",
		MachineNum: "0-0-0-0-0",
	})
	require.NoError(t, err)
	assert.Nil(t, record.MachineNumbers)

	// 空串同样表示缺失
	record, err = client.ConvertAPIDataToDrawRecord(database.APIDrawData{
		Category:   "Midweek",
		DrawDate:   "2024-01-10",
		WinningNum: "1-2-3-4-5",
		MachineNum: "",
	})
	require.NoError(t, err)
	assert.Nil(t, record.MachineNumbers)
}

func TestConvertAPIDataRejectsInvalidInput(t *testing.T) {
	client := newTestClient("http://localhost")

	tests := []struct {
		name string
		data database.APIDrawData
	}{
		{"bad date", database.APIDrawData{DrawDate: "08/01/2024", WinningNum: "1-2-3-4-5"}},
		{"too few winning numbers", database.APIDrawData{DrawDate: "2024-01-08", WinningNum: "1-2-3-4"}},
		{"winning number out of range", database.APIDrawData{DrawDate: "2024-01-08", WinningNum: "1-2-3-4-91"}},
		{"duplicate winning numbers", database.APIDrawData{DrawDate: "2024-01-08", WinningNum: "1-2-3-4-4"}},
		{"unparseable winning numbers", database.APIDrawData{DrawDate: "2024-01-08", WinningNum: "1-2-x-4-5"}},
		{"invalid machine numbers", database.APIDrawData{DrawDate: "2024-01-08", WinningNum: "1-2-3-4-5", MachineNum: "1-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.ConvertAPIDataToDrawRecord(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestFetchDrawData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Monday Special", r.URL.Query().Get("category"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))

		json.NewEncoder(w).Encode(database.APIResponse{
			Message: "success",
			Data: []database.APIDrawData{{
				Category:   "Monday Special",
				DrawDate:   "2024-01-08",
				WinningNum: "5-12-40-67-88",
			}},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.FetchDrawData("Monday Special", 1)

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "5-12-40-67-88", resp.Data[0].WinningNum)
}

func TestFetchDrawDataAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(database.APIResponse{Message: "category not found"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchDrawData("Nonexistent", 1)
	assert.Error(t, err)
}

func TestFetchDrawDataRetriesOnServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(database.APIResponse{
			Message: "success",
			Data: []database.APIDrawData{{
				Category:   "Midweek",
				DrawDate:   "2024-01-10",
				WinningNum: "1-2-3-4-5",
			}},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.FetchDrawData("Midweek", 1)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	require.Len(t, resp.Data, 1)
}

func TestGetHistoricalDrawsSkipsInvalidRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(database.APIResponse{
			Message: "success",
			Data: []database.APIDrawData{
				{Category: "Midweek", DrawDate: "2024-01-10", WinningNum: "1-2-3-4-5"},
				{Category: "Midweek", DrawDate: "2024-01-17", WinningNum: "1-2-3-4-99"}, // 越界，跳过
				{Category: "Midweek", DrawDate: "2024-01-24", WinningNum: "6-7-8-9-10"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	records, err := client.GetHistoricalDraws("Midweek", 10)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-01-10", records[0].DrawDateString)
	assert.Equal(t, "2024-01-24", records[1].DrawDateString)
}

func TestGetHistoricalDrawsAllInvalid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(database.APIResponse{
			Message: "success",
			Data: []database.APIDrawData{
				{Category: "Midweek", DrawDate: "not-a-date", WinningNum: "1-2-3-4-5"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetHistoricalDraws("Midweek", 10)
	assert.Error(t, err)
}
