// Package ollama 封裝對外部文字生成服務的單次呼叫。
// 端點僅假設「給一段提示詞、回一段補全文字」，不依賴模型內部行為。
package ollama

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"foodgpt-api/internal/infrastructure/config"
	"foodgpt-api/internal/pkg/common"
)

// Client 生成服務客戶端
type Client struct {
	config *config.OllamaConfig
	client *resty.Client
}

// generateRequest /api/generate 請求結構
type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	Stream      bool    `json:"stream"`
}

// generateResponse /api/generate 響應結構
type generateResponse struct {
	Response string `json:"response"`
}

// NewClient 創建生成服務客戶端
func NewClient(cfg *config.OllamaConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Generate 發送提示詞並回傳原始補全文字
// 單次呼叫，逾時或失敗直接回報，不做重試
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := &generateRequest{
		Model:       c.config.Model,
		Prompt:      prompt,
		Temperature: c.config.Temperature,
		TopP:        c.config.TopP,
		Stream:      false,
	}

	common.LogInfo("Sending request to generation service",
		zap.String("model", req.Model),
		zap.Int("prompt_length", len(prompt)),
	)

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/api/generate")
	duration := time.Since(start)

	if err != nil {
		common.LogError("Failed to send request to generation service",
			zap.Error(err),
			zap.String("model", req.Model),
			zap.Duration("耗時", duration),
		)
		return "", classifyTransportError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("Generation service returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", req.Model),
		)
		return "", common.NewError(common.ErrCodeUpstreamError,
			fmt.Sprintf("生成服務錯誤 (status %d)", resp.StatusCode()),
			http.StatusBadGateway,
			fmt.Errorf("generation service error (status %d): %s", resp.StatusCode(), resp.String()))
	}

	// 解析響應
	var result generateResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", common.NewError(common.ErrCodeUpstreamError, "生成服務響應無法解析",
			http.StatusBadGateway, fmt.Errorf("failed to parse generation response: %w", err))
	}

	if result.Response == "" {
		return "", common.NewError(common.ErrCodeUpstreamError, "生成服務響應為空",
			http.StatusBadGateway, fmt.Errorf("empty response from generation service"))
	}

	common.LogInfo("Successfully generated response",
		zap.String("model", req.Model),
		zap.Int("content_length", len(result.Response)),
		zap.Duration("耗時", duration),
	)

	return result.Response, nil
}

// classifyTransportError 將傳輸層錯誤對應到錯誤代碼：逾時與連線失敗分開回報
func classifyTransportError(err error) error {
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return common.NewError(common.ErrCodeUpstreamTimeout, "生成服務逾時",
			http.StatusGatewayTimeout, err)
	}
	return common.NewError(common.ErrCodeUpstreamUnavailable, "無法連線生成服務",
		http.StatusServiceUnavailable, err)
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
