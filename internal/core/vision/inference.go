package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"foodgpt-api/internal/infrastructure/config"
	"foodgpt-api/internal/pkg/common"
)

// InferenceClient 透過 HTTP 呼叫外部物件偵測推論服務
type InferenceClient struct {
	config *config.VisionConfig
	client *resty.Client
}

// detectRequest 推論服務請求結構
type detectRequest struct {
	Image string `json:"image"` // base64 編碼影像
}

// detectResponse 推論服務響應結構
type detectResponse struct {
	Detections []Detection `json:"detections"`
}

// NewInferenceClient 創建推論客戶端
func NewInferenceClient(cfg *config.VisionConfig) *InferenceClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &InferenceClient{
		config: cfg,
		client: client,
	}
}

// Detect 實現 Detector 介面
func (c *InferenceClient) Detect(ctx context.Context, image []byte) ([]Detection, error) {
	req := &detectRequest{
		Image: base64.StdEncoding.EncodeToString(image),
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/detect")
	if err != nil {
		return nil, fmt.Errorf("failed to call detection service: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("detection service error (status %d): %s", resp.StatusCode(), resp.String())
	}

	var result detectResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse detection response: %w", err)
	}

	return result.Detections, nil
}
