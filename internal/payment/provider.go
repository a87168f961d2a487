package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// Provider charges through an external payment API over HTTP. The API is
// expected to answer 200 with a charge status, where "DECLINED" is a valid
// business answer rather than an error.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewProvider(baseURL, apiKey string) *Provider {
	if apiKey == "" {
		logger.L().Warn("payment provider API key is empty")
	}

	return &Provider{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type providerChargeResponse struct {
	Status      string `json:"status"`
	Reference   string `json:"reference"`
	RedirectURL string `json:"redirect_url"`
}

func (p *Provider) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("gateway", "provider"),
		zap.String("order_id", req.OrderID.String()),
		zap.Int64("amount", req.Amount),
	)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/charges", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(p.apiKey, "")
	httpReq.Header.Set("Content-Type", "application/json")

	log.Info("sending charge request")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		log.Error("charge request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read charge response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("provider returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", raw),
		)
		return nil, fmt.Errorf("payment provider error: %s", string(raw))
	}

	var decoded providerChargeResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		log.Error("failed decoding charge response", zap.Error(err))
		return nil, err
	}

	if decoded.Status == "DECLINED" {
		log.Info("charge declined by provider")
		return nil, ErrChargeDeclined
	}

	log.Info("charge accepted", zap.String("reference", decoded.Reference))

	result := &ChargeResult{
		Reference:   decoded.Reference,
		RedirectURL: decoded.RedirectURL,
	}
	if result.RedirectURL == "" {
		result.RedirectURL = "/order-tracking/" + req.OrderID.String()
	}
	return result, nil
}
