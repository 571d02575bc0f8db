// Package mercadopago Mercado Pago 체크아웃 API 클라이언트입니다.
//
// 선호(preference) 생성과 결제 조회만 지원합니다. 선호 생성(POST)은 중복 결제를 막기 위해
// 재시도하지 않고, 결제 조회(GET)는 설정된 정책에 따라 재시도합니다.
package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/darkkaiser/sangabriel-catalog/internal/config"
	"github.com/darkkaiser/sangabriel-catalog/internal/pkg/fetcher"
	"github.com/darkkaiser/sangabriel-catalog/internal/pkg/version"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const component = "payment.mercadopago"

const (
	// DefaultBaseURL Mercado Pago API 주소
	DefaultBaseURL = "https://api.mercadopago.com"

	preferencesPath = "/checkout/preferences"
	paymentsPath    = "/v1/payments/"
)

// Client Mercado Pago HTTP 클라이언트입니다.
type Client struct {
	fetcher fetcher.Fetcher

	baseURL     string
	accessToken string
}

// Option Client 생성 옵션입니다.
type Option func(*Client)

// WithFetcher 기본 fetcher 체인 대신 사용할 Fetcher를 지정합니다.
func WithFetcher(f fetcher.Fetcher) Option {
	return func(c *Client) {
		c.fetcher = f
	}
}

// NewClient 설정으로 클라이언트를 생성합니다. 액세스 토큰이 비어 있어도 생성은 성공합니다.
func NewClient(cfg config.MercadoPagoConfig, opts ...Option) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:     baseURL,
		accessToken: strings.TrimSpace(cfg.AccessToken),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.fetcher == nil {
		c.fetcher = fetcher.New(fetcher.Config{
			Timeout:   cfg.Timeout,
			UserAgent: config.AppName + "/" + version.Version(),
			Retry:     cfg.Retry,
		})
	}

	return c
}

// Configured 액세스 토큰이 설정되어 있는지 반환합니다.
func (c *Client) Configured() bool {
	return c.accessToken != ""
}

// CreatePreference 체크아웃 선호를 생성합니다.
//
// 액세스 토큰이 없으면 ErrMissingCredentials를, 2xx가 아닌 응답이면 IsRejected가 true인 에러를 반환합니다.
func (c *Client) CreatePreference(ctx context.Context, pref PreferenceRequest) (Preference, error) {
	if !c.Configured() {
		return Preference{}, ErrMissingCredentials
	}

	payload, err := json.Marshal(pref)
	if err != nil {
		return Preference{}, newErrEncodeRequest(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+preferencesPath, bytes.NewReader(payload))
	if err != nil {
		return Preference{}, newErrEncodeRequest(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if pref.ExternalReference != "" {
		req.Header.Set("X-Idempotency-Key", pref.ExternalReference)
	}

	body, err := c.do(req)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"external_reference": pref.ExternalReference,
			"items":              len(pref.Items),
			"error":              err.Error(),
		}).Error("Mercado Pago 결제 선호 생성 실패")

		if IsRejected(err) {
			return Preference{}, wrapRejected(err, CreatePaymentErrorMessage)
		}
		return Preference{}, err
	}

	result, err := parsePreference(body)
	if err != nil {
		return Preference{}, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"preference_id":      result.ID,
		"external_reference": pref.ExternalReference,
	}).Info("Mercado Pago 결제 선호 생성 완료")

	return result, nil
}

// GetPayment 결제 ID로 결제 상태를 조회합니다.
func (c *Client) GetPayment(ctx context.Context, id string) (Payment, error) {
	if !c.Configured() {
		return Payment{}, ErrMissingCredentials
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return Payment{}, ErrEmptyPaymentID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+paymentsPath+url.PathEscape(id), nil)
	if err != nil {
		return Payment{}, newErrEncodeRequest(err)
	}

	body, err := c.do(req)
	if err != nil {
		if IsRejected(err) {
			return Payment{}, wrapRejected(err, GetPaymentErrorMessage)
		}
		return Payment{}, err
	}

	return parsePayment(body)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.fetcher.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func parsePreference(body []byte) (Preference, error) {
	if !gjson.ValidBytes(body) {
		return Preference{}, newErrInvalidResponse(nil)
	}

	res := gjson.ParseBytes(body)
	pref := Preference{
		ID:               res.Get("id").String(),
		InitPoint:        res.Get("init_point").String(),
		SandboxInitPoint: res.Get("sandbox_init_point").String(),
	}
	if pref.ID == "" || pref.InitPoint == "" {
		return Preference{}, newErrInvalidResponse(nil)
	}

	return pref, nil
}

func parsePayment(body []byte) (Payment, error) {
	if !gjson.ValidBytes(body) {
		return Payment{}, newErrInvalidResponse(nil)
	}

	res := gjson.ParseBytes(body)
	p := Payment{
		ID:                res.Get("id").String(),
		Status:            res.Get("status").String(),
		StatusDetail:      res.Get("status_detail").String(),
		ExternalReference: res.Get("external_reference").String(),
		PreferenceID:      res.Get("preference_id").String(),
		CurrencyID:        res.Get("currency_id").String(),
	}
	if p.ID == "" || p.Status == "" {
		return Payment{}, newErrInvalidResponse(nil)
	}

	if amount := res.Get("transaction_amount"); amount.Exists() && amount.Type != gjson.Null {
		d, err := decimal.NewFromString(amount.String())
		if err != nil {
			return Payment{}, newErrInvalidResponse(err)
		}
		p.TransactionAmount = d
	}

	if approved := res.Get("date_approved"); approved.Type == gjson.String {
		if t, err := time.Parse(time.RFC3339, approved.String()); err == nil {
			p.DateApproved = &t
		}
	}

	if md, ok := res.Get("metadata").Value().(map[string]any); ok {
		p.Metadata = md
	}

	return p, nil
}
