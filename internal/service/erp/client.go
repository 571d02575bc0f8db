// Package erp 상품과 가격의 원천인 ERP 시스템에서 카탈로그를 조회합니다.
package erp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/darkkaiser/sangabriel-catalog/internal/catalog"
	"github.com/darkkaiser/sangabriel-catalog/internal/config"
	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	"github.com/darkkaiser/sangabriel-catalog/internal/pkg/fetcher"
	"github.com/darkkaiser/sangabriel-catalog/internal/pkg/retry"
	"github.com/darkkaiser/sangabriel-catalog/internal/pkg/version"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const component = "erp.client"

// imagePath 상대 경로 이미지 이름 앞에 붙는 ERP 이미지 제공 경로
const imagePath = "/api/productos/imagen/"

// CatalogFetcher ERP 카탈로그 조회 인터페이스입니다.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context) (catalog.Response, error)
}

// erpProduct ERP 응답의 productos 항목입니다.
type erpProduct struct {
	Referencia string          `json:"referencia"`
	Nombre     string          `json:"nombre"`
	Categoria  string          `json:"categoria"`
	Precio     decimal.Decimal `json:"precio"`
	Moneda     string          `json:"moneda"`
	Imagen     *string         `json:"imagen"`
}

// Client ERP HTTP 클라이언트입니다.
//
// 요청 하나는 fetcher 체인(로깅, User-Agent, 상태 코드 검사, 응답 크기 제한)을 거치고,
// 재시도는 응답 해석까지 포함한 조회 단위로 retry.Policy에 따라 수행됩니다.
type Client struct {
	fetcher fetcher.Fetcher

	baseURL     string
	catalogPath string
	priceList   string
	timeout     time.Duration

	policy    retry.Policy
	retryOpts []retry.Option

	now func() time.Time
}

var _ CatalogFetcher = (*Client)(nil)

// Option Client 생성 옵션입니다.
type Option func(*Client)

// WithFetcher 기본 fetcher 체인 대신 사용할 Fetcher를 지정합니다.
func WithFetcher(f fetcher.Fetcher) Option {
	return func(c *Client) {
		c.fetcher = f
	}
}

// WithRetryOptions 재시도 대기 함수 등 retry 옵션을 추가합니다.
func WithRetryOptions(opts ...retry.Option) Option {
	return func(c *Client) {
		c.retryOpts = append(c.retryOpts, opts...)
	}
}

// WithClock 현재 시각 함수를 지정합니다.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient 설정으로 ERP 클라이언트를 생성합니다.
func NewClient(cfg config.ERPConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		catalogPath: cfg.CatalogPath,
		priceList:   cfg.PriceList,
		timeout:     cfg.Timeout,
		policy:      cfg.Retry,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.fetcher == nil {
		c.fetcher = fetcher.New(fetcher.Config{
			Timeout:   cfg.Timeout,
			UserAgent: config.AppName + "/" + version.Version(),
		})
	}

	return c
}

// CatalogURL 카탈로그 조회 URL을 반환합니다.
func (c *Client) CatalogURL() string {
	q := url.Values{}
	q.Set("lista", c.priceList)
	return c.baseURL + c.catalogPath + "?" + q.Encode()
}

// FetchCatalog ERP에서 카탈로그를 조회하여 정규화된 응답을 반환합니다.
//
// 실패하면 정책에 따라 순차적으로 재시도하고, 모두 실패하면 마지막 에러를 반환합니다.
// 반환되는 에러의 가장 바깥쪽 메시지는 사용자에게 그대로 보여줄 수 있는 스페인어 문구입니다.
func (c *Client) FetchCatalog(ctx context.Context) (catalog.Response, error) {
	opts := append([]retry.Option{
		retry.WithNotify(func(n int, delay time.Duration, err error) {
			applog.WithComponentAndFields(component, applog.Fields{
				"retry":       n,
				"max_retries": c.policy.MaxRetries,
				"delay":       delay.String(),
				"error":       err.Error(),
			}).Warn("ERP 카탈로그 조회 실패: 재시도합니다")
		}),
	}, c.retryOpts...)

	resp, err := retry.Do(ctx, c.policy, c.fetchOnce, opts...)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"url":   c.CatalogURL(),
			"error": err.Error(),
		}).Error("ERP 카탈로그 조회 최종 실패")

		return catalog.Response{}, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"products":   len(resp.Products),
		"categories": len(resp.Categories),
		"price_list": resp.PriceListName,
	}).Debug("ERP 카탈로그 조회 완료")

	return resp, nil
}

// fetchOnce 재시도 없이 한 번 조회합니다.
func (c *Client) fetchOnce(ctx context.Context) (catalog.Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Accept", "application/json")
	header.Set("Cache-Control", "no-cache")

	resp, err := fetcher.Get(ctx, c.fetcher, c.CatalogURL(), header)
	if err != nil {
		return catalog.Response{}, classifyFetchError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return catalog.Response{}, classifyFetchError(err)
	}

	return c.parse(body)
}

// parse ERP 응답 본문 {success, lista, productos}를 카탈로그 응답으로 변환합니다.
func (c *Client) parse(body []byte) (catalog.Response, error) {
	if !gjson.ValidBytes(body) {
		return catalog.Response{}, apperrors.New(apperrors.ParsingFailed, "Respuesta inválida del sistema ERP")
	}

	envelope := gjson.ParseBytes(body)
	if !envelope.Get("success").Bool() {
		return catalog.Response{}, apperrors.New(apperrors.ExecutionFailed, "ERP returned unsuccessful response")
	}

	var items []erpProduct
	if raw := envelope.Get("productos"); raw.Exists() && raw.Type != gjson.Null {
		if err := json.Unmarshal([]byte(raw.Raw), &items); err != nil {
			return catalog.Response{}, apperrors.Wrap(err, apperrors.ParsingFailed, "Respuesta inválida del sistema ERP")
		}
	}

	products := make([]catalog.Product, 0, len(items))
	for _, item := range items {
		products = append(products, catalog.Product{
			Referencia: item.Referencia,
			Nombre:     item.Nombre,
			Categoria:  item.Categoria,
			Precio:     item.Precio,
			Moneda:     item.Moneda,
			Imagen:     c.ImageURL(item.Imagen),
		})
	}

	return catalog.NewResponse(products, envelope.Get("lista").String(), c.now()), nil
}

// ImageURL ERP 이미지 필드를 절대 URL로 바꿉니다.
// 이미 http(s) URL이면 그대로, 비어 있으면 nil을 반환합니다.
func (c *Client) ImageURL(name *string) *string {
	if name == nil || *name == "" {
		return nil
	}

	if strings.HasPrefix(*name, "http://") || strings.HasPrefix(*name, "https://") {
		v := *name
		return &v
	}

	v := c.baseURL + imagePath + *name
	return &v
}

// classifyFetchError 전송 계층 에러를 사용자 문구가 담긴 에러로 감쌉니다.
func classifyFetchError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var statusErr *fetcher.HTTPStatusError
	switch {
	case errors.As(err, &statusErr):
		return apperrors.Wrapf(err, apperrors.Unavailable, "Error fetching catalog from ERP: %d %s", statusErr.StatusCode, statusText(statusErr))
	case apperrors.Is(err, apperrors.Timeout) || errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.Timeout, "La solicitud al ERP tardó demasiado. Intente nuevamente.")
	case apperrors.Is(err, apperrors.Unavailable):
		return apperrors.Wrap(err, apperrors.Unavailable, "No se pudo conectar con el sistema ERP. Verifique su conexión a internet.")
	}

	return apperrors.Wrap(err, apperrors.Unavailable, DefaultErrorMessage)
}

// statusText "503 Service Unavailable"에서 상태 코드를 뺀 문구를 반환합니다.
func statusText(e *fetcher.HTTPStatusError) string {
	if _, text, ok := strings.Cut(e.Status, " "); ok {
		return text
	}
	return http.StatusText(e.StatusCode)
}
