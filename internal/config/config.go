// Package config 애플리케이션 설정을 로드하고 검증합니다.
//
// 설정은 다음 순서로 겹쳐 적용되며, 뒤에 오는 값이 앞의 값을 덮어씁니다.
//  1. 기본값
//  2. JSON 설정 파일 (없으면 건너뜀)
//  3. .env 파일 (프로세스 환경 변수에 이미 있는 값은 유지)
//  4. 스토어프론트 호환 환경 변수 (MP_ACCESS_TOKEN, MP_WEBHOOK_SECRET, NEXT_PUBLIC_APP_URL, APP_URL)
//  5. SANGABRIEL_ 접두사 환경 변수 (예: SANGABRIEL_ERP__TIMEOUT=15s → erp.timeout)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	"github.com/darkkaiser/sangabriel-catalog/internal/pkg/retry"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션 식별자입니다. 로그 파일명과 User-Agent에 사용됩니다.
	AppName string = "sangabriel-catalog"

	// DefaultFilename 기본 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// DefaultDotEnvFilename 기본 .env 파일명입니다.
	DefaultDotEnvFilename = ".env"

	envPrefix = "SANGABRIEL_"
)

// legacyEnvKeys 스토어프론트 배포 환경에서 쓰던 환경 변수 이름과 설정 키의 대응입니다.
// 같은 설정 키에 여러 변수가 있으면 뒤의 항목이 우선합니다.
var legacyEnvKeys = []struct {
	name string
	key  string
}{
	{"APP_URL", "app.url"},
	{"NEXT_PUBLIC_APP_URL", "app.url"},
	{"MP_ACCESS_TOKEN", "mercadopago.access_token"},
	{"MP_WEBHOOK_SECRET", "mercadopago.webhook_secret"},
}

// AppConfig 애플리케이션 설정의 최상위 구조체입니다.
type AppConfig struct {
	Debug       bool              `json:"debug"`
	ERP         ERPConfig         `json:"erp"`
	MercadoPago MercadoPagoConfig `json:"mercadopago"`
	App         PublicAppConfig   `json:"app"`
	Contact     ContactConfig     `json:"contact"`
	Storage     StorageConfig     `json:"storage"`
	Catalog     CatalogConfig     `json:"catalog"`
	Checkout    CheckoutConfig    `json:"checkout"`
	HTTPServer  HTTPServerConfig  `json:"http_server"`
}

// ERPConfig 상품/가격 원천인 ERP 연동 설정입니다.
type ERPConfig struct {
	BaseURL     string        `json:"base_url" validate:"required,base_url"`
	CatalogPath string        `json:"catalog_path" validate:"required,startswith=/"`
	PriceList   string        `json:"price_list" validate:"required"`
	Timeout     time.Duration `json:"timeout" validate:"gt=0"`
	Retry       retry.Policy  `json:"retry"`
}

// MercadoPagoConfig 결제 대행사(Mercado Pago) 연동 설정입니다.
// AccessToken이 비어 있어도 서버는 기동하며, 결제 생성 요청만 실패합니다.
type MercadoPagoConfig struct {
	AccessToken string `json:"access_token"`

	// WebhookSecret 웹훅 X-Signature 검증용 비밀키 (비어 있으면 검증하지 않음)
	WebhookSecret string `json:"webhook_secret"`

	BaseURL string        `json:"base_url" validate:"required,base_url"`
	Timeout time.Duration `json:"timeout" validate:"gt=0"`
	Retry   retry.Policy  `json:"retry"`
}

// PublicAppConfig 결제 완료 후 돌아올 URL과 웹훅 URL을 만드는 데 쓰는 공개 주소입니다.
type PublicAppConfig struct {
	URL string `json:"url" validate:"required,base_url"`
}

// ContactConfig 상품 견적 문의 링크의 수신처입니다.
type ContactConfig struct {
	WhatsAppPhone string `json:"whatsapp_phone" validate:"required,numeric"`
	SalesEmail    string `json:"sales_email" validate:"required,email"`
}

// StorageConfig 장바구니, 대기 주문, 웹훅 중복 방지 기록을 저장할 키-값 저장소 설정입니다.
type StorageConfig struct {
	Driver        string `json:"driver" validate:"oneof=file memory redis"`
	Dir           string `json:"dir" validate:"required_if=Driver file"`
	RedisAddr     string `json:"redis_addr" validate:"required_if=Driver redis,omitempty,host_port"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db" validate:"min=0"`
}

// CatalogConfig 카탈로그 스냅샷 갱신 설정입니다.
type CatalogConfig struct {
	// RefreshSpec 스냅샷 갱신 주기 (cron 표현식, 예: "@every 5m")
	RefreshSpec string `json:"refresh_spec" validate:"required,cron_spec"`

	// DefaultLayout 책 보기 기본 레이아웃 (sections 또는 categories)
	DefaultLayout string `json:"default_layout" validate:"oneof=sections categories"`
}

// CheckoutConfig 주문 처리 설정입니다.
type CheckoutConfig struct {
	WhatsAppPhone   string             `json:"whatsapp_phone" validate:"required,numeric"`
	ClearDelay      time.Duration      `json:"clear_delay" validate:"min=0"`
	WebhookDedupTTL time.Duration      `json:"webhook_dedup_ttl" validate:"gt=0"`
	BankTransfer    BankTransferConfig `json:"bank_transfer"`
}

// BankTransferConfig 계좌 이체 안내에 표시할 계좌 정보입니다.
type BankTransferConfig struct {
	CBU           string `json:"cbu" validate:"required,numeric,len=22"`
	Alias         string `json:"alias" validate:"required"`
	BankName      string `json:"bank_name" validate:"required"`
	AccountHolder string `json:"account_holder" validate:"required"`
}

// HTTPServerConfig API 서버 설정입니다.
type HTTPServerConfig struct {
	ListenPort     int             `json:"listen_port" validate:"min=1,max=65535"`
	TLSServer      bool            `json:"tls_server"`
	TLSCertFile    string          `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile     string          `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
	RequestTimeout time.Duration   `json:"request_timeout" validate:"gt=0"`
	BodyLimit      string          `json:"body_limit" validate:"required"`
	RateLimit      RateLimitConfig `json:"rate_limit"`
	CORS           CORSConfig      `json:"cors"`
}

// RateLimitConfig IP별 요청 제한 설정입니다.
type RateLimitConfig struct {
	RequestsPerSecond float64 `json:"requests_per_second" validate:"gt=0"`
	Burst             int     `json:"burst" validate:"min=1"`
}

// CORSConfig 교차 출처 요청 허용 설정입니다.
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"min=1,dive,cors_origin"`
}

// validate 필드 단위 태그 검증 후 필드 간 정합성을 검사합니다.
func (c *AppConfig) validate() error {
	v := newValidator()

	if err := checkStruct(v, c, "설정"); err != nil {
		return err
	}

	for _, origin := range c.HTTPServer.CORS.AllowOrigins {
		if origin == "*" && len(c.HTTPServer.CORS.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
		}
	}

	return nil
}

// VerifyRecommendations 기동을 막지는 않지만 운영상 주의가 필요한 설정에 대한 경고를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.HTTPServer.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.HTTPServer.ListenPort))
	}
	if strings.TrimSpace(c.MercadoPago.AccessToken) == "" {
		warnings = append(warnings, "Mercado Pago 액세스 토큰(mercadopago.access_token)이 설정되지 않아 결제 생성 요청이 실패합니다")
	}
	if strings.TrimSpace(c.MercadoPago.WebhookSecret) == "" {
		warnings = append(warnings, "Mercado Pago 웹훅 비밀키(mercadopago.webhook_secret)가 설정되지 않아 웹훅 서명을 검증하지 않습니다")
	}
	if c.Storage.Driver == "memory" {
		warnings = append(warnings, "메모리 저장소를 사용하도록 설정되었습니다. 서버를 재시작하면 장바구니가 모두 사라집니다")
	}

	return warnings
}

// defaultValues 기본 설정값입니다.
func defaultValues() map[string]any {
	erpRetry := retry.DefaultPolicy()

	return map[string]any{
		"debug": false,

		"erp.base_url":            "https://erp-v0.onrender.com",
		"erp.catalog_path":        "/api/catalogo",
		"erp.price_list":          "Retail",
		"erp.timeout":             10 * time.Second,
		"erp.retry.max_retries":   erpRetry.MaxRetries,
		"erp.retry.initial_delay": erpRetry.InitialDelay,
		"erp.retry.multiplier":    erpRetry.Multiplier,
		"erp.retry.max_delay":     time.Duration(0),

		"mercadopago.access_token":        "",
		"mercadopago.webhook_secret":      "",
		"mercadopago.base_url":            "https://api.mercadopago.com",
		"mercadopago.timeout":             15 * time.Second,
		"mercadopago.retry.max_retries":   2,
		"mercadopago.retry.initial_delay": 500 * time.Millisecond,
		"mercadopago.retry.multiplier":    2.0,
		"mercadopago.retry.max_delay":     5 * time.Second,

		"app.url": "http://localhost:3000",

		"contact.whatsapp_phone": "573001234567",
		"contact.sales_email":    "ventas@sangabriel.com",

		"storage.driver":         "file",
		"storage.dir":            "data",
		"storage.redis_addr":     "",
		"storage.redis_password": "",
		"storage.redis_db":       0,

		"catalog.refresh_spec":   "@every 5m",
		"catalog.default_layout": "sections",

		"checkout.whatsapp_phone":               "5492634211816",
		"checkout.clear_delay":                  5 * time.Second,
		"checkout.webhook_dedup_ttl":            24 * time.Hour,
		"checkout.bank_transfer.cbu":            "1430001713003688800016",
		"checkout.bank_transfer.alias":          "herrera.moreno",
		"checkout.bank_transfer.bank_name":      "Banco Ejemplo",
		"checkout.bank_transfer.account_holder": "San Gabriel S.A.",

		"http_server.listen_port":                    8080,
		"http_server.tls_server":                     false,
		"http_server.tls_cert_file":                  "",
		"http_server.tls_key_file":                   "",
		"http_server.request_timeout":                60 * time.Second,
		"http_server.body_limit":                     "128K",
		"http_server.rate_limit.requests_per_second": 20.0,
		"http_server.rate_limit.burst":               40,
		"http_server.cors.allow_origins":             []string{"*"},
	}
}

// Load 기본 설정 파일과 .env 파일을 읽어 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 설정 파일을 읽어 설정을 로드합니다. 파일이 없으면 기본값과 환경 변수만 사용합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	return load(filename, DefaultDotEnvFilename)
}

func load(filename, dotEnvFilename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값
	if err := k.Load(confmap.Provider(defaultValues(), "."), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일
	if filename != "" {
		if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
			}
		}
	}

	// 3. .env 파일
	if dotEnvFilename != "" {
		if err := godotenv.Load(dotEnvFilename); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf(".env 파일 로드 중 오류가 발생했습니다: '%s'", dotEnvFilename))
		}
	}

	// 4. 스토어프론트 호환 환경 변수
	legacy := make(map[string]any)
	for _, e := range legacyEnvKeys {
		if v, ok := os.LookupEnv(e.name); ok && v != "" {
			legacy[e.key] = v
		}
	}
	if err := k.Load(confmap.Provider(legacy, "."), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 5. SANGABRIEL_ 환경 변수
	if err := k.Load(env.Provider(envPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 6. 구조체 변환 (정의되지 않은 키는 에러)
	var appConfig AppConfig
	err := k.UnmarshalWithConf("", &appConfig, koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			Result:           &appConfig,
			TagName:          "json",
		},
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 7. 유효성 검사
	if err := appConfig.validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}

// normalizeEnvKey 환경 변수 이름을 설정 키로 변환합니다.
// 예: SANGABRIEL_HTTP_SERVER__CORS__ALLOW_ORIGINS → http_server.cors.allow_origins
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}
