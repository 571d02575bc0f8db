package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNormalizeEnvKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"SANGABRIEL_DEBUG", "debug"},
		{"SANGABRIEL_ERP__TIMEOUT", "erp.timeout"},
		{"SANGABRIEL_HTTP_SERVER__CORS__ALLOW_ORIGINS", "http_server.cors.allow_origins"},
		{"SANGABRIEL_CHECKOUT__BANK_TRANSFER__CBU", "checkout.bank_transfer.cbu"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeEnvKey(tt.input), "Input: %s", tt.input)
	}
}

// 아래 테스트들은 프로세스 환경 변수를 읽으므로 병렬로 실행하지 않습니다.

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "missing.json"), "")
	require.NoError(t, err)

	assert.Equal(t, "https://erp-v0.onrender.com", cfg.ERP.BaseURL)
	assert.Equal(t, "/api/catalogo", cfg.ERP.CatalogPath)
	assert.Equal(t, "Retail", cfg.ERP.PriceList)
	assert.Equal(t, 10*time.Second, cfg.ERP.Timeout)
	assert.Equal(t, 2, cfg.ERP.Retry.MaxRetries)
	assert.Equal(t, time.Second, cfg.ERP.Retry.InitialDelay)
	assert.Equal(t, 1.5, cfg.ERP.Retry.Multiplier)

	assert.Equal(t, "https://api.mercadopago.com", cfg.MercadoPago.BaseURL)
	assert.Equal(t, "573001234567", cfg.Contact.WhatsAppPhone)
	assert.Equal(t, "ventas@sangabriel.com", cfg.Contact.SalesEmail)
	assert.Equal(t, "5492634211816", cfg.Checkout.WhatsAppPhone)
	assert.Equal(t, 5*time.Second, cfg.Checkout.ClearDelay)
	assert.Equal(t, 24*time.Hour, cfg.Checkout.WebhookDedupTTL)
	assert.Equal(t, "herrera.moreno", cfg.Checkout.BankTransfer.Alias)
	assert.Equal(t, "1430001713003688800016", cfg.Checkout.BankTransfer.CBU)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "sections", cfg.Catalog.DefaultLayout)
	assert.Equal(t, []string{"*"}, cfg.HTTPServer.CORS.AllowOrigins)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "sangabriel-catalog.json", `{
		"debug": true,
		"erp": {"price_list": "Mayorista", "retry": {"max_retries": 1}},
		"storage": {"driver": "memory"},
		"http_server": {"listen_port": 9090, "cors": {"allow_origins": ["https://sangabriel.com.ar"]}}
	}`)

	cfg, err := load(path, "")
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "Mayorista", cfg.ERP.PriceList)
	assert.Equal(t, 1, cfg.ERP.Retry.MaxRetries)
	assert.Equal(t, time.Second, cfg.ERP.Retry.InitialDelay, "지정하지 않은 값은 기본값 유지")
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTPServer.ListenPort)
	assert.Equal(t, []string{"https://sangabriel.com.ar"}, cfg.HTTPServer.CORS.AllowOrigins)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"정의되지 않은 키", `{"unknown_section": {}}`, "구조체로 변환"},
		{"잘못된 JSON", `{"debug": `, "설정 파일 로드"},
		{"잘못된 저장소 드라이버", `{"storage": {"driver": "s3"}}`, "storage.driver"},
		{"Redis 주소 누락", `{"storage": {"driver": "redis"}}`, "storage.redis_addr"},
		{"Redis 주소 형식", `{"storage": {"driver": "redis", "redis_addr": "localhost"}}`, "storage.redis_addr"},
		{"잘못된 ERP URL", `{"erp": {"base_url": "erp-v0.onrender.com"}}`, "erp.base_url"},
		{"후행 슬래시", `{"app": {"url": "https://sangabriel.com.ar/"}}`, "app.url"},
		{"잘못된 cron 표현식", `{"catalog": {"refresh_spec": "every five"}}`, "catalog.refresh_spec"},
		{"잘못된 CORS", `{"http_server": {"cors": {"allow_origins": ["sangabriel.com.ar"]}}}`, "CORS Origin"},
		{"와일드카드 혼용", `{"http_server": {"cors": {"allow_origins": ["*", "https://a.com"]}}}`, "와일드카드"},
		{"포트 범위", `{"http_server": {"listen_port": 70000}}`, "listen_port"},
		{"TLS 인증서 누락", `{"http_server": {"tls_server": true}}`, "tls_cert_file"},
		{"CBU 길이", `{"checkout": {"bank_transfer": {"cbu": "123"}}}`, "checkout.bank_transfer.cbu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(writeFile(t, "config.json", tt.content), "")
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_EnvironmentPrecedence(t *testing.T) {
	path := writeFile(t, "config.json", `{"erp": {"timeout": "20s"}, "app": {"url": "https://file.example.com"}}`)

	t.Setenv("SANGABRIEL_ERP__TIMEOUT", "15s")
	t.Setenv("SANGABRIEL_HTTP_SERVER__CORS__ALLOW_ORIGINS", "https://a.com,https://b.com")
	t.Setenv("MP_ACCESS_TOKEN", "APP_USR-123456")
	t.Setenv("MP_WEBHOOK_SECRET", "whsec-1")
	t.Setenv("APP_URL", "https://app.example.com")
	t.Setenv("NEXT_PUBLIC_APP_URL", "https://public.example.com")

	cfg, err := load(path, "")
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.ERP.Timeout)
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, cfg.HTTPServer.CORS.AllowOrigins)
	assert.Equal(t, "APP_USR-123456", cfg.MercadoPago.AccessToken)
	assert.Equal(t, "whsec-1", cfg.MercadoPago.WebhookSecret)
	assert.Equal(t, "https://public.example.com", cfg.App.URL)

	t.Setenv("SANGABRIEL_APP__URL", "https://override.example.com")
	cfg, err = load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com", cfg.App.URL, "접두사 환경 변수가 가장 우선합니다")
}

func TestLoad_DotEnv(t *testing.T) {
	const key = "SANGABRIEL_CONTACT__SALES_EMAIL"
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	dotenv := writeFile(t, ".env", key+"=pedidos@sangabriel.com\n")

	cfg, err := load("", dotenv)
	require.NoError(t, err)
	assert.Equal(t, "pedidos@sangabriel.com", cfg.Contact.SalesEmail)

	_, err = load("", filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err, ".env 파일이 없어도 로드에 성공해야 합니다")
}

func TestVerifyRecommendations(t *testing.T) {
	t.Parallel()

	cfg := &AppConfig{
		Storage:    StorageConfig{Driver: "memory"},
		HTTPServer: HTTPServerConfig{ListenPort: 80},
	}
	warnings := cfg.VerifyRecommendations()
	require.Len(t, warnings, 4)
	assert.Contains(t, warnings[0], "시스템 예약 포트")
	assert.Contains(t, warnings[1], "mercadopago.access_token")
	assert.Contains(t, warnings[2], "mercadopago.webhook_secret")
	assert.Contains(t, warnings[3], "메모리 저장소")

	cfg = &AppConfig{
		MercadoPago: MercadoPagoConfig{AccessToken: "APP_USR-1", WebhookSecret: "whsec-1"},
		Storage:     StorageConfig{Driver: "file"},
		HTTPServer:  HTTPServerConfig{ListenPort: 8080},
	}
	assert.Empty(t, cfg.VerifyRecommendations())
}

func TestConfigKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "erp.retry.max_retries", configKey("AppConfig.erp.retry.max_retries"))
	assert.Equal(t, "debug", configKey("debug"))
}
