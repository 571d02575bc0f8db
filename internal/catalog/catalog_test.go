package catalog

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func product(ref, nombre, categoria, precio string) Product {
	return Product{
		Referencia: ref,
		Nombre:     nombre,
		Categoria:  categoria,
		Precio:     decimal.RequireFromString(precio),
		Moneda:     "ARS",
	}
}

func sampleProducts() []Product {
	return []Product{
		product("PH-300", "Papel Higiénico Jumbo", "Papel Higiénico", "15000"),
		product("SF-50", "Stretch Film 50cm", "Stretch Film", "32000.5"),
		product("TC-10", "Tubo de cartón 10cm", "Tubos de Cartón", "900"),
		product("PH-100", "Papel Higiénico Institucional", "Papel Higiénico", "9000"),
		product("TOA-1", "Toalla Z Blanca", "Toallas", "15000"),
	}
}

func referencias(products []Product) []string {
	refs := make([]string, 0, len(products))
	for _, p := range products {
		refs = append(refs, p.Referencia)
	}
	return refs
}

func TestFilterByCategory(t *testing.T) {
	t.Parallel()

	products := sampleProducts()

	t.Run("all은 입력 그대로", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, products, FilterByCategory(products, AllCategories))
	})

	t.Run("정확히 일치하는 카테고리만", func(t *testing.T) {
		t.Parallel()

		got := FilterByCategory(products, "Papel Higiénico")
		assert.Equal(t, []string{"PH-300", "PH-100"}, referencias(got))
		for _, p := range got {
			assert.Equal(t, "Papel Higiénico", p.Categoria)
		}
	})

	t.Run("부분 일치는 제외", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, FilterByCategory(products, "Papel"))
	})
}

func TestSearchProducts(t *testing.T) {
	t.Parallel()

	products := sampleProducts()

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"빈 검색어", "", referencias(products)},
		{"공백 검색어", "   ", referencias(products)},
		{"이름 대소문자 무시", "PAPEL", []string{"PH-300", "PH-100"}},
		{"참조 코드", "sf-", []string{"SF-50"}},
		{"이름 또는 참조 코드", "t", []string{"SF-50", "TC-10", "PH-100", "TOA-1"}},
		{"일치 없음", "inexistente", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, referencias(SearchProducts(products, tt.term)))
		})
	}
}

func TestSortProducts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  SortKey
		want []string
	}{
		{"이름", SortByName, []string{"PH-100", "PH-300", "SF-50", "TOA-1", "TC-10"}},
		{"가격 오름차순 (동일 가격은 원래 순서)", SortByPriceAsc, []string{"TC-10", "PH-100", "PH-300", "TOA-1", "SF-50"}},
		{"가격 내림차순", SortByPriceDesc, []string{"SF-50", "PH-300", "TOA-1", "PH-100", "TC-10"}},
		{"참조 코드", SortByReferencia, []string{"PH-100", "PH-300", "SF-50", "TC-10", "TOA-1"}},
		{"알 수 없는 기준", SortKey("stock"), []string{"PH-300", "SF-50", "TC-10", "PH-100", "TOA-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			products := sampleProducts()
			before := referencias(products)

			got := SortProducts(products, tt.key)
			assert.Equal(t, tt.want, referencias(got))
			assert.Equal(t, before, referencias(products), "입력은 변경되지 않아야 함")

			again := SortProducts(got, tt.key)
			assert.Equal(t, referencias(got), referencias(again), "정렬은 멱등이어야 함")
		})
	}
}

func TestSortProducts_SpanishCollation(t *testing.T) {
	t.Parallel()

	products := []Product{
		product("3", "zeta", "x", "1"),
		product("2", "Ñandú", "x", "1"),
		product("1", "nube", "x", "1"),
		product("4", "Árbol", "x", "1"),
	}

	got := SortProducts(products, SortByName)
	assert.Equal(t, []string{"4", "1", "2", "3"}, referencias(got))
}

func TestSortKey_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, SortByName.Valid())
	assert.True(t, SortByPriceDesc.Valid())
	assert.False(t, SortKey("").Valid())
	assert.False(t, SortKey("precio").Valid())
}

func TestQuery_Apply(t *testing.T) {
	t.Parallel()

	products := sampleProducts()

	got := Query{Category: "Papel Higiénico", Search: "jumbo", Sort: SortByPriceAsc}.Apply(products)
	assert.Equal(t, []string{"PH-300"}, referencias(got))

	got = Query{}.Apply(products)
	assert.Equal(t, []string{"PH-100", "PH-300", "SF-50", "TOA-1", "TC-10"}, referencias(got), "기본값은 전체 카테고리, 이름순")
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"ARS 정수", "1500000", "ARS", "$\u00a01.500.000"},
		{"ARS 소수", "1500000.75", "ARS", "$\u00a01.500.000,75"},
		{"USD 소수 한 자리", "10.5", "USD", "$10.5"},
		{"USD 정수", "1234567", "USD", "$1,234,567"},
		{"COP", "2500000", "COP", "$\u00a02.500.000"},
		{"알 수 없는 통화는 ARS", "2000000", "EUR", "$\u00a02.000.000"},
		{"빈 통화는 ARS", "2000000", "", "$\u00a02.000.000"},
		{"소수 셋째 자리 반올림", "10.456", "USD", "$10.46"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatPrice(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}

func TestCategoryIcon(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category string
		want     string
	}{
		{"Papel Higiénico", "🧻"},
		{"Papel", "📄"},
		{"Stretch Film", "🎞️"},
		{"Tubos de Cartón", "🔲"},
		{"Empaques", "📦"},
		{"Toallas", "🗞️"},
		{"Servilletas", "🥢"},
		{"Papel Kraft", "📄"},
		{"Film Industrial", "🎞️"},
		{"Tubo PVC", "🔲"},
		{"Cajas corrugadas", "📦"},
		{"Toallas de mano", "🗞️"},
		{"Servilleta cóctel", "🥢"},
		{"Químicos", DefaultCategoryIcon},
		{"", DefaultCategoryIcon},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CategoryIcon(tt.category))
		})
	}
}

func TestWhatsAppLink(t *testing.T) {
	t.Parallel()

	p := product("SF-50", "Stretch Film 50cm", "Stretch Film", "32000")

	link := WhatsAppLink(p, "")
	require.True(t, strings.HasPrefix(link, "https://wa.me/"+DefaultWhatsAppPhone+"?text="), link)
	assert.NotContains(t, link, "+")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Hola, me interesa solicitar una cotización para:\n\n"+
		"📦 Producto: Stretch Film 50cm\n"+
		"🏷️ Referencia: SF-50\n"+
		"💰 Precio unitario: $\u00a032.000\n\n"+
		"Por favor, envíenme más información.", u.Query().Get("text"))

	assert.True(t, strings.HasPrefix(WhatsAppLink(p, "5491100000000"), "https://wa.me/5491100000000?text="))
}

func TestEmailLink(t *testing.T) {
	t.Parallel()

	p := product("TC-10", "Tubo de cartón 10cm", "Tubos de Cartón", "900.5")

	link := EmailLink(p, "")
	require.True(t, strings.HasPrefix(link, "mailto:"+DefaultSalesEmail+"?subject="), link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "Solicitud de Cotización - TC-10", q.Get("subject"))
	assert.Contains(t, q.Get("body"), "Producto: Tubo de cartón 10cm\nReferencia: TC-10\nPrecio unitario actual: $\u00a0900,5\n\n")
	assert.True(t, strings.HasSuffix(q.Get("body"), "Saludos cordiales."))

	assert.True(t, strings.HasPrefix(EmailLink(p, "compras@example.com"), "mailto:compras@example.com?"))
}

func TestCategories(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Papel Higiénico", "Stretch Film", "Tubos de Cartón", "Toallas"}, Categories(sampleProducts()))
	assert.Equal(t, []string{}, Categories(nil))
}

func TestNewResponse(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("ART", -3*3600))

	t.Run("통화는 첫 상품 기준", func(t *testing.T) {
		t.Parallel()

		products := sampleProducts()
		products[0].Moneda = "USD"

		resp := NewResponse(products, "Retail", now)
		assert.Equal(t, "USD", resp.Currency)
		assert.Equal(t, "Retail", resp.PriceListName)
		assert.Equal(t, "2026-03-04T08:06:07.000Z", resp.LastUpdated)
		assert.Len(t, resp.Categories, 4)
	})

	t.Run("빈 목록", func(t *testing.T) {
		t.Parallel()

		resp := NewResponse(nil, "Retail", now)
		assert.Equal(t, DefaultCurrency, resp.Currency)
		assert.NotNil(t, resp.Products)

		data, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"products":[]`)
		assert.Contains(t, string(data), `"categories":[]`)
	})
}

func TestProduct_JSON(t *testing.T) {
	t.Parallel()

	p := product("PH-300", "Papel", "Papel", "15000.5")
	p.Imagen = strPtr("https://erp.example.com/api/productos/imagen/ph.jpg")

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"referencia": "PH-300",
		"nombre": "Papel",
		"categoria": "Papel",
		"precio": 15000.5,
		"moneda": "ARS",
		"imagen": "https://erp.example.com/api/productos/imagen/ph.jpg"
	}`, string(data))

	var decoded Product
	require.NoError(t, json.Unmarshal([]byte(`{"referencia":"X","precio":12.25,"imagen":null}`), &decoded))
	assert.True(t, decoded.Precio.Equal(decimal.RequireFromString("12.25")))
	assert.Nil(t, decoded.Imagen)
}
