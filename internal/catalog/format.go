package catalog

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// priceFormat 통화별 표시 로케일과 기호 배치입니다.
type priceFormat struct {
	locale language.Tag
	symbol string

	// symbolSep 기호와 숫자 사이 구분자. es-AR, es-CO는 줄바꿈 없는 공백을 사용합니다.
	symbolSep string
}

var priceFormats = map[string]priceFormat{
	"ARS": {locale: language.MustParse("es-AR"), symbol: "$", symbolSep: "\u00a0"},
	"USD": {locale: language.AmericanEnglish, symbol: "$", symbolSep: ""},
	"COP": {locale: language.MustParse("es-CO"), symbol: "$", symbolSep: "\u00a0"},
}

// FormatPrice 통화에 맞는 로케일로 가격을 표시합니다.
// 정수 금액은 소수점 없이, 그 외에는 최대 소수 둘째 자리까지 표시합니다.
// 알 수 없는 통화는 ARS(es-AR) 형식을 사용합니다.
//
//	FormatPrice(decimal.NewFromInt(1500000), "ARS") // "$ 1.500.000"
//	FormatPrice(decimal.RequireFromString("10.5"), "USD") // "$10.5"
func FormatPrice(amount decimal.Decimal, code string) string {
	f, ok := priceFormats[normalizeCurrency(code)]
	if !ok {
		f = priceFormats[DefaultCurrency]
	}

	p := message.NewPrinter(f.locale)
	formatted := p.Sprint(number.Decimal(
		amount.Round(2).InexactFloat64(),
		number.MinFractionDigits(0),
		number.MaxFractionDigits(2),
	))

	return f.symbol + f.symbolSep + formatted
}

// normalizeCurrency ISO 4217 코드로 정규화합니다. 해석할 수 없으면 빈 문자열을 반환합니다.
func normalizeCurrency(code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return ""
	}
	return unit.String()
}
