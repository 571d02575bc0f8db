package catalog

import (
	"fmt"

	"github.com/darkkaiser/sangabriel-catalog/pkg/strutil"
)

const (
	// DefaultWhatsAppPhone 견적 문의용 기본 WhatsApp 번호
	DefaultWhatsAppPhone = "573001234567"

	// DefaultSalesEmail 견적 문의용 기본 영업 이메일
	DefaultSalesEmail = "ventas@sangabriel.com"
)

// WhatsAppLink 상품 견적 문의 메시지가 채워진 wa.me 링크를 만듭니다. phone이 비어 있으면 기본 번호를 사용합니다.
func WhatsAppLink(p Product, phone string) string {
	if phone == "" {
		phone = DefaultWhatsAppPhone
	}

	text := "Hola, me interesa solicitar una cotización para:\n\n" +
		fmt.Sprintf("📦 Producto: %s\n", p.Nombre) +
		fmt.Sprintf("🏷️ Referencia: %s\n", p.Referencia) +
		fmt.Sprintf("💰 Precio unitario: %s\n\n", FormatPrice(p.Precio, p.Moneda)) +
		"Por favor, envíenme más información."

	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, strutil.EncodeURIComponent(text))
}

// EmailLink 상품 견적 문의 제목과 본문이 채워진 mailto 링크를 만듭니다. email이 비어 있으면 기본 주소를 사용합니다.
func EmailLink(p Product, email string) string {
	if email == "" {
		email = DefaultSalesEmail
	}

	subject := fmt.Sprintf("Solicitud de Cotización - %s", p.Referencia)
	body := "Estimados,\n\n" +
		"Me gustaría solicitar una cotización para el siguiente producto:\n\n" +
		fmt.Sprintf("Producto: %s\n", p.Nombre) +
		fmt.Sprintf("Referencia: %s\n", p.Referencia) +
		fmt.Sprintf("Precio unitario actual: %s\n\n", FormatPrice(p.Precio, p.Moneda)) +
		"Por favor, indíquenme disponibilidad y condiciones de compra.\n\n" +
		"Saludos cordiales."

	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", email,
		strutil.EncodeURIComponent(subject), strutil.EncodeURIComponent(body))
}
