package checkout

import (
	"fmt"
	"strings"

	"github.com/darkkaiser/sangabriel-catalog/internal/config"
	"github.com/darkkaiser/sangabriel-catalog/pkg/strutil"
)

// whatsAppBaseURL 대화 시작 링크의 주소입니다. 뒤에 국가 번호를 포함한 전화번호가 붙습니다.
const whatsAppBaseURL = "https://wa.me/"

// OrderMessage 계좌 이체 주문 안내 메시지를 만듭니다.
//
//	🛒 *Pedido San Gabriel*
//
//	📦 Productos: 3
//	💰 Total: $4500.00
//	...
func OrderMessage(order Order, bank config.BankTransferConfig) string {
	var sb strings.Builder

	sb.WriteString("🛒 *Pedido San Gabriel*\n\n")
	fmt.Fprintf(&sb, "📦 Productos: %d\n", order.TotalItems())
	fmt.Fprintf(&sb, "💰 Total: $%s\n\n", order.Total.StringFixed(2))

	sb.WriteString("💳 *Datos para transferencia:*\n")
	fmt.Fprintf(&sb, "• Alias: %s\n", bank.Alias)
	fmt.Fprintf(&sb, "• CBU: %s\n", bank.CBU)
	fmt.Fprintf(&sb, "• Titular: %s\n\n", bank.AccountHolder)

	fmt.Fprintf(&sb, "Nombre: %s\n", order.Customer.Name)
	fmt.Fprintf(&sb, "Email: %s\n", order.Customer.Email)
	fmt.Fprintf(&sb, "Teléfono: %s", order.Customer.Phone)

	if order.Customer.Notes != "" {
		fmt.Fprintf(&sb, "\n\nNotas: %s", order.Customer.Notes)
	}

	return strings.TrimSpace(sb.String())
}

// WhatsAppURL phone 번호로 text를 보내는 대화 시작 링크입니다.
func WhatsAppURL(phone, text string) string {
	return whatsAppBaseURL + phone + "?text=" + strutil.EncodeURIComponent(text)
}
