package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/darkkaiser/sangabriel-catalog/internal/cart"
	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/darkkaiser/sangabriel-catalog/pkg/maputil"
)

// WebhookKeyPrefix 처리한 웹훅 기록의 저장 키 접두사입니다.
const WebhookKeyPrefix = "sangabriel-webhook:"

// PaymentStatus 결제 상태를 주문 관점에서 묶은 값입니다.
type PaymentStatus string

const (
	PaymentApproved PaymentStatus = "approved"
	PaymentPending  PaymentStatus = "pending"
	PaymentRejected PaymentStatus = "rejected"
	PaymentUnknown  PaymentStatus = "unknown"
)

// MapPaymentStatus 결제 대행사의 상태 값을 PaymentStatus로 바꿉니다.
func MapPaymentStatus(status string) PaymentStatus {
	switch strings.ToLower(status) {
	case "approved":
		return PaymentApproved
	case "pending", "in_process", "in_mediation", "authorized":
		return PaymentPending
	case "rejected", "cancelled", "refunded", "charged_back":
		return PaymentRejected
	}
	return PaymentUnknown
}

// WebhookEvent 결제 알림 본문입니다.
//
//	{"type": "payment", "action": "payment.updated", "data": {"id": "123"}}
type WebhookEvent struct {
	Type   string `json:"type"`
	Topic  string `json:"topic"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Kind 알림 종류입니다. type이 없으면 topic을 씁니다.
func (e WebhookEvent) Kind() string {
	if e.Type != "" {
		return e.Type
	}
	return e.Topic
}

// ParseWebhook 알림 본문과 쿼리 파라미터에서 이벤트를 읽습니다.
// 본문에 결제 ID가 없으면 쿼리의 id 또는 data.id를, 종류가 없으면 쿼리의 type 또는 topic을 사용합니다.
func ParseWebhook(body []byte, query url.Values) (WebhookEvent, error) {
	var event WebhookEvent

	if len(bytes.TrimSpace(body)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()

		var payload map[string]any
		if err := dec.Decode(&payload); err != nil {
			return WebhookEvent{}, apperrors.Wrap(err, apperrors.ParsingFailed, "Notificación inválida")
		}

		decoded, err := maputil.Decode[WebhookEvent](payload)
		if err != nil {
			return WebhookEvent{}, apperrors.Wrap(err, apperrors.ParsingFailed, "Notificación inválida")
		}
		event = *decoded
	}

	if event.Data.ID == "" {
		event.Data.ID = firstNonEmpty(query.Get("data.id"), query.Get("id"))
	}
	if event.Type == "" {
		event.Type = query.Get("type")
	}
	if event.Topic == "" {
		event.Topic = query.Get("topic")
	}

	event.Data.ID = strings.TrimSpace(event.Data.ID)
	return event, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// WebhookResult 알림 처리 결과입니다.
type WebhookResult struct {
	PaymentID string        `json:"payment_id,omitempty"`
	Status    PaymentStatus `json:"status,omitempty"`
	Processed bool          `json:"processed"`
	Duplicate bool          `json:"duplicate,omitempty"`
	Ignored   bool          `json:"ignored,omitempty"`
}

// HandleWebhook 결제 알림을 처리합니다.
//
// 결제 알림이 아니거나 결제 ID가 없으면 무시합니다. 결제를 조회해 같은 결제 ID와 상태의
// 알림을 WebhookDedupTTL 동안 한 번만 처리하며, 승인된 결제는 연결된 장바구니를 비웁니다.
// 장바구니 정리에 실패하면 처리 표시를 지우므로 같은 알림이 다시 오면 다시 처리합니다.
func (s *Service) HandleWebhook(ctx context.Context, event WebhookEvent) (WebhookResult, error) {
	fields := applog.Fields{
		"type":       event.Kind(),
		"action":     event.Action,
		"payment_id": event.Data.ID,
	}

	if kind := event.Kind(); (kind != "" && kind != "payment") || event.Data.ID == "" {
		applog.WithComponentAndFields(component, fields).Debug("결제 알림이 아니므로 무시합니다")
		return WebhookResult{PaymentID: event.Data.ID, Ignored: true}, nil
	}

	payment, err := s.gateway.GetPayment(ctx, event.Data.ID)
	if err != nil {
		fields["error"] = err.Error()
		applog.WithComponentAndFields(component, fields).Error("웹훅 결제 조회 실패")
		return WebhookResult{PaymentID: event.Data.ID}, err
	}

	result := WebhookResult{
		PaymentID: payment.ID,
		Status:    MapPaymentStatus(payment.Status),
	}
	fields["status"] = payment.Status
	fields["external_reference"] = payment.ExternalReference

	dedupKey := WebhookKeyPrefix + payment.ID + ":" + payment.Status
	first, err := s.store.SetNX(ctx, dedupKey, []byte(s.now().UTC().Format(time.RFC3339)), s.cfg.WebhookDedupTTL)
	if err != nil {
		return result, err
	}
	if !first {
		result.Duplicate = true
		applog.WithComponentAndFields(component, fields).Info("이미 처리한 결제 알림입니다")
		return result, nil
	}

	switch result.Status {
	case PaymentApproved:
		if cartID, ok := metadataCartID(payment.Metadata); ok {
			fields["cart_id"] = cartID
			if err := s.completeOrder(ctx, cartID); err != nil {
				fields["error"] = err.Error()
				applog.WithComponentAndFields(component, fields).Error("승인된 결제의 장바구니 정리 실패")

				// 처리 표시를 지워 대행사의 재전송 알림을 다시 처리합니다.
				if delErr := s.store.Delete(context.WithoutCancel(ctx), dedupKey); delErr != nil {
					applog.WithComponentAndFields(component, applog.Fields{
						"payment_id": payment.ID,
						"error":      delErr.Error(),
					}).Warn("웹훅 중복 처리 키 삭제 실패")
				}
				return result, err
			}
		}
		applog.WithComponentAndFields(component, fields).Info("결제 승인")
	case PaymentPending:
		applog.WithComponentAndFields(component, fields).Info("결제 대기")
	case PaymentRejected:
		applog.WithComponentAndFields(component, fields).Warn("결제 거절")
	default:
		applog.WithComponentAndFields(component, fields).Warn("알 수 없는 결제 상태")
	}

	result.Processed = true
	return result, nil
}

// metadataCartID 결제 메타데이터의 cart_id를 꺼냅니다.
func metadataCartID(metadata map[string]any) (string, bool) {
	raw, ok := metadata["cart_id"].(string)
	if !ok {
		return "", false
	}
	id, err := cart.NormalizeID(raw)
	if err != nil {
		return "", false
	}
	return id, true
}
