// Package broker cung cấp kênh phối hợp pub/sub in-process giữa terminal bàn
// và các client nhân viên. Fan-out best-effort: publish không bao giờ block,
// không bao giờ trả lỗi; message chỉ đến các subscriber đang kết nối, không
// queue, không replay cho subscriber vào sau.
package broker

import (
	"sync"

	"github.com/google/uuid"
)

// Tên các topic — phải khớp chính xác để tương thích với client bàn/nhân viên.
const (
	TopicDraftOrders          = "draft-orders"     // Broadcast snapshot đơn nháp đến nhân viên
	TopicPaymentRequest       = "payment-request"  // Broadcast mã bàn yêu cầu thanh toán
	topicPaymentResponsePrefx = "payment-response" // Prefix topic phản hồi theo từng bàn
)

// Payload chuẩn trên topic payment-response/{tableId}
const (
	PaymentAccepted = "accepted"
	PaymentRejected = "rejected"
)

// TopicPaymentResponse trả về topic phản hồi thanh toán cho một bàn cụ thể.
func TopicPaymentResponse(tableID string) string {
	return topicPaymentResponsePrefx + "/" + tableID
}

// subscriberBuffer là số message tối đa giữ cho một subscriber chậm trước khi
// bắt đầu drop (best-effort, không có guarantee mạnh hơn).
const subscriberBuffer = 16

// Subscriber đại diện một kết nối đang lắng nghe một topic.
type Subscriber struct {
	ID    string           // Định danh duy nhất của subscriber
	Topic string           // Topic đang lắng nghe
	ch    chan interface{} // Channel nhận payload
}

// C trả về channel nhận message của subscriber.
// Channel được đóng khi Unsubscribe.
func (s *Subscriber) C() <-chan interface{} {
	return s.ch
}

// Broker quản lý subscriber registry và fan-out message theo topic.
// Membership thay đổi hiếm (connect/disconnect) so với publish nên dùng RWMutex.
type Broker struct {
	mu     sync.RWMutex
	topics map[string]map[string]*Subscriber // topic -> subscriber id -> subscriber
}

// NewBroker tạo broker mới.
func NewBroker() *Broker {
	return &Broker{
		topics: make(map[string]map[string]*Subscriber),
	}
}

// Subscribe đăng ký một subscriber mới vào topic.
// Caller phải gọi Unsubscribe khi kết nối kết thúc.
func (b *Broker) Subscribe(topic string) *Subscriber {
	sub := &Subscriber{
		ID:    uuid.NewString(),
		Topic: topic,
		ch:    make(chan interface{}, subscriberBuffer),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[string]*Subscriber)
		b.topics[topic] = subs
	}
	subs[sub.ID] = sub

	return sub
}

// Unsubscribe gỡ subscriber khỏi topic và đóng channel của nó.
// Gọi nhiều lần là an toàn (lần sau là no-op).
func (b *Broker) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.topics[sub.Topic]
	if !ok {
		return
	}
	if _, exists := subs[sub.ID]; !exists {
		return
	}
	delete(subs, sub.ID)
	if len(subs) == 0 {
		delete(b.topics, sub.Topic)
	}
	close(sub.ch)
}

// Publish gửi payload đến tất cả subscriber hiện tại của topic.
// Không block, không trả lỗi: topic không có subscriber thì message bị drop;
// subscriber đầy buffer thì message bị drop riêng cho subscriber đó.
// Một subscriber nhận message trên một topic theo đúng thứ tự publish.
func (b *Broker) Publish(topic string, payload interface{}) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.topics[topic] {
		select {
		case sub.ch <- payload:
		default:
			// Subscriber chậm — drop message cho subscriber này
		}
	}
}

// SubscriberCount trả về số subscriber hiện tại của topic.
func (b *Broker) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}
