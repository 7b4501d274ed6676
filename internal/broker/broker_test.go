package broker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// thu nhận message với timeout để test không treo khi thiếu message
func receive(t *testing.T, sub *Subscriber) interface{} {
	t.Helper()
	select {
	case msg := <-sub.C():
		return msg
	case <-time.After(time.Second):
		t.Fatal("không nhận được message trong 1s")
		return nil
	}
}

func TestPublishKhongCoSubscriber(t *testing.T) {
	b := NewBroker()

	// Publish khi không có subscriber không phải là lỗi — message bị drop
	assert.NotPanics(t, func() {
		b.Publish(TopicDraftOrders, "payload")
	})
	assert.Equal(t, 0, b.SubscriberCount(TopicDraftOrders))
}

func TestFanOutDenNhieuSubscriber(t *testing.T) {
	b := NewBroker()

	sub1 := b.Subscribe(TopicPaymentRequest)
	sub2 := b.Subscribe(TopicPaymentRequest)
	defer b.Unsubscribe(sub1)
	defer b.Unsubscribe(sub2)

	b.Publish(TopicPaymentRequest, "12")

	assert.Equal(t, "12", receive(t, sub1))
	assert.Equal(t, "12", receive(t, sub2))
}

func TestThuTuMessageTrenMotTopic(t *testing.T) {
	b := NewBroker()

	sub := b.Subscribe(TopicDraftOrders)
	defer b.Unsubscribe(sub)

	for i := 0; i < 5; i++ {
		b.Publish(TopicDraftOrders, i)
	}

	// Một subscriber quan sát message trên một topic theo đúng thứ tự publish
	for i := 0; i < 5; i++ {
		assert.Equal(t, i, receive(t, sub))
	}
}

func TestTopicPhanHoiTheoBan(t *testing.T) {
	b := NewBroker()

	subBan5 := b.Subscribe(TopicPaymentResponse("5"))
	subBan7 := b.Subscribe(TopicPaymentResponse("7"))
	defer b.Unsubscribe(subBan5)
	defer b.Unsubscribe(subBan7)

	require.Equal(t, "payment-response/5", TopicPaymentResponse("5"))

	b.Publish(TopicPaymentResponse("5"), PaymentAccepted)

	assert.Equal(t, PaymentAccepted, receive(t, subBan5))

	// Bàn 7 không nhận message của bàn 5
	select {
	case msg := <-subBan7.C():
		t.Fatalf("bàn 7 không được nhận message của bàn 5, nhận: %v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeDongChannel(t *testing.T) {
	b := NewBroker()

	sub := b.Subscribe(TopicPaymentRequest)
	require.Equal(t, 1, b.SubscriberCount(TopicPaymentRequest))

	b.Unsubscribe(sub)
	assert.Equal(t, 0, b.SubscriberCount(TopicPaymentRequest))

	_, open := <-sub.C()
	assert.False(t, open, "channel phải được đóng sau Unsubscribe")

	// Unsubscribe lần hai là no-op
	assert.NotPanics(t, func() { b.Unsubscribe(sub) })
}

func TestSubscriberChamKhongBlockPublisher(t *testing.T) {
	b := NewBroker()

	sub := b.Subscribe(TopicDraftOrders)
	defer b.Unsubscribe(sub)

	// Gửi vượt buffer — publisher không được block, message thừa bị drop
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			b.Publish(TopicDraftOrders, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish bị block bởi subscriber chậm")
	}
}
