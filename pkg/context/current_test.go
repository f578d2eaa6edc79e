package context

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
)

func TestCurrent_RoundTripThroughContext(t *testing.T) {
	RegisterTestingT(t)

	current := NewCurrent()
	current.Set(RequestIDKey, "req-1")
	current.Set(UserIDKey, "user-1")

	ctx := WithCurrent(context.Background(), current)
	got, ok := FromContext(ctx)

	Expect(ok).To(BeTrue())
	Expect(got.RequestID()).To(Equal("req-1"))
	Expect(got.UserID()).To(Equal("user-1"))
}

func TestGetCurrent_OutsideRequest(t *testing.T) {
	RegisterTestingT(t)

	current := GetCurrent(context.Background())

	Expect(current).NotTo(BeNil())
	Expect(current.RequestID()).To(BeEmpty())

	_, ok := current.GetString("missing")
	Expect(ok).To(BeFalse())
}
