package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "wireless-mouse-pro", Slugify("Wireless  Mouse -- Pro!"))
	assert.Equal(t, "cafe-creme", Slugify("Café Crème"))
	assert.Equal(t, "usb_c-cable", Slugify("  USB_C cable  "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestDefaultSKU(t *testing.T) {
	id := uuid.MustParse("0a1b2c3d-4e5f-6789-abcd-ef0123456789")
	assert.Equal(t, "WIRELESS0A1B2C3D", DefaultSKU("Wireless Mouse", id))
	assert.Equal(t, "TV", DefaultSKU("TV", uuid.Nil))
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("refunded").Valid())
	assert.False(t, OrderStatus("").Valid())
}
