package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_JSONAcceptsNameOrNumber(t *testing.T) {
	var s Service
	require.NoError(t, json.Unmarshal([]byte(`"Bar"`), &s))
	assert.Equal(t, ServiceBar, s)

	require.NoError(t, json.Unmarshal([]byte(`4`), &s))
	assert.Equal(t, ServiceRoomService, s)

	assert.Error(t, json.Unmarshal([]byte(`"Casino"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`42`), &s))

	out, err := json.Marshal(ServiceJuice)
	require.NoError(t, err)
	assert.JSONEq(t, `"Juice"`, string(out))
}

func TestService_LocationRules(t *testing.T) {
	assert.True(t, ServiceRestaurant.RequiresTableOrRoom())
	assert.True(t, ServiceRoomService.RequiresRoom())
	assert.False(t, ServiceBar.RequiresRoom())
	assert.False(t, ServiceBakery.RequiresTableOrRoom())
}

func TestPaymentMethod_PayLaterIsDeferred(t *testing.T) {
	assert.True(t, PaymentPayLater.IsDeferred())
	for _, p := range []PaymentMethod{PaymentCash, PaymentQR, PaymentCard} {
		assert.False(t, p.IsDeferred(), p.String())
	}

	parsed, err := ParsePaymentMethod("PayLater")
	require.NoError(t, err)
	assert.Equal(t, PaymentPayLater, parsed)
}

func TestCheckoutState_Terminal(t *testing.T) {
	assert.True(t, CheckoutDone.Terminal())
	assert.True(t, CheckoutBlocked.Terminal())
	assert.True(t, CheckoutFailed.Terminal())
	assert.False(t, CheckoutSequencing.Terminal())
	assert.Equal(t, "Blocked", CheckoutBlocked.String())
}
