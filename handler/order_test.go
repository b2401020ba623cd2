package handler

import (
	"babyboo_store/constants"
	"babyboo_store/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeStockLastUnit(t *testing.T) {
	// Hai checkout tranh đơn vị cuối: lock FOR UPDATE tuần tự hóa chúng,
	// người sau đọc tồn đã trừ và phải bị từ chối
	remaining, err := takeStock(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	_, err = takeStock(remaining, 1)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)
}

func TestTakeStockInsufficient(t *testing.T) {
	remaining, err := takeStock(3, 5)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)
	assert.Equal(t, 3, remaining) // từ chối thì không trừ
}

func TestCancelTwiceRestocksOnce(t *testing.T) {
	// Đơn 2 sản phẩm, kho còn 5: hủy lần đầu hoàn về 7, hủy lần hai
	// là no-op nên kho giữ nguyên
	stock := 5
	status := constants.ORDER_PENDING

	restock, err := cancelTransition(status)
	require.NoError(t, err)
	require.True(t, restock)
	stock += 2
	status = constants.ORDER_CANCELLED

	restock, err = cancelTransition(status)
	require.NoError(t, err)
	assert.False(t, restock)
	assert.Equal(t, 7, stock)
}

func TestCancelDeliveredRejected(t *testing.T) {
	restock, err := cancelTransition(constants.ORDER_DELIVERED)
	assert.ErrorIs(t, err, model.ErrInvalidStatus)
	assert.False(t, restock)
}
