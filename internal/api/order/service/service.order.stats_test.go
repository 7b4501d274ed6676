package ordersvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	ordermodels "cafe_pos/internal/api/order/models"
	"cafe_pos/internal/global"
)

// stageValue trả về giá trị của stage đầu tiên mang key cho trước.
func stageValue(t *testing.T, stages []bson.D, key string) interface{} {
	t.Helper()
	for _, stage := range stages {
		if len(stage) == 1 && stage[0].Key == key {
			return stage[0].Value
		}
	}
	t.Fatalf("pipeline không có stage %s", key)
	return nil
}

func TestPaidInRangeMatch(t *testing.T) {
	full := paidInRangeMatch(1000, 2000)
	cond, ok := full[0].Value.(bson.M)
	require.True(t, ok)
	assert.Equal(t, ordermodels.StatusPaid, cond["status"])
	assert.Equal(t, bson.M{"$gte": int64(1000), "$lt": int64(2000)}, cond["paidAt"])

	// from/to bằng 0 thì không chặn thời gian
	open, ok := paidInRangeMatch(0, 0)[0].Value.(bson.M)
	require.True(t, ok)
	_, hasRange := open["paidAt"]
	assert.False(t, hasRange)
}

// Doanh thu theo danh mục phải đi qua products để lấy danh mục của từng dòng
// món rồi gom theo danh mục — không gom theo món.
func TestRevenueByCategoryPipeline(t *testing.T) {
	global.MongoDB_ColNames.Products = "products"
	global.MongoDB_ColNames.Categories = "categories"

	pipeline := revenueByCategoryPipeline(100, 200)
	stages := []bson.D(pipeline)

	// Chỉ đơn PAID trong khoảng thời gian mới được tính
	match, ok := stages[0][0].Value.(bson.M)
	require.True(t, ok)
	assert.Equal(t, ordermodels.StatusPaid, match["status"])

	lookup, ok := stageValue(t, stages, "$lookup").(bson.M)
	require.True(t, ok)
	assert.Equal(t, "products", lookup["from"])
	assert.Equal(t, "items.productId", lookup["localField"])

	group, ok := stageValue(t, stages, "$group").(bson.M)
	require.True(t, ok)
	assert.Equal(t, "$product.categoryId", group["_id"])
	assert.Equal(t, bson.M{"$sum": "$items.subtotal"}, group["revenue"])
}
