package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/22dimrodi-maker/student-orders/app/models"
)

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOrderLifecycle(t *testing.T) {
	st := memStore()
	require.NoError(t, st.Products.Add(models.Product{Name: "Juice", Price: money("1.50")}))

	maria := models.Student{Name: "Maria", School: "1st Primary", Class: "B1"}
	created, err := st.Orders.Create(day("2026-03-02"), maria, []LineItem{{Product: "Juice", Qty: 3}})
	require.NoError(t, err)
	require.Len(t, created, 1)

	line := created[0]
	assert.NotEmpty(t, line.ID)
	assert.True(t, line.UnitPrice.Equal(money("1.50")), "unit price is snapshotted at creation")
	assert.True(t, line.Total.Equal(money("4.50")))

	// Raising the price afterwards must not touch the recorded row.
	require.NoError(t, st.Products.Merge([]models.Product{{Name: "Juice", Price: money("2.00")}}))
	rows, err := st.Orders.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].UnitPrice.Equal(money("1.50")))

	qty := 5
	updated, err := st.Orders.Update(line.ID, OrderPatch{Qty: &qty})
	require.NoError(t, err)
	assert.True(t, updated.UnitPrice.Equal(money("1.50")), "edits keep the snapshotted price")
	assert.True(t, updated.Total.Equal(money("7.50")))

	removed, err := st.Orders.Delete(line.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	rows, err = st.Orders.Load()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestOrderCreateEmptySubmissionRecordsPlaceholder(t *testing.T) {
	st := memStore()

	created, err := st.Orders.Create(day("2026-03-02"), models.Student{Name: "Maria"}, nil)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, PlaceholderProduct, created[0].Product)
	assert.Equal(t, 0, created[0].Qty)
	assert.True(t, created[0].Total.IsZero())
}

func TestOrderCreateUnknownProductSnapshotsZeroPrice(t *testing.T) {
	st := memStore()

	created, err := st.Orders.Create(day("2026-03-02"), models.Student{Name: "Maria"}, []LineItem{
		{Product: "Espresso", Qty: 2},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.True(t, created[0].UnitPrice.IsZero())
	assert.True(t, created[0].Total.IsZero())
}

func TestOrderCreateMultipleLines(t *testing.T) {
	st := memStore()
	require.NoError(t, st.Products.Merge([]models.Product{
		{Name: "Juice", Price: money("1.50")},
		{Name: "Toast", Price: money("1.20")},
	}))

	created, err := st.Orders.Create(day("2026-03-02"), models.Student{Name: "Maria"}, []LineItem{
		{Product: "Juice", Qty: 2},
		{Product: "Toast", Qty: 1},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.NotEqual(t, created[0].ID, created[1].ID, "every line gets its own id")
	assert.True(t, created[0].Total.Equal(money("3.00")))
	assert.True(t, created[1].Total.Equal(money("1.20")))
}

func TestOrderUpdateUnknownID(t *testing.T) {
	st := memStore()
	_, err := st.Orders.Update(uuid.NewString(), OrderPatch{})
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderUpdateRecomputesTotal(t *testing.T) {
	st := memStore()
	require.NoError(t, st.Products.Add(models.Product{Name: "Juice", Price: money("1.50")}))
	created, err := st.Orders.Create(day("2026-03-02"), models.Student{Name: "Maria"}, []LineItem{{Product: "Juice", Qty: 3}})
	require.NoError(t, err)

	price := money("2.00")
	updated, err := st.Orders.Update(created[0].ID, OrderPatch{UnitPrice: &price})
	require.NoError(t, err)
	assert.True(t, updated.Total.Equal(money("6.00")))
}

func TestOrderFileRoundTrip(t *testing.T) {
	repo := &MemoryRepository{}
	prices := &ProductStore{repo: &MemoryRepository{}}
	os := &OrderStore{repo: repo, prices: prices}

	created, err := os.Create(day("2026-03-02"), models.Student{Name: "Maria", School: "1st Primary", Class: "B1"}, []LineItem{
		{Product: "Juice", Qty: 3},
	})
	require.NoError(t, err)

	reread := &OrderStore{repo: repo, prices: prices}
	rows, err := reread.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, created[0].ID, rows[0].ID)
	assert.Equal(t, "2026-03-02", rows[0].DateString())
	assert.Equal(t, "1st Primary", rows[0].School)
	assert.True(t, rows[0].Total.Equal(created[0].Total))
}

func TestOrderLoadRegeneratesMissingIDs(t *testing.T) {
	// Legacy ledgers predate the order_id column.
	repo := &MemoryRepository{
		Present: true,
		Records: [][]string{
			{"date", "student", "school", "product", "qty", "unit_price", "total"},
			{"2026-03-02", "Maria", "1st Primary", "Juice", "3", "1.50", "4.50"},
		},
	}
	os := &OrderStore{repo: repo, prices: &ProductStore{repo: &MemoryRepository{}}}

	rows, err := os.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotEmpty(t, rows[0].ID)
	assert.Empty(t, rows[0].Class)
	assert.True(t, rows[0].Total.Equal(money("4.50")))
}

func TestOrderLoadRecomputesInconsistentTotals(t *testing.T) {
	repo := &MemoryRepository{
		Present: true,
		Records: [][]string{
			{"order_id", "date", "student", "school", "class", "product", "qty", "unit_price", "total"},
			{"abc", "2026-03-02", "Maria", "1st Primary", "B1", "Juice", "3", "1.50", "99.00"},
		},
	}
	os := &OrderStore{repo: repo, prices: &ProductStore{repo: &MemoryRepository{}}}

	rows, err := os.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Total.Equal(money("4.50")), "stored total is derived, never trusted")
}

func TestNormalizeOrdersKeepsLatestPerID(t *testing.T) {
	a := models.OrderLine{ID: "a", Student: "Maria", Product: "Juice", Qty: 1, UnitPrice: money("1.50")}
	b := a
	b.Qty = 4

	out := NormalizeOrders([]models.OrderLine{a, b})
	require.Len(t, out, 1)
	assert.Equal(t, 4, out[0].Qty)
	assert.True(t, out[0].Total.Equal(money("6.00")))
}

func TestParseDateDegradesToMissing(t *testing.T) {
	assert.True(t, parseDate("not a date").IsZero())
	assert.True(t, parseDate("").IsZero())
	assert.Equal(t, day("2026-03-02"), parseDate("2026-03-02 13:45:00"))
}
