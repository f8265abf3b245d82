package store

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/22dimrodi-maker/student-orders/app/models"
)

func memStore() *Store {
	return New(&MemoryRepository{}, &MemoryRepository{}, &MemoryRepository{})
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProductAddAndLoad(t *testing.T) {
	st := memStore()

	require.NoError(t, st.Products.Add(models.Product{Name: "Juice", Price: money("1.50")}))
	require.NoError(t, st.Products.Add(models.Product{Name: "Cheese pie", Price: money("2.00")}))

	rows, err := st.Products.Load()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Sorted by lowercased name.
	assert.Equal(t, "Cheese pie", rows[0].Name)
	assert.Equal(t, "Juice", rows[1].Name)
	assert.True(t, rows[1].Price.Equal(money("1.50")))
}

func TestProductAddRejectsDuplicateName(t *testing.T) {
	st := memStore()

	require.NoError(t, st.Products.Add(models.Product{Name: "Juice", Price: money("1.50")}))
	err := st.Products.Add(models.Product{Name: "  juice ", Price: money("9.99")})
	require.ErrorIs(t, err, ErrDuplicateProduct)

	rows, err := st.Products.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Price.Equal(money("1.50")), "rejected add must not change the price")
}

func TestProductMergeLaterRowsWin(t *testing.T) {
	st := memStore()
	require.NoError(t, st.Products.Add(models.Product{Name: "Juice", Price: money("1.50")}))

	require.NoError(t, st.Products.Merge([]models.Product{
		{Name: "juice", Price: money("1.80")},
		{Name: "Toast", Price: money("1.20")},
	}))

	rows, err := st.Products.Load()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Price.Equal(money("1.80")), "re-import should update the price")
	assert.Equal(t, "Toast", rows[1].Name)
}

func TestProductDelete(t *testing.T) {
	st := memStore()
	require.NoError(t, st.Products.Add(models.Product{Name: "Juice", Price: money("1.50")}))
	require.NoError(t, st.Products.Add(models.Product{Name: "Toast", Price: money("1.20")}))

	removed, err := st.Products.Delete("Juice", "No such product")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	removed, err = st.Products.Delete("Juice")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestNormalizeProductsIdempotent(t *testing.T) {
	rows := []models.Product{
		{Name: "  Juice ", Price: money("1.50")},
		{Name: "", Price: money("3.00")},
		{Name: "Toast", Price: money("-0.50")},
		{Name: "juice", Price: money("1.80")},
	}

	once := NormalizeProducts(rows)
	require.Len(t, once, 2)
	assert.Equal(t, "juice", once[0].Name, "latest duplicate wins")
	assert.True(t, once[0].Price.Equal(money("1.80")))
	assert.True(t, once[1].Price.IsZero(), "negative price clamps to zero")

	twice := NormalizeProducts(once)
	assert.Equal(t, once, twice)
}

func TestProductFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	repo := NewFileRepository(path)

	ps := &ProductStore{repo: repo}
	require.NoError(t, ps.Replace([]models.Product{
		{Name: "Juice, fresh", Price: money("1.50")},
		{Name: "Τυρόπιτα", Price: money("2.00")},
	}))

	// A fresh store over the same file must see identical rows.
	reread := &ProductStore{repo: NewFileRepository(path)}
	rows, err := reread.Load()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Juice, fresh", rows[0].Name)
	assert.Equal(t, "Τυρόπιτα", rows[1].Name)
	assert.True(t, rows[1].Price.Equal(money("2.00")))
}

func TestProductLoadDegradesBadCells(t *testing.T) {
	repo := &MemoryRepository{
		Present: true,
		Records: [][]string{
			{"product", "price"},
			{"Juice", "not a number"},
			{"Toast", "1.20"},
		},
	}
	ps := &ProductStore{repo: repo}

	rows, err := ps.Load()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Price.IsZero())
	assert.True(t, rows[1].Price.Equal(money("1.20")))
}

func TestProductLoadHeaderless(t *testing.T) {
	repo := &MemoryRepository{
		Present: true,
		Records: [][]string{{"Juice", "1.50"}},
	}
	ps := &ProductStore{repo: repo}

	rows, err := ps.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Juice", rows[0].Name)
}

func TestPriceForIsCaseInsensitive(t *testing.T) {
	st := memStore()
	require.NoError(t, st.Products.Add(models.Product{Name: "Juice", Price: money("1.50")}))

	price, ok := st.Products.PriceFor("JUICE")
	assert.True(t, ok)
	assert.True(t, price.Equal(money("1.50")))

	_, ok = st.Products.PriceFor("Espresso")
	assert.False(t, ok)
}
