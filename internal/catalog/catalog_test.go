package catalog

import (
	"strings"
	"testing"

	"github.com/smartbyte/shopassist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `sku,name,brand,product_type,category,price,stock,description
LAP-001,ThinkPad E14,Lenovo,laptop,computer,3890,12,business laptop
LAP-002,IdeaPad Slim 3,Lenovo,laptop,computer,2490,20,everyday laptop
LAP-003,ROG Strix G16,ASUS,laptop,computer,7490,0,gaming laptop
DSK-001,ProDesk 400,HP,desktop,computer,2890,14,office tower
ACC-001,M330 Mouse,Logitech,accessory,mouse,120,50,wireless mouse
ACC-002,P2422H Monitor,Dell,accessory,monitor,690,18,24-inch monitor
`

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	c := New()
	stats, err := c.LoadCSV(strings.NewReader(testCSV))
	require.NoError(t, err)
	require.Equal(t, 6, stats.Loaded)
	return c
}

func TestCatalog_LoadCSV(t *testing.T) {
	t.Run("loads valid rows", func(t *testing.T) {
		c := loadTestCatalog(t)

		products := c.Products()
		assert.Len(t, products, 6)
		assert.Equal(t, "LAP-001", products[0].SKU)
		assert.Equal(t, "Lenovo ThinkPad E14", products[0].DisplayName())
		assert.Equal(t, 3890.0, products[0].Price)
	})

	t.Run("bad rows are skipped and reported", func(t *testing.T) {
		csv := "sku,name,brand,product_type,category,price,stock,description\n" +
			"LAP-001,ThinkPad E14,Lenovo,laptop,computer,3890,12,ok\n" +
			"LAP-002,Broken,Lenovo,laptop,computer,not-a-price,12,bad\n"

		c := New()
		stats, err := c.LoadCSV(strings.NewReader(csv))
		require.NoError(t, err)

		assert.Equal(t, 2, stats.TotalRows)
		assert.Equal(t, 1, stats.Loaded)
		assert.Equal(t, 1, stats.Skipped)
		require.Len(t, stats.Errors, 1)
		assert.Contains(t, stats.Errors[0], "invalid price")
	})

	t.Run("rejects an unexpected header", func(t *testing.T) {
		c := New()
		_, err := c.LoadCSV(strings.NewReader("id,name\n1,x\n"))
		assert.Error(t, err)
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    domain.CustomerType
	}{
		{"I'm a student looking for a laptop for university", domain.CustomerStudent},
		{"need a machine for programming and development", domain.CustomerEngineer},
		{"something that runs fortnite well", domain.CustomerGamer},
		{"a computer for office meetings", domain.CustomerBusiness},
		{"just browsing and netflix at home", domain.CustomerHomeUser},
		{"hello there", domain.CustomerOther},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message))
		})
	}
}

func TestExtractBudget(t *testing.T) {
	assert.Equal(t, 3000.0, ExtractBudget("budget around 3000 ILS"))
	assert.Equal(t, 0.0, ExtractBudget("no numbers here"))
	assert.Equal(t, 0.0, ExtractBudget("I have 50 shekels"))
	// Out-of-range figures are not budgets
	assert.Equal(t, 0.0, ExtractBudget("my phone number is 055555"))
	assert.Equal(t, 12000.0, ExtractBudget("up to 12000"))
}

func TestCatalog_Match(t *testing.T) {
	c := loadTestCatalog(t)

	t.Run("filters by budget and sorts cheapest first", func(t *testing.T) {
		matches := c.Match("a laptop for 3000", 5)
		require.Len(t, matches, 1)
		assert.Equal(t, "LAP-002", matches[0].SKU)
	})

	t.Run("out of stock items are never recommended", func(t *testing.T) {
		matches := c.Match("gaming laptop for 8000", 5)
		for _, m := range matches {
			assert.NotEqual(t, "LAP-003", m.SKU)
		}
	})

	t.Run("desktop preference excludes laptops", func(t *testing.T) {
		matches := c.Match("a desktop tower", 5)
		require.NotEmpty(t, matches)
		for _, m := range matches {
			assert.Equal(t, "desktop", m.ProductType)
		}
	})

	t.Run("limit is honored", func(t *testing.T) {
		matches := c.Match("any computer up to 9000", 2)
		assert.LessOrEqual(t, len(matches), 2)
	})
}

func TestCatalog_Upsell(t *testing.T) {
	t.Run("picks the cheapest in-stock accessory", func(t *testing.T) {
		c := loadTestCatalog(t)

		upsell := c.Upsell()
		require.NotNil(t, upsell)
		assert.Equal(t, "ACC-001", upsell.SKU)
	})

	t.Run("nil when no accessories exist", func(t *testing.T) {
		c := New()
		c.Replace([]domain.Product{{SKU: "LAP-001", ProductType: "laptop", Stock: 1}})
		assert.Nil(t, c.Upsell())
	})
}
