package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/smartbyte/shopassist/internal/domain"
)

// Catalog holds the product inventory for the stub server and answers
// naive classification and matching queries over it. It is a stand-in
// for the real recommendation backend, good enough to develop the
// client against.
type Catalog struct {
	mu       sync.RWMutex
	products []domain.Product
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{}
}

// Replace swaps the full inventory
func (c *Catalog) Replace(products []domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = products
}

// Products returns a copy of the inventory
func (c *Catalog) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]domain.Product(nil), c.products...)
}

var customerKeywords = map[domain.CustomerType][]string{
	domain.CustomerStudent:  {"student", "university", "college", "study", "studies", "homework"},
	domain.CustomerEngineer: {"engineer", "developer", "programmer", "coding", "programming", "development"},
	domain.CustomerGamer:    {"gaming", "gamer", "games", "fps", "fortnite", "valorant"},
	domain.CustomerBusiness: {"business", "office", "work", "meetings", "professional"},
	domain.CustomerHomeUser: {"home", "family", "browsing", "netflix"},
}

// classifyOrder fixes iteration order so ties resolve deterministically
var classifyOrder = []domain.CustomerType{
	domain.CustomerStudent,
	domain.CustomerEngineer,
	domain.CustomerGamer,
	domain.CustomerBusiness,
	domain.CustomerHomeUser,
}

// Classify infers a customer type from message text
func Classify(message string) domain.CustomerType {
	text := strings.ToLower(message)
	for _, customerType := range classifyOrder {
		for _, keyword := range customerKeywords[customerType] {
			if strings.Contains(text, keyword) {
				return customerType
			}
		}
	}
	return domain.CustomerOther
}

var budgetPattern = regexp.MustCompile(`\b(\d{4,6})\b`)

// ExtractBudget pulls a plausible budget figure out of message text.
// Returns 0 when none is found.
func ExtractBudget(message string) float64 {
	for _, match := range budgetPattern.FindAllString(message, -1) {
		value, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if value >= 1000 && value <= 50000 {
			return float64(value)
		}
	}
	return 0
}

// Match returns up to limit in-stock computers fitting the message's
// product-type keywords and budget, cheapest first
func (c *Catalog) Match(message string, limit int) []domain.Product {
	text := strings.ToLower(message)
	budget := ExtractBudget(message)

	wantLaptop := strings.Contains(text, "laptop") || strings.Contains(text, "notebook") || strings.Contains(text, "portable")
	wantDesktop := strings.Contains(text, "desktop") || strings.Contains(text, "tower")

	c.mu.RLock()
	defer c.mu.RUnlock()

	var matches []domain.Product
	for _, p := range c.products {
		if p.Stock <= 0 {
			continue
		}
		if p.ProductType != "laptop" && p.ProductType != "desktop" {
			continue
		}
		if wantLaptop && !wantDesktop && p.ProductType != "laptop" {
			continue
		}
		if wantDesktop && !wantLaptop && p.ProductType != "desktop" {
			continue
		}
		if budget > 0 && p.Price > budget {
			continue
		}
		matches = append(matches, p)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Price < matches[j].Price
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Upsell picks the cheapest in-stock accessory, or nil if none exists
func (c *Catalog) Upsell() *domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var best *domain.Product
	for i := range c.products {
		p := c.products[i]
		if p.ProductType != "accessory" || p.Stock <= 0 {
			continue
		}
		if best == nil || p.Price < best.Price {
			best = &p
		}
	}
	if best == nil {
		return nil
	}
	upsell := *best
	return &upsell
}
