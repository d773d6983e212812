// Package seed builds the sample e-commerce database served when no other
// database has been configured.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Fixture sizes.
const (
	CustomerCount = 20
	OrderCount    = 50
	ReviewCount   = 60
)

const schemaDDL = `
CREATE TABLE categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    description TEXT
);

CREATE TABLE products (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    category_id INTEGER NOT NULL,
    price REAL NOT NULL,
    stock_quantity INTEGER NOT NULL DEFAULT 0,
    rating REAL DEFAULT 0,
    created_at TEXT DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (category_id) REFERENCES categories(id)
);

CREATE TABLE customers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    city TEXT,
    country TEXT DEFAULT 'India',
    joined_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE orders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_id INTEGER NOT NULL,
    order_date TEXT NOT NULL,
    total_amount REAL NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    FOREIGN KEY (customer_id) REFERENCES customers(id)
);

CREATE TABLE order_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id INTEGER NOT NULL,
    product_id INTEGER NOT NULL,
    quantity INTEGER NOT NULL,
    unit_price REAL NOT NULL,
    FOREIGN KEY (order_id) REFERENCES orders(id),
    FOREIGN KEY (product_id) REFERENCES products(id)
);

CREATE TABLE reviews (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    product_id INTEGER NOT NULL,
    customer_id INTEGER NOT NULL,
    rating INTEGER NOT NULL CHECK(rating BETWEEN 1 AND 5),
    comment TEXT,
    review_date TEXT DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (product_id) REFERENCES products(id),
    FOREIGN KEY (customer_id) REFERENCES customers(id)
);
`

type category struct {
	name        string
	description string
}

type product struct {
	name     string
	category int
	price    float64
	stock    int
	rating   float64
}

var categories = []category{
	{"Electronics", "Gadgets, devices, and accessories"},
	{"Clothing", "Apparel and fashion items"},
	{"Books", "Fiction, non-fiction, and textbooks"},
	{"Home & Kitchen", "Furniture, cookware, and decor"},
	{"Sports", "Sports equipment and accessories"},
	{"Beauty", "Skincare, makeup, and personal care"},
}

var products = []product{
	{"Wireless Earbuds Pro", 1, 2499, 150, 4.5},
	{"Smartphone X12", 1, 18999, 45, 4.3},
	{"Laptop UltraSlim", 1, 54999, 20, 4.7},
	{"Bluetooth Speaker", 1, 1299, 200, 4.1},
	{"Smart Watch S3", 1, 3999, 80, 4.4},
	{"USB-C Hub Adapter", 1, 899, 300, 4.2},
	{"Mechanical Keyboard", 1, 2799, 65, 4.6},
	{"Wireless Mouse", 1, 599, 400, 4.0},
	{"Cotton T-Shirt", 2, 499, 500, 4.2},
	{"Denim Jacket", 2, 2199, 60, 4.5},
	{"Running Shoes", 2, 3499, 100, 4.6},
	{"Formal Shirt", 2, 1299, 150, 4.1},
	{"Hoodie Classic", 2, 1599, 120, 4.3},
	{"Python Programming", 3, 599, 200, 4.8},
	{"Data Structures & Algorithms", 3, 699, 150, 4.7},
	{"Machine Learning Basics", 3, 899, 80, 4.5},
	{"Web Dev Bootcamp", 3, 499, 250, 4.4},
	{"Clean Code", 3, 749, 100, 4.9},
	{"Non-stick Pan Set", 4, 1899, 70, 4.3},
	{"Coffee Maker", 4, 4999, 30, 4.6},
	{"LED Desk Lamp", 4, 799, 180, 4.4},
	{"Storage Organizer", 4, 599, 220, 4.1},
	{"Yoga Mat Premium", 5, 999, 150, 4.5},
	{"Resistance Bands Set", 5, 699, 200, 4.3},
	{"Cricket Bat Pro", 5, 2499, 40, 4.7},
	{"Football Official", 5, 1199, 90, 4.4},
	{"Sunscreen SPF50", 6, 399, 300, 4.6},
	{"Face Wash Gel", 6, 249, 400, 4.2},
	{"Moisturizer Cream", 6, 549, 250, 4.5},
	{"Hair Serum", 6, 449, 180, 4.3},
}

var (
	firstNames = []string{"Aarav", "Priya", "Rohan", "Ananya", "Vikram", "Sneha", "Arjun", "Kavya",
		"Rahul", "Meera", "Aditya", "Ishita", "Karan", "Divya", "Nikhil",
		"Pooja", "Siddharth", "Riya", "Amit", "Neha"}
	lastNames = []string{"Sharma", "Patel", "Kumar", "Singh", "Gupta", "Reddy", "Joshi", "Verma",
		"Iyer", "Nair", "Rao", "Das", "Mehta", "Shah", "Chopra",
		"Malhotra", "Bose", "Dutta", "Pillai", "Menon"}
	cities = []string{"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Chennai", "Kolkata", "Pune",
		"Ahmedabad", "Jaipur", "Lucknow"}
	statuses = []string{"completed", "completed", "completed", "shipped", "pending", "cancelled"}
	comments = []string{
		"Great product, highly recommend!",
		"Good quality for the price.",
		"Exceeded my expectations.",
		"Decent product, could be better.",
		"Amazing! Will buy again.",
		"Fast delivery and great packaging.",
		"Value for money.",
		"Loved it, perfect for daily use.",
	}
)

// Options control the generated data. The same Seed and Now always produce
// the same database.
type Options struct {
	Seed uint64
	Now  time.Time
}

// DefaultOptions seeds the generator with a fixed value and dates relative to today.
func DefaultOptions() Options {
	return Options{Seed: 42, Now: time.Now()}
}

// Create writes a fresh sample database to path, replacing any existing file.
func Create(ctx context.Context, path string, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", path, err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing '%s': %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open '%s': %w", path, err)
	}
	defer db.Close()

	for stmt := range strings.SplitSeq(schemaDDL, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	g := &generator{tx: tx, rnd: rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)), now: opts.Now}
	steps := []func(context.Context) error{
		g.categories,
		g.products,
		g.customers,
		g.orders,
		g.reviews,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// EnsureExists seeds path only when no file is present. It reports whether
// a database was created.
func EnsureExists(ctx context.Context, path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	if err := Create(ctx, path, DefaultOptions()); err != nil {
		return false, err
	}
	return true, nil
}

type generator struct {
	tx  *sql.Tx
	rnd *rand.Rand
	now time.Time
}

// between returns a uniform int in [lo, hi].
func (g *generator) between(lo, hi int) int {
	return lo + g.rnd.IntN(hi-lo+1)
}

func (g *generator) daysAgo(lo, hi int) string {
	return g.now.AddDate(0, 0, -g.between(lo, hi)).Format(time.DateOnly)
}

func pick[T any](g *generator, values []T) T {
	return values[g.rnd.IntN(len(values))]
}

func (g *generator) categories(ctx context.Context) error {
	for _, c := range categories {
		if _, err := g.tx.ExecContext(ctx, `INSERT INTO categories (name, description) VALUES (?, ?)`, c.name, c.description); err != nil {
			return fmt.Errorf("failed to insert category '%s': %w", c.name, err)
		}
	}
	return nil
}

func (g *generator) products(ctx context.Context) error {
	for _, p := range products {
		_, err := g.tx.ExecContext(ctx,
			`INSERT INTO products (name, category_id, price, stock_quantity, rating) VALUES (?, ?, ?, ?, ?)`,
			p.name, p.category, p.price, p.stock, p.rating)
		if err != nil {
			return fmt.Errorf("failed to insert product '%s': %w", p.name, err)
		}
	}
	return nil
}

func (g *generator) customers(ctx context.Context) error {
	for i := range CustomerCount {
		first, last := firstNames[i], lastNames[i]
		email := fmt.Sprintf("%s.%s@email.com", strings.ToLower(first), strings.ToLower(last))
		_, err := g.tx.ExecContext(ctx,
			`INSERT INTO customers (first_name, last_name, email, city, country, joined_at) VALUES (?, ?, ?, ?, ?, ?)`,
			first, last, email, pick(g, cities), "India", g.daysAgo(30, 365))
		if err != nil {
			return fmt.Errorf("failed to insert customer '%s': %w", email, err)
		}
	}
	return nil
}

func (g *generator) orders(ctx context.Context) error {
	for orderID := 1; orderID <= OrderCount; orderID++ {
		customerID := g.between(1, CustomerCount)
		orderDate := g.daysAgo(1, 180)
		status := pick(g, statuses)

		// distinct products per order
		chosen := g.rnd.Perm(len(products))[:g.between(1, 4)]
		total := 0.0
		type item struct {
			product  int
			quantity int
			price    float64
		}
		items := make([]item, 0, len(chosen))
		for _, idx := range chosen {
			qty := g.between(1, 3)
			price := products[idx].price
			items = append(items, item{product: idx + 1, quantity: qty, price: price})
			total += float64(qty) * price
		}

		_, err := g.tx.ExecContext(ctx,
			`INSERT INTO orders (id, customer_id, order_date, total_amount, status) VALUES (?, ?, ?, ?, ?)`,
			orderID, customerID, orderDate, math.Round(total*100)/100, status)
		if err != nil {
			return fmt.Errorf("failed to insert order %d: %w", orderID, err)
		}
		for _, it := range items {
			_, err := g.tx.ExecContext(ctx,
				`INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?)`,
				orderID, it.product, it.quantity, it.price)
			if err != nil {
				return fmt.Errorf("failed to insert item of order %d: %w", orderID, err)
			}
		}
	}
	return nil
}

func (g *generator) reviews(ctx context.Context) error {
	for range ReviewCount {
		_, err := g.tx.ExecContext(ctx,
			`INSERT INTO reviews (product_id, customer_id, rating, comment, review_date) VALUES (?, ?, ?, ?, ?)`,
			g.between(1, len(products)), g.between(1, CustomerCount), g.between(3, 5), pick(g, comments), g.daysAgo(1, 120))
		if err != nil {
			return fmt.Errorf("failed to insert review: %w", err)
		}
	}
	return nil
}
