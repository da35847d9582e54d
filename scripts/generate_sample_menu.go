//go:build ignore

// Generates data/menu.csv.gz, a sample catalogue for cmd/menu-import.
//
//	go run scripts/generate_sample_menu.go
package main

import (
	"compress/gzip"
	"log"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

type menuRow struct {
	Name        string `csv:"name"`
	Price       string `csv:"price"`
	Stock       int    `csv:"stock"`
	MinStock    int    `csv:"min_stock"`
	Category    string `csv:"category"`
	Description string `csv:"description"`
	Image       string `csv:"image"`
}

func main() {
	dataDir := "data"
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	rows := []*menuRow{
		{"Espresso", "18000", 40, 10, "coffee", "Single shot", "espresso.jpg"},
		{"Americano", "20000", 40, 10, "coffee", "Espresso with hot water", "americano.jpg"},
		{"Latte", "25000", 30, 8, "coffee", "Espresso with steamed milk", "latte.jpg"},
		{"Cappuccino", "25000", 30, 8, "coffee", "", "cappuccino.jpg"},
		{"Es Kopi Susu", "22000", 50, 10, "coffee", "Iced coffee with palm sugar", ""},
		{"Matcha Latte", "28000", 20, 5, "tea", "", "matcha.jpg"},
		{"Teh Tarik", "15000", 25, 5, "tea", "", ""},
		{"Croissant", "15000", 12, 5, "pastry", "Butter croissant", "croissant.jpg"},
		{"Pain au Chocolat", "18000", 10, 4, "pastry", "", ""},
		{"Pisang Goreng", "12000", 15, 5, "snack", "Fried banana", ""},
	}

	path := filepath.Join(dataDir, "menu.csv.gz")
	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer file.Close()

	zw := gzip.NewWriter(file)
	if err := gocsv.Marshal(rows, zw); err != nil {
		log.Fatalf("Failed to write catalogue: %v", err)
	}
	if err := zw.Close(); err != nil {
		log.Fatalf("Failed to finish gzip stream: %v", err)
	}

	log.Printf("Wrote %d menu items to %s", len(rows), path)
}
