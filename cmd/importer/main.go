package main

import (
	"flag"
	"log"
	"os"

	"github.com/22dimrodi-maker/student-orders/app/config"
	"github.com/22dimrodi-maker/student-orders/app/imports"
	"github.com/22dimrodi-maker/student-orders/app/store"
)

// importer bulk-loads students or products from a workbook into the data
// directory, through the same merge path the upload API uses.
func main() {
	kind := flag.String("kind", "students", "record kind to import: students or products")
	file := flag.String("file", "", "path to the .xlsx workbook")
	flag.Parse()

	if *file == "" {
		log.Fatal("Usage: importer -kind students|products -file roster.xlsx")
	}

	config.Init()
	st := store.Open(config.Get().DataDir)

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal("Failed to open workbook:", err)
	}
	defer f.Close()

	switch *kind {
	case "students":
		rows, err := imports.Students(f)
		if err != nil {
			log.Fatal("Import failed:", err)
		}
		if err := st.Students.Merge(rows); err != nil {
			log.Fatal("Failed to save students:", err)
		}
		log.Printf("Imported %d student rows from %s", len(rows), *file)
	case "products":
		rows, err := imports.Products(f)
		if err != nil {
			log.Fatal("Import failed:", err)
		}
		if err := st.Products.Merge(rows); err != nil {
			log.Fatal("Failed to save products:", err)
		}
		log.Printf("Imported %d product rows from %s", len(rows), *file)
	default:
		log.Fatalf("Unknown kind %q (use students or products)", *kind)
	}
}
