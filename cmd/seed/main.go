// Command seed prepares a fresh deployment: it writes the starter menu if
// the catalog is empty and prints the bcrypt hash to configure as
// DASHBOARD_PIN_HASH.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/platepos/api/internal/service"
	"github.com/platepos/api/internal/store"
	"github.com/platepos/api/internal/store/file"
	"github.com/platepos/api/internal/store/postgres"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// CLI flags
	pin := flag.String("pin", "", "Dashboard PIN to hash")
	driver := flag.String("driver", "", "Storage driver: file or postgres")
	dataDir := flag.String("data-dir", "", "Data directory for the file driver")
	flag.Parse()

	// Fall back to environment variables
	if *pin == "" {
		*pin = os.Getenv("SEED_PIN")
	}
	if *driver == "" {
		*driver = os.Getenv("STORAGE_DRIVER")
	}
	if *dataDir == "" {
		*dataDir = os.Getenv("DATA_DIR")
	}

	// Fall back to defaults
	if *pin == "" {
		*pin = "1234"
		log.Println("WARNING: Using default PIN '1234'. Change immediately in production!")
	}
	if *driver == "" {
		*driver = "file"
	}
	if *dataDir == "" {
		*dataDir = "./data"
	}

	kv, err := openStore(*driver, *dataDir)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	menuSvc := service.NewMenuService(store.NewMenuRepository(kv))
	if err := menuSvc.EnsureDefaults(context.Background()); err != nil {
		log.Fatalf("seed default menu: %v", err)
	}
	log.Println("Menu seeded")

	hash, err := bcrypt.GenerateFromPassword([]byte(*pin), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash pin: %v", err)
	}
	fmt.Printf("DASHBOARD_PIN_HASH=%s\n", hash)
}

func openStore(driver, dataDir string) (store.KV, error) {
	switch driver {
	case "file":
		return file.New(dataDir)
	case "postgres":
		return postgres.New(context.Background(), os.Getenv("DATABASE_URL"))
	}
	return nil, fmt.Errorf("unknown storage driver %q", driver)
}
