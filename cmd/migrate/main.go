package main

import (
	"fmt"
	"log"

	"github.com/mkalev/modelvet/internal/config"
	"github.com/mkalev/modelvet/internal/store"
)

func main() {
	cfg := config.Load()

	st, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create PostgreSQL store: %v", err)
	}
	defer st.Close()

	fmt.Println("Feedback tables are up to date")
}
