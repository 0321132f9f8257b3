package main

import (
	"log"

	"orcamento/go_backend/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
