package main

import (
	"context"
	"log"

	"github.com/nsqlite/userstore/internal/userstore"
)

func main() {
	if err := userstore.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
