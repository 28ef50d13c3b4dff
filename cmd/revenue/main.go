package main

import (
	"context"
	"os"

	"github.com/frankiemarley/web-scraping-project-tutorial/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:]))
}
