// Minimal end-to-end check against the live detection service.
// Needs RD_API_KEY and a real media file:
//
//	go run ./scripts/smoke testdata/face.jpg
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/veritylab/dfscan/src/detector/core"
	_ "github.com/veritylab/dfscan/src/detector/providers"
	"github.com/veritylab/dfscan/src/scan"
)

var baseURL = getenv("RD_BASE_URL", "https://api.prd.realitydefender.xyz")

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: smoke <media-file>")
	}

	client, err := core.NewClient(core.FactoryConfig{
		APIKey:  os.Getenv("RD_API_KEY"),
		BaseURL: baseURL,
	})
	if err != nil {
		log.Fatalf("client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	out, err := scan.New(client).Scan(ctx, os.Args[1])
	if err != nil {
		log.Fatalf("scan: %v", err)
	}

	fmt.Print(scan.Render(out))
	fmt.Printf("✓ full upload/poll cycle passed in %.1fs\n", time.Since(start).Seconds())
}
