// Command samplepdf writes sample trade-confirmation PDFs for trying /predict locally.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/fedutinova/xpb3parser/internal/pdftext/pdftest"
)

func main() {
	dir := flag.String("out", "./samples", "output directory")
	flag.Parse()

	paths, err := pdftest.WriteSamples(*dir)
	if err != nil {
		log.Fatalf("Failed to write samples: %v", err)
	}

	fmt.Println("Sample PDFs:")
	for _, p := range paths {
		fmt.Printf("  %s\n", p)
	}
	fmt.Println("\nTry:")
	fmt.Println(`  curl -H "X-API-Key: $API_KEY" -F file=@` + *dir + `/nota_xp.pdf http://localhost:8000/predict`)
}
