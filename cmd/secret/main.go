package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
)

// generateSecret creates a random key for signing email-login sessions.
func generateSecret(size int) []byte {
	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("Unable to generate secret: %v", err)
	}
	return key
}

func main() {
	size := flag.Int("bytes", 32, "Number of random bytes")
	flag.Parse()

	// Print in the form expected by INVOICEAI_AUTH_SECRET
	fmt.Println("Generated Secret (hex):", hex.EncodeToString(generateSecret(*size)))
}
