package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"snapvault/pkg/client"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "SnapVault server URL")
	username := flag.String("user", "", "username")
	password := flag.String("pass", "", "password")
	flag.Parse()

	if flag.NArg() != 1 || *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: upload -user <name> -pass <password> [-server <url>] <file>")
		os.Exit(1)
	}

	filePath := flag.Arg(0)
	data, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("read %s: %v", filePath, err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(filePath))
	if mimeType == "" {
		log.Fatalf("cannot determine content type of %s", filePath)
	}

	ctx := context.Background()
	c := client.New(*server)
	c.OnPhase = func(p client.Phase) {
		fmt.Printf("  %s\n", p)
	}

	if err := c.Login(ctx, *username, *password); err != nil {
		log.Fatalf("login: %v", err)
	}

	item, err := c.Upload(ctx, data, mimeType, filepath.Base(filePath))
	if err != nil {
		log.Fatalf("upload: %v", err)
	}

	fmt.Printf("uploaded %s as media %d\n%s\n", filePath, item.ID, item.URL)
}
