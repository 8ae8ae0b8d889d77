package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Uploads convention PDFs (schedules, FAQs, venue maps) into the running
// assistant's knowledge base via the /api/v1/knowledge/upload endpoint.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/seed-knowledge.go <file.pdf> [file.pdf ...]")
		os.Exit(1)
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	fmt.Printf("🌱 Seeding Knowledge Base\n")
	fmt.Printf("============================\n")
	fmt.Printf("API URL: %s\n", apiURL)
	fmt.Printf("Files to upload: %d\n\n", len(os.Args)-1)

	ctx := context.Background()
	client := &http.Client{Timeout: 60 * time.Second}
	uploadURL := apiURL + "/api/v1/knowledge/upload"

	failures := 0
	for i, path := range os.Args[1:] {
		fmt.Printf("📦 %d/%d: Uploading %s...\n", i+1, len(os.Args)-1, filepath.Base(path))

		if err := upload(ctx, client, uploadURL, path); err != nil {
			fmt.Printf("   ❌ %v\n", err)
			failures++
			continue
		}
		fmt.Printf("   ✅ Success!\n")

		if i < len(os.Args)-2 {
			time.Sleep(500 * time.Millisecond)
		}
	}

	if failures > 0 {
		fmt.Printf("\n❌ %d upload(s) failed\n", failures)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Knowledge seeding complete!\n")
	fmt.Printf("\n📝 Next steps:\n")
	fmt.Printf("  1. Test retrieval: curl -X POST %s/api/v1/chat/message -d '{\"message\":\"What time do doors open?\"}'\n", apiURL)
	fmt.Printf("  2. Check the response includes schedule information\n")
}

func upload(ctx context.Context, client *http.Client, url, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}
