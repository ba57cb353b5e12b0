// Command maintenance bundles the operational chores for the resume intake
// service: creating the storage bucket, listing uploads during the manual
// beta phase, and smoke testing a running instance.
//
// Usage:
//
//	maintenance create-bucket
//	maintenance list-uploads
//	maintenance smoke [-base http://localhost:8080]
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/careerlift/resumeaudit/config"
	"github.com/careerlift/resumeaudit/store"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "create-bucket":
		err = createBucket(ctx)
	case "list-uploads":
		err = listUploads(ctx)
	case "smoke":
		fs := flag.NewFlagSet("smoke", flag.ExitOnError)
		base := fs.String("base", "http://localhost:8080", "base URL of a running instance")
		_ = fs.Parse(os.Args[2:])
		err = smoke(ctx, *base)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: maintenance <create-bucket|list-uploads|smoke> [flags]")
}

func newObjects(ctx context.Context) (*store.Objects, error) {
	cfg := config.Load()
	if !cfg.StorageConfigured() {
		return nil, fmt.Errorf("storage credentials not configured (STORAGE_ENDPOINT, STORAGE_ACCESS_KEY, STORAGE_SECRET_KEY)")
	}
	return store.NewObjects(ctx, cfg)
}

func createBucket(ctx context.Context) error {
	objects, err := newObjects(ctx)
	if err != nil {
		return err
	}
	if err := objects.EnsureBucket(ctx); err != nil {
		return err
	}
	fmt.Printf("bucket %q is ready\n", config.Get().StorageBucket)
	return nil
}

func listUploads(ctx context.Context) error {
	objects, err := newObjects(ctx)
	if err != nil {
		return err
	}
	infos, err := objects.List(ctx)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("no uploads yet")
		return nil
	}
	for _, info := range infos {
		fmt.Printf("%s\t%8d bytes\t%s\n", info.LastModified.Format(time.RFC3339), info.Size, info.Key)
	}
	fmt.Printf("%d upload(s) total\n", len(infos))
	return nil
}

// smoke checks a running instance: the counter endpoint must answer, and an
// upload without fields must be rejected with 400 before touching any store.
func smoke(ctx context.Context, base string) error {
	client := &http.Client{Timeout: 10 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/submission-counter", nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("submission-counter: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	fmt.Printf("GET /submission-counter -> %d %s\n", resp.StatusCode, bytes.TrimSpace(body))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("submission-counter returned %d", resp.StatusCode)
	}

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	mw.Close()
	req, err = http.NewRequestWithContext(ctx, http.MethodPost, base+"/upload", &form)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err = client.Do(req)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	fmt.Printf("POST /upload (empty) -> %d %s\n", resp.StatusCode, bytes.TrimSpace(body))
	if resp.StatusCode != http.StatusBadRequest {
		return fmt.Errorf("empty upload should be rejected with 400, got %d", resp.StatusCode)
	}

	fmt.Println("smoke test passed")
	return nil
}
