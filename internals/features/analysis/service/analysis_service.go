// Package service membungkus pemanggilan layanan analisis dokumen eksternal.
// Alur: unduh file sumber ke temp file, kirim multipart ke endpoint analisis,
// parse output JSON. Temp file selalu dihapus lewat defer.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 120 * time.Second},
	}
}

// Analyze mengunduh fileURL lalu mengirimnya ke <BaseURL>/<endpoint>
// sebagai multipart field "file". Return = body JSON mentah dari layanan.
func (cl *Client) Analyze(ctx context.Context, endpoint, fileURL string) (json.RawMessage, error) {
	tmpPath, err := cl.download(ctx, fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file sumber: %w", err)
	}
	defer os.Remove(tmpPath)

	return cl.post(ctx, endpoint, tmpPath)
}

func (cl *Client) download(ctx context.Context, fileURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := cl.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d dari sumber file", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "analysis-*"+filepath.Ext(fileURL))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func (cl *Client) post(ctx context.Context, endpoint, path string) (json.RawMessage, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	url := cl.BaseURL + "/" + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := cl.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("layanan analisis menjawab %d: %s", resp.StatusCode, string(body))
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("output layanan analisis bukan JSON valid")
	}
	return json.RawMessage(body), nil
}
