package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"

	"github.com/openlabollioules/tools/internal/model"
	"github.com/openlabollioules/tools/pkg/logger"
)

// APIUploader 通过宿主的文件上传接口上传
type APIUploader struct {
	baseURL    string
	token      string
	timeout    time.Duration
	httpClient *http.Client
}

// NewAPIUploader token 为调用方未携带令牌时使用的默认令牌
func NewAPIUploader(baseURL, token string, timeout time.Duration) *APIUploader {
	return &APIUploader{
		baseURL:    baseURL,
		token:      token,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (u *APIUploader) buildRequest(ctx context.Context, path string, token string) (*http.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err = io.Copy(part, f); err != nil {
		return nil, err
	}
	meta, err := json.Marshal(map[string]interface{}{
		"data": map[string]interface{}{"generated_by": model.GeneratedByUpload},
	})
	if err != nil {
		return nil, err
	}
	if err = writer.WriteField("metadata", string(meta)); err != nil {
		return nil, err
	}
	if err = writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"?process=false", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (u *APIUploader) Upload(ctx context.Context, path string, user User) (*Record, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	token := user.Token
	if token == "" {
		token = u.token
	}
	req, err := u.buildRequest(ctx, path, token)
	if err != nil {
		return nil, uploadErr("build request: %v", err)
	}
	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, uploadErr("%v", err)
	}
	defer resp.Body.Close()
	response, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, uploadErr("read response: %v", err)
	}
	respJson := gjson.ParseBytes(response)
	if resp.StatusCode != http.StatusOK {
		return nil, uploadErr("status %d: %s", resp.StatusCode, respJson.Get("detail").String())
	}
	rec := &Record{
		ID:       respJson.Get("id").String(),
		Filename: respJson.Get("filename").String(),
	}
	if rec.ID == "" {
		return nil, uploadErr("no file id returned")
	}
	if rec.Filename == "" {
		rec.Filename = filepath.Base(path)
	}
	logger.Info("文件已上传", logger.F("id", rec.ID), logger.F("filename", rec.Filename))
	return rec, nil
}
