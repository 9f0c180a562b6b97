package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client 图书API的HTTP客户端
// 设计说明：CLI是纯透传调用方——发请求、原样打印响应体，不解析业务字段，
// 所有判断都留给服务端
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient 创建API客户端
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
}

// GetBooks 获取全部图书
func (c *Client) GetBooks() (string, error) {
	return c.do(http.MethodGet, "/books", nil)
}

// CreateBook 创建图书
func (c *Client) CreateBook(fields map[string]any) (string, error) {
	return c.do(http.MethodPost, "/books", fields)
}

// GetBook 根据ISBN获取图书
func (c *Client) GetBook(isbn string) (string, error) {
	return c.do(http.MethodGet, "/books/"+isbn, nil)
}

// UpdateBook 根据ISBN更新图书（只发送显式提供的字段）
func (c *Client) UpdateBook(isbn string, fields map[string]any) (string, error) {
	return c.do(http.MethodPatch, "/books/"+isbn, fields)
}

// DeleteBook 根据ISBN删除图书
func (c *Client) DeleteBook(isbn string) (string, error) {
	return c.do(http.MethodDelete, "/books/"+isbn, nil)
}

// SearchBooks 按搜索词查找图书
func (c *Client) SearchBooks(term string) (string, error) {
	return c.do(http.MethodGet, "/books/search?term="+url.QueryEscape(term), nil)
}

// do 发起请求并返回原始响应体
func (c *Client) do(method, path string, body any) (string, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("connect to %s (is the server running?): %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	return string(raw), nil
}
