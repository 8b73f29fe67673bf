package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// lsmkv Go SDK
//
// A thin wrapper around the lsmkv HTTP API.
//
// Every method returns *Error when the server answers with a non-successful
// status code, except Get, which reports a missing key as StatusAbsent.
//
// Example usage:
//  c := NewClient("http://localhost:8080")
//  err := c.Insert(1, 100)
//  res, err := c.Get(1)

const (
	StatusFound   = "found"
	StatusDeleted = "deleted"
	StatusAbsent  = "absent"
)

// Client is a high-level HTTP client for lsmkv.
type Client struct {
	BaseURL string
	Client  *http.Client
}

// Error represents an error returned by the server.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lsmkv: %d %s", e.StatusCode, e.Message)
}

// Result is the outcome of a point lookup. Value is meaningful only when
// Status is StatusFound.
type Result struct {
	Key    int64  `json:"key"`
	Status string `json:"status"`
	Value  int64  `json:"value"`
}

type LevelStats struct {
	Level   int   `json:"level"`
	RunIDs  []int `json:"run_ids"`
	Records []int `json:"records"`
}

type Stats struct {
	MemTableEntries int          `json:"memtable_entries"`
	RunsAllocated   int          `json:"runs_allocated"`
	Levels          []LevelStats `json:"levels"`
}

// NewClient creates a new client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// request sends an HTTP request and returns the response body.
func (c *Client) request(method, path string, body any) ([]byte, error) {
	url := c.BaseURL + path
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &Error{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	return respBody, nil
}

func keyPath(key int64) string {
	return "/v1/keys/" + strconv.FormatInt(key, 10)
}

// HealthCheck returns true if the server is healthy.
func (c *Client) HealthCheck() (bool, error) {
	resp, err := c.request(http.MethodGet, "/", nil)
	if err != nil {
		return false, err
	}
	var result map[string]any
	if err := json.Unmarshal(resp, &result); err != nil {
		return false, err
	}
	return result["status"] == "ok", nil
}

// Insert stores value under key.
func (c *Client) Insert(key, value int64) error {
	payload := map[string]int64{"key": key, "value": value}
	_, err := c.request(http.MethodPost, "/v1/keys", payload)
	return err
}

// Update overwrites key. The server treats it exactly like Insert.
func (c *Client) Update(key, value int64) error {
	payload := map[string]int64{"value": value}
	_, err := c.request(http.MethodPut, keyPath(key), payload)
	return err
}

// Delete writes a tombstone for key.
func (c *Client) Delete(key int64) error {
	_, err := c.request(http.MethodDelete, keyPath(key), nil)
	return err
}

// Get looks key up.
func (c *Client) Get(key int64) (Result, error) {
	resp, err := c.request(http.MethodGet, keyPath(key), nil)
	if err != nil {
		if e, ok := err.(*Error); ok && e.StatusCode == http.StatusNotFound {
			return Result{Key: key, Status: StatusAbsent}, nil
		}
		return Result{}, err
	}
	var result Result
	err = json.Unmarshal(resp, &result)
	return result, err
}

// Stats returns the memtable size and the run layout of every level.
func (c *Client) Stats() (Stats, error) {
	resp, err := c.request(http.MethodGet, "/v1/stats", nil)
	if err != nil {
		return Stats{}, err
	}
	var stats Stats
	err = json.Unmarshal(resp, &stats)
	return stats, err
}
