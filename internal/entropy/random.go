// Optional true-randomness feed via random.org, for operators who want
// communiqué flavor beyond a seeded stream. Falls back to crypto/rand
// when the API is unavailable. Never wired into the engine itself.
// See design doc Section 8.2.
package entropy

import (
	"bytes"
	crand "crypto/rand"
	"encoding/binary"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	randomOrgURL = "https://api.random.org/json-rpc/4/invoke"
	batchSize    = 100
	lowWater     = 10
)

// Client draws decimal fractions from random.org in batches and serves
// them from a local reserve. It satisfies Feed; any API trouble degrades
// to crypto/rand instead of erroring.
type Client struct {
	apiKey string
	hc     *http.Client

	mu      sync.Mutex
	reserve []float64
}

// NewClient returns a random.org-backed feed, or nil when no API key is
// configured.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		apiKey: apiKey,
		hc:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether the feed has a key to call with.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Float returns the next float64 in [0, 1), topping the reserve up when
// it runs low.
func (c *Client) Float() float64 {
	if c == nil {
		return cryptoFloat()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.reserve) < lowWater {
		c.topUp()
	}
	if len(c.reserve) == 0 {
		return cryptoFloat()
	}

	v := c.reserve[0]
	c.reserve = c.reserve[1:]
	return v
}

type rpcCall struct {
	Version string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int       `json:"id"`
}

type rpcParams struct {
	APIKey        string `json:"apiKey"`
	N             int    `json:"n"`
	DecimalPlaces int    `json:"decimalPlaces"`
}

type rpcReply struct {
	Result struct {
		Random struct {
			Data []float64 `json:"data"`
		} `json:"random"`
	} `json:"result"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// topUp fetches one batch. Failures log at debug and leave the reserve
// as it was; the caller degrades to crypto/rand.
func (c *Client) topUp() {
	call := rpcCall{
		Version: "2.0",
		Method:  "generateDecimalFractions",
		Params:  rpcParams{APIKey: c.apiKey, N: batchSize, DecimalPlaces: 6},
		ID:      1,
	}
	body, err := json.Marshal(call)
	if err != nil {
		slog.Debug("random.org marshal failed", "error", err)
		return
	}

	resp, err := c.hc.Post(randomOrgURL, "application/json", bytes.NewReader(body))
	if err != nil {
		slog.Debug("random.org fetch failed", "error", err)
		return
	}
	defer resp.Body.Close()

	var reply rpcReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		slog.Debug("random.org decode failed", "error", err)
		return
	}
	if reply.Error != nil {
		slog.Debug("random.org call refused", "message", reply.Error.Message)
		return
	}

	c.reserve = append(c.reserve, reply.Result.Random.Data...)
	slog.Debug("random.org reserve topped up", "count", len(reply.Result.Random.Data))
}

// cryptoFloat is the degraded path: a uniform float64 in [0, 1) from
// crypto/rand, using the same 53-bit conversion Source.Float uses.
func cryptoFloat() float64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0.5
	}
	return float64(binary.LittleEndian.Uint64(buf[:])>>11) / float64(1<<53)
}
