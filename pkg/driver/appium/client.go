// Package appium implements the mobile session handle over the W3C WebDriver
// protocol spoken by Appium servers and cloud device grids.
package appium

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Client handles HTTP communication with an Appium server.
// The server URL may carry user info; net/http sends it as basic auth.
type Client struct {
	serverURL    string
	sessionID    string
	client       *http.Client
	platform     string // ios, android
	capabilities map[string]interface{}
}

// NewClient creates a new Appium client.
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		client: &http.Client{
			Timeout: 5 * time.Minute, // Cloud grids may install the app before answering
		},
	}
}

// NewSession creates a client and starts a session with the given capabilities.
func NewSession(serverURL string, capabilities map[string]interface{}) (*Client, error) {
	c := NewClient(serverURL)
	if err := c.Connect(capabilities); err != nil {
		return nil, err
	}
	return c, nil
}

// Connect creates a new session with the given capabilities.
// Capabilities are sent both as W3C alwaysMatch and as legacy
// desiredCapabilities, since grids still accept unprefixed keys.
func (c *Client) Connect(capabilities map[string]interface{}) error {
	body := map[string]interface{}{
		"capabilities": map[string]interface{}{
			"alwaysMatch": capabilities,
		},
		"desiredCapabilities": capabilities,
	}

	raw, err := c.post("/session", body)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	// W3C puts the session under value; JSON Wire puts it at the top level.
	resp := gjson.ParseBytes(raw)
	id := resp.Get("value.sessionId").String()
	caps := resp.Get("value.capabilities")
	if id == "" {
		id = resp.Get("sessionId").String()
		caps = resp.Get("value")
	}
	if id == "" {
		return fmt.Errorf("no session ID in response")
	}
	c.sessionID = id

	c.capabilities = make(map[string]interface{})
	if m, ok := caps.Value().(map[string]interface{}); ok {
		c.capabilities = m
	}
	if platform := caps.Get("platformName").String(); platform != "" {
		c.platform = strings.ToLower(platform)
	} else if name, ok := capabilities["osName"].(string); ok {
		c.platform = strings.ToLower(name)
	}

	return nil
}

// Disconnect closes the session.
func (c *Client) Disconnect() error {
	if c.sessionID == "" {
		return nil
	}
	_, err := c.delete(c.sessionPath())
	c.sessionID = ""
	return err
}

// Quit is an alias of Disconnect matching the desktop WebDriver handle.
func (c *Client) Quit() error {
	return c.Disconnect()
}

// SessionID returns the server-assigned session id.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Platform returns the platform (ios/android).
func (c *Client) Platform() string {
	return c.platform
}

// Capabilities returns the capabilities the server reported for the session.
func (c *Client) Capabilities() map[string]interface{} {
	return c.capabilities
}

// HTTP Helpers

func (c *Client) sessionPath() string {
	return "/session/" + c.sessionID
}

func (c *Client) post(path string, body interface{}) ([]byte, error) {
	return c.request("POST", path, body)
}

func (c *Client) delete(path string) ([]byte, error) {
	return c.request("DELETE", path, nil)
}

func (c *Client) request(method, path string, body interface{}) ([]byte, error) {
	url := c.serverURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(respBody) {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
		}
		return nil, fmt.Errorf("failed to parse response: %q", respBody)
	}

	// Check for WebDriver error
	errType := gjson.GetBytes(respBody, "value.error")
	errMsg := gjson.GetBytes(respBody, "value.message")
	if errType.Exists() && errMsg.Exists() {
		return respBody, fmt.Errorf("%s: %s", errType.String(), errMsg.String())
	}
	if resp.StatusCode >= 400 {
		return respBody, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return respBody, nil
}
