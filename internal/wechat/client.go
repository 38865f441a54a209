// Package wechat talks to the official account platform API: access tokens,
// customer-service text pushes and user profile lookups.
package wechat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the production API host.
const DefaultBaseURL = "https://api.weixin.qq.com"

// tokenSkew refreshes the token this long before the platform expires it.
const tokenSkew = 60 * time.Second

// Client is safe for concurrent use. It satisfies notify.Notifier.
type Client struct {
	appID     string
	appSecret string
	baseURL   string
	http      *http.Client
	now       func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewClient creates a client. An empty baseURL uses DefaultBaseURL.
func NewClient(appID, appSecret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		appID:     appID,
		appSecret: appSecret,
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: 5 * time.Second},
		now:       time.Now,
	}
}

// apiError is the envelope every endpoint returns on failure.
type apiError struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

func (e apiError) err() error {
	if e.ErrCode == 0 {
		return nil
	}
	return fmt.Errorf("wechat: errcode %d: %s", e.ErrCode, e.ErrMsg)
}

type tokenResponse struct {
	apiError
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// AccessToken returns the cached token, fetching a new one when it is
// missing or about to expire.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.token != "" && now.Before(c.expiresAt.Add(-tokenSkew)) {
		return c.token, nil
	}

	q := url.Values{}
	q.Set("grant_type", "client_credential")
	q.Set("appid", c.appID)
	q.Set("secret", c.appSecret)

	var resp tokenResponse
	if err := c.do(ctx, http.MethodGet, "/cgi-bin/token", q, nil, &resp); err != nil {
		return "", err
	}
	if err := resp.err(); err != nil {
		return "", err
	}
	if resp.AccessToken == "" || resp.ExpiresIn <= 0 {
		return "", fmt.Errorf("wechat: token response missing access_token")
	}
	c.token = resp.AccessToken
	c.expiresAt = now.Add(time.Duration(resp.ExpiresIn) * time.Second)
	return c.token, nil
}

type textMessage struct {
	ToUser  string `json:"touser"`
	MsgType string `json:"msgtype"`
	Text    struct {
		Content string `json:"content"`
	} `json:"text"`
}

// Send pushes a customer-service text message.
func (c *Client) Send(ctx context.Context, openID, content string) error {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return err
	}
	msg := textMessage{ToUser: openID, MsgType: "text"}
	msg.Text.Content = content

	q := url.Values{}
	q.Set("access_token", token)
	var resp apiError
	if err := c.do(ctx, http.MethodPost, "/cgi-bin/message/custom/send", q, msg, &resp); err != nil {
		return err
	}
	return resp.err()
}

type userInfo struct {
	apiError
	Nickname string `json:"nickname"`
}

// Nickname looks up the user's display name.
func (c *Client) Nickname(ctx context.Context, openID string) (string, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("access_token", token)
	q.Set("openid", openID)
	q.Set("lang", "zh_CN")

	var resp userInfo
	if err := c.do(ctx, http.MethodGet, "/cgi-bin/user/info", q, nil, &resp); err != nil {
		return "", err
	}
	if err := resp.err(); err != nil {
		return "", err
	}
	return resp.Nickname, nil
}

// SendText implements notify.Notifier.
func (c *Client) SendText(ctx context.Context, userID, text string) bool {
	if err := c.Send(ctx, userID, text); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Failed to push text message")
		return false
	}
	return true
}

// FetchDisplayName implements notify.Notifier.
func (c *Client) FetchDisplayName(ctx context.Context, userID string) string {
	name, err := c.Nickname(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Debug("Failed to fetch nickname")
		return ""
	}
	return name
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("wechat: encode %s: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path + "?" + query.Encode()
	var (
		req *http.Request
		err error
	)
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
	}
	if err != nil {
		return fmt.Errorf("wechat: build %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("wechat: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wechat: %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("wechat: decode %s: %w", path, err)
	}
	return nil
}
