package bluecat

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lite-lake/infra-bamctl/internal/config"
	"github.com/lite-lake/infra-bamctl/internal/domain"
	"github.com/lite-lake/infra-bamctl/internal/domain/retry"
	"github.com/lite-lake/infra-bamctl/internal/infrastructure/logger"
)

const (
	apiBasePath   = "/api/v2"
	changeHeader  = "x-bcn-change-control-comment"
	acceptHalJSON = "application/hal+json"

	defaultChangeComment = "change by bamctl"

	// pageLimit bounds one collection page; listing loops until a short page.
	pageLimit = 100
)

// Client is a low-level session client for the address manager's REST v2
// API. It holds the session credential between Login and Close and is not
// safe for concurrent use.
type Client struct {
	baseURL       string
	username      string
	password      string
	changeComment string
	http          *http.Client
	auth          string
	log           *logger.Logger
}

func New(st config.Settings) *Client {
	host := st.Host
	if !strings.HasPrefix(host, "http") {
		host = "https://" + host
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !st.VerifyTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	comment := st.ChangeComment
	if comment == "" {
		comment = defaultChangeComment
	}

	return &Client{
		baseURL:       strings.TrimRight(host, "/") + apiBasePath,
		username:      st.User,
		password:      st.Password,
		changeComment: comment,
		http: &http.Client{
			Transport: transport,
			Timeout:   st.Timeout,
		},
		log: logger.L().With("component", "bluecat"),
	}
}

// Login opens an API session and keeps the returned credential for the
// lifetime of the client.
func (c *Client) Login(ctx context.Context) error {
	var resp sessionResponse
	body := map[string]string{"username": c.username, "password": c.password}
	if err := c.post(ctx, "sessions", nil, body, &resp); err != nil {
		return domain.WrapOp("login", err)
	}
	if resp.BasicAuthenticationCredentials == "" {
		return domain.WrapOp("login", fmt.Errorf("%w: response missing basicAuthenticationCredentials", domain.ErrRemote))
	}
	c.auth = "Basic " + resp.BasicAuthenticationCredentials
	return nil
}

// Close drops the session credential and releases idle connections. Safe to
// call on every exit path, including before a successful Login.
func (c *Client) Close() {
	c.auth = ""
	c.http.CloseIdleConnections()
}

func (c *Client) request(ctx context.Context, method, path string, params url.Values, body any, mutate bool) ([]byte, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, domain.WrapOp("encode request body", err)
		}
		reader = bytes.NewReader(payload)
		c.log.Debug("http request", "method", method, "url", u, "body", string(payload))
	} else {
		c.log.Debug("http request", "method", method, "url", u)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, domain.WrapOp("build request", err)
	}
	req.Header.Set("Accept", acceptHalJSON)
	if c.auth != "" {
		req.Header.Set("Authorization", c.auth)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if mutate {
		req.Header.Set(changeHeader, c.changeComment)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrTransport, method, u, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: read body: %v", domain.ErrTransport, method, u, err)
	}

	c.log.Debug("http response", "method", method, "url", u, "status", resp.StatusCode, "bytes", len(data))

	if resp.StatusCode >= 400 {
		var eb errorBody
		if err := json.Unmarshal(data, &eb); err != nil || (eb.Code == "" && eb.Message == "" && eb.Reason == "") {
			eb.Message = strings.TrimSpace(string(data))
		}
		return nil, newAPIError(method, u, resp.StatusCode, eb)
	}

	return data, nil
}

// get performs an idempotent read; connection-level failures are retried
// with bounded backoff, remote answers are not.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	data, err := retry.DoWithResult(ctx, func() ([]byte, error) {
		return c.request(ctx, http.MethodGet, path, params, nil, false)
	})
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *Client) post(ctx context.Context, path string, params url.Values, body, out any) error {
	data, err := c.request(ctx, http.MethodPost, path, params, body, true)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	data, err := c.request(ctx, http.MethodPut, path, nil, body, true)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.request(ctx, http.MethodDelete, path, nil, nil, true)
	return err
}

func decode(data []byte, out any) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrRemote, err)
	}
	return nil
}

// getPage fetches one collection page.
func getPage[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	var col collection[T]
	if err := c.get(ctx, path, params, &col); err != nil {
		return nil, err
	}
	return col.Data, nil
}

// getAll walks a collection with offset/limit pagination until a short page.
func getAll[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	var items []T
	offset := 0
	for {
		p := url.Values{}
		for k, vs := range params {
			p[k] = vs
		}
		p.Set("limit", strconv.Itoa(pageLimit))
		p.Set("offset", strconv.Itoa(offset))

		page, err := getPage[T](ctx, c, path, p)
		if err != nil {
			return nil, err
		}
		items = append(items, page...)
		if len(page) < pageLimit {
			return items, nil
		}
		offset += pageLimit
	}
}

// selectSingle resolves a filter expression that must match exactly one
// object.
func selectSingle[T any](ctx context.Context, c *Client, path, filter, what string) (T, error) {
	var zero T
	params := url.Values{}
	params.Set("filter", filter)
	params.Set("limit", "2")

	items, err := getPage[T](ctx, c, path, params)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, fmt.Errorf("%w: %s for filter %q", domain.ErrNotFound, what, filter)
	}
	if len(items) > 1 {
		return zero, fmt.Errorf("%w: %s filter %q matched %d objects", domain.ErrAmbiguous, what, filter, len(items))
	}
	return items[0], nil
}
