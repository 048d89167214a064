// Package whttp wraps the HTTP GET used to pull hosted snapshots. When a
// host answers with an HTML error page instead of JSON, the page title is
// extracted so the caller can show something better than a status code.
package whttp

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/net/html"
)

const userAgent = "invsheet/1.0"

type Response struct {
	StatusCode int
	Body       []byte
	// HTMLTitle is the <title> of the body when it parses as an HTML page,
	// empty otherwise.
	HTMLTitle string
}

// NoRetry is a retryablehttp policy that always gives the response back
// after the first attempt. A non-2xx status is a result here, not a reason
// to retry.
func NoRetry(_ context.Context, _ *http.Response, err error) (bool, error) {
	return false, err
}

// Get fetches url with the given client and reads the whole body. A nil
// client gets a default retryablehttp client with retries disabled.
func Get(ctx context.Context, client *retryablehttp.Client, url string) (*Response, error) {
	if client == nil {
		client = retryablehttp.NewClient()
		client.RetryMax = 0
		client.CheckRetry = NoRetry
		client.Logger = nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, */*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	res := &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}
	if looksLikeHTML(resp.Header.Get("Content-Type"), body) {
		res.HTMLTitle = htmlTitle(body)
	}
	return res, nil
}

func looksLikeHTML(contentType string, body []byte) bool {
	if strings.Contains(contentType, "text/html") {
		return true
	}
	trimmed := strings.TrimSpace(string(body))
	return strings.HasPrefix(trimmed, "<!DOCTYPE") || strings.HasPrefix(trimmed, "<html")
}

func htmlTitle(body []byte) string {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return ""
	}
	title, _ := traverse(doc)
	return strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(title, "\n", ""), "\r", ""))
}

func traverse(n *html.Node) (string, bool) {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil {
			return n.FirstChild.Data, true
		}
		return "", true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result, ok := traverse(c); ok {
			return result, ok
		}
	}
	return "", false
}
