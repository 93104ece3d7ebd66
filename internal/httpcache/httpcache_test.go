/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package httpcache

import (
	"context"
	"io"
	"log"
	"net/http"
	"testing"
	"time"

	"github.com/mikeb26/tennistour-entrybot/internal"
)

func TestHttpClient(t *testing.T) {
	ctx := context.Background()
	client := NewCachedHttpClient(ctx, 5*time.Minute)

	url := "https://entries.ticktocktennis.com/atp.html"

	for i := 0; i < 3; i++ {
		req, err := http.NewRequest("GET", url, nil)
		if err != nil {
			log.Printf("entrybot.test: unable to fetch entry page (new): %v", err)
			return
		}
		req.Header.Set("User-Agent", internal.UserAgent)
		resp, err := client.Do(req)
		if err != nil {
			log.Printf("entrybot.test: unable to fetch entry page (do): %v", err)
			return
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Errorf("Failed to read response body")
		}
		if len(data) == 0 {
			t.Errorf("Empty data")
		}
		if i > 0 {
			if resp.Header.Get("X-From-Cache") != "1" {
				t.Errorf("object not cached")
			}
		}
		resp.Body.Close()
	}
}

type recordingRoundTripper struct {
	lastReq *http.Request
	resp    *http.Response
}

func (rt *recordingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.lastReq = req
	return rt.resp, nil
}

func TestHeaderOverrideTransport(t *testing.T) {
	inner := &recordingRoundTripper{
		resp: &http.Response{
			StatusCode: http.StatusOK,
			Header: http.Header{
				"Pragma":        []string{"no-cache"},
				"Cache-Control": []string{"no-store"},
			},
		},
	}
	transport := &HeaderOverrideTransport{
		wrappedRT: inner,
		Request: func(req *http.Request) {
			req.Header.Set("User-Agent", internal.UserAgent)
		},
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Set("Cache-Control", "public, max-age=60")
			return nil
		},
	}

	req, err := http.NewRequest("GET", "https://example.com/entries.html", nil)
	if err != nil {
		t.Fatalf("unable to build request: %v", err)
	}
	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}

	if inner.lastReq.Header.Get("User-Agent") != internal.UserAgent {
		t.Errorf("Request hook did not set User-Agent on outgoing request")
	}
	if req.Header.Get("User-Agent") != "" {
		t.Errorf("original request was mutated; expected clone")
	}
	if resp.Header.Get("Pragma") != "" {
		t.Errorf("Pragma header survived response hook")
	}
	if got := resp.Header.Get("Cache-Control"); got != "public, max-age=60" {
		t.Errorf("Cache-Control = %q; want %q", got, "public, max-age=60")
	}
}
