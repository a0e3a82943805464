// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reputation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-radar/internal/httputil"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// swapAPIBase points the client at an httptest server for the duration of
// a test.
func swapAPIBase(t *testing.T, url string) {
	t.Helper()
	old := reputationAPIBase
	reputationAPIBase = url
	t.Cleanup(func() { reputationAPIBase = old })
}

func fastPolicy() httputil.Policy {
	return httputil.Policy{
		MaxRetries:    2,
		BaseDelay:     1 * time.Millisecond,
		RetryStatuses: []int{429, 500, 502, 503, 504},
	}
}

// reputationStub serves the two-stage author lookup with fixed metrics.
func reputationStub(t *testing.T, hIndex int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/author/search"):
			query := r.URL.Query().Get("query")
			fmt.Fprintf(w, `{"total":1,"data":[{"authorId":"1717514","name":%q}]}`, query)
		case strings.HasPrefix(r.URL.Path, "/author/"):
			fmt.Fprintf(w, `{"authorId":"1717514","name":"Resolved Name","hIndex":%d,"paperCount":120,"citationCount":9000}`, hIndex)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestLookupTwoStage(t *testing.T) {
	ts := reputationStub(t, 55)
	defer ts.Close()
	swapAPIBase(t, ts.URL)

	c := &Client{Policy: fastPolicy()}
	rep, err := c.Lookup(context.Background(), "Resolved Name")
	require.NoError(t, err)

	assert.Equal(t, "Resolved Name", rep.Name)
	assert.Equal(t, 55, rep.HIndex)
	assert.Equal(t, 120, rep.PaperCount)
	assert.Equal(t, 9000, rep.Citations)
	assert.Equal(t, "https://www.semanticscholar.org/author/1717514", rep.ProfileURL)
	assert.Equal(t, types.ProvenanceFresh, rep.Provenance)
}

func TestLookupEmptyResultIsNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"total":0,"data":[]}`)
	}))
	defer ts.Close()
	swapAPIBase(t, ts.URL)

	c := &Client{Policy: fastPolicy()}
	_, err := c.Lookup(context.Background(), "Nobody")
	assert.ErrorIs(t, err, ErrAuthorNotFound)
}

func TestLookupTransientStatusRetriesThenSucceeds(t *testing.T) {
	var searchCalls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/author/search") {
			if atomic.AddInt32(&searchCalls, 1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			fmt.Fprint(w, `{"total":1,"data":[{"authorId":"9","name":"X"}]}`)
			return
		}
		fmt.Fprint(w, `{"authorId":"9","name":"X","hIndex":10,"paperCount":1,"citationCount":2}`)
	}))
	defer ts.Close()
	swapAPIBase(t, ts.URL)

	c := &Client{Policy: fastPolicy()}
	rep, err := c.Lookup(context.Background(), "X")
	require.NoError(t, err)
	assert.Equal(t, 10, rep.HIndex)
	assert.Equal(t, int32(2), atomic.LoadInt32(&searchCalls))
}

func TestLookupExhaustedRetriesReturnsTransientError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()
	swapAPIBase(t, ts.URL)

	c := &Client{Policy: fastPolicy()}
	_, err := c.Lookup(context.Background(), "X")
	var te *httputil.TransientError
	assert.True(t, errors.As(err, &te))
}

func TestLookupNonRetryableStatusFailsFast(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()
	swapAPIBase(t, ts.URL)

	c := &Client{Policy: fastPolicy()}
	_, err := c.Lookup(context.Background(), "X")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAuthorNotFound)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLookupMalformedJSONIsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data": [{`)
	}))
	defer ts.Close()
	swapAPIBase(t, ts.URL)

	c := &Client{Policy: fastPolicy()}
	_, err := c.Lookup(context.Background(), "X")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAuthorNotFound)
}

func TestLookupSendsAPIKey(t *testing.T) {
	var gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		fmt.Fprint(w, `{"total":0,"data":[]}`)
	}))
	defer ts.Close()
	swapAPIBase(t, ts.URL)

	c := &Client{APIKey: "sekrit", Policy: fastPolicy()}
	_, _ = c.Lookup(context.Background(), "X")
	assert.Equal(t, "sekrit", gotKey)
}

func TestLookupEmptyNameIsNotFound(t *testing.T) {
	c := &Client{Policy: fastPolicy()}
	_, err := c.Lookup(context.Background(), "")
	assert.ErrorIs(t, err, ErrAuthorNotFound)
}
