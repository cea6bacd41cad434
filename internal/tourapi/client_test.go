package tourapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plan4land/tourindex/internal/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		BaseURL:    srv.URL,
		ServiceKey: "test-key",
		MobileOS:   "ETC",
		MobileApp:  "Plan4Land",
		PageSize:   200,
	}, logger.NewNop())
}

func TestFetchPage(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Write([]byte(`{"response":{"body":{"totalCount":450,"items":{"item":[
			{"contentid":"1","title":"경복궁"},
			{"contentid":"2","title":"남산타워"}
		]}}}}`))
	})

	page, err := client.FetchPage(context.Background(), 2, ListOptions{})
	require.NoError(t, err)

	require.Equal(t, "/areaBasedList1", gotPath)
	require.Equal(t, "test-key", gotQuery["serviceKey"])
	require.Equal(t, "ETC", gotQuery["MobileOS"])
	require.Equal(t, "Plan4Land", gotQuery["MobileApp"])
	require.Equal(t, "json", gotQuery["_type"])
	require.Equal(t, "200", gotQuery["numOfRows"])
	require.Equal(t, "2", gotQuery["pageNo"])
	require.NotContains(t, gotQuery, "modifiedtime")

	require.Equal(t, 2, page.PageNo)
	require.Equal(t, 450, page.TotalCount)
	require.Len(t, page.Items, 2)
	require.Equal(t, "경복궁", page.Items[0]["title"])
}

func TestFetchPageModifiedDate(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"modifiedtime": r.URL.Query().Get("modifiedtime"),
			"listYN":       r.URL.Query().Get("listYN"),
		}
		w.Write([]byte(`{"response":{"body":{"totalCount":1,"items":{"item":{"contentid":"12345"}}}}}`))
	})

	page, err := client.FetchPage(context.Background(), 1, ListOptions{ModifiedDate: "20240101"})
	require.NoError(t, err)

	require.Equal(t, "/areaBasedSyncList1", gotPath)
	require.Equal(t, "20240101", gotQuery["modifiedtime"])
	require.Equal(t, "Y", gotQuery["listYN"])

	// Single-record pages arrive as a bare object, not an array.
	require.Len(t, page.Items, 1)
	require.Equal(t, "12345", page.Items[0]["contentid"])
}

func TestFetchPageEmptyItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"body":{"totalCount":0,"items":""}}}`))
	})

	page, err := client.FetchPage(context.Background(), 1, ListOptions{})
	require.NoError(t, err)
	require.Equal(t, 0, page.TotalCount)
	require.Empty(t, page.Items)
}

func TestFetchPageServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusServiceUnavailable)
	})

	_, err := client.FetchPage(context.Background(), 1, ListOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status 503")
}

func TestFetchPageMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	})

	_, err := client.FetchPage(context.Background(), 1, ListOptions{})
	require.Error(t, err)
}
