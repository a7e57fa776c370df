package osmapi

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	osm "github.com/omniscale/go-osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omniscale/changemonger/element"
)

const nodeXML = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
 <node id="1001" visible="true" version="2" changeset="4201" timestamp="2012-06-05T00:00:00Z" user="alice" uid="17" lat="52.51" lon="13.31">
  <tag k="shop" v="bakery"/>
 </node>
</osm>
`

type testServer struct {
	*httptest.Server
	mu         sync.Mutex
	requests   map[string]int
	userAgents []string
}

func newTestServer(t *testing.T) *testServer {
	ts := &testServer{requests: make(map[string]int)}
	files := map[string]string{
		"/api/0.6/changeset/4200":          "testdata/changeset.xml",
		"/api/0.6/changeset/4200/download": "testdata/download.osc",
		"/api/0.6/node/1002/ways":          "testdata/node_ways.xml",
		"/api/0.6/way/2002/relations":      "testdata/way_relations.xml",
	}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.Lock()
		ts.requests[r.URL.Path]++
		ts.userAgents = append(ts.userAgents, r.UserAgent())
		ts.mu.Unlock()

		switch r.URL.Path {
		case "/api/0.6/node/1001", "/api/0.6/node/1001/2":
			w.Write([]byte(nodeXML))
			return
		case "/api/0.6/node/1003/ways":
			w.Write([]byte(`<osm version="0.6"></osm>`))
			return
		case "/api/0.6/node/666":
			w.WriteHeader(http.StatusGone)
			return
		case "/api/0.6/node/500/ways":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("database offline"))
			return
		}
		fname, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		b, err := ioutil.ReadFile(fname)
		if err != nil {
			t.Error(err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(b)
	}))
	return ts
}

func (ts *testServer) count(path string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.requests[path]
}

func newTestClient(ts *testServer, opts ...Option) *Client {
	opts = append([]Option{BaseURL(ts.URL + "/api/0.6/"), RateLimit(0, 0)}, opts...)
	return New(opts...)
}

func TestChangeset(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()
	c := newTestClient(ts)

	cs, err := c.Changeset(context.Background(), 4200)
	require.NoError(t, err)

	assert.Equal(t, int64(4200), cs.ID)
	assert.Equal(t, "alice", cs.UserName)
	assert.Equal(t, int32(17), cs.UserID)
	assert.False(t, cs.Open)
	assert.Equal(t, time.Date(2012, 6, 2, 10, 11, 12, 0, time.UTC), cs.CreatedAt.UTC())
	assert.Equal(t, "added Joe's Bakery", cs.Tags["comment"])
	require.Len(t, cs.Comments, 1)
	assert.Equal(t, "bob", cs.Comments[0].UserName)
	assert.Equal(t, "Thanks!", cs.Comments[0].Text)

	require.Len(t, cs.Actions, 3)
	assert.Equal(t, element.Create, cs.Actions[0].Kind)
	assert.Equal(t, element.Modify, cs.Actions[1].Kind)
	assert.Equal(t, element.Delete, cs.Actions[2].Kind)

	elems := cs.Elements()
	require.Len(t, elems, 4)
	assert.Equal(t, "node/1001", elems[0].Key().String())
	assert.Equal(t, "Joe's Bakery", elems[0].Tags()["name"])
	assert.Equal(t, element.Create, elems[0].Action)
	assert.True(t, elems[1].Tagless())
	assert.Equal(t, []int64{1002, 1003}, elems[2].Refs())
	assert.Equal(t, int32(3), elems[2].Version())
	assert.Equal(t, element.Relation, elems[3].Type())
	assert.Equal(t, element.Delete, elems[3].Action)
}

func TestChangesetNotFound(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()
	c := newTestClient(ts)

	_, err := c.Changeset(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestElement(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()
	c := newTestClient(ts)

	e, err := c.Node(context.Background(), 1001, 0)
	require.NoError(t, err)
	assert.Equal(t, element.Node, e.Type())
	assert.Equal(t, int32(2), e.Version())
	assert.Equal(t, "bakery", e.Tags()["shop"])
	assert.Equal(t, 52.51, e.Node.Lat)

	_, err = c.Node(context.Background(), 1001, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, ts.count("/api/0.6/node/1001/2"))

	// node 1001 is not a way
	_, err = c.Way(context.Background(), 1001, 0)
	assert.Error(t, err)

	_, err = c.Node(context.Background(), 666, 0)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestWaysForNode(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()
	c := newTestClient(ts)

	ways, err := c.WaysForNode(context.Background(), 1002)
	require.NoError(t, err)
	require.Len(t, ways, 2)
	assert.Equal(t, int64(2001), ways[0].ID)
	assert.Equal(t, "Elm Street", ways[0].Tags["name"])
	assert.Equal(t, []int64{1002, 1003, 1004}, ways[0].Refs)
	assert.Nil(t, ways[1].Tags)

	ways, err = c.WaysForNode(context.Background(), 1003)
	require.NoError(t, err)
	assert.Empty(t, ways)

	_, err = c.WaysForNode(context.Background(), 500)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "database offline")
}

func TestRelationsForElement(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()
	c := newTestClient(ts)

	rels, err := c.RelationsForElement(context.Background(), element.Way, 2002)
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, "multipolygon", rels[0].Tags["type"])
	// unknown member types are skipped
	assert.Equal(t, []osm.Member{
		{ID: 2002, Type: osm.WayMember, Role: "outer"},
		{ID: 1005, Type: osm.NodeMember, Role: ""},
	}, rels[0].Members)
}

func TestCache(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c := newTestClient(ts)
	for i := 0; i < 3; i++ {
		_, err := c.WaysForNode(context.Background(), 1002)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, ts.count("/api/0.6/node/1002/ways"))

	// errors are not cached
	for i := 0; i < 2; i++ {
		_, err := c.WaysForNode(context.Background(), 500)
		require.Error(t, err)
	}
	assert.Equal(t, 2, ts.count("/api/0.6/node/500/ways"))

	c = newTestClient(ts, CacheSize(0))
	for i := 0; i < 2; i++ {
		_, err := c.WaysForNode(context.Background(), 1002)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, ts.count("/api/0.6/node/1002/ways"))
}

func TestUserAgent(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c := newTestClient(ts, UserAgent("changemonger-test/1.0"))
	_, err := c.Node(context.Background(), 1001, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"changemonger-test/1.0"}, ts.userAgents)
}

func TestRateLimitCanceled(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c := newTestClient(ts, RateLimit(0.001, 1))
	_, err := c.Node(context.Background(), 1001, 0)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Node(ctx, 1001, 2)
	assert.Error(t, err)
}

func TestParseChange(t *testing.T) {
	f, err := os.Open("testdata/download.osc")
	require.NoError(t, err)
	defer f.Close()

	cs := &element.Changeset{}
	require.NoError(t, ParseChange(context.Background(), f, cs))
	assert.Len(t, cs.Elements(), 4)
	assert.Equal(t, "User 0", cs.User())
}
