package roster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standingsPage = `<html><body>
<table>
<tr><th>Rank</th><th>Player</th><th>Table</th><th>Stack</th><th>Hands</th><th>Status</th></tr>
<tr><td>1</td><td>Alice Adams</td><td>b7</td><td>90,000</td><td>1500</td><td>in</td></tr>
<tr><td>2</td><td>Bob Brown</td><td>b7</td><td>72,000</td><td>1500</td><td>folded</td></tr>
<tr><td>3</td><td>Carol Clark</td><td>d3</td><td>40,000</td><td>880</td><td>AWOL</td></tr>
<tr><td>4</td><td>Dave Dunn</td><td>c1</td><td>12,000</td><td>412</td><td>Gone</td></tr>
<tr><td>5</td><td>Eve Evans</td><td>b2</td><td>0</td><td>300</td><td>out 451st</td></tr>
<tr><td>-</td><td>Frank Field</td><td>b2</td><td>0</td><td>300</td><td>in</td></tr>
<tr><td>6</td><td>Short Row</td></tr>
</table>
</body></html>`

func TestParseStandings(t *testing.T) {
	players, err := ParseStandings(standingsPage)
	require.NoError(t, err)

	// Eliminated, non-ranked, and short rows drop out.
	assert.Equal(t, []string{"Alice Adams", "Bob Brown", "Carol Clark", "Dave Dunn"}, players)
}

func TestParseStandingsEmpty(t *testing.T) {
	_, err := ParseStandings("<html><body><table><tr><td>1</td></tr></table></body></html>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active players")
}

func TestFetchActive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(standingsPage))
	}))
	defer srv.Close()

	players, err := New(srv.URL).FetchActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, players, 4)
}

func TestFetchActiveBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL).FetchActive(context.Background())
	assert.Error(t, err)
}
