package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statusPage = `<html><body>
<table>
<tr><th>Table</th><th>Hand</th><th>Players</th><th>Status</th></tr>
<tr><td>b7</td><td>1542</td><td>9</td><td>Active</td></tr>
<tr><td>d3</td><td>880</td><td>6</td><td>Finished</td></tr>
<tr><td>c1</td><td>412</td><td>7</td><td>Unk</td></tr>
<tr><td>b9</td><td>200</td><td>8</td><td>Broken</td></tr>
<tr><td>b2</td><td>n/a</td><td>5</td><td>Active</td></tr>
<tr><td>b4</td><td>99</td></tr>
</table>
</body></html>`

func TestParseStatusPage(t *testing.T) {
	tables, err := parseStatusPage(statusPage)
	require.NoError(t, err)

	// Broken, non-numeric, and short rows drop out.
	require.Len(t, tables, 3)
	assert.Equal(t, TableStatus{TableID: "b7", CurrentHand: 1542, Status: "Active"}, tables[0])
	assert.Equal(t, TableStatus{TableID: "d3", CurrentHand: 880, Status: "Finished"}, tables[1])
	assert.Equal(t, TableStatus{TableID: "c1", CurrentHand: 412, Status: "Unk"}, tables[2])
}

func TestParseStatusPageNoTable(t *testing.T) {
	_, err := parseStatusPage("<html><body><p>maintenance</p></body></html>")
	assert.Error(t, err)
}

func TestTableFamily(t *testing.T) {
	assert.Equal(t, "/d", tableFamily("d3").PathPrefix)
	assert.Equal(t, 199, tableFamily("d3").StartHand)
	assert.Equal(t, "/c", tableFamily("c1").PathPrefix)
	assert.Equal(t, 120, tableFamily("c1").StartHand)
	assert.Equal(t, "/b", tableFamily("b7").PathPrefix)
	assert.Equal(t, 1, tableFamily("b7").StartHand)
	assert.Equal(t, "/b", tableFamily("").PathPrefix)
}

func TestHandURL(t *testing.T) {
	c := newClient("http://hands.example.org", 60, nil)
	assert.Equal(t, "http://hands.example.org/d/hands/d3_205.txt", c.handURL("d3", 205))
	assert.Equal(t, "http://hands.example.org/b/hands/b7_12.txt", c.handURL("b7", 12))
}
