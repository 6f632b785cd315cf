package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The deck queries append the topic chain columns after the deck's own
// columns, so the scan destination list must line up with topicChainColumns
// one to one.
func TestTopicChainScanCoversJoinColumns(t *testing.T) {
	var chain topicChainScan
	assert.Len(t, chain.dests(), strings.Count(topicChainColumns, ",")+1)
}
