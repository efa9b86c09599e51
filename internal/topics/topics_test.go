// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topics

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shashikant999/AstraNode/pkg/types"
)

func topicTexts(ts []types.Topic) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Topic
	}
	return out
}

func TestExtract_Rules(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "numbered label",
			text: "Topic 1: Bone remodeling in microgravity. More text.",
			want: []string{"Bone remodeling in microgravity"},
		},
		{
			name: "theme and area labels",
			text: "Theme 2 - Radiation shielding design\nArea 3. Plant growth under LED light",
			want: []string{"Radiation shielding design", "Plant growth under LED light"},
		},
		{
			name: "bullets",
			text: "• Muscle atrophy countermeasures\n* Vascular remodeling in flight\n- Immune dysregulation",
			want: []string{"Muscle atrophy countermeasures", "Vascular remodeling in flight", "Immune dysregulation"},
		},
		{
			name: "labeled findings",
			text: "Key finding: calcium loss accelerates. Main topic: skeletal unloading models\nCentral theme: countermeasure exercise",
			want: []string{"calcium loss accelerates", "skeletal unloading models", "countermeasure exercise"},
		},
		{
			name: "markdown emphasis stripped",
			text: "**Topic 1:** **Osteoclast activity in space**",
			want: []string{"Osteoclast activity in space"},
		},
		{
			name: "hyphen inside words is not a bullet",
			text: "Identify 5-8 key topics across long-duration flights",
			want: []string{},
		},
		{
			name: "no matches",
			text: "Plain prose without any structure",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, topicTexts(Extract(tt.text)))
		})
	}
}

func TestExtract_MinimumLength(t *testing.T) {
	text := "- ten chars!\n- 0123456789\n- 01234567890"
	got := topicTexts(Extract(text))
	assert.Equal(t, []string{"01234567890"}, got)
}

func TestExtract_LengthCountsMarkup(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"emphasis counts toward length", "- **Bone loss**\n", []string{"Bone loss"}},
		{"short even with emphasis", "- **Bone**\n", []string{}},
		{"only markup", "- ***********\n", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, topicTexts(Extract(tt.text)))
		})
	}
}

func TestExtract_RuleOrder(t *testing.T) {
	text := "- Bullet comes first in text\nTopic 1: Label comes second in text"
	got := topicTexts(Extract(text))
	assert.Equal(t, []string{"Label comes second in text", "Bullet comes first in text"}, got)
}

func TestExtract_DeduplicatesCaseAndWhitespace(t *testing.T) {
	text := "- Bone Density Loss\n- bone   density loss\n*  BONE DENSITY LOSS"
	got := Extract(text)
	require.Len(t, got, 1)
	assert.Equal(t, "Bone Density Loss", got[0].Topic)
	assert.Equal(t, types.RelevanceHigh, got[0].Relevance)
}

func TestExtract_CapsAtTen(t *testing.T) {
	var b strings.Builder
	for i := range 25 {
		fmt.Fprintf(&b, "- Distinct research topic number %d\n", i)
	}
	got := Extract(b.String())
	require.Len(t, got, MaxTopics)
	assert.Equal(t, "Distinct research topic number 0", got[0].Topic)
	assert.Equal(t, "Distinct research topic number 9", got[9].Topic)
}

func TestExtract_TopicShape(t *testing.T) {
	got := Extract("Topic 1: Radiation-induced DNA damage")
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Connections)
	assert.Empty(t, got[0].Connections)
	assert.Nil(t, got[0].Frequency)
}
