package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteFixture struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"createdAt"`
	EditedAt  *time.Time  `json:"editedAt,omitempty"`
	History   []time.Time `json:"history,omitempty"`
	Secret    string      `json:"-"`
}

func TestEncodeWithDates_TagsTimestamps(t *testing.T) {
	created := time.Date(2024, 5, 17, 9, 30, 0, 123456789, time.UTC)
	data, err := EncodeWithDates(noteFixture{ID: "n1", Text: "hello", CreatedAt: created})
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, json.Unmarshal(data, &tree))

	env, ok := tree["createdAt"].(map[string]any)
	require.True(t, ok, "timestamp should be wrapped in an envelope")
	assert.Equal(t, "Date", env["__type"])
	assert.Equal(t, created.Format(time.RFC3339Nano), env["value"])

	// Non-time fields stay plain.
	assert.Equal(t, "hello", tree["text"])
	// json:"-" fields never leak into storage.
	_, leaked := tree["Secret"]
	assert.False(t, leaked)
}

func TestEncodeWithDates_PlainDateStringStaysString(t *testing.T) {
	// A string that merely looks like a timestamp must not come back as one.
	data, err := EncodeWithDates(noteFixture{ID: "n1", Text: "2024-05-17T09:30:00Z", CreatedAt: time.Now()})
	require.NoError(t, err)

	var out noteFixture
	require.NoError(t, DecodeWithDates(data, &out))
	assert.Equal(t, "2024-05-17T09:30:00Z", out.Text)
}

func TestRoundTrip_ExactTimestampEquality(t *testing.T) {
	edited := time.Date(2023, 12, 31, 23, 59, 59, 999999999, time.UTC)
	in := noteFixture{
		ID:        "n2",
		Text:      "round trip",
		CreatedAt: time.Date(2022, 1, 2, 3, 4, 5, 678900000, time.UTC),
		EditedAt:  &edited,
		History: []time.Time{
			time.Date(2022, 1, 2, 3, 4, 5, 0, time.UTC),
			time.Date(2022, 2, 3, 4, 5, 6, 0, time.UTC),
		},
	}

	data, err := EncodeWithDates(in)
	require.NoError(t, err)

	var out noteFixture
	require.NoError(t, DecodeWithDates(data, &out))

	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Text, out.Text)
	assert.True(t, out.CreatedAt.Equal(in.CreatedAt), "createdAt must survive to the nanosecond")
	require.NotNil(t, out.EditedAt)
	assert.True(t, out.EditedAt.Equal(*in.EditedAt))
	require.Len(t, out.History, 2)
	for i := range in.History {
		assert.True(t, out.History[i].Equal(in.History[i]))
	}
}

func TestRoundTrip_NilPointerStaysNil(t *testing.T) {
	in := noteFixture{ID: "n3", CreatedAt: time.Now().UTC()}

	data, err := EncodeWithDates(in)
	require.NoError(t, err)

	var out noteFixture
	require.NoError(t, DecodeWithDates(data, &out))
	assert.Nil(t, out.EditedAt)
	assert.Nil(t, out.History)
}

func TestRoundTrip_MapsAndNesting(t *testing.T) {
	type wrapper struct {
		Tags  map[string]string `json:"tags"`
		Inner noteFixture       `json:"inner"`
	}
	in := wrapper{
		Tags:  map[string]string{"a": "1", "b": "2"},
		Inner: noteFixture{ID: "n4", CreatedAt: time.Date(2021, 6, 7, 8, 9, 10, 0, time.UTC)},
	}

	data, err := EncodeWithDates(in)
	require.NoError(t, err)

	var out wrapper
	require.NoError(t, DecodeWithDates(data, &out))
	assert.Equal(t, in.Tags, out.Tags)
	assert.True(t, out.Inner.CreatedAt.Equal(in.Inner.CreatedAt))
}
