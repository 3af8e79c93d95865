package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	at := func(ms int) time.Time { return base.Add(time.Duration(ms) * time.Millisecond) }

	cases := []struct {
		name   string
		clicks []Click
		want   []Intent
	}{
		{
			name:   "single click navigates",
			clicks: []Click{{TargetID: 1, At: at(0)}},
			want:   []Intent{IntentNavigate},
		},
		{
			name: "double click inside the window toggles",
			clicks: []Click{
				{TargetID: 1, At: at(0)},
				{TargetID: 1, At: at(150)},
			},
			want: []Intent{IntentToggleFavourite},
		},
		{
			name: "second click past the window is two navigations",
			clicks: []Click{
				{TargetID: 1, At: at(0)},
				{TargetID: 1, At: at(300)},
			},
			want: []Intent{IntentNavigate, IntentNavigate},
		},
		{
			name: "clicks on different targets never collapse",
			clicks: []Click{
				{TargetID: 1, At: at(0)},
				{TargetID: 2, At: at(50)},
			},
			want: []Intent{IntentNavigate, IntentNavigate},
		},
		{
			name: "toggle then a later single click",
			clicks: []Click{
				{TargetID: 1, At: at(0)},
				{TargetID: 1, At: at(100)},
				{TargetID: 1, At: at(600)},
			},
			want: []Intent{IntentToggleFavourite, IntentNavigate},
		},
		{
			name:   "no clicks, no intents",
			clicks: nil,
			want:   nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.clicks, DefaultWindow)
			require.Len(t, got, len(tc.want))
			for i, intent := range tc.want {
				require.Equal(t, intent, got[i].Intent)
			}
		})
	}
}

func TestClassifyAttributesTargets(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clicks := []Click{
		{TargetID: 7, At: base},
		{TargetID: 7, At: base.Add(100 * time.Millisecond)},
		{TargetID: 9, At: base.Add(time.Second)},
	}

	got := Classify(clicks, 0) // zero window falls back to the default
	require.Len(t, got, 2)
	require.Equal(t, 7, got[0].TargetID)
	require.Equal(t, IntentToggleFavourite, got[0].Intent)
	require.Equal(t, 9, got[1].TargetID)
	require.Equal(t, IntentNavigate, got[1].Intent)
}
