package events

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTopic_PublishInSubscriptionOrder(t *testing.T) {
	topic := NewTopic[SaveRequested]()

	var seen []string
	topic.Subscribe(func(e SaveRequested) { seen = append(seen, "first:"+e.DirName) })
	topic.Subscribe(func(e SaveRequested) { seen = append(seen, "second:"+e.Name) })

	topic.Publish(SaveRequested{DirName: "alpha", Name: "Alpha"})

	require.Equal(t, []string{"first:alpha", "second:Alpha"}, seen)
	require.Equal(t, 2, topic.Subscribers())
}

func TestTopic_PublishWithoutSubscribers(t *testing.T) {
	topic := NewTopic[ReloadRequested]()
	require.NotPanics(t, func() {
		topic.Publish(ReloadRequested{RootPath: "/srv"})
	})
}
