package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/catalog"
)

func TestAppendOrderPreserved(t *testing.T) {
	tr := New()
	tr.AppendUser("laptop")
	tr.AppendBot(`Found 1 product matching "laptop":`, KindPlain)
	tr.AppendCard(catalog.Product{ID: "a", Name: "Gaming Laptop"})

	msgs := tr.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, SenderUser, msgs[0].Sender)
	assert.Equal(t, SenderBot, msgs[1].Sender)
	require.NotNil(t, msgs[2].Product)
	assert.Equal(t, "Gaming Laptop", msgs[2].Product.Name)
}

func TestMessagesReturnsCopy(t *testing.T) {
	tr := New()
	tr.AppendUser("one")

	msgs := tr.Messages()
	msgs[0].Text = "mutated"

	assert.Equal(t, "one", tr.Messages()[0].Text)
}

func TestTimestampsAssigned(t *testing.T) {
	tr := New()
	tr.AppendUser("hello")
	assert.False(t, tr.Messages()[0].Time.IsZero())
}

func TestClear(t *testing.T) {
	tr := New()
	tr.AppendUser("one")
	tr.AppendBot("two", KindPlain)
	require.Equal(t, 2, tr.Len())

	tr.Clear()
	assert.Zero(t, tr.Len())
	assert.Empty(t, tr.Messages())
}

func TestKindsArePresentationOnly(t *testing.T) {
	tr := New()
	tr.AppendBot("added", KindSuccess)
	tr.AppendBot("failed", KindError)

	msgs := tr.Messages()
	assert.Equal(t, KindSuccess, msgs[0].Kind)
	assert.Equal(t, KindError, msgs[1].Kind)
}
