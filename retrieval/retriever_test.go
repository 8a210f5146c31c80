package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/creastat/scoutchat/logger"
	"github.com/creastat/scoutchat/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	vectors [][]float32
	err     error
	inputs  []string
}

func (f *fakeEmbedder) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	f.inputs = inputs
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors, nil
}

type fakeStore struct {
	results   []vectorstore.SearchResult
	err       error
	gotLimit  int
	gotFilter vectorstore.SearchFilter
}

func (f *fakeStore) Search(ctx context.Context, vector []float32, filter vectorstore.SearchFilter, limit int) ([]vectorstore.SearchResult, error) {
	f.gotLimit = limit
	f.gotFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeStore) Close() error { return nil }

func TestRetrieveFormatsDocuments(t *testing.T) {
	store := &fakeStore{results: []vectorstore.SearchResult{
		{ID: "1", Score: 0.9, Content: "John Doe, winger, 22 years old."},
		{ID: "2", Score: 0.8, Content: "Sam Roe, keeper."},
	}}
	emb := &fakeEmbedder{vectors: [][]float32{{0.1, 0.2}}}
	r := New(emb, store, Config{TopK: 5, MinScore: 0.3}, logger.NewNop())

	out, err := r.Retrieve(context.Background(), "who is the best winger?")
	require.NoError(t, err)
	assert.Equal(t, "Document 1:\nJohn Doe, winger, 22 years old.\n\nDocument 2:\nSam Roe, keeper.", out)
	assert.Equal(t, []string{"who is the best winger?"}, emb.inputs)
	assert.Equal(t, 5, store.gotLimit)
	assert.Equal(t, float32(0.3), store.gotFilter.MinScore)
}

func TestRetrieveSkipsEmptyContent(t *testing.T) {
	store := &fakeStore{results: []vectorstore.SearchResult{
		{ID: "1", Score: 0.9, Content: "   "},
		{ID: "2", Score: 0.8, Content: "Sam Roe, keeper."},
	}}
	r := New(&fakeEmbedder{vectors: [][]float32{{0.1}}}, store, Config{}, logger.NewNop())

	out, err := r.Retrieve(context.Background(), "keepers?")
	require.NoError(t, err)
	assert.Equal(t, "Document 1:\nSam Roe, keeper.", out)
}

func TestRetrieveEmptyQuestionSkipsSearch(t *testing.T) {
	emb := &fakeEmbedder{vectors: [][]float32{{0.1}}}
	r := New(emb, &fakeStore{}, Config{}, logger.NewNop())

	out, err := r.Retrieve(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Nil(t, emb.inputs)
}

func TestRetrieveDefaultsTopK(t *testing.T) {
	store := &fakeStore{}
	r := New(&fakeEmbedder{vectors: [][]float32{{0.1}}}, store, Config{}, logger.NewNop())

	_, err := r.Retrieve(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, 10, store.gotLimit)
}

func TestRetrieveEmbedFailure(t *testing.T) {
	r := New(&fakeEmbedder{err: errors.New("quota")}, &fakeStore{}, Config{}, logger.NewNop())

	_, err := r.Retrieve(context.Background(), "q")
	assert.Error(t, err)
}

func TestRetrieveSearchFailure(t *testing.T) {
	r := New(&fakeEmbedder{vectors: [][]float32{{0.1}}}, &fakeStore{err: errors.New("down")}, Config{}, logger.NewNop())

	_, err := r.Retrieve(context.Background(), "q")
	assert.Error(t, err)
}
