package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	contractx "github.com/tanpawarit/kopibot/agent/contract"
)

type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
	calls   [][]string
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	f.calls = append(f.calls, texts)
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		v, ok := f.vectors[text]
		if !ok {
			return nil, fmt.Errorf("no fake vector for %q", text)
		}
		out[i] = v
	}
	return out, nil
}

type stubSummarizer struct {
	reply     string
	err       error
	seenInput string
}

func (s *stubSummarizer) Complete(ctx context.Context, history []contractx.Turn, input string) (string, error) {
	s.seenInput = input
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func testProducts() []Product {
	return []Product{
		{Name: "Hot Tumbler", Description: "keeps drinks hot", Category: "Drinkware", Price: 50},
		{Name: "Cold Cup", Description: "for iced drinks", Category: "Drinkware", Price: 30},
		{Name: "Straw Set", Description: "glass straws", Category: "Accessories", Price: 10},
	}
}

func testEmbedder(query string, queryVec []float64) *fakeEmbedder {
	products := testProducts()
	return &fakeEmbedder{
		vectors: map[string][]float64{
			products[0].Document(): {1, 0, 0},
			products[1].Document(): {0, 1, 0},
			products[2].Document(): {0, 0, 1},
			query:                  queryVec,
		},
	}
}

func TestNewIndexRequiresEmbedder(t *testing.T) {
	t.Parallel()

	_, err := NewIndex(nil, nil)
	if err == nil {
		t.Fatal("expected error but got nil")
	}
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAddEmbedsDocumentTexts(t *testing.T) {
	t.Parallel()

	fake := testEmbedder("unused", []float64{1, 0, 0})
	ix, err := NewIndex(fake, nil)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}

	if err := ix.Add(context.Background(), testProducts()...); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if ix.Len() != 3 {
		t.Fatalf("expected 3 indexed products, got %d", ix.Len())
	}

	if len(fake.calls) != 1 {
		t.Fatalf("expected one embed call, got %d", len(fake.calls))
	}
	if got := fake.calls[0][0]; got != "Hot Tumbler keeps drinks hot Category: Drinkware" {
		t.Fatalf("unexpected document text: %q", got)
	}
}

func TestSearchRanksBySimilarity(t *testing.T) {
	t.Parallel()

	query := "something for hot coffee"
	fake := testEmbedder(query, []float64{0.9, 0.1, 0})
	ix, err := NewIndex(fake, nil)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	if err := ix.Add(context.Background(), testProducts()...); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	resp, err := ix.Search(context.Background(), query, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].Product.Name != "Hot Tumbler" {
		t.Fatalf("expected Hot Tumbler first, got %s", resp.Results[0].Product.Name)
	}
	if resp.Results[1].Product.Name != "Cold Cup" {
		t.Fatalf("expected Cold Cup second, got %s", resp.Results[1].Product.Name)
	}
	if resp.Results[0].Score <= resp.Results[1].Score {
		t.Fatalf("expected descending scores, got %f then %f", resp.Results[0].Score, resp.Results[1].Score)
	}

	if resp.Summary != "Found 2 products matching your query. Top result: Hot Tumbler" {
		t.Fatalf("unexpected fallback summary: %q", resp.Summary)
	}
}

func TestSearchDefaultsToThreeResults(t *testing.T) {
	t.Parallel()

	query := "drinkware"
	fake := testEmbedder(query, []float64{0.5, 0.4, 0.3})
	ix, err := NewIndex(fake, nil)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	if err := ix.Add(context.Background(), testProducts()...); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	resp, err := ix.Search(context.Background(), query, 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("expected default of 3 results, got %d", len(resp.Results))
	}
}

func TestSearchSummarizerReceivesContext(t *testing.T) {
	t.Parallel()

	query := "something for hot coffee"
	fake := testEmbedder(query, []float64{0.9, 0.1, 0})
	summarizer := &stubSummarizer{reply: "The Hot Tumbler is your best match for hot coffee."}
	ix, err := NewIndex(fake, summarizer)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	if err := ix.Add(context.Background(), testProducts()...); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	resp, err := ix.Search(context.Background(), query, 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.Summary != "The Hot Tumbler is your best match for hot coffee." {
		t.Fatalf("unexpected summary: %q", resp.Summary)
	}

	if !strings.Contains(summarizer.seenInput, "Query: something for hot coffee") {
		t.Fatalf("expected query in summarizer context, got %q", summarizer.seenInput)
	}
	if !strings.Contains(summarizer.seenInput, "- Hot Tumbler: keeps drinks hot ($50.00)") {
		t.Fatalf("expected product line in summarizer context, got %q", summarizer.seenInput)
	}
}

func TestSearchSummarizerFailureFallsBack(t *testing.T) {
	t.Parallel()

	query := "something for hot coffee"
	fake := testEmbedder(query, []float64{0.9, 0.1, 0})
	summarizer := &stubSummarizer{err: errors.New("model down")}
	ix, err := NewIndex(fake, summarizer)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	if err := ix.Add(context.Background(), testProducts()...); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	resp, err := ix.Search(context.Background(), query, 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.Summary != "Found 1 products matching your query. Top result: Hot Tumbler" {
		t.Fatalf("unexpected fallback summary: %q", resp.Summary)
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	t.Parallel()

	query := "anything"
	fake := &fakeEmbedder{vectors: map[string][]float64{query: {1, 0, 0}}}
	ix, err := NewIndex(fake, nil)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}

	resp, err := ix.Search(context.Background(), query, 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 0 {
		t.Fatalf("expected no results, got %d", len(resp.Results))
	}
	if resp.Summary != "No products found matching your query." {
		t.Fatalf("unexpected summary: %q", resp.Summary)
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	t.Parallel()

	fake := &fakeEmbedder{}
	ix, err := NewIndex(fake, nil)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}

	_, err = ix.Search(context.Background(), "   ", 3)
	if err == nil {
		t.Fatal("expected error but got nil")
	}
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
