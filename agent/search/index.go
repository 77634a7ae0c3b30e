// Package search provides semantic product search: catalog entries are
// embedded once at load, queries are embedded per call and ranked by cosine
// similarity, and the top matches are summarized for the user.
package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/kopibot/agent/contract"
)

const (
	defaultTopK      = 3
	noResultsSummary = "No products found matching your query."
)

// Product is one searchable catalog entry.
type Product struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

// Document renders the text that gets embedded for this product.
func (p Product) Document() string {
	return fmt.Sprintf("%s %s Category: %s", p.Name, p.Description, p.Category)
}

// Result pairs a matched product with its similarity score.
type Result struct {
	Product Product `json:"product"`
	Score   float64 `json:"score"`
}

// Response carries the ranked matches plus a natural-language summary.
type Response struct {
	Results []Result `json:"results"`
	Summary string   `json:"summary"`
}

// Index is an in-memory vector index over the product catalog. Entries are
// embedded on Add and scored against the query on Search.
type Index struct {
	embedder   Embedder
	summarizer contractx.Completer

	mu      sync.RWMutex
	entries []entry
}

type entry struct {
	product Product
	vector  []float64
}

// NewIndex builds an empty index. The summarizer is optional: without one,
// searches fall back to a templated summary line.
func NewIndex(embedder Embedder, summarizer contractx.Completer) (*Index, error) {
	if embedder == nil {
		return nil, fmt.Errorf("%w: embedder is required", contractx.ErrValidation)
	}
	return &Index{embedder: embedder, summarizer: summarizer}, nil
}

// Add embeds the given products and appends them to the index.
func (ix *Index) Add(ctx context.Context, products ...Product) error {
	if len(products) == 0 {
		return nil
	}

	docs := make([]string, len(products))
	for i, p := range products {
		docs[i] = p.Document()
	}

	vectors, err := ix.embedder.Embed(ctx, docs)
	if err != nil {
		return fmt.Errorf("index products: %w", err)
	}
	if len(vectors) != len(products) {
		return fmt.Errorf("index products: got %d vectors for %d products", len(vectors), len(products))
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	for i, p := range products {
		ix.entries = append(ix.entries, entry{product: p, vector: vectors[i]})
	}
	return nil
}

// Len reports how many products are indexed.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Search embeds the query, ranks all indexed products by cosine similarity,
// and returns the top k with a summary. k defaults to 3 when non-positive.
func (ix *Index) Search(ctx context.Context, query string, k int) (Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Response{}, fmt.Errorf("%w: search query is empty", contractx.ErrValidation)
	}
	if k <= 0 {
		k = defaultTopK
	}

	vectors, err := ix.embedder.Embed(ctx, []string{query})
	if err != nil {
		return Response{}, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return Response{}, fmt.Errorf("embed query: got %d vectors for one text", len(vectors))
	}

	results := ix.topK(vectors[0], k)
	if len(results) == 0 {
		return Response{Summary: noResultsSummary}, nil
	}

	return Response{
		Results: results,
		Summary: ix.summarize(ctx, query, results),
	}, nil
}

func (ix *Index) topK(query []float64, k int) []Result {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	results := make([]Result, 0, len(ix.entries))
	for _, e := range ix.entries {
		results = append(results, Result{
			Product: e.product,
			Score:   cosineSimilarity(query, e.vector),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results
}

func (ix *Index) summarize(ctx context.Context, query string, results []Result) string {
	fallback := fmt.Sprintf("Found %d products matching your query. Top result: %s",
		len(results), results[0].Product.Name)
	if ix.summarizer == nil {
		return fallback
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Query: %s\n\nFound products:\n", query)
	for _, r := range results {
		fmt.Fprintf(&sb, "- %s: %s ($%.2f)\n", r.Product.Name, r.Product.Description, r.Product.Price)
	}

	summary, err := ix.summarizer.Complete(ctx, nil, sb.String())
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("search summary failed, using fallback")
		return fallback
	}
	return summary
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// DefaultCatalog returns the built-in drinkware catalog used when no external
// product source is configured.
func DefaultCatalog() []Product {
	return []Product{
		{
			Name:        "Classic Tumbler 500ml",
			Description: "Double-wall stainless steel tumbler with a spill-resistant screw-on lid, keeps drinks hot for 6 hours",
			Category:    "Drinkware",
			Price:       55,
		},
		{
			Name:        "Cold Cup 650ml",
			Description: "Clear acrylic cup with reusable straw, made for iced coffee and cold brew",
			Category:    "Drinkware",
			Price:       39,
		},
		{
			Name:        "Ceramic Mug 350ml",
			Description: "Matte-glazed ceramic mug with a wide handle, dishwasher and microwave safe",
			Category:    "Drinkware",
			Price:       29,
		},
		{
			Name:        "Travel Flask 750ml",
			Description: "Vacuum-insulated flask with a leakproof flip cap and carry loop for commutes and hikes",
			Category:    "Drinkware",
			Price:       79,
		},
		{
			Name:        "Espresso Cup Set",
			Description: "Set of two 90ml porcelain espresso cups with saucers",
			Category:    "Drinkware",
			Price:       45,
		},
		{
			Name:        "Glass Straw Set",
			Description: "Four borosilicate glass straws with a cleaning brush and cotton pouch",
			Category:    "Accessories",
			Price:       19,
		},
	}
}
