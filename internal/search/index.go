package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/models"
)

type Document struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Slug             string  `json:"slug"`
	SKU              string  `json:"sku"`
	Description      string  `json:"description"`
	ShortDescription string  `json:"short_description"`
	SearchKeywords   string  `json:"search_keywords"`
	Brand            string  `json:"brand,omitempty"`
	Category         string  `json:"category,omitempty"`
	Price            float64 `json:"price"`
	IsActive         bool    `json:"is_active"`
}

func DocumentFromProduct(p *models.Product) Document {
	doc := Document{
		ID:               p.ID.String(),
		Title:            p.Title,
		Slug:             p.Slug,
		SKU:              p.SKU,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		SearchKeywords:   p.SearchKeywords,
		Price:            p.Price.InexactFloat64(),
		IsActive:         p.IsActive,
	}
	if p.Brand != nil {
		doc.Brand = p.Brand.Name
	}
	if p.Category != nil {
		doc.Category = p.Category.Name
	}
	return doc
}

// Index is the product search backend.
type Index interface {
	IndexProduct(ctx context.Context, doc Document) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, from, size int) (int64, []uuid.UUID, error)
}

type ESIndex struct {
	ES    *elasticsearch.Client
	Index string
}

const mapping = `{
  "mappings": {
    "properties": {
      "id":                {"type": "keyword"},
      "title":             {"type": "text"},
      "slug":              {"type": "keyword"},
      "sku":               {"type": "keyword"},
      "description":       {"type": "text"},
      "short_description": {"type": "text"},
      "search_keywords":   {"type": "text"},
      "brand":             {"type": "text"},
      "category":          {"type": "text"},
      "price":             {"type": "scaled_float", "scaling_factor": 100},
      "is_active":         {"type": "boolean"}
    }
  }
}`

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("elasticsearch %s: %s: %s", op, res.Status(), bytes.TrimSpace(body))
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (x *ESIndex) EnsureIndex(ctx context.Context) error {
	res, err := x.ES.Indices.Exists([]string{x.Index}, x.ES.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = x.ES.Indices.Create(x.Index,
		x.ES.Indices.Create.WithContext(ctx),
		x.ES.Indices.Create.WithBody(bytes.NewReader([]byte(mapping))),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res)
	}
	return nil
}

func (x *ESIndex) IndexProduct(ctx context.Context, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("elasticsearch marshal: %w", err)
	}
	res, err := x.ES.Index(x.Index, bytes.NewReader(body),
		x.ES.Index.WithContext(ctx),
		x.ES.Index.WithDocumentID(doc.ID),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index", res)
	}
	return nil
}

func (x *ESIndex) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res, err := x.ES.Delete(x.Index, id.String(), x.ES.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch delete: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res)
	}
	return nil
}

func searchBody(query string, from, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     query,
						"fields":    []string{"title^3", "search_keywords^2", "brand", "category", "short_description", "description"},
						"fuzziness": "AUTO",
					},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"is_active": true}},
				},
			},
		},
		"_source": []string{"id"},
		"from":    from,
		"size":    size,
	}
}

// Search returns the total hit count and the ids of the requested page in relevance order.
func (x *ESIndex) Search(ctx context.Context, query string, from, size int) (int64, []uuid.UUID, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchBody(query, from, size)); err != nil {
		return 0, nil, fmt.Errorf("elasticsearch encode: %w", err)
	}

	res, err := x.ES.Search(
		x.ES.Search.WithContext(ctx),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(&buf),
		x.ES.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, responseError("search", res)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("elasticsearch decode: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return r.Hits.Total.Value, ids, nil
}
