package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/mhbaltimore/directory/internal/domain/entities"
	"github.com/mhbaltimore/directory/internal/domain/providers"
	tsclient "github.com/mhbaltimore/directory/internal/infrastructure/clients/typesense"
)

const collectionName = "directory_entries"

// TypesenseAdapter implements the directory suggestion index using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ providers.DirectoryIndex = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

func collectionSchema() *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "kind", Type: "string", Facet: pointer.True()},
			{Name: "name", Type: "string"},
			{Name: "subtitle", Type: "string", Optional: pointer.True()},
			{Name: "city", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "zip_code", Type: "string", Optional: pointer.True()},
			{Name: "issues", Type: "string[]", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "featured_rank", Type: "int32"},
		},
		DefaultSortingField: pointer.String("featured_rank"),
	}
}

// EnsureCollection creates the collection if it does not exist yet
func (a *TypesenseAdapter) EnsureCollection(ctx context.Context) error {
	if _, err := a.client.Client().Collection(collectionName).Retrieve(ctx); err == nil {
		return nil
	}

	if _, err := a.client.Client().Collections().Create(ctx, collectionSchema()); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}
	return nil
}

// DropCollection deletes the collection and its documents. A missing
// collection is not an error.
func (a *TypesenseAdapter) DropCollection(ctx context.Context) error {
	if _, err := a.client.Client().Collection(collectionName).Retrieve(ctx); err != nil {
		return nil
	}
	if _, err := a.client.Client().Collection(collectionName).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete typesense collection: %w", err)
	}
	return nil
}

func toDocument(e *entities.DirectoryEntry) map[string]interface{} {
	rank := 0
	if e.Featured {
		rank = 1
	}
	issues := e.Issues
	if issues == nil {
		issues = []string{}
	}
	return map[string]interface{}{
		"id":            e.ID,
		"kind":          e.Kind,
		"name":          e.Name,
		"subtitle":      e.Subtitle,
		"city":          e.City,
		"zip_code":      e.ZipCode,
		"issues":        issues,
		"featured_rank": rank,
	}
}

// Upsert indexes or replaces each entry
func (a *TypesenseAdapter) Upsert(ctx context.Context, entries []*entities.DirectoryEntry) error {
	documents := a.client.Client().Collection(collectionName).Documents()
	for _, e := range entries {
		if _, err := documents.Upsert(ctx, toDocument(e)); err != nil {
			return fmt.Errorf("failed to index %s %s: %w", e.Kind, e.ID, err)
		}
	}
	return nil
}

// Suggest runs a prefix search over names, featured entries first
func (a *TypesenseAdapter) Suggest(ctx context.Context, query string, limit int) ([]*entities.DirectoryEntry, error) {
	params := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,subtitle"),
		SortBy:  pointer.String("_text_match:desc,featured_rank:desc"),
		Prefix:  pointer.String("true"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search directory: %w", err)
	}

	entries := []*entities.DirectoryEntry{}
	if result.Hits == nil {
		return entries, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		if e := fromDocument(*hit.Document); e != nil {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// fromDocument rebuilds an entry from a search hit; hits without id or name
// are skipped.
func fromDocument(doc map[string]interface{}) *entities.DirectoryEntry {
	id, _ := doc["id"].(string)
	name, _ := doc["name"].(string)
	if id == "" || name == "" {
		return nil
	}
	e := &entities.DirectoryEntry{ID: id, Name: name}
	e.Kind, _ = doc["kind"].(string)
	e.Subtitle, _ = doc["subtitle"].(string)
	e.City, _ = doc["city"].(string)
	e.ZipCode, _ = doc["zip_code"].(string)
	if rank, ok := doc["featured_rank"].(float64); ok {
		e.Featured = rank > 0
	}
	if raw, ok := doc["issues"].([]interface{}); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				e.Issues = append(e.Issues, s)
			}
		}
	}
	return e
}
