package catalog

import (
	"context"
	"time"

	"paperpen/db"
	"paperpen/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Merge combines the bundled catalog with the remote products collection.
// Products present in both are merged by id: colors and sizes are unioned
// rather than overwritten, scalar fields take the remote value when it is
// set. A product missing remotely but present locally survives the merge.
func Merge(local, remote []models.Product) []models.Product {
	merged := make([]models.Product, len(local))
	index := make(map[string]int, len(local))
	for i, p := range local {
		merged[i] = p
		index[p.ProductID] = i
	}

	for _, r := range remote {
		i, ok := index[r.ProductID]
		if !ok {
			index[r.ProductID] = len(merged)
			merged = append(merged, r)
			continue
		}

		m := merged[i]
		if r.Name != "" {
			m.Name = r.Name
		}
		if r.Category != "" {
			m.Category = r.Category
		}
		if r.Price != 0 {
			m.Price = r.Price
		}
		if r.Image != "" {
			m.Image = r.Image
		}
		if r.Description != "" {
			m.Description = r.Description
		}
		m.Colors = unionStrings(m.Colors, r.Colors)
		m.Sizes = unionStrings(m.Sizes, r.Sizes)
		merged[i] = m
	}

	return merged
}

func unionStrings(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// List returns the merged catalog. An unreachable products collection is an
// error; an empty one is not, callers render "no products" on zero results.
func List(ctx context.Context) ([]models.Product, error) {
	findCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := db.ProductCollection.Find(findCtx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(findCtx)

	var remote []models.Product
	if err := cursor.All(findCtx, &remote); err != nil {
		return nil, err
	}

	return Merge(Seed, remote), nil
}

// Find locates one product in the merged catalog.
func Find(ctx context.Context, productID string) (models.Product, bool, error) {
	products, err := List(ctx)
	if err != nil {
		return models.Product{}, false, err
	}
	for _, p := range products {
		if p.ProductID == productID {
			return p, true, nil
		}
	}
	return models.Product{}, false, nil
}
