package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	categoriesKey   = "taxonomy:categories"
	tagsKey         = "taxonomy:tags"
	technologiesKey = "taxonomy:technologies"
	skillsKey       = "taxonomy:skills:%s"
	statsKey        = "blog:stats"
)

const (
	TaxonomyTTL = 10 * time.Minute
	StatsTTL    = 5 * time.Minute
)

func CategoriesKey() string { return categoriesKey }

func TagsKey() string { return tagsKey }

func TechnologiesKey() string { return technologiesKey }

func SkillsKey(category string) string {
	return fmt.Sprintf(skillsKey, category)
}

func StatsKey() string { return statsKey }

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateTaxonomies drops every cached taxonomy list. Called after any
// staff write to categories, tags, technologies or skills.
func InvalidateTaxonomies(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, categoriesKey, tagsKey, technologiesKey, statsKey)
	iter := client.Scan(ctx, 0, "taxonomy:skills:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
