package redis

import "github.com/redis/rueidis"

// NewForTest creates an Index with the provided rueidis client (test-only).
func NewForTest(c rueidis.Client) *Index {
	return &Index{client: c, prefix: "iris:researcher:", hnswM: 32, hnswEF: 400}
}
