// Package redis implements the vector-index contract on Redis 8+
// FT.SEARCH with an HNSW cosine index, via rueidis.
package redis

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/iris-research/iris/internal/index"
)

// Compile-time check: Index implements index.Store.
var _ index.Store = (*Index)(nil)

// Config holds connection and index parameters.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int

	// KeyPrefix namespaces record hashes; the FT index is <prefix>idx.
	KeyPrefix string

	HNSWM           int
	HNSWEFConstruct int
}

// Index is a Redis-backed vector index over researcher embeddings.
type Index struct {
	client rueidis.Client
	prefix string
	hnswM  int
	hnswEF int
}

// New connects to Redis and returns the index handle.
func New(cfg Config) (*Index, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
		AlwaysRESP2:  true, // FT.SEARCH result parsing expects RESP2 array format
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "iris:researcher:"
	}
	hnswM := cfg.HNSWM
	if hnswM <= 0 {
		hnswM = 32
	}
	hnswEF := cfg.HNSWEFConstruct
	if hnswEF <= 0 {
		hnswEF = 400
	}

	return &Index{client: client, prefix: prefix, hnswM: hnswM, hnswEF: hnswEF}, nil
}

// Ping checks connectivity.
func (x *Index) Ping(ctx context.Context) error {
	cmd := x.client.B().Ping().Build()
	if err := x.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (x *Index) Close() {
	x.client.Close()
}

// WaitForReady polls Ping until the index responds or timeout expires.
func (x *Index) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for index: %w", ctx.Err())
		case <-ticker.C:
			if err := x.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

func (x *Index) indexName() string { return x.prefix + "idx" }

// EnsureIndex creates the HNSW cosine index if absent.
func (x *Index) EnsureIndex(ctx context.Context, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("dimensions must be positive")
	}

	args := []string{
		x.indexName(),
		"ON", "HASH",
		"PREFIX", "1", x.prefix,
		"SCHEMA",
		"__vector", "VECTOR", "HNSW", "10",
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(dimensions),
		"DISTANCE_METRIC", "COSINE",
		"M", strconv.Itoa(x.hnswM),
		"EF_CONSTRUCTION", strconv.Itoa(x.hnswEF),
		"name", "TAG",
		"institution", "TAG",
		"h_index", "NUMERIC",
	}

	cmd := x.client.B().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := x.client.Do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return nil
		}
		return fmt.Errorf("ft.create %s: %w", x.indexName(), err)
	}
	return nil
}

// Upsert writes one record hash: the embedding blob plus display fields.
func (x *Index) Upsert(ctx context.Context, id int, vector []float32, fields map[string]string) error {
	if len(vector) == 0 {
		return fmt.Errorf("vector is required")
	}

	key := x.prefix + strconv.Itoa(id)
	b := x.client.B().Hset().Key(key).FieldValue().
		FieldValue("__vector", vectorToBytes(vector))
	for k, v := range fields {
		b = b.FieldValue(k, v)
	}

	if err := x.client.Do(ctx, b.Build()).Error(); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Search runs a KNN query and returns candidates with cosine similarity
// in [0,1] (1 - reported distance, clamped).
func (x *Index) Search(ctx context.Context, vector []float32, k int) ([]index.Candidate, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("vector is required")
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	queryStr := fmt.Sprintf("*=>[KNN %d @__vector $BLOB]", k)
	args := []string{
		x.indexName(), queryStr,
		"RETURN", "1", "__vector_score",
		"PARAMS", "2", "BLOB", vectorToBytes(vector),
		"DIALECT", "2",
		"LIMIT", "0", strconv.Itoa(k),
	}

	cmd := x.client.B().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := x.client.Do(ctx, cmd).ToArray()
	if err != nil {
		return nil, fmt.Errorf("ft.search %s: %w", x.indexName(), err)
	}

	return parseKNNResult(raw, x.prefix)
}

// parseKNNResult decodes the RESP2 FT.SEARCH reply:
// [total, key1, fields1, key2, fields2, ...].
func parseKNNResult(raw []rueidis.RedisMessage, prefix string) ([]index.Candidate, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	candidates := make([]index.Candidate, 0, total)
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		id, err := strconv.Atoi(strings.TrimPrefix(key, prefix))
		if err != nil {
			continue
		}

		fieldArr, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}
		fields := parseFieldPairs(fieldArr)

		sim := 0.0
		if scoreStr, ok := fields["__vector_score"]; ok {
			if d, err := strconv.ParseFloat(scoreStr, 64); err == nil {
				sim = max(0, 1.0-d) // cosine distance → similarity, clamped to [0,1]
			}
		}

		candidates = append(candidates, index.Candidate{ID: id, Similarity: sim})
	}

	return candidates, nil
}

func parseFieldPairs(arr []rueidis.RedisMessage) map[string]string {
	fields := make(map[string]string, len(arr)/2)
	for i := 0; i+1 < len(arr); i += 2 {
		k, err := arr[i].ToString()
		if err != nil {
			continue
		}
		v, err := arr[i+1].ToString()
		if err != nil {
			continue
		}
		fields[k] = v
	}
	return fields
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// isRedisErr checks if err is a Redis server error containing substr (case-insensitive).
func isRedisErr(err error, substr string) bool {
	re, ok := rueidis.IsRedisErr(err)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(re.Error()), strings.ToLower(substr))
}
