package canvas

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/edukit-io/canvas/internal/constants"
)

// cachedResponseKey marks a request whose response was served from cache.
const cachedResponseKey = "cached_response"

// CacheInterceptor returns a request/response interceptor pair that serves
// cacheable GETs from the manager and stores fresh responses back into it.
func CacheInterceptor(manager *CacheManager, policy *CachingPolicy) (RequestInterceptor, ResponseInterceptor) {
	if policy == nil {
		policy = DefaultCachingPolicy()
	}

	requestInterceptor := func(ctx context.Context, req *Request) error {
		if req.Method != http.MethodGet {
			return nil
		}

		key := manager.GetCacheKey(req.Method, req.Path, nil)

		entry, err := manager.GetEntry(ctx, key)
		if err != nil {
			return nil
		}

		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata[cachedResponseKey] = entry

		return nil
	}

	responseInterceptor := func(ctx context.Context, req *Request, resp *Response) error {
		if resp.Error != nil {
			return nil
		}

		if !policy.ShouldCache(req.Method, req.Path, resp.StatusCode) {
			return nil
		}

		key := manager.GetCacheKey(req.Method, req.Path, nil)
		etag := ""

		if resp.Headers != nil {
			etag = resp.Headers.Get("ETag")
		}

		return manager.SetWithETag(ctx, key, resp.Body, etag, policy.TTLFor(req.Path))
	}

	return requestInterceptor, responseInterceptor
}

// ConditionalRequestInterceptor attaches If-None-Match when a cached entry
// with an ETag exists, so the server can answer 304.
func ConditionalRequestInterceptor(manager *CacheManager) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Method != http.MethodGet {
			return nil
		}

		key := manager.GetCacheKey(req.Method, req.Path, nil)

		entry, err := manager.GetEntry(ctx, key)
		if err != nil || entry.ETag == "" {
			return nil
		}

		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		req.Headers.Set("If-None-Match", entry.ETag)

		return nil
	}
}

// CacheInvalidationInterceptor drops cached GET responses for a resource after
// a successful mutation of that resource.
func CacheInvalidationInterceptor(manager *CacheManager) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		switch req.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
		default:
			return nil
		}

		if resp.StatusCode >= 400 {
			return nil
		}

		// Invalidate the resource itself and its collection.
		key := manager.GetCacheKey(http.MethodGet, req.Path, nil)
		_ = manager.Invalidate(ctx, key)

		if idx := strings.LastIndex(req.Path, "/"); idx > 0 {
			collectionKey := manager.GetCacheKey(http.MethodGet, req.Path[:idx], nil)
			_ = manager.Invalidate(ctx, collectionKey)
		}

		return nil
	}
}

// SmartCacheConfig bundles the caching interceptors with per-resource TTLs.
type SmartCacheConfig struct {
	EnableSmartInvalidation   bool
	EnableConditionalRequests bool
	EnableMetrics             bool
	// ResourceTTLs overrides the default lifetime per resource. Keys follow
	// the CachingPolicy pattern rules: "/"-prefixed keys match the path
	// prefix, bare keys match a collection segment.
	ResourceTTLs map[string]time.Duration
}

// DefaultSmartCacheConfig returns sensible TTLs. Directory data changes
// rarely, course content changes between editing sessions, and grading data
// can change under an open gradebook.
func DefaultSmartCacheConfig() *SmartCacheConfig {
	return &SmartCacheConfig{
		EnableSmartInvalidation:   true,
		EnableConditionalRequests: true,
		EnableMetrics:             true,
		ResourceTTLs: map[string]time.Duration{
			constants.APIPathAccounts: constants.DefaultCacheSetTTL,
			constants.APIPathUsers:    constants.DefaultCacheSetTTL,
			constants.APIPathCourses:  constants.DefaultCacheTTL,
			"submissions":             constants.CacheMinTTL,
			"enrollments":             constants.CacheMinTTL,
		},
	}
}

// ConfigureSmartCache wires the caching interceptors into a chain.
func ConfigureSmartCache(chain *InterceptorChain, manager *CacheManager, config *SmartCacheConfig) {
	if config == nil {
		config = DefaultSmartCacheConfig()
	}

	policy := DefaultCachingPolicy()
	if len(config.ResourceTTLs) > 0 {
		policy.ResourceTTLs = config.ResourceTTLs
	}

	reqInterceptor, respInterceptor := CacheInterceptor(manager, policy)
	chain.AddRequestInterceptor(reqInterceptor)
	chain.AddResponseInterceptor(respInterceptor)

	if config.EnableConditionalRequests {
		chain.AddRequestInterceptor(ConditionalRequestInterceptor(manager))
	}

	if config.EnableSmartInvalidation {
		chain.AddResponseInterceptor(CacheInvalidationInterceptor(manager))
	}

	if config.EnableMetrics {
		collector := NewMetricsCollector()
		chain.AddRequestInterceptor(MetricsRequestInterceptor(collector))
		chain.AddResponseInterceptor(MetricsResponseInterceptor(collector))
	}
}

// CacheWarmer pre-populates the cache with commonly read resources.
type CacheWarmer struct {
	client  Client
	manager *CacheManager
}

// NewCacheWarmer creates a cache warmer.
func NewCacheWarmer(client Client, manager *CacheManager) *CacheWarmer {
	return &CacheWarmer{
		client:  client,
		manager: manager,
	}
}

// WarmCourses fetches the caller's course list so the first real request hits
// the cache.
func (w *CacheWarmer) WarmCourses(ctx context.Context) error {
	if w.client == nil {
		return nil
	}

	_, err := w.client.Courses().List(ctx, nil)

	return err
}

// WarmAccount fetches an account and its terms.
func (w *CacheWarmer) WarmAccount(ctx context.Context, accountID int64) error {
	if w.client == nil {
		return nil
	}

	_, err := w.client.Accounts().Get(ctx, accountID)
	if err != nil {
		return err
	}

	_, err = w.client.Terms().List(ctx, accountID, nil)

	return err
}
