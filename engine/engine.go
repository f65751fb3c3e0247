package engine

import (
	"net/http"
	"time"
)

// Engine bundles the services sources and commands share
type Engine struct {
	Config   *Config
	Logger   *LoggerService
	HTTP     *HTTPService
	DOM      *DOMService
	Cache    *CacheService
	Display  *DisplayService
	Download *DownloadService
}

// New creates an engine from cfg. Pass DefaultConfig() when no user config
// should apply.
func New(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Logger first so every other service can use it
	logger := &LoggerService{
		FilePath: cfg.Log.File,
		Verbose:  cfg.Log.Verbose,
	}

	client := &http.Client{
		Timeout: time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 20,
			IdleConnTimeout:     90 * time.Second,
			DisableCompression:  false,
		},
	}

	cache := NewCacheService(time.Duration(cfg.CacheTTLSeconds) * time.Second)

	defaultHeaders := make(http.Header)
	defaultHeaders.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	defaultHeaders.Set("Accept-Language", "zh-TW,zh;q=0.9,en;q=0.5")

	httpService := &HTTPService{
		Client:         client,
		DefaultHeaders: defaultHeaders,
		UserAgent:      cfg.HTTP.UserAgent,
		MaxRetries:     cfg.HTTP.Retries,
		Cache:          cache,
		Logger:         logger,
	}

	downloadService := &DownloadService{
		Concurrency: cfg.Download.Concurrency,
		Throttle:    200 * time.Millisecond,
		Client:      client,
		Logger:      logger,
		Progress:    true,
	}

	engine := &Engine{
		Config:   cfg,
		Logger:   logger,
		HTTP:     httpService,
		DOM:      &DOMService{},
		Cache:    cache,
		Display:  NewDisplayService(),
		Download: downloadService,
	}

	logger.Info("engine initialized")
	return engine
}

// Close flushes and releases engine resources
func (e *Engine) Close() error {
	return e.Logger.Close()
}
