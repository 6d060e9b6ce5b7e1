package container

import "time"

// Backend names.
const (
	BackendMemory     = "memory"
	BackendRedis      = "redis"
	BackendPostgres   = "postgres"
	BackendCloudflare = "cloudflare"
	BackendNone       = "none"
	BackendLog        = "log"
)

// Options configures the service. Every field can be set by flag or by a
// SERVICE_ prefixed environment variable. Durations are in seconds.
type Options struct {
	Port      int    `default:"8888"    help:"Port to listen on"                                        short:"p"`
	LogFormat string `default:"console" help:"Log format: console or json"`
	BaseURL   string `default:""        help:"Public base URL for short links when a request has no Host"`

	Backend      string `default:"memory"                                             help:"Short link backend: memory, redis, postgres or cloudflare"`
	ShortLinkTTL int    `default:"604800"                                             help:"Short link lifetime in seconds"`
	CacheTTL     int    `default:"0"                                                  help:"Redis read-through cache TTL in seconds for postgres and cloudflare; 0 disables"`
	RedisAddr    string `default:"localhost:6379"                                     help:"Redis server address"                                     short:"r"`
	DatabaseURL  string `default:"postgres://localhost:5432/qrshare?sslmode=disable" help:"Postgres connection string"`

	KVNamespaceID string `default:"" help:"Cloudflare Workers KV namespace ID"`
	KVAPIToken    string `default:"" help:"Cloudflare API token with KV write access"`
	KVAPIBase     string `default:"" help:"Cloudflare API base URL override"`

	R2AccountID       string `default:""         help:"Cloudflare account ID, shared by R2 and KV"`
	R2AccessKeyID     string `default:""         help:"Object storage access key ID"`
	R2SecretAccessKey string `default:""         help:"Object storage secret access key"`
	R2BucketName      string `default:""         help:"Object storage bucket"`
	R2Endpoint        string `default:""         help:"S3 endpoint override, e.g. a MinIO URL"`
	R2PublicDomain    string `default:""         help:"Public bucket domain for unsigned download URLs"`
	MaxUploadSize     int    `default:"10485760" help:"Largest accepted upload in bytes"`
	UploadURLExpiry   int    `default:"300"      help:"Upload URL lifetime in seconds"`
	DownloadURLExpiry int    `default:"3600"     help:"Download URL lifetime in seconds"`

	AccessPassword     string `default:"" help:"Shared password for uploads and short link creation"`
	AccessPasswordHash string `default:"" help:"bcrypt hash of the shared password, used instead of AccessPassword"`

	RateLimitBackend string `default:"memory" help:"Rate limit store: memory or redis"`
	ShortenPerMinute int    `default:"10"     help:"Short link creations per client per minute"`
	UploadPerMinute  int    `default:"30"     help:"Presign requests per client per minute"`

	EventsBackend  string `default:"memory" help:"Analytics transport: memory, redis or none"`
	AnalyticsStore string `default:"log"    help:"Analytics sink for consumed events: log or redis"`
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// UsesRedis reports whether any configured component needs Redis.
func (o *Options) UsesRedis() bool {
	return o.Backend == BackendRedis ||
		(o.CacheTTL > 0 && (o.Backend == BackendPostgres || o.Backend == BackendCloudflare)) ||
		o.RateLimitBackend == BackendRedis ||
		o.EventsBackend == BackendRedis ||
		o.AnalyticsStore == BackendRedis
}
