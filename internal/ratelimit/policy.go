package ratelimit

import "time"

// LimitConfig allows at most Max requests per sliding Window.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// Policy maps scopes to the limits enforced for them. Scopes without an
// entry are unlimited.
type Policy struct {
	Limits map[Scope][]LimitConfig
}

// PolicyBuilder assembles a Policy.
type PolicyBuilder struct {
	limits map[Scope][]LimitConfig
}

func NewPolicyBuilder() *PolicyBuilder {
	return &PolicyBuilder{limits: make(map[Scope][]LimitConfig)}
}

// AddLimit appends a limit for scope. Non-positive max or window values are ignored.
func (b *PolicyBuilder) AddLimit(scope Scope, maxRequests int64, window time.Duration) *PolicyBuilder {
	if maxRequests <= 0 || window <= 0 {
		return b
	}

	b.limits[scope] = append(b.limits[scope], LimitConfig{Window: window, Max: maxRequests})

	return b
}

func (b *PolicyBuilder) Build() *Policy {
	limits := make(map[Scope][]LimitConfig, len(b.limits))
	for scope, configs := range b.limits {
		limits[scope] = append([]LimitConfig(nil), configs...)
	}

	return &Policy{Limits: limits}
}

// PolicyOptions holds per-minute budgets. Zero disables the corresponding limit.
type PolicyOptions struct {
	GlobalPerMinute  int64
	ReadPerMinute    int64
	WritePerMinute   int64
	ShortenPerMinute int64
	UploadPerMinute  int64
}

// DefaultPolicyOptions returns the budgets used when nothing is configured.
func DefaultPolicyOptions() PolicyOptions {
	return PolicyOptions{
		GlobalPerMinute:  300,
		ReadPerMinute:    120,
		WritePerMinute:   60,
		ShortenPerMinute: 10,
		UploadPerMinute:  30,
	}
}

// NewPolicy builds the service policy from per-minute budgets.
func NewPolicy(opts PolicyOptions) *Policy {
	return NewPolicyBuilder().
		AddLimit(ScopeGlobal, opts.GlobalPerMinute, time.Minute).
		AddLimit(ScopeRead, opts.ReadPerMinute, time.Minute).
		AddLimit(ScopeWrite, opts.WritePerMinute, time.Minute).
		AddLimit(ScopeShorten, opts.ShortenPerMinute, time.Minute).
		AddLimit(ScopeUpload, opts.UploadPerMinute, time.Minute).
		Build()
}
