package normalize

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for normalization events.
var (
	SignalCandidateRegistered = capitan.NewSignal("normalize.registry.registered", "Candidate added to registry")
	SignalChainCreated        = capitan.NewSignal("normalize.chain.created", "Chain built from registry")
	SignalNormalizeStart      = capitan.NewSignal("normalize.normalize.start", "Normalize dispatch beginning")
	SignalNormalizeComplete   = capitan.NewSignal("normalize.normalize.complete", "Normalize dispatch finished")
	SignalDenormalizeStart    = capitan.NewSignal("normalize.denormalize.start", "Denormalize dispatch beginning")
	SignalDenormalizeComplete = capitan.NewSignal("normalize.denormalize.complete", "Denormalize dispatch finished")
	SignalSerializeStart      = capitan.NewSignal("normalize.serialize.start", "Serialize operation beginning")
	SignalSerializeComplete   = capitan.NewSignal("normalize.serialize.complete", "Serialize operation finished")
	SignalDeserializeStart    = capitan.NewSignal("normalize.deserialize.start", "Deserialize operation beginning")
	SignalDeserializeComplete = capitan.NewSignal("normalize.deserialize.complete", "Deserialize operation finished")
)

// Keys for typed event data.
var (
	KeyFormat            = capitan.NewStringKey("format")
	KeyTypeName          = capitan.NewStringKey("type_name")
	KeyPriority          = capitan.NewIntKey("priority")
	KeyCandidateCount    = capitan.NewIntKey("candidate_count")
	KeyNormalizerCount   = capitan.NewIntKey("normalizer_count")
	KeyDenormalizerCount = capitan.NewIntKey("denormalizer_count")
	KeyCacheHits         = capitan.NewIntKey("cache_hits")
	KeyCacheMisses       = capitan.NewIntKey("cache_misses")
	KeySize              = capitan.NewIntKey("size")
	KeyDuration          = capitan.NewDurationKey("duration")
	KeyError             = capitan.NewErrorKey("error")
)

// emitCandidateRegistered emits an event when a candidate is registered.
func emitCandidateRegistered(typeName string, priority, count int) {
	capitan.Emit(context.Background(), SignalCandidateRegistered,
		KeyTypeName.Field(typeName),
		KeyPriority.Field(priority),
		KeyCandidateCount.Field(count),
	)
}

// emitChainCreated emits an event when a chain is built.
func emitChainCreated(normalizers, denormalizers int) {
	capitan.Emit(context.Background(), SignalChainCreated,
		KeyNormalizerCount.Field(normalizers),
		KeyDenormalizerCount.Field(denormalizers),
	)
}

// emitNormalizeStart emits an event when normalize dispatch begins.
func emitNormalizeStart(ctx context.Context, format, typeName string) {
	capitan.Emit(ctx, SignalNormalizeStart,
		KeyFormat.Field(format),
		KeyTypeName.Field(typeName),
	)
}

// emitNormalizeComplete emits an event when normalize dispatch finishes.
func emitNormalizeComplete(ctx context.Context, format, typeName string, duration time.Duration, hits, misses int, err error) {
	fields := []capitan.Field{
		KeyFormat.Field(format),
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
		KeyCacheHits.Field(hits),
		KeyCacheMisses.Field(misses),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalNormalizeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalNormalizeComplete, fields...)
	}
}

// emitDenormalizeStart emits an event when denormalize dispatch begins.
func emitDenormalizeStart(ctx context.Context, format, typeName string) {
	capitan.Emit(ctx, SignalDenormalizeStart,
		KeyFormat.Field(format),
		KeyTypeName.Field(typeName),
	)
}

// emitDenormalizeComplete emits an event when denormalize dispatch finishes.
func emitDenormalizeComplete(ctx context.Context, format, typeName string, duration time.Duration, hits, misses int, err error) {
	fields := []capitan.Field{
		KeyFormat.Field(format),
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
		KeyCacheHits.Field(hits),
		KeyCacheMisses.Field(misses),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDenormalizeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDenormalizeComplete, fields...)
	}
}

// emitSerializeStart emits an event when serialize begins.
func emitSerializeStart(ctx context.Context, format, typeName string) {
	capitan.Emit(ctx, SignalSerializeStart,
		KeyFormat.Field(format),
		KeyTypeName.Field(typeName),
	)
}

// emitSerializeComplete emits an event when serialize finishes.
func emitSerializeComplete(ctx context.Context, format, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyFormat.Field(format),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalSerializeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalSerializeComplete, fields...)
	}
}

// emitDeserializeStart emits an event when deserialize begins.
func emitDeserializeStart(ctx context.Context, format, typeName string) {
	capitan.Emit(ctx, SignalDeserializeStart,
		KeyFormat.Field(format),
		KeyTypeName.Field(typeName),
	)
}

// emitDeserializeComplete emits an event when deserialize finishes.
func emitDeserializeComplete(ctx context.Context, format, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyFormat.Field(format),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDeserializeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDeserializeComplete, fields...)
	}
}
