package tracing

// Span names for sync passes and location operations.
const (
	SpanSyncInbound  = "querystore.sync.inbound"
	SpanSyncOutbound = "querystore.sync.outbound"
	SpanMount        = "querystore.mount"

	SpanPrefixLocation = "location."
	SpanPrefixRepo     = "repo."
)

// Span attribute keys.
const (
	AttrSyncDirection = "sync.direction"
	AttrSyncChanged   = "sync.changed"
	AttrSyncWrote     = "sync.wrote"
	AttrQuery         = "location.query"
	AttrEntryID       = "location.entry_id"
	AttrFieldCount    = "record.fields"

	AttrErrorMessage = "error.message"
)

// Event names recorded on spans.
const (
	EventEchoIgnored   = "sync.echo_ignored"
	EventRecordParsed  = "record.parsed"
	EventReplaceFailed = "location.replace_failed"
)
