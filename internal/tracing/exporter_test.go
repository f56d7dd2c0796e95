package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestFileExporter_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "spans.jsonl")
	exporter, err := NewFileExporter(path)
	require.NoError(t, err)

	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracer := provider.Tracer("test")

	ctx, parent := tracer.Start(context.Background(), SpanSyncInbound)
	parent.SetAttributes(attribute.Bool(AttrSyncChanged, true))
	_, child := tracer.Start(ctx, SpanSyncOutbound)
	child.AddEvent(EventReplaceFailed)
	child.SetStatus(codes.Error, "boom")
	child.End()
	parent.End()

	require.NoError(t, provider.Shutdown(context.Background()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []SpanRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.Len(t, records, 2)

	require.Equal(t, SpanSyncOutbound, records[0].Name)
	require.Equal(t, "ERROR", records[0].Status)
	require.Equal(t, "boom", records[0].StatusMsg)
	require.Equal(t, []string{EventReplaceFailed}, records[0].Events)
	require.Equal(t, records[1].SpanID, records[0].ParentSpanID)

	require.Equal(t, SpanSyncInbound, records[1].Name)
	require.Equal(t, true, records[1].Attributes[AttrSyncChanged])
	require.Empty(t, records[1].ParentSpanID)
}

func TestFileExporter_ShutdownTwice(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "spans.jsonl"))
	require.NoError(t, err)

	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.Error(t, exporter.ExportSpans(context.Background(), nil))
}
