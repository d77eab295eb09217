package sync

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// maxMessageSize bounds a single input line. Records are small; schemas can
// run long.
const maxMessageSize = 4 * 1024 * 1024

// Message is one newline-delimited input message in the Singer format.
type Message struct {
	Type   string          `json:"type"`
	Stream string          `json:"stream"`
	Record json.RawMessage `json:"record"`
	Value  json.RawMessage `json:"value"`
}

// Target reads RECORD / SCHEMA / STATE messages and upserts each record to
// the Sharpi API, one record fully processed before the next.
type Target struct {
	*SyncContext
	Updater    *SharpiFetcherAndUpdater
	Normalizer AttributeNormalizer

	mappers map[string]RecordMapper
}

// NewTarget wires a Target from a SyncContext.
func NewTarget(sctx *SyncContext) *Target {
	return &Target{
		SyncContext: sctx,
		Updater:     NewSharpiFetcherAndUpdater(sctx),
		Normalizer:  AttributeNormalizer{Logger: sctx.Logger},
		mappers:     make(map[string]RecordMapper),
	}
}

// Run processes messages from input until EOF. STATE messages are echoed to
// output once all preceding records have been processed. A terminal record
// failure aborts the run; whether to resume is the caller's call.
func (t *Target) Run(input io.Reader, output io.Writer, ctx context.Context) error {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 64*1024), maxMessageSize)

	counts := make(map[string]int)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			return fmt.Errorf("invalid message on line %d %w", line, err)
		}

		switch msg.Type {
		case "SCHEMA":
			// resolve the mapper up front so an unsupported stream fails
			// before any records arrive
			if _, err := t.mapperFor(msg.Stream); err != nil {
				return err
			}
		case "RECORD":
			if err := t.processRecord(msg, ctx); err != nil {
				return fmt.Errorf("failed to sync %s record on line %d %w", msg.Stream, line, err)
			}
			counts[msg.Stream]++
		case "STATE":
			if _, err := fmt.Fprintf(output, "%s\n", msg.Value); err != nil {
				return fmt.Errorf("failed to emit state %w", err)
			}
		default:
			t.Logger.Debug("ignoring message", "type", msg.Type, "line", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input %w", err)
	}

	total := 0
	for stream, n := range counts {
		t.Logger.Info("stream synced", "stream", stream, "records", n)
		total += n
	}
	t.Logger.Info("sync run complete", "records", total)
	return nil
}

func (t *Target) processRecord(msg Message, ctx context.Context) error {
	if msg.Stream == "" {
		return fmt.Errorf("record message missing stream name")
	}
	mapper, err := t.mapperFor(msg.Stream)
	if err != nil {
		return err
	}

	normalized := t.Normalizer.NormalizeRecord(string(msg.Record))
	req, err := mapper.MapRecord(ParseSource(normalized))
	if err != nil {
		return err
	}

	result, err := t.Updater.Upsert(req, ctx)
	if err != nil {
		return err
	}
	t.Logger.Debug("record synced", "stream", msg.Stream, "status", result.StatusCode, "updated", result.Updated)
	return nil
}

func (t *Target) mapperFor(stream string) (RecordMapper, error) {
	if mapper, exists := t.mappers[stream]; exists {
		return mapper, nil
	}
	mapper, err := NewRecordMapper(stream, t.SyncContext)
	if err != nil {
		return nil, err
	}
	t.mappers[stream] = mapper
	return mapper, nil
}
