// Package loader reads event-marker exports: NDJSON (one event object per
// line) or a single JSON array of event objects. Parsing proprietary
// recording formats is the recording container's job, not ours.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
)

// maxLineSize accommodates events with large attribute bags.
const maxLineSize = 1024 * 1024

// Result is the outcome of loading one export file.
type Result struct {
	Events  []domain.EventRecord
	Skipped int // lines that were not parseable as events
}

// Open loads events from a file path.
func Open(path string, log *zap.Logger) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer f.Close()
	return Read(f, log)
}

// Read loads events from a reader, auto-detecting NDJSON versus a JSON
// array. Unparseable lines are skipped and counted, never fatal.
func Read(r io.Reader, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}

	br := bufio.NewReaderSize(r, 64*1024)
	head, err := peekNonSpace(br)
	if err != nil {
		if err == io.EOF {
			return &Result{}, nil
		}
		return nil, err
	}
	if head == '[' {
		return readArray(br, log)
	}
	return readLines(br, log)
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.Peek(1)
		if err != nil {
			return 0, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := br.Discard(1); err != nil {
				return 0, err
			}
		default:
			return b[0], nil
		}
	}
}

func readLines(br *bufio.Reader, log *zap.Logger) (*Result, error) {
	res := &Result{}
	scanner := bufio.NewScanner(br)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !gjson.Valid(line) {
			res.Skipped++
			log.Debug("skipping unparseable line", zap.Int("line", lineNum))
			continue
		}
		ev, ok := parseEvent(gjson.Parse(line))
		if !ok {
			res.Skipped++
			continue
		}
		res.Events = append(res.Events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return res, nil
}

func readArray(br *bufio.Reader, log *zap.Logger) (*Result, error) {
	data, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	body := string(data)
	if !gjson.Valid(body) {
		return nil, fmt.Errorf("read events: not valid JSON")
	}

	res := &Result{}
	for _, item := range gjson.Parse(body).Array() {
		ev, ok := parseEvent(item)
		if !ok {
			res.Skipped++
			log.Debug("skipping unparseable array element")
			continue
		}
		res.Events = append(res.Events, ev)
	}
	return res, nil
}

// parseEvent decodes one JSON event object. Extra attributes keep their
// document order, which matters for reproducible discovery.
func parseEvent(item gjson.Result) (domain.EventRecord, bool) {
	if !item.IsObject() {
		return domain.EventRecord{}, false
	}

	var ev domain.EventRecord
	item.ForEach(func(key, value gjson.Result) bool {
		switch strings.ToLower(key.String()) {
		case "type", "code", "value":
			if ev.Type == "" {
				if value.Type == gjson.String {
					ev.Type = value.String()
				} else if value.Exists() && value.Type != gjson.Null {
					ev.Type = value.Raw
				}
			}
		case "latency", "sample", "onset":
			ev.Latency = value.Float()
		case "duration":
			ev.Duration = value.Float()
		case "urevent", "ur-reference":
			ev.URReference = int(value.Int())
		default:
			ev.Attrs = append(ev.Attrs, domain.Attribute{
				Name:  key.String(),
				Value: value.Value(),
			})
		}
		return true
	})

	if ev.Type == "" && len(ev.Attrs) == 0 {
		return domain.EventRecord{}, false
	}
	return ev, true
}
