// Package publish streams a model graph to the knowledge graph ingestion
// subject, one message per subject node.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/sbml2rdf/graph"
	"github.com/c360studio/semstreams/message"
)

// GraphIngestSubject is the default subject for graph ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// Source is recorded on every published triple.
const Source = "sbml2rdf"

// StreamPublisher is the subset of the NATS client used for publishing.
// *natsclient.Client satisfies it.
type StreamPublisher interface {
	PublishToStream(ctx context.Context, subject string, data []byte) error
}

// Publisher sends graph entities to a JetStream subject.
type Publisher struct {
	nc      StreamPublisher
	subject string
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a publisher. An empty subject selects GraphIngestSubject.
func New(nc StreamPublisher, subject string, logger *slog.Logger) *Publisher {
	if subject == "" {
		subject = GraphIngestSubject
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{nc: nc, subject: subject, logger: logger, now: time.Now}
}

// Publish sends one entity message per subject node of g and returns the
// number of messages sent. A nil client skips publishing.
func (p *Publisher) Publish(ctx context.Context, g *graph.Graph) (int, error) {
	if p.nc == nil {
		return 0, nil // Skip publishing if no NATS client (graceful degradation)
	}

	entities := Entities(g, p.now())
	sent := 0
	for _, entity := range entities {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if err := entity.Validate(); err != nil {
			return sent, fmt.Errorf("entity %s: %w", entity.EntityID_, err)
		}

		msg := message.NewBaseMessage(EntityType, entity, Source)
		data, err := json.Marshal(msg)
		if err != nil {
			return sent, fmt.Errorf("marshal entity %s: %w", entity.EntityID_, err)
		}
		if err := p.nc.PublishToStream(ctx, p.subject, data); err != nil {
			return sent, fmt.Errorf("publish entity %s: %w", entity.EntityID_, err)
		}
		sent++
	}

	p.logger.Info("Published model graph",
		"subject", p.subject,
		"entities", sent,
		"triples", g.Len())
	return sent, nil
}

// Entities groups the triples of g by subject, in first-appearance order.
func Entities(g *graph.Graph, ts time.Time) []*EntityPayload {
	if g == nil {
		return nil
	}
	index := make(map[string]*EntityPayload)
	var out []*EntityPayload
	for _, t := range g.MessageTriples(Source, ts) {
		e, ok := index[t.Subject]
		if !ok {
			e = &EntityPayload{EntityID_: t.Subject, UpdatedAt: ts}
			index[t.Subject] = e
			out = append(out, e)
		}
		e.TripleData = append(e.TripleData, t)
	}
	return out
}
