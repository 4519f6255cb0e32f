package db

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/dpolishuk/codegraph/internal/graph"
	"github.com/dpolishuk/codegraph/internal/models"
)

const exportBatchSize = 500

type GraphWriter struct {
	client *Neo4jClient
}

func NewGraphWriter(client *Neo4jClient) *GraphWriter {
	return &GraphWriter{client: client}
}

// WriteIndex replaces the stored graph for a root with the given entities and
// edges. Nodes are keyed by entity id (stable across exports), not generated
// ids, so re-exporting after a rebuild updates in place.
func (w *GraphWriter) WriteIndex(ctx context.Context, root string, entities []*models.CodeEntity, edges []graph.Edge) error {
	if err := w.clear(ctx, root); err != nil {
		return fmt.Errorf("clear previous export: %w", err)
	}
	if err := w.writeEntities(ctx, root, entities); err != nil {
		return fmt.Errorf("write entities: %w", err)
	}
	if err := w.writeEdges(ctx, root, edges); err != nil {
		return fmt.Errorf("write edges: %w", err)
	}
	return nil
}

func (w *GraphWriter) clear(ctx context.Context, root string) error {
	_, err := w.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, `MATCH (n:CodeEntity {root: $root}) DETACH DELETE n`,
			map[string]any{"root": root})
		return nil, err
	})
	return err
}

func (w *GraphWriter) writeEntities(ctx context.Context, root string, entities []*models.CodeEntity) error {
	for start := 0; start < len(entities); start += exportBatchSize {
		end := min(start+exportBatchSize, len(entities))

		rows := make([]map[string]any, 0, end-start)
		for _, e := range entities[start:end] {
			row := map[string]any{
				"id":   e.ID,
				"path": e.Path,
				"kind": string(e.Kind),
				"name": e.Name,
				"hash": e.ContentHash,
			}
			if e.Location != nil {
				row["startLine"] = e.Location.StartLine
				row["endLine"] = e.Location.EndLine
			}
			rows = append(rows, row)
		}

		_, err := w.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			query := `
				UNWIND $rows AS row
				MERGE (e:CodeEntity {root: $root, id: row.id})
				SET e.path = row.path,
				    e.kind = row.kind,
				    e.name = row.name,
				    e.hash = row.hash,
				    e.startLine = row.startLine,
				    e.endLine = row.endLine
			`
			_, err := tx.Run(ctx, query, map[string]any{"root": root, "rows": rows})
			return nil, err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *GraphWriter) writeEdges(ctx context.Context, root string, edges []graph.Edge) error {
	byKind := map[graph.EdgeKind][]graph.Edge{}
	for _, e := range edges {
		byKind[e.Kind] = append(byKind[e.Kind], e)
	}

	// Relationship types cannot be parameterized in Cypher, hence one query
	// shape per edge kind.
	queries := map[graph.EdgeKind]string{
		graph.EdgeContains: `
			UNWIND $rows AS row
			MERGE (a:CodeEntity {root: $root, id: row.from})
			MERGE (b:CodeEntity {root: $root, id: row.to})
			MERGE (a)-[:CONTAINS]->(b)
		`,
		graph.EdgeImports: `
			UNWIND $rows AS row
			MERGE (a:CodeEntity {root: $root, id: row.from})
			MERGE (b:CodeEntity {root: $root, id: row.to})
			MERGE (a)-[:IMPORTS]->(b)
		`,
	}

	for kind, kindEdges := range byKind {
		query, ok := queries[kind]
		if !ok {
			return fmt.Errorf("unknown edge kind %q", kind)
		}
		for start := 0; start < len(kindEdges); start += exportBatchSize {
			end := min(start+exportBatchSize, len(kindEdges))

			rows := make([]map[string]any, 0, end-start)
			for _, e := range kindEdges[start:end] {
				rows = append(rows, map[string]any{"from": e.From, "to": e.To})
			}

			_, err := w.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
				_, err := tx.Run(ctx, query, map[string]any{"root": root, "rows": rows})
				return nil, err
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
