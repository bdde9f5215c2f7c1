/*
snapshot.go - Versioned envelope encoding for persisted collections

PURPOSE:
  Each storage slot holds a JSON envelope {schema_version, records} rather
  than a bare array. The version tag lets future builds add fields or
  migrate the record shape without silently corrupting old saved state:
  a snapshot from an unknown version fails loudly with ErrSchemaVersion
  instead of being half-decoded.

FORMAT:
  {"schema_version": 1, "records": [...]}

  Monetary fields serialize through decimal.Decimal's JSON encoding, so
  no precision is lost on the round trip.
*/
package ledger

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion is the snapshot format written by this build.
const SchemaVersion = 1

type snapshotEnvelope struct {
	SchemaVersion int             `json:"schema_version"`
	Records       json.RawMessage `json:"records"`
}

// encodeSnapshot wraps a collection in the current envelope.
func encodeSnapshot(records any) ([]byte, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot records: %w", err)
	}
	return json.Marshal(snapshotEnvelope{SchemaVersion: SchemaVersion, Records: raw})
}

// decodeSnapshot unwraps an envelope into out, rejecting unknown versions.
func decodeSnapshot(payload []byte, out any) error {
	var env snapshotEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return fmt.Errorf("decode snapshot envelope: %w", err)
	}
	if env.SchemaVersion != SchemaVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrSchemaVersion, env.SchemaVersion, SchemaVersion)
	}
	if err := json.Unmarshal(env.Records, out); err != nil {
		return fmt.Errorf("decode snapshot records: %w", err)
	}
	return nil
}
