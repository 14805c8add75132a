package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SerializationChecksum identifies a snapshot or a whole run.
type SerializationChecksum struct {
	Hash      string `json:"hash"`      // SHA-256 hash of deterministic serialization
	Timestamp string `json:"timestamp"` // ISO timestamp of the last hashed snapshot
	Version   int    `json:"version"`   // Serialization version (for forward compatibility)
}

// ComputeChecksum generates a deterministic checksum of the snapshot. The
// capture timestamp and the game ID are excluded so equal seeds and selections
// hash equally across games.
func (snapshot *Snapshot) ComputeChecksum() (*SerializationChecksum, error) {
	hash := sha256.New()
	if _, err := hash.Write([]byte(snapshot.buildDeterministicRepresentation())); err != nil {
		return nil, fmt.Errorf("failed to compute hash: %w", err)
	}

	return &SerializationChecksum{
		Hash:      hex.EncodeToString(hash.Sum(nil)),
		Timestamp: snapshot.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"),
		Version:   1,
	}, nil
}

func (snapshot *Snapshot) buildDeterministicRepresentation() string {
	var buf bytes.Buffer
	civ := snapshot.Civilization
	buf.WriteString(fmt.Sprintf("TICK:%d|%s|%s|%d|%d\n",
		snapshot.Tick,
		snapshot.Outcome,
		snapshot.Flash,
		snapshot.LogLength,
		snapshot.Reasons,
	))
	buf.WriteString(fmt.Sprintf("CIV:%d|%s|%d|%d|%d\n",
		civ.ID,
		civ.Stage,
		civ.Resilience,
		civ.Age,
		civ.StageProgress,
	))
	return buf.String()
}

// VerifyChecksum reports whether the snapshot hashes to the expected checksum.
func (snapshot *Snapshot) VerifyChecksum(expected *SerializationChecksum) (bool, error) {
	computed, err := snapshot.ComputeChecksum()
	if err != nil {
		return false, fmt.Errorf("failed to compute checksum: %w", err)
	}

	return computed.Hash == expected.Hash, nil
}

// Checksum chains the checksums of every recorded snapshot into a single run
// fingerprint. An empty replay has no checksum.
func (r *Replay) Checksum() (*SerializationChecksum, error) {
	states := r.Snapshots()
	if len(states) == 0 {
		return nil, fmt.Errorf("replay %s has no states", r.GameID)
	}

	hash := sha256.New()
	for i, s := range states {
		if _, err := hash.Write([]byte(s.buildDeterministicRepresentation())); err != nil {
			return nil, fmt.Errorf("failed to hash state %d: %w", i, err)
		}
	}

	last := states[len(states)-1]
	return &SerializationChecksum{
		Hash:      hex.EncodeToString(hash.Sum(nil)),
		Timestamp: last.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"),
		Version:   1,
	}, nil
}
