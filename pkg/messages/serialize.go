package messages

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/klauspost/compress/zstd"
)

// EncodeSnapshot serializes a snapshot for storage as a compressed blob.
func EncodeSnapshot(s *types.Snapshot) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %v", err)
	}

	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := compWriter.Write(b); err != nil {
		return nil, fmt.Errorf("failed to compress snapshot: %v", err)
	}
	if err := compWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %v", err)
	}

	return compressed.Bytes(), nil
}

// DecodeSnapshot reverses EncodeSnapshot.
func DecodeSnapshot(data []byte) (*types.Snapshot, error) {
	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()
	b, err := io.ReadAll(compReader)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot: %v", err)
	}

	s := &types.Snapshot{}
	if err := json.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %v", err)
	}
	if s.Properties == nil {
		s.Properties = make(map[int]types.Property)
	}
	return s, nil
}

// SerializeServerSnapshot encodes a viewer update as a JSON text frame.
func SerializeServerSnapshot(m *ServerSnapshot) ([]byte, error) {
	m.Type = MessageTypeServerSnapshot
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal server snapshot: %v", err)
	}
	return b, nil
}
