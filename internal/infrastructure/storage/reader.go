package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"boingle/internal/domain"
)

var (
	ErrInvalidMagic       = errors.New("replay: invalid magic")
	ErrUnsupportedVersion = errors.New("replay: unsupported version")
)

// maxActions - защита от битого заголовка, который просит гигантский слайс.
const maxActions = 1 << 20

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, ErrInvalidMagic
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, header.Version, Version1)
	}
	if header.ActionCount < 0 || header.ActionCount > maxActions {
		return nil, fmt.Errorf("invalid action count: %d", header.ActionCount)
	}

	runID := make([]byte, header.RunIDLen)
	if _, err := io.ReadFull(r, runID); err != nil {
		return nil, fmt.Errorf("failed to read run id: %w", err)
	}
	preset := make([]byte, header.PresetLen)
	if _, err := io.ReadFull(r, preset); err != nil {
		return nil, fmt.Errorf("failed to read preset: %w", err)
	}

	session := &domain.ReplaySession{
		RunID:     string(runID),
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Preset:    string(preset),
		Frames:    int(header.Frames),
		Actions:   make([]domain.ReplayAction, header.ActionCount),
	}

	// 2. Действия
	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("failed to read action %d: %w", i, err)
		}

		act := domain.ReplayAction{
			Frame:  int(ah.Frame),
			Action: domain.ActionType(ah.Action),
		}
		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, fmt.Errorf("failed to read payload %d: %w", i, err)
			}
		}
		session.Actions[i] = act
	}

	return session, nil
}
