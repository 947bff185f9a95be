package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"boingle/internal/domain"
	"boingle/pkg/logger"

	"github.com/sirupsen/logrus"
)

const (
	MagicHeader string = `BGRP` // 4 байта
	Version1    uint32 = 1
	Extension          = ".bgrp"
)

// ReplayFileHeader - это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
// Строки (RunID, Preset) идут сразу за заголовком, их длины - в заголовке.
type ReplayFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Timestamp   int64   // 8 байт
	Frames      int32   // 4 байта
	ActionCount int32   // 4 байта
	RunIDLen    uint8   // 1 байт
	PresetLen   uint8   // 1 байт
}

// ActionHeader - заголовок каждой записи действия.
type ActionHeader struct {
	Frame      int32  // 4
	Action     uint8  // 1
	PayloadLen uint16 // 2
}

// ReplayService хранит реплеи в каталоге, один файл на сессию.
type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) (*ReplayService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// PathFor - путь файла реплея сессии.
func (s *ReplayService) PathFor(runID string) string {
	return filepath.Join(s.SaveDir, runID+Extension)
}

// Save пишет реплей во временный файл и переименовывает его, чтобы
// читатель никогда не увидел половину записи.
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	path := s.PathFor(session.RunID)
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}

	bw := bufio.NewWriter(f)
	if err := writeBinary(bw, session); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}

	logger.For("replay_storage").WithFields(logrus.Fields{
		"path":      path,
		"actions":   len(session.Actions),
		"frames":    session.Frames,
	}).Info("Replay saved")
	return path, nil
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	runID := []byte(s.RunID)
	preset := []byte(s.Preset)
	if len(runID) > 255 {
		return fmt.Errorf("run id too long: %d", len(runID))
	}
	if len(preset) > 255 {
		return fmt.Errorf("preset name too long: %d", len(preset))
	}

	// 1. Глобальный заголовок
	header := ReplayFileHeader{
		Version:     Version1,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		Frames:      int32(s.Frames),
		ActionCount: int32(len(s.Actions)),
		RunIDLen:    uint8(len(runID)),
		PresetLen:   uint8(len(preset)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(runID); err != nil {
		return err
	}
	if _, err := w.Write(preset); err != nil {
		return err
	}

	// 2. Действия
	for _, act := range s.Actions {
		payloadLen := len(act.Payload)
		if payloadLen > 65535 {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		actHeader := ActionHeader{
			Frame:      int32(act.Frame),
			Action:     uint8(act.Action),
			PayloadLen: uint16(payloadLen),
		}
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
