package keying

import (
	"fmt"
	"strings"
	"sync"

	nanoid "github.com/jaevor/go-nanoid"

	"chatvault/internal/domain"
)

const (
	roomIDAlphabet   = "0123456789abcdefghijklmnopqrstuvwxyz"
	roomIDBodyLength = 32

	// RoomIDLength is the length of every valid room id.
	RoomIDLength = 1 + roomIDBodyLength

	markerPrivate = 'p'
	markerGroup   = 'g'
)

var (
	genMu      sync.Mutex
	genRoomID  func() string
	genInitErr error
	genOnce    sync.Once
)

func roomIDBody() (string, error) {
	genOnce.Do(func() {
		genRoomID, genInitErr = nanoid.CustomASCII(roomIDAlphabet, roomIDBodyLength)
	})
	if genInitErr != nil {
		return "", genInitErr
	}
	genMu.Lock()
	defer genMu.Unlock()
	return genRoomID(), nil
}

// GenerateRandomRoomID returns a fresh room id tagged with chatType.
func GenerateRandomRoomID(chatType domain.ChatType) (domain.RoomID, error) {
	var marker byte
	switch chatType {
	case domain.ChatTypePrivate:
		marker = markerPrivate
	case domain.ChatTypeGroup:
		marker = markerGroup
	default:
		return "", fmt.Errorf("%w: unknown chat type %q", domain.ErrInvalidArgument, chatType)
	}
	body, err := roomIDBody()
	if err != nil {
		return "", err
	}
	return domain.RoomID(string(marker) + body), nil
}

// IsValidRoomID returns nil when roomID could have been produced by
// GenerateRandomRoomID, and an ErrInvalidArgument naming the defect otherwise.
func IsValidRoomID(roomID domain.RoomID) error {
	s := string(roomID)
	if len(s) != RoomIDLength {
		return fmt.Errorf("%w: room id must be %d characters, got %d", domain.ErrInvalidArgument, RoomIDLength, len(s))
	}
	if _, err := markerType(s[0]); err != nil {
		return err
	}
	for i := 1; i < len(s); i++ {
		if strings.IndexByte(roomIDAlphabet, s[i]) < 0 {
			return fmt.Errorf("%w: room id has invalid character %q at %d", domain.ErrInvalidArgument, s[i], i)
		}
	}
	return nil
}

// ChatTypeOfRoomID recovers the chat type encoded in a valid room id.
func ChatTypeOfRoomID(roomID domain.RoomID) (domain.ChatType, error) {
	if err := IsValidRoomID(roomID); err != nil {
		return "", err
	}
	return markerType(roomID[0])
}

func markerType(c byte) (domain.ChatType, error) {
	switch c {
	case markerPrivate:
		return domain.ChatTypePrivate, nil
	case markerGroup:
		return domain.ChatTypeGroup, nil
	}
	return "", fmt.Errorf("%w: room id has unknown chat type marker %q", domain.ErrInvalidArgument, c)
}
