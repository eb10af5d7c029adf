package media

import "fmt"

// --------------------------------------------------------------------------
// Player
// --------------------------------------------------------------------------

// Player is the media player a Media is meant for
type Player int8

const (
	PlayerJava Player = iota
	PlayerFlash

	numPlayers // must stay last
)

// Adding a Player variant breaks this line. Update every switch on Player
// (String, ParsePlayer, PlayerFromCode), then raise the expected count.
var _ = [1]struct{}{}[numPlayers-2]

// String returns the canonical name ("JAVA", "FLASH")
func (p Player) String() string {
	switch p {
	case PlayerJava:
		return "JAVA"
	case PlayerFlash:
		return "FLASH"
	}
	return fmt.Sprintf("Player(%d)", int8(p))
}

// Code returns the integer code used by binary formats
func (p Player) Code() int32 {
	return int32(p)
}

// Valid reports whether p is one of the declared variants
func (p Player) Valid() bool {
	return p >= 0 && p < numPlayers
}

// ParsePlayer resolves a canonical name
func ParsePlayer(name string) (Player, bool) {
	switch name {
	case "JAVA":
		return PlayerJava, true
	case "FLASH":
		return PlayerFlash, true
	}
	return 0, false
}

// PlayerFromCode resolves an integer code
func PlayerFromCode(code int32) (Player, bool) {
	switch Player(code) {
	case PlayerJava:
		return PlayerJava, true
	case PlayerFlash:
		return PlayerFlash, true
	}
	return 0, false
}

// --------------------------------------------------------------------------
// Size
// --------------------------------------------------------------------------

// Size is the display size of an Image
type Size int8

const (
	SizeSmall Size = iota
	SizeLarge

	numSizes // must stay last
)

// Adding a Size variant breaks this line. Update every switch on Size
// (String, ParseSize, SizeFromCode), then raise the expected count.
var _ = [1]struct{}{}[numSizes-2]

// String returns the canonical name ("SMALL", "LARGE")
func (s Size) String() string {
	switch s {
	case SizeSmall:
		return "SMALL"
	case SizeLarge:
		return "LARGE"
	}
	return fmt.Sprintf("Size(%d)", int8(s))
}

// Code returns the integer code used by binary formats
func (s Size) Code() int32 {
	return int32(s)
}

// Valid reports whether s is one of the declared variants
func (s Size) Valid() bool {
	return s >= 0 && s < numSizes
}

// ParseSize resolves a canonical name
func ParseSize(name string) (Size, bool) {
	switch name {
	case "SMALL":
		return SizeSmall, true
	case "LARGE":
		return SizeLarge, true
	}
	return 0, false
}

// SizeFromCode resolves an integer code
func SizeFromCode(code int32) (Size, bool) {
	switch Size(code) {
	case SizeSmall:
		return SizeSmall, true
	case SizeLarge:
		return SizeLarge, true
	}
	return 0, false
}
