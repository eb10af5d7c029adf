package codec

import (
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/token"
)

// FieldID identifies a field name of the schema. IDs are dense and start at 1,
// they double as one byte tags in compact token formats.
type FieldID uint8

const (
	FieldMedia FieldID = iota + 1
	FieldImages
	FieldPlayer
	FieldURI
	FieldTitle
	FieldWidth
	FieldHeight
	FieldFormat
	FieldDuration
	FieldSize
	FieldBitrate
	FieldCopyright
	FieldPersons
	FieldPods
	FieldMessage
	FieldPod

	numFields = 16
)

const (
	nameMedia     = "media"
	nameImages    = "images"
	namePlayer    = "player"
	nameURI       = "uri"
	nameTitle     = "title"
	nameWidth     = "width"
	nameHeight    = "height"
	nameFormat    = "format"
	nameDuration  = "duration"
	nameSize      = "size"
	nameBitrate   = "bitrate"
	nameCopyright = "copyright"
	namePersons   = "persons"
	namePods      = "pods"
	nameMessage   = "message"
	namePod       = "pod"
)

var fieldNames = [numFields + 1]string{
	FieldMedia:     nameMedia,
	FieldImages:    nameImages,
	FieldPlayer:    namePlayer,
	FieldURI:       nameURI,
	FieldTitle:     nameTitle,
	FieldWidth:     nameWidth,
	FieldHeight:    nameHeight,
	FieldFormat:    nameFormat,
	FieldDuration:  nameDuration,
	FieldSize:      nameSize,
	FieldBitrate:   nameBitrate,
	FieldCopyright: nameCopyright,
	FieldPersons:   namePersons,
	FieldPods:      namePods,
	FieldMessage:   nameMessage,
	FieldPod:       namePod,
}

var fieldsByName = func() map[string]FieldID {
	m := make(map[string]FieldID, numFields)
	for id := FieldID(1); id <= numFields; id++ {
		m[fieldNames[id]] = id
	}
	return m
}()

// Lookup resolves a field name. Names are case sensitive.
func Lookup(name string) (FieldID, bool) {
	id, ok := fieldsByName[name]
	return id, ok
}

// Name returns the field name as it appears on the wire
func (f FieldID) Name() string {
	if f >= 1 && f <= numFields {
		return fieldNames[f]
	}
	return ""
}

func (f FieldID) String() string {
	if name := f.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("FieldID(%d)", uint8(f))
}

// fieldSet is a bit set of FieldIDs
type fieldSet uint32

func setOf(ids ...FieldID) fieldSet {
	var s fieldSet
	for _, id := range ids {
		s |= 1 << id
	}
	return s
}

func (s fieldSet) has(f FieldID) bool {
	return s&(1<<f) != 0
}

// --------------------------------------------------------------------------
// Entities
// --------------------------------------------------------------------------

// Entity is an object type of the schema
type Entity uint8

const (
	EntityMediaContent Entity = iota
	EntityMedia
	EntityImage
	EntityPod

	numEntities = 4
)

type entityInfo struct {
	name     string
	order    []FieldID
	names    []string
	members  fieldSet
	required fieldSet
}

var entities = [numEntities]entityInfo{
	EntityMediaContent: newEntity("MediaContent",
		[]FieldID{FieldMedia, FieldImages},
		setOf(FieldMedia)),
	EntityMedia: newEntity("Media",
		[]FieldID{FieldURI, FieldTitle, FieldWidth, FieldHeight, FieldFormat, FieldDuration, FieldSize,
			FieldBitrate, FieldPersons, FieldPlayer, FieldCopyright, FieldPods},
		setOf(FieldURI, FieldWidth, FieldHeight, FieldFormat, FieldDuration, FieldSize, FieldPlayer)),
	EntityImage: newEntity("Image",
		[]FieldID{FieldURI, FieldTitle, FieldWidth, FieldHeight, FieldSize},
		setOf(FieldURI, FieldWidth, FieldHeight, FieldSize)),
	EntityPod: newEntity("Pod",
		[]FieldID{FieldMessage, FieldPod},
		setOf(FieldMessage)),
}

func newEntity(name string, order []FieldID, required fieldSet) entityInfo {
	info := entityInfo{
		name:     name,
		order:    order,
		names:    make([]string, len(order)),
		members:  setOf(order...),
		required: required,
	}
	for i, f := range order {
		info.names[i] = f.Name()
	}
	if info.required&^info.members != 0 {
		panic(fmt.Sprintf("codec: required fields of %s are not members", name))
	}
	return info
}

func (e Entity) String() string {
	if e < numEntities {
		return entities[e].name
	}
	return fmt.Sprintf("Entity(%d)", uint8(e))
}

// Has reports whether f is a field of e
func (e Entity) Has(f FieldID) bool {
	return entities[e].members.has(f)
}

// Required reports whether f must be present in every e object
func (e Entity) Required(f FieldID) bool {
	return entities[e].required.has(f)
}

// Order returns the canonical field order of e
func (e Entity) Order() []FieldID {
	return append([]FieldID(nil), entities[e].order...)
}

// match returns the canonical position of name at or after pos. Only optional
// fields may be skipped on the way; -1 means the fast path cannot continue.
func (info *entityInfo) match(pos int, name string) int {
	for i := pos; i < len(info.names); i++ {
		if info.names[i] == name {
			return i
		}
		if info.required.has(info.order[i]) {
			return -1
		}
	}
	return -1
}

// firstMissing returns the first required field in canonical order that is not in seen
func (info *entityInfo) firstMissing(seen fieldSet) (FieldID, bool) {
	missing := info.required &^ seen
	if missing == 0 {
		return 0, false
	}
	for _, f := range info.order {
		if missing.has(f) {
			return f, true
		}
	}
	return 0, false
}

// --------------------------------------------------------------------------
// Dictionary
// --------------------------------------------------------------------------

type dictionary struct{}

func (dictionary) Tag(name string) (uint8, bool) {
	id, ok := fieldsByName[name]
	return uint8(id), ok
}

func (dictionary) Name(tag uint8) (string, bool) {
	name := FieldID(tag).Name()
	return name, name != ""
}

// Registry exposes the field table as a token.Dictionary, so compact formats can
// write registered field names as one byte tags
func Registry() token.Dictionary {
	return dictionary{}
}
