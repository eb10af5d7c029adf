// Package bintok implements a compact binary token format for the token.Reader and
// token.Writer interfaces.
//
// Every token starts with a one byte marker:
//
//	0x01 {   0x02 }   0x03 [   0x04 ]
//	0x05 field name as a one byte dictionary tag
//	0x06 field name inline: uvarint length + UTF-8 bytes
//	0x07 string: uvarint length + UTF-8 bytes
//	0x08 number: zigzag varint (int64)
//	0x09 null    0x0A true    0x0B false
//
// Field names known to the Dictionary passed to NewWriter are written as tags, all
// others inline. Enumerations are written as numbers (their code). Top level values
// follow each other without separator.
package bintok

import (
	"errors"
	"fmt"
)

// FormatName is the short name of the binary token format
const FormatName = "bin"

const (
	markStartObject byte = 0x01
	markEndObject   byte = 0x02
	markStartArray  byte = 0x03
	markEndArray    byte = 0x04
	markFieldTag    byte = 0x05
	markFieldName   byte = 0x06
	markString      byte = 0x07
	markNumber      byte = 0x08
	markNull        byte = 0x09
	markTrue        byte = 0x0A
	markFalse       byte = 0x0B
)

// MaxStringLen limits the length of strings and inline field names a Reader accepts
const MaxStringLen = 16 << 20

// ErrUnknownTag is wrapped when a field tag is not known to the reader's dictionary
var ErrUnknownTag = errors.New("unknown field tag")

func markName(b byte) string {
	switch b {
	case markStartObject:
		return "{"
	case markEndObject:
		return "}"
	case markStartArray:
		return "["
	case markEndArray:
		return "]"
	case markFieldTag, markFieldName:
		return "field name"
	case markString:
		return "string"
	case markNumber:
		return "number"
	case markNull:
		return "null"
	case markTrue, markFalse:
		return "bool"
	}
	return fmt.Sprintf("0x%02x", b)
}
