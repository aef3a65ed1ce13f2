package main

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

var SerializerError = errors.New("invalid serialized cell")

const nameLengthSize = 2

// CellBinarySerializer stores a cell as a little-endian uint16 name length, the name and
// then the text
type CellBinarySerializer struct {
}

func NewCellBinarySerializer() *CellBinarySerializer {
	return &CellBinarySerializer{}
}

func (s *CellBinarySerializer) Marshal(name string, text string) []byte {
	serializedData := make([]byte, 0, nameLengthSize+len(name)+len(text))

	serializedData = binary.LittleEndian.AppendUint16(serializedData, uint16(len(name)))
	serializedData = append(serializedData, name...)
	serializedData = append(serializedData, text...)
	return serializedData
}

func (s *CellBinarySerializer) Unmarshal(data []byte) (name string, text string, err error) {
	if len(data) < nameLengthSize {
		return "", "", errors.Wrapf(SerializerError, "should be at least %d bytes (data: %q)", nameLengthSize, data)
	}

	nameLength := int(binary.LittleEndian.Uint16(data))
	if len(data) < nameLength+nameLengthSize {
		return "", "", errors.Wrapf(SerializerError, "name is longer than the record (nameLength: %d; data: %q)", nameLength, data)
	}

	name = string(data[nameLengthSize : nameLength+nameLengthSize])
	text = string(data[nameLength+nameLengthSize:])
	return
}
