// text-renderer - reading glyph outlines from TrueType font files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package parser implements a big-endian cursor over the bytes of an sfnt
// font file.
package parser

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEndOfData is returned (possibly wrapped) when a read
// extends past the end of the font data.
var ErrUnexpectedEndOfData = errors.New("unexpected end of data")

// Parser allows to read data from an sfnt file held in memory.
//
// A Parser is not safe for concurrent use.  Use Fork to obtain independent
// cursors over the same data.
type Parser struct {
	data      []byte
	tableName string

	pos      int64
	lastRead int64
}

// New allocates a new Parser, positioned at the start of data.
// The Parser does not modify data.
func New(data []byte) *Parser {
	return &Parser{data: data}
}

// Fork returns a new Parser which reads the same data, starting at the
// current position of p.  The table name is used in error messages.
func (p *Parser) Fork(tableName string) *Parser {
	return &Parser{
		data:      p.data,
		tableName: tableName,
		pos:       p.pos,
		lastRead:  p.pos,
	}
}

// Size returns the total size of the underlying data.
func (p *Parser) Size() int64 {
	return int64(len(p.data))
}

// Pos returns the current reading position.
func (p *Parser) Pos() int64 {
	return p.pos
}

// SeekPos changes the reading position.  Positions outside the data are
// allowed; the next read will then fail with ErrUnexpectedEndOfData.
func (p *Parser) SeekPos(filePos int64) {
	p.pos = filePos
}

// Discard skips the next n bytes of input.
func (p *Parser) Discard(n int) {
	if n < 0 {
		panic("negative discard")
	}
	p.pos += int64(n)
}

// At runs fn with the reading position temporarily moved to pos.
// The previous position is restored when fn returns, whether or not fn
// fails.
func (p *Parser) At(pos int64, fn func() error) error {
	saved := p.pos
	defer func() { p.pos = saved }()
	p.pos = pos
	return fn()
}

// ReadBytes reads n bytes, starting at the current position.  The returned
// slice points into the underlying data and must not be modified.
// On failure, the position is unchanged.
func (p *Parser) ReadBytes(n int) ([]byte, error) {
	p.lastRead = p.pos
	if n < 0 {
		n = 0
	}
	if p.pos < 0 || p.pos > int64(len(p.data)) || int64(n) > int64(len(p.data))-p.pos {
		return nil, p.Error("reading %d bytes: %w", n, ErrUnexpectedEndOfData)
	}
	res := p.data[p.pos : p.pos+int64(n)]
	p.pos += int64(n)
	return res, nil
}

// ReadUint8 reads a single uint8 value from the current position.
func (p *Parser) ReadUint8() (uint8, error) {
	buf, err := p.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads a single big-endian uint16 value.
func (p *Parser) ReadUint16() (uint16, error) {
	buf, err := p.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// ReadInt16 reads a single big-endian int16 value.
func (p *Parser) ReadInt16() (int16, error) {
	val, err := p.ReadUint16()
	return int16(val), err
}

// ReadUint32 reads a single big-endian uint32 value.
func (p *Parser) ReadUint32() (uint32, error) {
	buf, err := p.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]), nil
}

// ReadTag reads a four byte table tag.  The bytes are returned as they are,
// without checking that they are printable.
func (p *Parser) ReadTag() (string, error) {
	buf, err := p.ReadBytes(4)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Error returns an error which is annotated with the table name and the
// position of the last read.
func (p *Parser) Error(format string, a ...interface{}) error {
	tableName := p.tableName
	if tableName == "" {
		tableName = "header"
	}
	a = append([]interface{}{tableName, p.lastRead}, a...)
	return fmt.Errorf("%s@%d: "+format, a...)
}
