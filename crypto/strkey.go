// Copyright 2020 The stellarwallet Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package crypto

import (
	"bytes"
	"encoding/base32"
	"encoding/binary"
	"errors"
)

type KeyType uint8

// enumeration of key types
const (
	_ KeyType = iota // skip zero
	KeyTypeAccountID
	KeyTypeSeed
)

// version bytes of the base32 key representation, chosen so
// that account ids always render with a leading 'G' and seeds
// with a leading 'S'
const (
	versionAccountID byte = 6 << 3
	versionSeed      byte = 18 << 3
)

var (
	ErrInvalidKey = errors.New("invalid key string")
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// Key is the internal representation of an encoded key string.
// Code identifies the type of the key and Payload holds the raw
// 32 key bytes.
type Key struct {
	Code    KeyType
	Payload [32]byte
}

// DecodeKey decodes a base32 encoded key string to a Key and
// verifies its checksum.
func DecodeKey(key string) (*Key, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	b, err := b32.DecodeString(key)
	if err != nil {
		return nil, ErrInvalidKey
	}
	// version byte + 32 payload bytes + 2 checksum bytes
	if len(b) != 35 {
		return nil, ErrInvalidKey
	}

	want := binary.LittleEndian.Uint16(b[33:])
	if checksum(b[:33]) != want {
		return nil, ErrInvalidKey
	}

	k := &Key{}
	switch b[0] {
	case versionAccountID:
		k.Code = KeyTypeAccountID
	case versionSeed:
		k.Code = KeyTypeSeed
	default:
		return nil, ErrInvalidKey
	}
	copy(k.Payload[:], b[1:33])

	return k, nil
}

// EncodeKey encodes a Key to its base32 key string.
func EncodeKey(key *Key) string {
	var buf bytes.Buffer
	switch key.Code {
	case KeyTypeAccountID:
		buf.WriteByte(versionAccountID)
	case KeyTypeSeed:
		buf.WriteByte(versionSeed)
	}
	buf.Write(key.Payload[:])

	var ck [2]byte
	binary.LittleEndian.PutUint16(ck[:], checksum(buf.Bytes()))
	buf.Write(ck[:])

	return b32.EncodeToString(buf.Bytes())
}

// IsValidAccountKey checks whether the supplied key string is
// a valid account id.
func IsValidAccountKey(key string) bool {
	k, err := DecodeKey(key)
	if err != nil {
		return false
	}
	return k.Code == KeyTypeAccountID
}

// IsValidSeedKey checks whether the supplied key string is a
// valid signing seed.
func IsValidSeedKey(key string) bool {
	k, err := DecodeKey(key)
	if err != nil {
		return false
	}
	return k.Code == KeyTypeSeed
}

// checksum computes the CRC16-XModem checksum over the version
// byte and key payload.
func checksum(b []byte) uint16 {
	var crc uint16
	for _, c := range b {
		crc ^= uint16(c) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
