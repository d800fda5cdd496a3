// Copyright (c) 2019, Daniel Martí <mvdan@mvdan.cc>
// This file is covered by the license at https://github.com/mvdan/bitw/blob/master/LICENSE
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"fmt"
	"math"

	"github.com/notapipeline/openwallet/pkg/types"
	"golang.org/x/crypto/pbkdf2"
)

// DeriveKey stretches password into a wallet key with PBKDF2-HMAC-SHA256.
func DeriveKey(password, salt []byte, iterations int) []byte {
	return pbkdf2.Key(password, salt, iterations, types.KeySize, sha256.New)
}

// EncryptWith pads data and encrypts it with AES-CBC.
//
// The wallet format uses the salt as the IV, so the caller supplies it rather
// than having one generated here.
func EncryptWith(data, key, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("encrypt: iv must be %d bytes, got %d", aes.BlockSize, len(iv))
	}

	data = PadPKCS7(data, aes.BlockSize)
	ct := make([]byte, len(data))
	mode := cipher.NewCBCEncrypter(block, iv)
	mode.CryptBlocks(ct, data)
	return ct, nil
}

// DecryptWith decrypts AES-CBC ciphertext and strips the PKCS7 padding.
//
// The errors returned here describe exactly what went wrong and must not be
// shown to anyone who supplied the key.
func DecryptWith(ct, key, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("decrypt: iv must be %d bytes, got %d", aes.BlockSize, len(iv))
	}
	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("decrypt: ciphertext length %d is not a positive multiple of %d", len(ct), aes.BlockSize)
	}

	mode := cipher.NewCBCDecrypter(block, iv)
	dst := make([]byte, len(ct))
	mode.CryptBlocks(dst, ct)
	return UnpadPKCS7(dst, aes.BlockSize)
}

func UnpadPKCS7(src []byte, size int) ([]byte, error) {
	if len(src) == 0 || len(src)%size != 0 {
		return nil, fmt.Errorf("expected PKCS7 padding for block size %d, but have %d bytes", size, len(src))
	}
	n := src[len(src)-1]
	if n == 0 || int(n) > size {
		return nil, fmt.Errorf("invalid PKCS7 pad length %d for block size %d", n, size)
	}
	for _, b := range src[len(src)-int(n):] {
		if b != n {
			return nil, fmt.Errorf("invalid PKCS7 padding")
		}
	}
	return src[:len(src)-int(n)], nil
}

func PadPKCS7(src []byte, size int) []byte {
	// Note that we always pad, even if rem==0. This is because unpad must
	// always remove at least one byte to be unambiguous.
	rem := len(src) % size
	n := size - rem
	if n > math.MaxUint8 {
		panic(fmt.Sprintf("cannot pad over %d bytes, but got %d", math.MaxUint8, n))
	}
	padded := make([]byte, len(src)+n)
	copy(padded, src)
	for i := len(src); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}
