package xcrypto

import (
	"crypto/rand"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/paritytech/bcts-sub004/envelope"
)

const keyLen = chacha20poly1305.KeySize // 32

// GenerateKey returns a fresh random content key.
func GenerateKey() ([32]byte, error) {
	var key [32]byte
	if _, err := rand.Read(key[:]); err != nil {
		return [32]byte{}, err
	}
	return key, nil
}

func seal(key [32]byte, aad []byte, plaintext []byte) (ciphertext []byte, nonce [12]byte, tag [16]byte, err error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, nonce, tag, err
	}
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, nonce, tag, err
	}
	sealed := aead.Seal(nil, nonce[:], plaintext, aad)
	n := len(sealed) - aead.Overhead()
	ciphertext = sealed[:n]
	copy(tag[:], sealed[n:])
	return ciphertext, nonce, tag, nil
}

func open(key [32]byte, aad []byte, ciphertext []byte, nonce [12]byte, tag [16]byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}
	combined := make([]byte, 0, len(ciphertext)+len(tag))
	combined = append(combined, ciphertext...)
	combined = append(combined, tag[:]...)
	plaintext, err := aead.Open(nil, nonce[:], combined, aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// EncryptEnvelope replaces e with an Encrypted case carrying its own
// tagged-binary encoding as AEAD plaintext, authenticated by e's own digest.
// It is the primitive the elision engine's encrypt action applies to
// whichever envelope it is obscuring, and the building block EncryptSubject
// composes on top of for the node-subject-specific entry point.
func EncryptEnvelope(e envelope.Envelope, key [32]byte) (envelope.Envelope, error) {
	if e.IsEncrypted() {
		return envelope.Envelope{}, ErrAlreadyEncrypted
	}
	if e.IsElided() {
		return envelope.Envelope{}, ErrCannotEncryptElided
	}

	plaintext, err := e.TaggedBinary()
	if err != nil {
		return envelope.Envelope{}, err
	}
	aad := e.Digest()
	ciphertext, nonce, tag, err := seal(key, aad.Bytes(), plaintext)
	if err != nil {
		return envelope.Envelope{}, err
	}
	return envelope.NewEncrypted(envelope.EncryptedMessage{
		Ciphertext: ciphertext,
		Nonce:      nonce,
		Tag:        tag,
		AAD:        aad,
	})
}

// DecryptEnvelope is the inverse of EncryptEnvelope: e must be an Encrypted
// case, and the recovered plaintext must decode back to an envelope whose
// digest matches the AAD it was encrypted under.
func DecryptEnvelope(e envelope.Envelope, key [32]byte) (envelope.Envelope, error) {
	msg, err := e.Encrypted()
	if err != nil {
		return envelope.Envelope{}, ErrNotEncrypted
	}
	plaintext, err := open(key, msg.AAD.Bytes(), msg.Ciphertext, msg.Nonce, msg.Tag)
	if err != nil {
		return envelope.Envelope{}, err
	}
	decoded, err := envelope.FromTaggedBinary(plaintext)
	if err != nil {
		return envelope.Envelope{}, ErrDecryptionFailed
	}
	if !decoded.Digest().Equal(msg.AAD) {
		return envelope.Envelope{}, ErrInvalidDigest
	}
	return decoded, nil
}

// EncryptSubject replaces e's subject with its encrypted form
// (spec.md §4.7). For a non-node e, the subject is e itself, so the result
// is simply EncryptEnvelope(e, key).
func EncryptSubject(e envelope.Envelope, key [32]byte) (envelope.Envelope, error) {
	subject := e.Subject()
	if subject.IsEncrypted() {
		return envelope.Envelope{}, ErrSubjectAlreadyEncrypted
	}
	encrypted, err := EncryptEnvelope(subject, key)
	if err != nil {
		return envelope.Envelope{}, err
	}
	return e.ReplaceSubject(encrypted)
}

// DecryptSubject is the inverse of EncryptSubject.
func DecryptSubject(e envelope.Envelope, key [32]byte) (envelope.Envelope, error) {
	subject := e.Subject()
	decoded, err := DecryptEnvelope(subject, key)
	if err != nil {
		return envelope.Envelope{}, err
	}
	return e.ReplaceSubject(decoded)
}

// Encrypt wraps e and encrypts the wrapper's subject, so that the whole of e
// (not just its top-level subject) becomes opaque (spec.md §4.12's
// wrap-then-obscure idiom).
func Encrypt(e envelope.Envelope, key [32]byte) (envelope.Envelope, error) {
	return EncryptSubject(e.Wrap(), key)
}

// Decrypt is the inverse of Encrypt: decrypt then unwrap.
func Decrypt(e envelope.Envelope, key [32]byte) (envelope.Envelope, error) {
	decrypted, err := DecryptSubject(e, key)
	if err != nil {
		return envelope.Envelope{}, err
	}
	return decrypted.Unwrap()
}
