package xcrypto

import (
	"crypto/ecdh"
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/paritytech/bcts-sub004/envelope"
	"github.com/paritytech/bcts-sub004/known"
)

const hkdfInfo = "envelope-recipient-v1"

// hasRecipientPredicate is the known-value predicate under which sealed
// content keys are attached (spec.md §4.8).
func hasRecipientPredicate() envelope.Envelope {
	return envelope.NewKnownValue(uint64(known.HasRecipient))
}

// GenerateRecipientKeyPair generates an X25519 key pair for use as an
// envelope recipient's encapsulation key.
func GenerateRecipientKeyPair() (*ecdh.PrivateKey, *ecdh.PublicKey, error) {
	priv, err := ecdh.X25519().GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return priv, priv.PublicKey(), nil
}

// sealedMessageWire is the on-the-wire record of a content key sealed to one
// recipient's public key: an ephemeral public key, the AEAD nonce, and the
// sealed (ciphertext||tag) bytes. Marshaled as a leaf's dCBOR value, the
// same way the codec embeds any other opaque structured byte payload.
type sealedMessageWire struct {
	_         struct{} `cbor:",toarray"`
	Ephemeral []byte
	Nonce     []byte
	Sealed    []byte
}

// sealContentKey encapsulates key to recipientPub: an ephemeral X25519 key
// pair is generated, ECDH'd against recipientPub, and the shared secret is
// run through HKDF-SHA256 to derive a one-time ChaCha20-Poly1305 key that
// seals key itself.
func sealContentKey(key [32]byte, recipientPub *ecdh.PublicKey) (sealedMessageWire, error) {
	ephPriv, err := ecdh.X25519().GenerateKey(rand.Reader)
	if err != nil {
		return sealedMessageWire{}, err
	}
	shared, err := ephPriv.ECDH(recipientPub)
	if err != nil {
		return sealedMessageWire{}, err
	}

	salt := append(append([]byte{}, ephPriv.PublicKey().Bytes()...), recipientPub.Bytes()...)
	sealKey, err := deriveKey(shared, salt)
	if err != nil {
		return sealedMessageWire{}, err
	}

	var nonce [12]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return sealedMessageWire{}, err
	}
	aead, err := chacha20poly1305.New(sealKey[:])
	if err != nil {
		return sealedMessageWire{}, err
	}
	sealed := aead.Seal(nil, nonce[:], key[:], nil)

	return sealedMessageWire{
		Ephemeral: ephPriv.PublicKey().Bytes(),
		Nonce:     append([]byte{}, nonce[:]...),
		Sealed:    sealed,
	}, nil
}

// openContentKey recovers the content key sealed to priv's public key, or
// ErrMalformedSeal / ErrDecryptionFailed.
func openContentKey(wire sealedMessageWire, priv *ecdh.PrivateKey) ([32]byte, error) {
	var key [32]byte
	ephPub, err := ecdh.X25519().NewPublicKey(wire.Ephemeral)
	if err != nil {
		return key, ErrMalformedSeal
	}
	if len(wire.Nonce) != 12 {
		return key, ErrMalformedSeal
	}
	shared, err := priv.ECDH(ephPub)
	if err != nil {
		return key, ErrMalformedSeal
	}

	salt := append(append([]byte{}, wire.Ephemeral...), priv.PublicKey().Bytes()...)
	sealKey, err := deriveKey(shared, salt)
	if err != nil {
		return key, err
	}

	aead, err := chacha20poly1305.New(sealKey[:])
	if err != nil {
		return key, err
	}
	var nonce [12]byte
	copy(nonce[:], wire.Nonce)
	plain, err := aead.Open(nil, nonce[:], wire.Sealed, nil)
	if err != nil {
		return key, ErrDecryptionFailed
	}
	if len(plain) != 32 {
		return key, ErrMalformedSeal
	}
	copy(key[:], plain)
	return key, nil
}

func deriveKey(shared, salt []byte) ([32]byte, error) {
	var out [32]byte
	r := hkdf.New(sha256.New, shared, salt, []byte(hkdfInfo))
	if _, err := io.ReadFull(r, out[:]); err != nil {
		return out, err
	}
	return out, nil
}

// EncryptSubjectToRecipients generates a fresh content key, encrypts e's
// subject with it, and attaches one hasRecipient assertion per recipient
// sealing that key to their public key (spec.md §4.8). The caller must
// retain the returned key out-of-band to add further recipients later via
// AddRecipient.
func EncryptSubjectToRecipients(e envelope.Envelope, recipients []*ecdh.PublicKey) (envelope.Envelope, [32]byte, error) {
	key, err := GenerateKey()
	if err != nil {
		return envelope.Envelope{}, key, err
	}
	out, err := EncryptSubject(e, key)
	if err != nil {
		return envelope.Envelope{}, key, err
	}
	for _, pub := range recipients {
		out, err = AddRecipient(out, key, pub)
		if err != nil {
			return envelope.Envelope{}, key, err
		}
	}
	return out, key, nil
}

// AddRecipient seals key to recipientPub and attaches the resulting
// hasRecipient assertion to e, without re-encrypting the subject. Used both
// by EncryptSubjectToRecipients and to add a recipient to an
// already-encrypted envelope, given the content key out-of-band.
func AddRecipient(e envelope.Envelope, key [32]byte, recipientPub *ecdh.PublicKey) (envelope.Envelope, error) {
	wire, err := sealContentKey(key, recipientPub)
	if err != nil {
		return envelope.Envelope{}, err
	}
	obj, err := envelope.NewLeaf(wire)
	if err != nil {
		return envelope.Envelope{}, err
	}
	return e.AddAssertion(hasRecipientPredicate(), obj)
}

// Recipients returns the number of hasRecipient assertions on e.
func Recipients(e envelope.Envelope) (int, error) {
	matches, err := e.AssertionsWithPredicate(hasRecipientPredicate())
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

// DecryptSubjectToRecipient tries priv against every hasRecipient assertion
// on e until one unseals a content key that successfully decrypts the
// subject, or ErrNotAValidRecipient if none does.
func DecryptSubjectToRecipient(e envelope.Envelope, priv *ecdh.PrivateKey) (envelope.Envelope, error) {
	sealed, err := e.ObjectsForPredicate(hasRecipientPredicate())
	if err != nil || len(sealed) == 0 {
		return envelope.Envelope{}, ErrNotAValidRecipient
	}
	for _, obj := range sealed {
		var wire sealedMessageWire
		if err := obj.LeafValue(&wire); err != nil {
			continue
		}
		key, err := openContentKey(wire, priv)
		if err != nil {
			continue
		}
		if out, err := DecryptSubject(e, key); err == nil {
			return out, nil
		}
	}
	return envelope.Envelope{}, ErrNotAValidRecipient
}

// DecryptToRecipient is the wrap-aware sibling of DecryptSubjectToRecipient,
// mirroring Decrypt/DecryptSubject.
func DecryptToRecipient(e envelope.Envelope, priv *ecdh.PrivateKey) (envelope.Envelope, error) {
	decrypted, err := DecryptSubjectToRecipient(e, priv)
	if err != nil {
		return envelope.Envelope{}, err
	}
	return decrypted.Unwrap()
}
