package xcrypto

import "errors"

var (
	ErrAlreadyEncrypted        = errors.New("xcrypto: envelope is already encrypted")
	ErrSubjectAlreadyEncrypted = errors.New("xcrypto: subject is already encrypted")
	ErrNotEncrypted            = errors.New("xcrypto: subject is not encrypted")
	ErrCannotEncryptElided     = errors.New("xcrypto: cannot encrypt an elided envelope")
	ErrDecryptionFailed        = errors.New("xcrypto: decryption failed")
	ErrInvalidDigest           = errors.New("xcrypto: decrypted content does not match its digest")
	ErrNotAValidRecipient      = errors.New("xcrypto: private key does not match any recipient")
	ErrMalformedSeal           = errors.New("xcrypto: malformed sealed message")
)
