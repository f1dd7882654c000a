package ecdsa

// ASN.1 / DER signature and public-key encoding, generalizing
// internal/legacyref/secec/asn1.go from a single hard-coded OID to any
// registered curve. Grounded on the same golang.org/x/crypto/cryptobyte
// machinery the teacher uses, since the stdlib's encoding/asn1 cannot
// build or parse arbitrary SEQUENCE/INTEGER shapes without reflection
// over exported struct fields, which ECDSA-Sig-Value (and the OID-keyed
// SubjectPublicKeyInfo choice of curve) does not fit.

import (
	stdasn1 "encoding/asn1"
	"errors"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"go.eccore.dev/eccore/wei"
)

var (
	oidPublicKeyEC = stdasn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}

	oidP224      = stdasn1.ObjectIdentifier{1, 3, 132, 0, 33}
	oidP256      = stdasn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}
	oidP384      = stdasn1.ObjectIdentifier{1, 3, 132, 0, 34}
	oidP521      = stdasn1.ObjectIdentifier{1, 3, 132, 0, 35}
	oidSecp256k1 = stdasn1.ObjectIdentifier{1, 3, 132, 0, 10}

	errMalformedASN1Sig = errors.New("ecdsa: malformed ASN.1 signature")
	errMalformedASN1Key = errors.New("ecdsa: malformed ASN.1 public key")
	errUnknownCurveOID  = errors.New("ecdsa: unrecognized or mismatched named-curve OID")
)

func (c *Curve) namedCurveOID() stdasn1.ObjectIdentifier {
	switch c {
	case P224:
		return oidP224
	case P256:
		return oidP256
	case P384:
		return oidP384
	case P521:
		return oidP521
	case Secp256k1:
		return oidSecp256k1
	default:
		return nil
	}
}

// MarshalASN1 serializes sig as an ECDSA-Sig-Value SEQUENCE { r, s
// INTEGER }, per SEC 1, Version 2.0, Appendix C.8.
func (sig *Signature) MarshalASN1() []byte {
	var rBig, sBig big.Int
	rBig.SetBytes(sig.R.Bytes())
	sBig.SetBytes(sig.S.Bytes())

	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(&rBig)
		b.AddASN1BigInt(&sBig)
	})
	return b.BytesOrPanic()
}

// ParseASN1Signature parses an ECDSA-Sig-Value SEQUENCE produced by
// [Signature.MarshalASN1]. The recovery ID is not recoverable from this
// encoding (SEC 1's ECDSA-Sig-Value does not carry one) and is left 0;
// callers needing recovery must carry RecoveryID out of band.
func (c *Curve) ParseASN1Signature(data []byte) (*Signature, error) {
	var (
		inner          cryptobyte.String
		rBytes, sBytes []byte
	)
	input := cryptobyte.String(data)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(&rBytes) ||
		!inner.ReadASN1Integer(&sBytes) ||
		!inner.Empty() {
		return nil, errMalformedASN1Sig
	}

	r, err := c.scalarFromASN1Integer(rBytes)
	if err != nil {
		return nil, err
	}
	s, err := c.scalarFromASN1Integer(sBytes)
	if err != nil {
		return nil, err
	}
	return &Signature{R: r, S: s}, nil
}

func (c *Curve) scalarFromASN1Integer(raw []byte) (*wei.Scalar, error) {
	v := new(big.Int).SetBytes(raw)
	if v.Sign() < 0 || v.Cmp(c.ScalarModulus().BigInt()) >= 0 {
		return nil, ErrInvalidScalar
	}
	s, err := c.NewScalarFromBigInt(v)
	if err != nil || s.IsZero() != 0 {
		return nil, ErrInvalidScalar
	}
	return s, nil
}

// MarshalASN1PublicKey serializes k as a SubjectPublicKeyInfo, per SEC 1,
// Version 2.0, Appendix C.3, using k's curve's named-curve OID.
func (k *PublicKey) MarshalASN1PublicKey() []byte {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(oidPublicKeyEC)
			b.AddASN1ObjectIdentifier(k.curve.namedCurveOID())
		})
		b.AddASN1BitString(k.Bytes())
	})
	return b.BytesOrPanic()
}

// ParseASN1PublicKey parses a SubjectPublicKeyInfo produced by
// [PublicKey.MarshalASN1PublicKey], checking the named-curve OID matches
// c. This is "best-effort", as internal/legacyref/secec/asn1.go's
// ParseASN1PublicKey warns -- explicit curve parameters in place of a
// named-curve OID are not supported.
func (c *Curve) ParseASN1PublicKey(data []byte) (*PublicKey, error) {
	var (
		inner     cryptobyte.String
		algorithm cryptobyte.String

		subjectPublicKey       stdasn1.BitString
		oidAlgorithm, oidCurve stdasn1.ObjectIdentifier
	)

	input := cryptobyte.String(data)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1(&algorithm, asn1.SEQUENCE) ||
		!inner.ReadASN1BitString(&subjectPublicKey) ||
		!inner.Empty() ||
		!algorithm.ReadASN1ObjectIdentifier(&oidAlgorithm) ||
		!algorithm.ReadASN1ObjectIdentifier(&oidCurve) ||
		!algorithm.Empty() {
		return nil, errMalformedASN1Key
	}

	if !oidAlgorithm.Equal(oidPublicKeyEC) || !oidCurve.Equal(c.namedCurveOID()) {
		return nil, errUnknownCurveOID
	}

	return c.NewPublicKey(subjectPublicKey.RightAlign())
}
