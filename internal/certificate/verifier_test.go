package certificate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldchain/pkg/domain"
	"coldchain/pkg/testutil"
)

func TestRecoverSignerRoundTrip(t *testing.T) {
	signer := testutil.NewSigner(t)
	message := CertificationMessage(signer.ID, 0, signer.ID)
	hash := MessageHash(message)
	sig := signer.SignHash(t, hash)

	recovered, err := RecoverSigner(hash, sig)
	require.NoError(t, err)
	assert.Equal(t, signer.ID, recovered)
}

func TestRecoverSignerAcceptsBothVEncodings(t *testing.T) {
	signer := testutil.NewSigner(t)
	hash := MessageHash("custody attestation")
	sig := signer.SignHash(t, hash) // v is 27/28 here

	fromLegacy, err := RecoverSigner(hash, sig)
	require.NoError(t, err)

	compact := append([]byte(nil), sig...)
	compact[64] -= 27
	fromCompact, err := RecoverSigner(hash, compact)
	require.NoError(t, err)

	assert.Equal(t, fromLegacy, fromCompact)
	assert.Equal(t, signer.ID, fromCompact)
}

func TestRecoverSignerTamperedMessage(t *testing.T) {
	signer := testutil.NewSigner(t)
	sig := signer.Sign(t, "batch #1 is intact")

	recovered, err := RecoverSigner(MessageHash("batch #1 is spoiled"), sig)
	if err == nil {
		// Recovery over a different digest yields some key, just never the
		// signer's.
		assert.NotEqual(t, signer.ID, recovered)
	}
}

func TestRecoverSignerRejectsMalformedInputs(t *testing.T) {
	hash := MessageHash("custody attestation")

	_, err := RecoverSigner(hash[:31], make([]byte, signatureLength))
	assert.Error(t, err)

	_, err = RecoverSigner(hash, make([]byte, 64))
	assert.Error(t, err)

	_, err = RecoverSigner(hash, nil)
	assert.Error(t, err)
}

func TestRecoverSignerDoesNotMutateSignature(t *testing.T) {
	signer := testutil.NewSigner(t)
	hash := MessageHash("custody attestation")
	sig := signer.SignHash(t, hash)
	v := sig[64]

	_, err := RecoverSigner(hash, sig)
	require.NoError(t, err)
	assert.Equal(t, v, sig[64])
}

func TestCertificationMessageTemplate(t *testing.T) {
	issuer, err := domain.ParseEntityID("0x1000000000000000000000000000000000000001")
	require.NoError(t, err)
	prover, err := domain.ParseEntityID("0x2000000000000000000000000000000000000002")
	require.NoError(t, err)

	got := CertificationMessage(issuer, 3, prover)
	want := "Inspector 0x1000000000000000000000000000000000000001 has certified vaccine batch #3 for Manufacturer 0x2000000000000000000000000000000000000002"
	assert.Equal(t, want, got)
}
