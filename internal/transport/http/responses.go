package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"coldchain/internal/certificate"
	"coldchain/pkg/domain"
	dErrors "coldchain/pkg/domain-errors"
)

type certificateResponse struct {
	ID             domain.CertificateID `json:"id"`
	Issuer         domain.EntityID      `json:"issuer"`
	Prover         domain.EntityID      `json:"prover"`
	Status         domain.CustodyState  `json:"status"`
	VaccineBatchID domain.BatchID       `json:"vaccine_batch_id"`
	Signature      string               `json:"signature"`
}

func newCertificateResponse(cert certificate.Certificate) certificateResponse {
	return certificateResponse{
		ID:             cert.ID,
		Issuer:         cert.Issuer,
		Prover:         cert.Prover,
		Status:         cert.Status,
		VaccineBatchID: cert.VaccineBatchID,
		Signature:      hexutil.Encode(cert.Signature),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError centralizes domain error translation to HTTP responses so every
// handler returns the same JSON error envelope.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{
		"error":   string(code),
		"message": dErrors.MessageOf(err),
	})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error":   string(dErrors.CodeBadRequest),
		"message": message,
	})
}
