package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-chi/chi/v5"

	"coldchain/internal/audit"
	"coldchain/internal/batch"
	"coldchain/internal/certificate"
	"coldchain/internal/registry"
	"coldchain/pkg/domain"
)

// Handler delegates to the registry services without embedding business
// logic, so transport concerns remain isolated.
type Handler struct {
	entities     *registry.Service
	batches      *batch.Service
	certificates *certificate.Service
	auditor      *audit.Publisher
	logger       *slog.Logger
}

func NewHandler(entities *registry.Service, batches *batch.Service, certificates *certificate.Service, auditor *audit.Publisher, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		entities:     entities,
		batches:      batches,
		certificates: certificates,
		auditor:      auditor,
		logger:       logger,
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleAddEntity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID   string `json:"id"`
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	id, err := domain.ParseEntityID(req.ID)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	mode, err := domain.ParseRole(req.Mode)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	entity, err := h.entities.AddEntity(r.Context(), id, mode)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, entity)
}

func (h *Handler) handleGetEntity(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseEntityID(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	entity, err := h.entities.GetEntity(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entity)
}

func (h *Handler) handleAddBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Brand        string `json:"brand"`
		Manufacturer string `json:"manufacturer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	manufacturer, err := domain.ParseEntityID(req.Manufacturer)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	b, err := h.batches.AddVaccineBatch(r.Context(), req.Brand, manufacturer)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSequentialID(w, chi.URLParam(r, "id"), "batch id")
	if !ok {
		return
	}
	b, err := h.batches.GetVaccineBatch(r.Context(), domain.BatchID(id))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) handleIssueCertificate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Issuer         string `json:"issuer"`
		Prover         string `json:"prover"`
		Status         string `json:"status"`
		VaccineBatchID uint64 `json:"vaccine_batch_id"`
		Signature      string `json:"signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	issuer, err := domain.ParseEntityID(req.Issuer)
	if err != nil {
		writeBadRequest(w, "issuer: "+err.Error())
		return
	}
	prover, err := domain.ParseEntityID(req.Prover)
	if err != nil {
		writeBadRequest(w, "prover: "+err.Error())
		return
	}
	status, err := domain.ParseCustodyState(req.Status)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	signature, err := hexutil.Decode(req.Signature)
	if err != nil {
		writeBadRequest(w, "signature must be 0x-prefixed hex")
		return
	}

	cert, err := h.certificates.IssueCertificate(r.Context(), issuer, prover, status, domain.BatchID(req.VaccineBatchID), signature)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, newCertificateResponse(cert))
}

func (h *Handler) handleGetCertificate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSequentialID(w, chi.URLParam(r, "id"), "certificate id")
	if !ok {
		return
	}
	cert, err := h.certificates.GetCertificate(r.Context(), domain.CertificateID(id))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newCertificateResponse(cert))
}

func (h *Handler) handleVerifySignature(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSequentialID(w, chi.URLParam(r, "id"), "certificate id")
	if !ok {
		return
	}
	var req struct {
		MessageHash   string `json:"message_hash"`
		ClaimedSigner string `json:"claimed_signer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	messageHash, err := hexutil.Decode(req.MessageHash)
	if err != nil || len(messageHash) != 32 {
		writeBadRequest(w, "message_hash must be a 32-byte 0x-prefixed hex digest")
		return
	}
	claimedSigner, err := domain.ParseEntityID(req.ClaimedSigner)
	if err != nil {
		writeBadRequest(w, "claimed_signer: "+err.Error())
		return
	}

	match, err := h.certificates.IsMatchingSignature(r.Context(), messageHash, domain.CertificateID(id), claimedSigner)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"match": match})
}

func (h *Handler) handleListAuditEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.auditor.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func parseSequentialID(w http.ResponseWriter, raw, field string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeBadRequest(w, field+" must be a non-negative integer")
		return 0, false
	}
	return id, true
}
